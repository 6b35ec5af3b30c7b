// Package azure wraps the Azure Resource Manager SDK behind the small set of
// operations the webhook sample needs.
//
// # Architecture
//
//   - client.go: domain types and the manager interfaces ([CloudManager])
//   - real_client.go: [RealClient] construction from service-principal credentials
//   - resource_group.go: resource group create/delete
//   - registry.go: registry create/get and admin credential retrieval
//   - webhook.go: webhook create/get/ping and event listing
//   - errors.go: classification of ARM response errors
//   - mock_client.go: function-field mock used by provisioning tests
//
// Every create and delete blocks until the long-running operation reaches a
// terminal state. Polling itself is delegated to the SDK poller; the client only
// bounds the wait with the configured timeouts.
package azure
