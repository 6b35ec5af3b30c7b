// Package provisioning provides shared types, interfaces, and orchestration for the registry workflow.
//
// # Subpackages
//
//   - infrastructure/ - Resource group and container registry
//   - webhook/ - Webhook creation, pings, and event listings
//   - image/ - Pull, commit, and push through an acquired container engine
//   - destroy/ - Resource group teardown
//
// # Core Types
//
// Context carries configuration, state, the cloud client, the engine provider, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (resource group ID, registry, webhooks, events, pushed image).
package provisioning
