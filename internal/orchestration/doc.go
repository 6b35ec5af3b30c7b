// Package orchestration provides high-level workflow coordination for the registry sample.
//
// This package orchestrates the workflow by delegating to specialized
// provisioners in the internal/provisioning subpackages. It defines the execution order
// and owns the single deferred cleanup point.
//
// # Workflow
//
// The Workflow executes the following phases in order:
//  1. Resource group
//  2. Registry (admin user enabled)
//  3. Webhooks (#1 push+delete enabled, #2 push disabled)
//  4. Webhook events before the push (ping, list)
//  5. Image (credentials, engine, pull, commit, push)
//  6. Webhook events after the push (re-fetch, list)
//
// The resource group is deleted afterwards whenever its ID was recorded,
// regardless of which phase failed.
//
// # Usage
//
//	workflow := orchestration.NewWorkflow(pctx)
//	err := workflow.Run()
package orchestration
