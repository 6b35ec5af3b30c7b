// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - CloudFixture: Pre-configured mock cloud client that records calls
//   - StaticProvider: Engine provider handing out a fixed session
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithLocation("westeurope").
//	    Build()
//
//	fixture := testing.NewCloudFixture()
//	cloud := fixture.Mock()
package testing
