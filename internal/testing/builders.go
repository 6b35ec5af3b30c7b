package testing

import (
	"maps"

	"github.com/imamik/acrwebhooks/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with every default applied.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: *config.Default()}
}

// WithLocation sets the Azure region.
func (b *ConfigBuilder) WithLocation(location string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Location = location
	return newBuilder
}

// WithSKU sets the registry SKU.
func (b *ConfigBuilder) WithSKU(sku string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Registry.SKU = sku
	return newBuilder
}

// WithServiceURI sets the webhook delivery target.
func (b *ConfigBuilder) WithServiceURI(uri string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Webhook.ServiceURI = uri
	return newBuilder
}

// WithKeepResources toggles resource group retention.
func (b *ConfigBuilder) WithKeepResources(keep bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.KeepResources = keep
	return newBuilder
}

// WithSkipVerify toggles the post-push manifest check.
func (b *ConfigBuilder) WithSkipVerify(skip bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Image.SkipVerify = skip
	return newBuilder
}

// Build returns a copy of the built config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.Webhook.CustomHeaders = maps.Clone(b.cfg.Webhook.CustomHeaders)
	cfg.Webhook.Tags = maps.Clone(b.cfg.Webhook.Tags)
	return &ConfigBuilder{cfg: cfg}
}

// MinimalConfig returns the default configuration.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().Build()
}
