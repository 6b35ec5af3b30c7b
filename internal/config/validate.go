package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/imamik/acrwebhooks/internal/util/naming"
)

// ValidSKUs lists the registry SKUs that can be requested.
var ValidSKUs = map[string]bool{
	SKUBasic:    true,
	SKUStandard: true,
	SKUPremium:  true,
}

// ValidLogFormats lists the supported console formats.
var ValidLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if !ValidSKUs[c.Registry.SKU] {
		return fmt.Errorf("invalid registry sku %q: must be one of Basic, Standard, Premium", c.Registry.SKU)
	}
	if err := validateServiceURI(c.Webhook.ServiceURI); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if err := validateWebhookPrefix(c.Webhook.NamePrefix); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if err := c.validateImage(); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if !ValidLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format %q: must be auto, text or json", c.Log.Format)
	}
	if c.Report.Enabled() && c.Report.Endpoint == "" {
		return fmt.Errorf("report: endpoint is required when bucket is set")
	}
	return nil
}

func validateServiceURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid service URI %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service URI %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("service URI %q has no host", raw)
	}
	return nil
}

// Two webhooks are created, so the longest generated name ends in "2".
func validateWebhookPrefix(prefix string) error {
	name := naming.Webhook(prefix, 2)
	if !naming.ValidWebhook(name) {
		return fmt.Errorf("namePrefix %q yields webhook name %q: must be %d-%d alphanumeric characters",
			prefix, name, naming.WebhookMinLength, naming.WebhookMaxLength)
	}
	return nil
}

func (c *Config) validateImage() error {
	if c.Image.Source == "" || c.Image.Tag == "" {
		return fmt.Errorf("source and tag are required")
	}
	if c.Image.ContainerName == "" {
		return fmt.Errorf("containerName is required")
	}
	if strings.ToLower(c.Image.ContainerName) != c.Image.ContainerName {
		return fmt.Errorf("containerName %q must be lowercase", c.Image.ContainerName)
	}
	if strings.HasPrefix(c.Image.RelativePath, "/") || strings.HasSuffix(c.Image.RelativePath, "/") {
		return fmt.Errorf("relativePath %q must not start or end with '/'", c.Image.RelativePath)
	}
	return nil
}
