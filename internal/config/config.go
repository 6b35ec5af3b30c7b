package config

// Default values applied by ApplyDefaults.
const (
	DefaultPrefix        = "acrw"
	DefaultLocation      = "eastus"
	DefaultSKU           = SKUBasic
	DefaultServiceURI    = "https://www.bing.com"
	DefaultWebhookPrefix = "webhookbing"
	DefaultSourceImage   = "hello-world"
	DefaultSourceTag     = "latest"
	DefaultRelativePath  = "samples"
	DefaultContainerName = "sample-hello"

	DefaultEngineLocation   = "nbg1"
	DefaultEngineServerType = "cx22"
	DefaultEngineImage      = "docker-ce"
	DefaultEngineSSHUser    = "root"

	DefaultReportPrefix = "acrwebhooks"
	DefaultReportRegion = "us-east-1"
	DefaultMetricsJob   = "acrwebhooks"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"
)

// Registry SKUs accepted by the sample.
const (
	SKUBasic    = "Basic"
	SKUStandard = "Standard"
	SKUPremium  = "Premium"
)

// Config is the complete run configuration.
type Config struct {
	// Prefix is prepended to every generated resource name.
	Prefix string `yaml:"prefix"`

	// Location is the Azure region for the resource group and registry.
	Location string `yaml:"location"`

	Registry RegistryConfig `yaml:"registry"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Image    ImageConfig    `yaml:"image"`
	Engine   EngineConfig   `yaml:"engine"`
	Report   ReportConfig   `yaml:"report"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`

	// KeepResources skips resource group deletion at the end of the run.
	KeepResources bool `yaml:"keepResources"`
}

// RegistryConfig configures the container registry.
type RegistryConfig struct {
	SKU string `yaml:"sku"`
}

// WebhookConfig configures both webhooks. They share a delivery target.
type WebhookConfig struct {
	NamePrefix    string            `yaml:"namePrefix"`
	ServiceURI    string            `yaml:"serviceURI"`
	CustomHeaders map[string]string `yaml:"customHeaders"`
	Tags          map[string]string `yaml:"tags"`
}

// ImageConfig describes the image that is pulled, committed, and pushed.
type ImageConfig struct {
	Source        string `yaml:"source"`
	Tag           string `yaml:"tag"`
	RelativePath  string `yaml:"relativePath"`
	ContainerName string `yaml:"containerName"`

	// SkipVerify disables the post-push manifest lookup.
	SkipVerify bool `yaml:"skipVerify"`
}

// EngineConfig configures where the container engine comes from.
type EngineConfig struct {
	// DisableRemote prevents provisioning a Hetzner Cloud host when no
	// local engine answers.
	DisableRemote bool   `yaml:"disableRemote"`
	Location      string `yaml:"location"`
	ServerType    string `yaml:"serverType"`
	Image         string `yaml:"image"`
	SSHUser       string `yaml:"sshUser"`
}

// ReportConfig configures the optional run report upload.
type ReportConfig struct {
	Bucket   string `yaml:"bucket"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Prefix   string `yaml:"prefix"`
}

// Enabled reports whether report upload is configured.
func (r ReportConfig) Enabled() bool {
	return r.Bucket != ""
}

// MetricsConfig configures the optional Pushgateway export.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"`
	Job            string `yaml:"job"`
}

// Enabled reports whether metrics push is configured.
func (m MetricsConfig) Enabled() bool {
	return m.PushgatewayURL != ""
}

// LogConfig configures console logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in every unset field.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Prefix, DefaultPrefix)
	setDefault(&c.Location, DefaultLocation)
	setDefault(&c.Registry.SKU, DefaultSKU)

	setDefault(&c.Webhook.NamePrefix, DefaultWebhookPrefix)
	setDefault(&c.Webhook.ServiceURI, DefaultServiceURI)
	if c.Webhook.CustomHeaders == nil {
		c.Webhook.CustomHeaders = map[string]string{"name": "value"}
	}
	if c.Webhook.Tags == nil {
		c.Webhook.Tags = map[string]string{"tag1": "value1", "tag2": "value2"}
	}

	setDefault(&c.Image.Source, DefaultSourceImage)
	setDefault(&c.Image.Tag, DefaultSourceTag)
	setDefault(&c.Image.RelativePath, DefaultRelativePath)
	setDefault(&c.Image.ContainerName, DefaultContainerName)

	setDefault(&c.Engine.Location, DefaultEngineLocation)
	setDefault(&c.Engine.ServerType, DefaultEngineServerType)
	setDefault(&c.Engine.Image, DefaultEngineImage)
	setDefault(&c.Engine.SSHUser, DefaultEngineSSHUser)

	setDefault(&c.Report.Region, DefaultReportRegion)
	setDefault(&c.Report.Prefix, DefaultReportPrefix)
	setDefault(&c.Metrics.Job, DefaultMetricsJob)

	setDefault(&c.Log.Level, DefaultLogLevel)
	setDefault(&c.Log.Format, DefaultLogFormat)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
