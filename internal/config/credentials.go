package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Service-principal environment variables.
const (
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvClientSecret   = "AZURE_CLIENT_SECRET" //nolint:gosec // This is a variable name, not a credential value
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"

	EnvHCloudToken     = "HCLOUD_TOKEN"           //nolint:gosec // This is a variable name, not a credential value
	EnvReportAccessKey = "ACRW_REPORT_ACCESS_KEY" //nolint:gosec // This is a variable name, not a credential value
	EnvReportSecretKey = "ACRW_REPORT_SECRET_KEY" //nolint:gosec // This is a variable name, not a credential value
)

// ErrMissingCredentials is returned when a required credential variable is unset.
var ErrMissingCredentials = errors.New("missing service principal credentials")

// Credentials identify the service principal the sample acts as.
type Credentials struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	SubscriptionID string
}

// LoadCredentials reads the four service-principal variables. All of them
// must be set; the error names every missing one.
func LoadCredentials() (*Credentials, error) {
	creds := &Credentials{
		TenantID:       strings.TrimSpace(os.Getenv(EnvTenantID)),
		ClientID:       strings.TrimSpace(os.Getenv(EnvClientID)),
		ClientSecret:   os.Getenv(EnvClientSecret),
		SubscriptionID: strings.TrimSpace(os.Getenv(EnvSubscriptionID)),
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{EnvTenantID, creds.TenantID},
		{EnvClientID, creds.ClientID},
		{EnvClientSecret, creds.ClientSecret},
		{EnvSubscriptionID, creds.SubscriptionID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return creds, nil
}

// ReportKeys holds the object storage access keys for report upload.
type ReportKeys struct {
	AccessKey string
	SecretKey string
}

// LoadReportKeys reads the report upload keys. Both are optional; callers
// decide whether their absence matters.
func LoadReportKeys() ReportKeys {
	return ReportKeys{
		AccessKey: os.Getenv(EnvReportAccessKey),
		SecretKey: os.Getenv(EnvReportSecretKey),
	}
}
