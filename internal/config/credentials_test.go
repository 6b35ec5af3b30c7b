package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentialEnv(t *testing.T, tenant, client, secret, subscription string) {
	t.Helper()
	t.Setenv(EnvTenantID, tenant)
	t.Setenv(EnvClientID, client)
	t.Setenv(EnvClientSecret, secret)
	t.Setenv(EnvSubscriptionID, subscription)
}

func TestLoadCredentials(t *testing.T) {
	setCredentialEnv(t, "tenant", " client ", "secret", "sub")

	creds, err := LoadCredentials()

	require.NoError(t, err)
	assert.Equal(t, &Credentials{
		TenantID:       "tenant",
		ClientID:       "client",
		ClientSecret:   "secret",
		SubscriptionID: "sub",
	}, creds)
}

func TestLoadCredentials_Missing(t *testing.T) {
	setCredentialEnv(t, "tenant", "", "secret", "")

	creds, err := LoadCredentials()

	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Nil(t, creds)
	assert.Contains(t, err.Error(), EnvClientID)
	assert.Contains(t, err.Error(), EnvSubscriptionID)
	assert.NotContains(t, err.Error(), EnvTenantID)
}

func TestLoadReportKeys(t *testing.T) {
	t.Setenv(EnvReportAccessKey, "ak")
	t.Setenv(EnvReportSecretKey, "sk")

	assert.Equal(t, ReportKeys{AccessKey: "ak", SecretKey: "sk"}, LoadReportKeys())
}
