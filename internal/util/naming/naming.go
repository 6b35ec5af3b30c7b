package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SuffixLength is the number of random characters appended to generated names.
const SuffixLength = 8

// Suffix returns a random lowercase alphanumeric suffix.
func Suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:SuffixLength]
}

// RunID returns a unique identifier for a single workflow run.
func RunID() string {
	return uuid.NewString()
}

// alnum strips every character that is not a lowercase letter or digit.
func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResourceGroup returns the resource group name for a run.
func ResourceGroup(prefix, suffix string) string {
	return fmt.Sprintf("%s-rg-%s", prefix, suffix)
}

// Registry returns an alphanumeric registry name (5-50 characters).
func Registry(prefix, suffix string) string {
	name := alnum(prefix) + alnum(suffix)
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}

// Webhook name bounds enforced by the registry service.
const (
	WebhookMinLength = 5
	WebhookMaxLength = 50
)

// Webhook returns an alphanumeric webhook name for the given ordinal.
func Webhook(prefix string, ordinal int) string {
	return fmt.Sprintf("%s%d", alnum(prefix), ordinal)
}

// ValidWebhook reports whether name is an acceptable webhook name.
func ValidWebhook(name string) bool {
	return len(name) >= WebhookMinLength && len(name) <= WebhookMaxLength && alnum(name) == name
}

// EngineHost returns the name of the remote engine server.
func EngineHost(prefix, suffix string) string {
	return fmt.Sprintf("%s-engine-%s", prefix, suffix)
}

// EngineSSHKey returns the name of the SSH key uploaded for the engine server.
func EngineSSHKey(prefix, suffix string) string {
	return fmt.Sprintf("%s-engine-key-%s", prefix, suffix)
}

// ReportObject returns the object key for a run report.
func ReportObject(prefix, runID string) string {
	return fmt.Sprintf("%s/runs/%s.json", prefix, runID)
}
