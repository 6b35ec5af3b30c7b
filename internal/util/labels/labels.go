package labels

// Standard label keys for Hetzner Cloud hosts.
const (
	// KeyRun identifies the workflow run that created a resource.
	KeyRun = "acrwebhooks.io/run"

	// KeyRole identifies what the resource is for.
	KeyRole = "acrwebhooks.io/role"

	// KeyManagedBy identifies the management system.
	KeyManagedBy = "acrwebhooks.io/managed-by"
)

// Azure tag keys.
const (
	TagPurpose   = "purpose"
	TagManagedBy = "managed-by"
)

// Values
const (
	ManagedByAcrWebhooks = "acrwebhooks"
	RoleEngine           = "container-engine"
	PurposeSample        = "webhook-sample"
)

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the run ID and manager pre-set.
func NewLabelBuilder(runID string) *LabelBuilder {
	lb := &LabelBuilder{labels: map[string]string{KeyManagedBy: ManagedByAcrWebhooks}}
	if runID != "" {
		lb.labels[KeyRun] = runID
	}
	return lb
}

// WithRole adds a role label.
func (lb *LabelBuilder) WithRole(role string) *LabelBuilder {
	lb.labels[KeyRole] = role
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// RegistryTags returns the two descriptive tags put on every sample registry.
func RegistryTags() map[string]string {
	return map[string]string{
		TagPurpose:   PurposeSample,
		TagManagedBy: ManagedByAcrWebhooks,
	}
}

// ToAzure converts a plain map into the pointer-valued tag map ARM expects.
// A nil or empty input yields nil so that no empty tags object is sent.
func ToAzure(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = &v
	}
	return out
}

// FromAzure converts an ARM tag map back to plain strings, skipping nil values.
func FromAzure(tags map[string]*string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}
