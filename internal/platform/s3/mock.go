package s3

import "context"

// MockStore is a mock implementation of ObjectStore.
type MockStore struct {
	EnsureBucketFunc func(ctx context.Context, bucket string) error
	PutJSONFunc      func(ctx context.Context, bucket, key string, data []byte) error
}

// Ensure interface compliance
var _ ObjectStore = (*MockStore)(nil)

// EnsureBucket mocks bucket creation.
func (m *MockStore) EnsureBucket(ctx context.Context, bucket string) error {
	if m.EnsureBucketFunc != nil {
		return m.EnsureBucketFunc(ctx, bucket)
	}
	return nil
}

// PutJSON mocks an upload.
func (m *MockStore) PutJSON(ctx context.Context, bucket, key string, data []byte) error {
	if m.PutJSONFunc != nil {
		return m.PutJSONFunc(ctx, bucket, key, data)
	}
	return nil
}
