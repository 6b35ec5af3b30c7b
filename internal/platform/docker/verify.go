package docker

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// ErrManifestNotFound is returned when the pushed tag is absent from the registry.
var ErrManifestNotFound = errors.New("manifest not found in registry")

// Verifier confirms an image is present in a remote registry.
type Verifier interface {
	// ManifestDigest returns the digest the registry serves for ref.
	ManifestDigest(ctx context.Context, ref ImageRef, auth Auth) (string, error)
}

// RemoteVerifier implements Verifier with manifest HEAD requests.
type RemoteVerifier struct {
	// Insecure allows plain HTTP registries.
	Insecure bool
}

// Ensure interface compliance
var _ Verifier = (*RemoteVerifier)(nil)

// ManifestDigest issues a HEAD for ref's manifest.
func (v *RemoteVerifier) ManifestDigest(ctx context.Context, ref ImageRef, auth Auth) (string, error) {
	var nameOpts []name.Option
	if v.Insecure {
		nameOpts = append(nameOpts, name.Insecure)
	}

	parsed, err := name.ParseReference(ref.String(), nameOpts...)
	if err != nil {
		return "", fmt.Errorf("invalid image reference %s: %w", ref, err)
	}

	remoteOpts := []remote.Option{remote.WithContext(ctx)}
	if auth.Username != "" || auth.Password != "" {
		remoteOpts = append(remoteOpts, remote.WithAuth(&authn.Basic{
			Username: auth.Username,
			Password: auth.Password,
		}))
	}

	desc, err := remote.Head(parsed, remoteOpts...)
	if err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, ref)
		}
		return "", fmt.Errorf("failed to check manifest for %s: %w", ref, err)
	}
	return desc.Digest.String(), nil
}
