package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	notFound := &azcore.ResponseError{StatusCode: http.StatusNotFound}
	rgNotFound := &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "ResourceGroupNotFound"}
	conflict := &azcore.ResponseError{StatusCode: http.StatusConflict}
	inUse := &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "AlreadyInUse"}
	forbidden := &azcore.ResponseError{StatusCode: http.StatusForbidden}
	authzFailed := &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "AuthorizationFailed"}
	plain := errors.New("boom")

	tests := []struct {
		name                       string
		err                        error
		notFound, conflict, authed bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: plain},
		{name: "404", err: notFound, notFound: true},
		{name: "group not found code", err: rgNotFound, notFound: true},
		{name: "wrapped 404", err: fmt.Errorf("delete: %w", notFound), notFound: true},
		{name: "409", err: conflict, conflict: true},
		{name: "already in use", err: inUse, conflict: true},
		{name: "group exists", err: fmt.Errorf("create: %w", ErrResourceGroupExists), conflict: true},
		{name: "403", err: forbidden, authed: true},
		{name: "authorization failed", err: authzFailed, authed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
			assert.Equal(t, tt.authed, IsAuthFailure(tt.err))
		})
	}
}
