package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// ARM error codes the sample reacts to.
const (
	errorCodeResourceGroupNotFound = "ResourceGroupNotFound"
	errorCodeResourceNotFound      = "ResourceNotFound"
	errorCodeAlreadyInUse          = "AlreadyInUse"
	errorCodeAuthorizationFailed   = "AuthorizationFailed"
)

// ErrResourceGroupExists is returned when the resource group to create already exists.
var ErrResourceGroupExists = errors.New("resource group already exists")

// responseError extracts the ARM response error, if any.
func responseError(err error) (*azcore.ResponseError, bool) {
	if err == nil {
		return nil, false
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	return respErr.StatusCode == http.StatusNotFound ||
		respErr.ErrorCode == errorCodeResourceGroupNotFound ||
		respErr.ErrorCode == errorCodeResourceNotFound
}

// IsConflict checks if an error indicates a name collision or conflicting state.
func IsConflict(err error) bool {
	if errors.Is(err, ErrResourceGroupExists) {
		return true
	}
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	return respErr.StatusCode == http.StatusConflict || respErr.ErrorCode == errorCodeAlreadyInUse
}

// IsAuthFailure checks if an error indicates bad credentials or missing permissions.
func IsAuthFailure(err error) bool {
	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return true
	}
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	return respErr.StatusCode == http.StatusUnauthorized ||
		respErr.StatusCode == http.StatusForbidden ||
		respErr.ErrorCode == errorCodeAuthorizationFailed
}
