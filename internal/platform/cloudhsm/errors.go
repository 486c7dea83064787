package cloudhsm

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
	"github.com/aws/smithy-go"
)

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.CloudHsmResourceNotFoundException
	if errors.As(err, &nf) {
		return true
	}

	return isAPIErrorCode(err, "CloudHsmResourceNotFoundException")
}

// IsAccessDenied checks if the error indicates missing IAM permissions.
// These errors are fatal and must not be retried.
func IsAccessDenied(err error) bool {
	if err == nil {
		return false
	}

	var ad *types.CloudHsmAccessDeniedException
	if errors.As(err, &ad) {
		return true
	}

	return isAPIErrorCode(err, "CloudHsmAccessDeniedException", "AccessDeniedException")
}

// IsInvalidRequest checks if the error indicates a malformed or
// conflicting request. Fatal, not retryable.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	var ir *types.CloudHsmInvalidRequestException
	if errors.As(err, &ir) {
		return true
	}

	var te *types.CloudHsmTagException
	if errors.As(err, &te) {
		return true
	}

	return isAPIErrorCode(err, "CloudHsmInvalidRequestException", "CloudHsmTagException")
}

// IsRetryable checks if the error is a transient control-plane fault
// worth retrying: throttling or an internal service failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var internal *types.CloudHsmInternalFailureException
	if errors.As(err, &internal) {
		return true
	}

	var svc *types.CloudHsmServiceException
	if errors.As(err, &svc) {
		return true
	}

	return isAPIErrorCode(err,
		"CloudHsmInternalFailureException",
		"CloudHsmServiceException",
		"ThrottlingException",
		"Throttling",
		"TooManyRequestsException",
		"RequestLimitExceeded",
	)
}

// isAPIErrorCode checks the generic API error code. CloudHSM errors
// sometimes round-trip as untyped smithy errors depending on the
// serialization path, so code matching is kept as a fallback.
func isAPIErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	code := apiErr.ErrorCode()
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}
