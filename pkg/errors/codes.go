package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeRateLimited        ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Aliases used throughout the code base.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Q-Sphere Error Codes
const (
	ErrCodeStateEmpty          ErrorCode = "QS_001"
	ErrCodeStateNotPowerOfTwo  ErrorCode = "QS_002"
	ErrCodeAmplitudeInvalid    ErrorCode = "QS_003"
	ErrCodeOutputWriteFailed   ErrorCode = "QS_004"
	ErrCodeSceneEncodeFailed   ErrorCode = "QS_005"
	ErrCodeBrowserLaunchFailed ErrorCode = "QS_006"
	ErrCodePublishFailed       ErrorCode = "QS_007"
	ErrCodeStateParseFailed    ErrorCode = "QS_008"
	ErrCodeSceneFormatInvalid  ErrorCode = "QS_009"
	ErrCodeStatePresetUnknown  ErrorCode = "QS_010"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusNotImplemented,

	ErrCodeStateEmpty:          http.StatusUnprocessableEntity,
	ErrCodeStateNotPowerOfTwo:  http.StatusUnprocessableEntity,
	ErrCodeAmplitudeInvalid:    http.StatusUnprocessableEntity,
	ErrCodeOutputWriteFailed:   http.StatusInternalServerError,
	ErrCodeSceneEncodeFailed:   http.StatusInternalServerError,
	ErrCodeBrowserLaunchFailed: http.StatusInternalServerError,
	ErrCodePublishFailed:       http.StatusBadGateway,
	ErrCodeStateParseFailed:    http.StatusBadRequest,
	ErrCodeSceneFormatInvalid:  http.StatusBadRequest,
	ErrCodeStatePresetUnknown:  http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeRateLimited:        "rate limit exceeded",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeStateEmpty:          "state vector is empty",
	ErrCodeStateNotPowerOfTwo:  "state vector length is not a power of two",
	ErrCodeAmplitudeInvalid:    "amplitude is not a finite complex number",
	ErrCodeOutputWriteFailed:   "failed to write output document",
	ErrCodeSceneEncodeFailed:   "failed to encode scene",
	ErrCodeBrowserLaunchFailed: "failed to open browser",
	ErrCodePublishFailed:       "failed to publish artifact",
	ErrCodeStateParseFailed:    "failed to parse state vector",
	ErrCodeSceneFormatInvalid:  "unsupported scene format",
	ErrCodeStatePresetUnknown:  "unknown state preset",
}

// HTTPStatusForCode returns the HTTP status for code, defaulting to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message registered for code.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsStateError reports whether code belongs to the state-validation family.
func IsStateError(code ErrorCode) bool {
	switch code {
	case ErrCodeStateEmpty, ErrCodeStateNotPowerOfTwo, ErrCodeAmplitudeInvalid, ErrCodeStateParseFailed:
		return true
	}
	return false
}

// Module returns the module prefix of code ("QS", "COMMON").
func (c ErrorCode) Module() string {
	s := string(c)
	if idx := strings.Index(s, "_"); idx > 0 {
		return s[:idx]
	}
	return s
}

//Personal.AI order the ending
