package request

import "github.com/infigaming-com/exchange-rates/errors"

const (
	ErrCodeInvalidSlowRequestThreshold = 10100 + iota
	ErrCodeInvalidRequestTimeout
	ErrCodeFailedToCreateRequest
	ErrCodeFailedToSendRequest
	ErrCodeRequestTimeout
	ErrCodeUnexpectedStatus
	ErrCodeFailedToConsumeResponse
)

var (
	ErrInvalidSlowRequestThreshold = errors.NewError(ErrCodeInvalidSlowRequestThreshold, "invalid slow request threshold", nil)
	ErrInvalidRequestTimeout       = errors.NewError(ErrCodeInvalidRequestTimeout, "invalid request timeout", nil)
	ErrFailedToCreateRequest       = errors.NewError(ErrCodeFailedToCreateRequest, "failed to create request", nil)
	ErrFailedToSendRequest         = errors.NewError(ErrCodeFailedToSendRequest, "failed to send request", nil)
	ErrRequestTimeout              = errors.NewError(ErrCodeRequestTimeout, "request timeout", nil)
	ErrUnexpectedStatus            = errors.NewError(ErrCodeUnexpectedStatus, "unexpected response status", nil)
	ErrFailedToConsumeResponse     = errors.NewError(ErrCodeFailedToConsumeResponse, "failed to consume response body", nil)
)
