package rate

import "github.com/infigaming-com/exchange-rates/errors"

const (
	ErrCodeFeedUnavailable = 10300 + iota
	ErrCodeInvalidFeed
	ErrCodeZeroPreviousRate
)

var (
	ErrFeedUnavailable  = errors.NewError(ErrCodeFeedUnavailable, "exchange rates feed unavailable", nil)
	ErrInvalidFeed      = errors.NewError(ErrCodeInvalidFeed, "exchange rates feed could not be read", nil)
	ErrZeroPreviousRate = errors.NewError(ErrCodeZeroPreviousRate, "previous rate is zero", nil)
)
