package ecb

import "github.com/infigaming-com/exchange-rates/errors"

const (
	ErrCodeMalformedFeed = 10200 + iota
	ErrCodeNotEnoughSnapshots
	ErrCodeInvalidRate
)

var (
	ErrMalformedFeed      = errors.NewError(ErrCodeMalformedFeed, "malformed exchange rates feed", nil)
	ErrNotEnoughSnapshots = errors.NewError(ErrCodeNotEnoughSnapshots, "not enough daily snapshots in feed", nil)
	ErrInvalidRate        = errors.NewError(ErrCodeInvalidRate, "invalid rate in feed", nil)
)
