package config

import "github.com/infigaming-com/exchange-rates/errors"

const (
	ErrCodeMissingTableName = 10500 + iota
	ErrCodeInvalidValue
)

var (
	ErrMissingTableName = errors.NewError(ErrCodeMissingTableName, "TABLE_NAME is required", nil)
	ErrInvalidValue     = errors.NewError(ErrCodeInvalidValue, "invalid configuration value", nil)
)
