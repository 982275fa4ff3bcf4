package store

import "github.com/infigaming-com/exchange-rates/errors"

const (
	ErrCodeMissingTableName = 10400 + iota
	ErrCodeFailedToLoadConfig
	ErrCodeFailedToScan
	ErrCodeFailedToBatchWrite
	ErrCodeUnprocessedItems
	ErrCodeInvalidItem
)

var (
	ErrMissingTableName   = errors.NewError(ErrCodeMissingTableName, "table name is required", nil)
	ErrFailedToLoadConfig = errors.NewError(ErrCodeFailedToLoadConfig, "fail to load dynamodb config", nil)
	ErrFailedToScan       = errors.NewError(ErrCodeFailedToScan, "fail to scan exchange rates table", nil)
	ErrFailedToBatchWrite = errors.NewError(ErrCodeFailedToBatchWrite, "fail to batch write exchange rates", nil)
	ErrUnprocessedItems   = errors.NewError(ErrCodeUnprocessedItems, "batch write left unprocessed items", nil)
	ErrInvalidItem        = errors.NewError(ErrCodeInvalidItem, "invalid exchange rates item", nil)
)
