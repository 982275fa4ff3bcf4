package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metadata record ids. They share the key space with currency codes.
const (
	PublishDateID = "publish_date"
	UpdateDateID  = "update_date"
)

// Record is one item of the exchange rates table. Currency records carry the
// numeric fields; metadata records carry Text only.
type Record struct {
	ID          string
	Value       decimal.Decimal
	Diff        decimal.Decimal
	DiffPercent decimal.Decimal
	Text        string
}

func NewRateRecord(currency string, value, diff, diffPercent decimal.Decimal) Record {
	return Record{
		ID:          currency,
		Value:       value,
		Diff:        diff,
		DiffPercent: diffPercent,
	}
}

func NewMetadataRecord(id, value string) Record {
	return Record{
		ID:   id,
		Text: value,
	}
}

func IsMetadataID(id string) bool {
	return id == PublishDateID || id == UpdateDateID
}

func (r Record) IsMetadata() bool {
	return IsMetadataID(r.ID)
}

type RateStore interface {
	// Scan returns every record of the table, following pagination until it is exhausted.
	Scan(ctx context.Context) ([]Record, error)
	// PutAll overwrites the given records. Records not listed are left as they are.
	PutAll(ctx context.Context, records []Record) error
}
