// Package ecb reads the euro foreign exchange reference rates published by the ECB.
package ecb

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/infigaming-com/exchange-rates/util"
	"github.com/shopspring/decimal"
)

// Namespace of the Cube elements in the eurofxref documents.
const Namespace = "http://www.ecb.int/vocabulary/2002-08-01/eurofxref"

// Snapshot is one day of reference rates, each expressed against one EUR.
type Snapshot struct {
	Date  string
	Rates map[string]decimal.Decimal
}

// ParseLatest decodes the first n daily snapshots of a feed, newest first as published.
// Decoding stops once the n-th snapshot is closed, so the rest of the document is never read.
func ParseLatest(r io.Reader, n int) ([]Snapshot, error) {
	decoder := xml.NewDecoder(r)

	snapshots := make([]Snapshot, 0, n)
	var (
		current    *Snapshot
		depth      int
		dailyDepth int
	)

	for len(snapshots) < n {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrMalformedFeed.WithCause(err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			depth++
			if !isCube(el.Name) {
				continue
			}
			if date, ok := attr(el, "time"); ok {
				current = &Snapshot{Date: date, Rates: make(map[string]decimal.Decimal)}
				dailyDepth = depth
				continue
			}
			currency, hasCurrency := attr(el, "currency")
			rawRate, hasRate := attr(el, "rate")
			if current == nil || !hasCurrency || !hasRate {
				continue
			}
			rate, err := util.ParseDecimal(rawRate)
			if err != nil {
				return nil, ErrInvalidRate.WithCause(err).WithDetails(currency)
			}
			current.Rates[currency] = rate
		case xml.EndElement:
			if current != nil && depth == dailyDepth && isCube(el.Name) {
				snapshots = append(snapshots, *current)
				current = nil
			}
			depth--
		}
	}

	if len(snapshots) < n {
		return nil, ErrNotEnoughSnapshots.WithDetails(len(snapshots))
	}
	return snapshots, nil
}

func isCube(name xml.Name) bool {
	return name.Local == "Cube" && name.Space == Namespace
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value), true
		}
	}
	return "", false
}
