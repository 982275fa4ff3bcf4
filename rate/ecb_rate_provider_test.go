package rate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFeedServer(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestECBRateProvider_LatestRates(t *testing.T) {
	feed, err := os.ReadFile("../ecb/testdata/eurofxref-hist-90d.xml")
	require.NoError(t, err)

	server := newFeedServer(t, http.StatusOK, feed)
	provider := NewECBRateProvider(zap.NewNop(), server.URL, DefaultFeedTimeout)

	daily, err := provider.LatestRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2023-11-24", daily.Date)
	assert.Len(t, daily.Rates, 3)
	assert.NotContains(t, daily.Rates, "CHF")
	assert.NotContains(t, daily.Rates, "ISK")

	usd := daily.Rates["USD"]
	assert.True(t, decimal.RequireFromString("1.0801").Equal(usd.Value))
	assert.True(t, decimal.RequireFromString("-0.0023").Equal(usd.Diff))
	assert.True(t, decimal.RequireFromString("-0.2125").Equal(usd.DiffPercent))

	jpy := daily.Rates["JPY"]
	assert.True(t, jpy.Diff.IsZero())
	assert.True(t, jpy.DiffPercent.IsZero())
}

func TestECBRateProvider_LatestRatesErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "oops",
			wantErr: ErrFeedUnavailable,
		},
		{
			name:    "empty feed",
			status:  http.StatusOK,
			body:    "",
			wantErr: ErrInvalidFeed,
		},
		{
			name:    "not xml",
			status:  http.StatusOK,
			body:    "<html><body>maintenance",
			wantErr: ErrInvalidFeed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFeedServer(t, tt.status, []byte(tt.body))
			provider := NewECBRateProvider(zap.NewNop(), server.URL, time.Second)

			daily, err := provider.LatestRates(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, daily)
		})
	}
}

func TestECBRateProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	provider := NewECBRateProvider(zap.NewNop(), url, time.Second)
	_, err := provider.LatestRates(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}
