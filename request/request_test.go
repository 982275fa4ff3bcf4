package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/infigaming-com/exchange-rates/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStream(t *testing.T) {
	var gotCorrelationId, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCorrelationId = r.Header.Get("X-Correlation-ID")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	ctx := util.CorrelationIdToCtx(context.Background(), "corr-1")

	var body []byte
	statusCode, err := Stream(
		ctx,
		server.URL,
		func(r io.Reader) error {
			var readErr error
			body, readErr = io.ReadAll(r)
			return readErr
		},
		WithLogger(zap.NewNop()),
		WithDebugEnabled(true),
		WithRequestHeaders(map[string]string{"Accept": "application/xml"}),
		WithRequestTimeout(time.Second),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "<feed/>", string(body))
	assert.Equal(t, "corr-1", gotCorrelationId)
	assert.Equal(t, "application/xml", gotAccept)
}

func TestStreamUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	consumed := false
	statusCode, err := Stream(context.Background(), server.URL, func(io.Reader) error {
		consumed = true
		return nil
	})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, http.StatusServiceUnavailable, statusCode)
	assert.False(t, consumed)
}

func TestStreamTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	_, err := Stream(context.Background(), server.URL, func(io.Reader) error { return nil },
		WithRequestTimeout(50*time.Millisecond),
	)
	assert.ErrorIs(t, err, ErrRequestTimeout)
}

func TestStreamConsumerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("garbage"))
	}))
	defer server.Close()

	parseErr := errors.New("parse failed")
	statusCode, err := Stream(context.Background(), server.URL, func(io.Reader) error { return parseErr })
	assert.Equal(t, http.StatusOK, statusCode)
	assert.ErrorIs(t, err, ErrFailedToConsumeResponse)
	assert.ErrorIs(t, err, parseErr)
}

func TestStreamUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := Stream(context.Background(), url, func(io.Reader) error { return nil })
	assert.ErrorIs(t, err, ErrFailedToSendRequest)
}

func TestStreamInvalidOptions(t *testing.T) {
	_, err := Stream(context.Background(), "http://localhost", func(io.Reader) error { return nil },
		WithRequestTimeout(0),
	)
	assert.ErrorIs(t, err, ErrInvalidRequestTimeout)

	_, err = Stream(context.Background(), "http://localhost", func(io.Reader) error { return nil },
		WithSlowRequestThreshold(-time.Second),
	)
	assert.ErrorIs(t, err, ErrInvalidSlowRequestThreshold)
}
