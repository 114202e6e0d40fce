package summarizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader_None(t *testing.T) {
	model, err := NewLoader(&ModelConfig{Provider: ProviderNone})(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &NoOp{}, model)
}

func TestNewLoader_UnknownProvider(t *testing.T) {
	_, err := NewLoader(&ModelConfig{Provider: "gemini", RatePerSecond: 1, Burst: 1})(context.Background())
	assert.Error(t, err)
}

func TestNewLoader_ProbesModel(t *testing.T) {
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		writeJSON(w, http.StatusOK, `{"id":"gpt-4o-mini","object":"model","created":1,"owned_by":"openai"}`)
	}))
	defer srv.Close()

	model, err := NewLoader(testConfig(ProviderOpenAI, srv.URL+"/v1"))(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, model)
	assert.Equal(t, int32(1), probes.Load())
}

func TestNewLoader_MissingModelIsNotRetried(t *testing.T) {
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		writeJSON(w, http.StatusNotFound, `{"error":{"message":"model not found","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	h := NewHandle(NewLoader(testConfig(ProviderOpenAI, srv.URL+"/v1")))
	err := h.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, int32(1), probes.Load())
	assert.Equal(t, StateFailed, h.State())
}

func TestNewLoader_RetriesTransientProbeFailure(t *testing.T) {
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if probes.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, `{"error":{"message":"overloaded","type":"server_error"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"gpt-4o-mini","object":"model","created":1,"owned_by":"openai"}`)
	}))
	defer srv.Close()

	_, err := NewLoader(testConfig(ProviderOpenAI, srv.URL+"/v1"))(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), probes.Load())
}
