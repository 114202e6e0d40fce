package summarizer

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(provider, baseURL string) *ModelConfig {
	return &ModelConfig{
		Provider:      provider,
		APIKey:        "test-key",
		Model:         DefaultModel(provider),
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		Burst:         100,
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func toJSONString(v any) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
