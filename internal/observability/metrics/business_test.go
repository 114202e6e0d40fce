package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"docdigest/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, StatusSuccess},
		{"extraction", entity.NewExtractionError(entity.SourceKindPDF, errors.New("bad")), StatusExtractionError},
		{"wrapped extraction", fmt.Errorf("x: %w", entity.NewExtractionError(entity.SourceKindImage, errors.New("bad"))), StatusExtractionError},
		{"empty text", entity.ErrEmptyText, StatusEmptyText},
		{"other", errors.New("boom"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRecordDocumentProcessed(t *testing.T) {
	before := testutil.ToFloat64(DocumentsProcessedTotal.WithLabelValues("pdf", StatusSuccess))

	RecordDocumentProcessed("pdf", StatusSuccess, 250*time.Millisecond)

	after := testutil.ToFloat64(DocumentsProcessedTotal.WithLabelValues("pdf", StatusSuccess))
	assert.Equal(t, before+1, after)
}

func TestRecordChunkSummary(t *testing.T) {
	primaryBefore := testutil.ToFloat64(ChunkSummariesTotal.WithLabelValues("primary"))
	fallbackBefore := testutil.ToFloat64(ChunkSummariesTotal.WithLabelValues("fallback"))

	RecordChunkSummary(false)
	RecordChunkSummary(true)
	RecordChunkSummary(true)

	assert.Equal(t, primaryBefore+1, testutil.ToFloat64(ChunkSummariesTotal.WithLabelValues("primary")))
	assert.Equal(t, fallbackBefore+2, testutil.ToFloat64(ChunkSummariesTotal.WithLabelValues("fallback")))
}

func TestRecordKeywordFailure(t *testing.T) {
	before := testutil.ToFloat64(KeywordFailuresTotal)
	RecordKeywordFailure()
	assert.Equal(t, before+1, testutil.ToFloat64(KeywordFailuresTotal))
}

func TestRecordExtraction(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordExtraction("image", true, 10*time.Millisecond, 1200)
		RecordExtraction("image", false, 5*time.Millisecond, 0)
	})
}
