package digest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdigest/internal/domain/entity"
	"docdigest/internal/infra/summarizer"
)

// fakeModel answers per call with the next scripted reply.
type fakeModel struct {
	mu      sync.Mutex
	replies []fakeReply
	calls   []string
	bounds  []entity.LengthBounds
}

type fakeReply struct {
	summary string
	err     error
}

func (f *fakeModel) Summarize(_ context.Context, text string, bounds entity.LengthBounds) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	f.bounds = append(f.bounds, bounds)
	if len(f.replies) == 0 {
		return "model summary", nil
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return r.summary, r.err
}

func TestSummarizer_TooShortSkipsChunking(t *testing.T) {
	model := &fakeModel{}
	s := NewSummarizer(model)

	got := s.Summarize(context.Background(), "   thirty characters of text   ", entity.LengthMedium)

	assert.Equal(t, TextTooShort, got)
	assert.Empty(t, model.calls)
}

func TestSummarizer_PrimaryPerChunk(t *testing.T) {
	model := &fakeModel{replies: []fakeReply{{summary: "one"}, {summary: " two "}}}
	s := NewSummarizer(model, WithChunkSize(60))

	text := strings.Repeat("word ", 24) // 120 characters, two chunks
	got := s.Summarize(context.Background(), text, entity.LengthShort)

	assert.Equal(t, "one two", got)
	require.Len(t, model.calls, 2)
	assert.Equal(t, text, model.calls[0]+model.calls[1])
	assert.Equal(t, entity.LengthBounds{MinTokens: 20, MaxTokens: 60}, model.bounds[0])
}

func TestSummarizer_FailureIsChunkLocal(t *testing.T) {
	first := "This first chunk has a sentence long enough. "
	second := "Second chunk is long enough."
	text := first + second

	model := &fakeModel{replies: []fakeReply{
		{err: errors.New("inference failed")},
		{summary: "primary for chunk two"},
	}}
	s := NewSummarizer(model, WithChunkSize(len(first)))

	got := s.Summarize(context.Background(), text, entity.LengthMedium)

	assert.Equal(t, "This first chunk has a sentence long enough. primary for chunk two", got)
	assert.Len(t, model.calls, 2, "a failed chunk is not retried")
}

func TestSummarizer_EmptyModelOutputFallsBack(t *testing.T) {
	model := &fakeModel{replies: []fakeReply{{summary: "   "}}}
	s := NewSummarizer(model)

	text := "A sentence that is clearly longer than twenty characters. Another one that is long enough."
	got := s.Summarize(context.Background(), text, entity.LengthShort)

	assert.Equal(t, "A sentence that is clearly longer than twenty characters. Another one that is long enough.", got)
}

func TestSummarizer_UnavailableModelUsesFallback(t *testing.T) {
	handle := summarizer.NewHandle(func(ctx context.Context) (summarizer.Model, error) {
		return summarizer.NewNoOp(), nil
	})
	s := NewSummarizer(handle)

	text := "The model is not configured in this deployment at all. The fallback keeps the leading sentences instead."
	got := s.Summarize(context.Background(), text, entity.LengthShort)

	assert.Equal(t, "The model is not configured in this deployment at all. The fallback keeps the leading sentences instead.", got)
}

func TestSummarizer_NilModelUsesFallback(t *testing.T) {
	s := NewSummarizer(nil)
	text := "Without any model the pipeline still produces an extractive summary."
	assert.Equal(t, text, s.Summarize(context.Background(), text, entity.LengthMedium))
}

func TestSummarizer_CustomTiers(t *testing.T) {
	model := &fakeModel{replies: []fakeReply{{err: summarizer.ErrModelUnavailable}}}
	tiers := DefaultTiers()
	tiers[entity.LengthShort] = TierSettings{
		Bounds:            entity.LengthBounds{MinTokens: 5, MaxTokens: 10},
		FallbackSentences: 1,
	}
	s := NewSummarizer(model, WithTiers(tiers))

	got := s.Summarize(context.Background(), eightSentences, entity.LengthShort)

	assert.Equal(t, "The first sentence is long enough to keep.", got)
	assert.Equal(t, entity.LengthBounds{MinTokens: 5, MaxTokens: 10}, model.bounds[0])
}

func TestTiers_UnknownTierUsesMedium(t *testing.T) {
	assert.Equal(t, DefaultTiers()[entity.LengthMedium], DefaultTiers().For("huge"))
	assert.Equal(t, entity.LengthBounds{MinTokens: 40, MaxTokens: 120}, Tiers{}.For("huge").Bounds)
}
