// Package document serves POST /summarize: a multipart upload is read into
// memory, digested and returned as JSON with sanitized highlights.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"docdigest/internal/domain/entity"
	"docdigest/internal/handler/http/respond"
	"docdigest/internal/observability/logging"
)

// Form field names.
const (
	FieldDocument = "document"
	FieldLength   = "summary_length"
)

// User-facing error messages.
const (
	MsgNoFile        = "No file uploaded."
	MsgInvalidType   = "Invalid file type. Please upload PDF or image files."
	MsgNoText        = "No readable text found in the document."
	MsgExtraction    = "Could not read the document. Please upload a valid PDF or image file."
	MsgBusy          = "The server is busy. Please try again later."
	MsgMalformedForm = "Malformed upload."
)

// maxFieldBytes caps non-file form values.
const maxFieldBytes = 64

// Digester runs the digest pipeline over one document.
type Digester interface {
	Process(ctx context.Context, doc entity.Document, tier entity.LengthTier) (*entity.Result, error)
}

// Config bounds what one upload may cost.
type Config struct {
	// MaxUploadBytes caps the whole request body.
	MaxUploadBytes int64
	// MaxConcurrent is the number of pipelines allowed to run at once.
	MaxConcurrent int
	// RequestTimeout bounds waiting for a slot plus running the pipeline.
	RequestTimeout time.Duration
}

// Handler handles document uploads.
type Handler struct {
	svc      Digester
	cfg      Config
	sem      *semaphore.Weighted
	sanitize *Sanitizer
}

// NewHandler creates a Handler. Non-positive limits fall back to 10 MiB,
// 4 concurrent pipelines and 120s.
func NewHandler(svc Digester, cfg Config) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	return &Handler{
		svc:      svc,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		sanitize: NewSanitizer(),
	}
}

// ServeHTTP digests the uploaded document.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	up, err := h.readUpload(r)
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}

	kind, ok := entity.SourceKindFromFilename(up.filename)
	if !ok {
		respond.SafeError(w, r, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, MsgInvalidType, nil))
		return
	}
	tier, _ := entity.ParseLengthTier(up.length)

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if err := h.sem.Acquire(ctx, 1); err != nil {
		respond.SafeError(w, r, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, MsgBusy, fmt.Errorf("acquire pipeline slot: %w", err)))
		return
	}
	defer h.sem.Release(1)

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "digesting document",
		slog.String("name", up.filename),
		slog.String("kind", kind.String()),
		slog.String("tier", string(tier)),
		slog.Int("bytes", len(up.data)))

	result, err := h.svc.Process(ctx, entity.Document{Data: up.data, Kind: kind, Name: up.filename}, tier)
	if err != nil {
		respond.SafeError(w, r, http.StatusInternalServerError, classify(err))
		return
	}

	out := *result
	out.HighlightedSummary = h.sanitize.Highlighted(result.HighlightedSummary)
	out.OriginalHighlighted = h.sanitize.Highlighted(result.OriginalHighlighted)
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	respond.JSON(w, http.StatusOK, out)
}

// upload is the parsed multipart request.
type upload struct {
	filename string
	data     []byte
	length   string
}

// readUpload streams the multipart body and keeps the document in memory.
// Parts other than the document and the length field are discarded.
func (h *Handler) readUpload(r *http.Request) (*upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, respond.NewAppError(http.StatusBadRequest, MsgNoFile, err)
	}

	up := &upload{}
	found := false
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, bodyError(h.cfg.MaxUploadBytes, err)
		}

		switch part.FormName() {
		case FieldDocument:
			if found || part.FileName() == "" {
				_ = drain(part)
				continue
			}
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, bodyError(h.cfg.MaxUploadBytes, err)
			}
			up.filename = part.FileName()
			up.data = data
			found = true
		case FieldLength:
			v, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return nil, bodyError(h.cfg.MaxUploadBytes, err)
			}
			up.length = strings.TrimSpace(string(v))
		default:
			if err := drain(part); err != nil {
				return nil, bodyError(h.cfg.MaxUploadBytes, err)
			}
		}
		_ = part.Close()
	}

	if !found {
		return nil, respond.NewAppError(http.StatusBadRequest, MsgNoFile, nil)
	}
	return up, nil
}

func drain(part *multipart.Part) error {
	_, err := io.Copy(io.Discard, part)
	return err
}

// bodyError maps a failed body read to 413 when the size cap was hit.
func bodyError(limit int64, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return respond.NewAppError(http.StatusRequestEntityTooLarge, tooLargeMessage(limit), err)
	}
	return respond.NewAppError(http.StatusBadRequest, MsgMalformedForm, err)
}

func tooLargeMessage(limit int64) string {
	if limit >= 1<<20 && limit%(1<<20) == 0 {
		return fmt.Sprintf("File too large. Maximum size is %d MB.", limit>>20)
	}
	return fmt.Sprintf("File too large. Maximum size is %d bytes.", limit)
}

// classify maps pipeline errors to user-facing errors.
func classify(err error) error {
	switch {
	case errors.Is(err, entity.ErrEmptyText):
		return respond.NewAppError(http.StatusUnprocessableEntity, MsgNoText, err)
	case errors.Is(err, entity.ErrExtraction):
		return respond.NewAppError(http.StatusUnprocessableEntity, MsgExtraction, err)
	default:
		return err
	}
}
