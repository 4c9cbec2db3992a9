// internal/workers/customs_doc_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"

	"github.com/fruimex/fruimex-be/internal/adapters/storage"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// CustomsDocPayload is the payload enqueued when a PDF is attached to a
// clearance.
type CustomsDocPayload struct {
	ClearanceID string `json:"clearance_id"`
	Key         string `json:"key"`
}

var (
	// Labeled form, e.g. "Declaration No: 26DE1234567890AB12".
	declarationLabelRe = regexp.MustCompile(`(?i)declaration\s*(?:no\.?|number|#)?\s*[:\-]?\s*([A-Z0-9][A-Z0-9/\-]{5,24})`)
	// Bare EU movement reference number, 18 characters starting with
	// a two-digit year and country code.
	mrnRe = regexp.MustCompile(`\b\d{2}[A-Z]{2}[A-Z0-9]{13}\d\b`)

	hasDigitRe = regexp.MustCompile(`\d`)
)

// CustomsDocProcessor reads uploaded clearance PDFs and pulls the
// customs declaration number out of them, so operators do not have to
// retype it off the paperwork.
type CustomsDocProcessor struct {
	repo   ports.CustomsRepository
	files  storage.StorageClient
	logger *slog.Logger
}

// NewCustomsDocProcessor creates a new customs document processor
func NewCustomsDocProcessor(repo ports.CustomsRepository, files storage.StorageClient, logger *slog.Logger) *CustomsDocProcessor {
	return &CustomsDocProcessor{
		repo:   repo,
		files:  files,
		logger: logger.With(slog.String("processor", "customs_doc")),
	}
}

// ScanDocument downloads the attached PDF, extracts its text and, if a
// declaration number is found, records it on the clearance. A PDF with
// no recognizable number is not an error; the operator fills it in by
// hand.
func (p *CustomsDocProcessor) ScanDocument(ctx context.Context, t *asynq.Task) error {
	var payload CustomsDocPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	clearanceID, err := uuid.Parse(payload.ClearanceID)
	if err != nil {
		return fmt.Errorf("invalid clearance id %q: %w", payload.ClearanceID, err)
	}

	p.logger.InfoContext(ctx, "scanning clearance document",
		slog.String("clearance_id", payload.ClearanceID),
		slog.String("key", payload.Key))

	data, err := p.files.Download(ctx, payload.Key)
	if err != nil {
		return fmt.Errorf("failed to download document: %w", err)
	}

	text, err := p.extractText(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	number := findDeclarationNumber(text)
	if number == "" {
		p.logger.InfoContext(ctx, "no declaration number found in document",
			slog.String("clearance_id", payload.ClearanceID))
		return nil
	}

	clearance, err := p.repo.FindByID(ctx, clearanceID)
	if err != nil {
		return fmt.Errorf("failed to load clearance: %w", err)
	}
	if clearance.DeclarationNumber != "" {
		p.logger.InfoContext(ctx, "clearance already has a declaration number, keeping it",
			slog.String("clearance_id", payload.ClearanceID))
		return nil
	}

	if err := p.repo.SetDeclarationNumber(ctx, clearanceID, number); err != nil {
		return fmt.Errorf("failed to record declaration number: %w", err)
	}

	p.logger.InfoContext(ctx, "declaration number extracted",
		slog.String("clearance_id", payload.ClearanceID),
		slog.String("declaration_number", number))

	return nil
}

func (p *CustomsDocProcessor) extractText(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	totalPages := reader.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// findDeclarationNumber prefers an explicitly labeled declaration
// number and falls back to a bare MRN anywhere in the text.
func findDeclarationNumber(text string) string {
	if m := declarationLabelRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimRight(m[1], ".,;")
		// A labeled match that is all letters is almost certainly the
		// next word of a sentence, not a reference number.
		if hasDigitRe.MatchString(candidate) {
			return candidate
		}
	}

	if m := mrnRe.FindString(text); m != "" {
		return m
	}

	return ""
}
