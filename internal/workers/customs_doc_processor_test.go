// internal/workers/customs_doc_processor_test.go
package workers

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func TestFindDeclarationNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "labeled_declaration_number",
			text:     "Customs entry summary\nDeclaration No: NL-2026/044821\nCarrier: Maersk",
			expected: "NL-2026/044821",
		},
		{
			name:     "labeled_with_number_word",
			text:     "declaration number 26NL7QK4R8T2M9XW01",
			expected: "26NL7QK4R8T2M9XW01",
		},
		{
			name:     "bare_movement_reference_number",
			text:     "Goods released under 26DE5H3K9P2Q7R8S41 at Rotterdam.",
			expected: "26DE5H3K9P2Q7R8S41",
		},
		{
			name:     "label_followed_by_prose_falls_through",
			text:     "The declaration was filed on time.",
			expected: "",
		},
		{
			name:     "no_number_at_all",
			text:     "Invoice for 40 crates of oranges.",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findDeclarationNumber(tt.text))
		})
	}
}

func TestCustomsDocProcessor_ScanDocument(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("rejects_malformed_payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCustomsRepository(ctrl)

		processor := NewCustomsDocProcessor(repo, stubStorage{}, logger)
		task := asynq.NewTask(TypeCustomsDocScan, []byte("{not json"))

		err := processor.ScanDocument(context.Background(), task)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_clearance_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCustomsRepository(ctrl)

		payload, err := json.Marshal(CustomsDocPayload{
			ClearanceID: "not-a-uuid",
			Key:         "customs/x/doc.pdf",
		})
		require.NoError(t, err)

		processor := NewCustomsDocProcessor(repo, stubStorage{}, logger)
		task := asynq.NewTask(TypeCustomsDocScan, payload)

		err = processor.ScanDocument(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid clearance id")
	})
}

type stubStorage struct {
	data map[string][]byte
}

func (s stubStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	return key, nil
}

func (s stubStorage) Download(ctx context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s stubStorage) Delete(ctx context.Context, key string) error { return nil }

func (s stubStorage) GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	return "https://example.test/" + key, nil
}

func (s stubStorage) List(ctx context.Context, prefix string) ([]string, error) { return nil, nil }

func (s stubStorage) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
