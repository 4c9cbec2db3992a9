// internal/core/services/customs.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/fruimex/fruimex-be/internal/adapters/storage"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

const documentURLTTL = 15 * time.Minute

// CustomsService handles inbound shipments, customs clearances and their
// document files. Uploaded PDFs are scanned in the background for a
// declaration number.
type CustomsService struct {
	shipments ports.ShipmentRepository
	repo      ports.CustomsRepository
	files     storage.StorageClient
	tasks     TaskEnqueuer
	logger    *slog.Logger
}

var _ ports.CustomsService = (*CustomsService)(nil)

// NewCustomsService creates a new customs service
func NewCustomsService(
	shipments ports.ShipmentRepository,
	repo ports.CustomsRepository,
	files storage.StorageClient,
	tasks TaskEnqueuer,
	logger *slog.Logger,
) *CustomsService {
	return &CustomsService{
		shipments: shipments,
		repo:      repo,
		files:     files,
		tasks:     tasks,
		logger:    logger.With(slog.String("service", "customs")),
	}
}

// CreateShipment records an inbound shipment
func (s *CustomsService) CreateShipment(ctx context.Context, shipment *domain.Shipment) error {
	if err := shipment.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	shipment.PrepareForStorage()

	if err := s.shipments.Save(ctx, shipment); err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}

	s.logger.InfoContext(ctx, "shipment created",
		slog.String("id", shipment.ID.String()),
		slog.String("tracking_number", shipment.TrackingNumber))

	return nil
}

// UpdateShipment updates an inbound shipment
func (s *CustomsService) UpdateShipment(ctx context.Context, id uuid.UUID, shipment *domain.Shipment) error {
	shipment.ID = id

	if err := shipment.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.shipments.Update(ctx, shipment); err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}

	return nil
}

// GetShipment retrieves a shipment by id
func (s *CustomsService) GetShipment(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	return shipment, nil
}

// ListShipments retrieves shipments with filtering and pagination
func (s *CustomsService) ListShipments(ctx context.Context, params ports.ShipmentListParams) (*ports.ShipmentListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	shipments, totalCount, err := s.shipments.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	return &ports.ShipmentListResult{
		Shipments:  shipments,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// CreateClearance opens a customs clearance for a shipment
func (s *CustomsService) CreateClearance(ctx context.Context, clearance *domain.CustomsClearance) error {
	if err := clearance.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	clearance.PrepareForStorage()

	if err := s.repo.Save(ctx, clearance); err != nil {
		return fmt.Errorf("failed to save clearance: %w", err)
	}

	s.logger.InfoContext(ctx, "clearance created",
		slog.String("id", clearance.ID.String()),
		slog.String("shipment_id", clearance.ShipmentID.String()),
		slog.String("status", string(clearance.Status)))

	return nil
}

// UpdateClearance updates a customs clearance
func (s *CustomsService) UpdateClearance(ctx context.Context, id uuid.UUID, clearance *domain.CustomsClearance) error {
	clearance.ID = id

	if err := clearance.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, clearance); err != nil {
		return fmt.Errorf("failed to update clearance: %w", err)
	}

	s.logger.InfoContext(ctx, "clearance updated",
		slog.String("id", id.String()),
		slog.String("status", string(clearance.Status)))

	return nil
}

// GetClearance retrieves a clearance by id
func (s *CustomsService) GetClearance(ctx context.Context, id uuid.UUID) (*domain.CustomsClearance, error) {
	clearance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clearance: %w", err)
	}
	if clearance == nil {
		return nil, ErrClearanceNotFound
	}
	return clearance, nil
}

// DeleteClearance removes a clearance and its stored documents
func (s *CustomsService) DeleteClearance(ctx context.Context, id uuid.UUID) error {
	clearance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get clearance: %w", err)
	}
	if clearance == nil {
		return ErrClearanceNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clearance: %w", err)
	}

	if s.files != nil {
		for _, key := range clearance.DocumentKeys {
			if err := s.files.Delete(ctx, key); err != nil {
				s.logger.WarnContext(ctx, "failed to delete clearance document",
					slog.String("key", key),
					slog.String("error", err.Error()))
			}
		}
	}

	s.logger.InfoContext(ctx, "clearance deleted", slog.String("id", id.String()))
	return nil
}

// ListClearances retrieves clearances with filtering and pagination
func (s *CustomsService) ListClearances(ctx context.Context, params ports.ClearanceListParams) (*ports.ClearanceListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	clearances, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list clearances: %w", err)
	}

	return &ports.ClearanceListResult{
		Clearances: clearances,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// UploadDocument stores a clearance document and records its key. PDF
// uploads additionally schedule a declaration-number scan. Returns the
// storage key of the uploaded file.
func (s *CustomsService) UploadDocument(ctx context.Context, clearanceID uuid.UUID, filename string, file io.Reader) (string, error) {
	clearance, err := s.repo.FindByID(ctx, clearanceID)
	if err != nil {
		return "", fmt.Errorf("failed to get clearance: %w", err)
	}
	if clearance == nil {
		return "", ErrClearanceNotFound
	}

	key := fmt.Sprintf("customs/%s/%s_%s", clearanceID, uuid.New().String()[:8], sanitizeFilename(filename))

	if _, err := s.files.Upload(ctx, key, file, ""); err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	if err := s.repo.AttachDocument(ctx, clearanceID, key); err != nil {
		return "", fmt.Errorf("failed to attach document: %w", err)
	}

	s.logger.InfoContext(ctx, "clearance document uploaded",
		slog.String("clearance_id", clearanceID.String()),
		slog.String("key", key))

	if s.tasks != nil && strings.EqualFold(filepath.Ext(filename), ".pdf") {
		payload, _ := json.Marshal(map[string]string{
			"clearance_id": clearanceID.String(),
			"key":          key,
		})
		task := asynq.NewTask(TypeCustomsDocScan, payload)
		if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
			s.logger.WarnContext(ctx, "failed to enqueue document scan",
				slog.String("error", err.Error()))
		}
	}

	return key, nil
}

// DocumentURL returns a short-lived download URL for a clearance document
func (s *CustomsService) DocumentURL(ctx context.Context, clearanceID uuid.UUID, key string) (string, error) {
	clearance, err := s.repo.FindByID(ctx, clearanceID)
	if err != nil {
		return "", fmt.Errorf("failed to get clearance: %w", err)
	}
	if clearance == nil {
		return "", ErrClearanceNotFound
	}

	owned := false
	for _, k := range clearance.DocumentKeys {
		if k == key {
			owned = true
			break
		}
	}
	if !owned {
		return "", fmt.Errorf("document %s does not belong to clearance %s", key, clearanceID)
	}

	url, err := s.files.GetPresignedURL(ctx, key, documentURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to create document URL: %w", err)
	}
	return url, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
