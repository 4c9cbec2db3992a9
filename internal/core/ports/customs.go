// internal/core/ports/customs.go
package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// ShipmentRepository defines the persistence port for inbound shipments.
type ShipmentRepository interface {
	Save(ctx context.Context, shipment *domain.Shipment) error
	Update(ctx context.Context, shipment *domain.Shipment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params ShipmentListParams) ([]*domain.Shipment, int64, error)
}

// CustomsRepository defines the persistence port for customs clearances.
type CustomsRepository interface {
	Save(ctx context.Context, clearance *domain.CustomsClearance) error
	Update(ctx context.Context, clearance *domain.CustomsClearance) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomsClearance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params ClearanceListParams) ([]*domain.CustomsClearance, int64, error)
	AttachDocument(ctx context.Context, id uuid.UUID, key string) error
	SetDeclarationNumber(ctx context.Context, id uuid.UUID, declarationNumber string) error
}

// CustomsService defines the application service port for customs processing.
// UploadDocument stores the file and schedules declaration-number extraction
// when the document is a PDF.
type CustomsService interface {
	CreateShipment(ctx context.Context, shipment *domain.Shipment) error
	UpdateShipment(ctx context.Context, id uuid.UUID, shipment *domain.Shipment) error
	GetShipment(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	ListShipments(ctx context.Context, params ShipmentListParams) (*ShipmentListResult, error)

	CreateClearance(ctx context.Context, clearance *domain.CustomsClearance) error
	UpdateClearance(ctx context.Context, id uuid.UUID, clearance *domain.CustomsClearance) error
	GetClearance(ctx context.Context, id uuid.UUID) (*domain.CustomsClearance, error)
	DeleteClearance(ctx context.Context, id uuid.UUID) error
	ListClearances(ctx context.Context, params ClearanceListParams) (*ClearanceListResult, error)

	UploadDocument(ctx context.Context, clearanceID uuid.UUID, filename string, file io.Reader) (string, error)
	DocumentURL(ctx context.Context, clearanceID uuid.UUID, key string) (string, error)
}

// ShipmentListParams holds parameters for listing shipments
type ShipmentListParams struct {
	Search     string
	SupplierID uuid.UUID
	Carrier    string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// ShipmentListResult holds the result of listing shipments
type ShipmentListResult struct {
	Shipments  []*domain.Shipment `json:"shipments"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int64              `json:"total_count"`
	TotalPages int                `json:"total_pages"`
}

// ClearanceListParams holds parameters for listing clearances
type ClearanceListParams struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ClearanceListResult holds the result of listing clearances
type ClearanceListResult struct {
	Clearances []*domain.CustomsClearance `json:"clearances"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
	TotalCount int64                      `json:"total_count"`
	TotalPages int                        `json:"total_pages"`
}
