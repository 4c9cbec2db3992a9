package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

func TestShipment_Validate(t *testing.T) {
	supplierID := uuid.New()

	tests := []struct {
		name      string
		shipment  *domain.Shipment
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_shipment",
			shipment: &domain.Shipment{
				SupplierID:     supplierID,
				TrackingNumber: "MAEU-1234567",
				Carrier:        "Maersk",
			},
			wantError: false,
		},
		{
			name: "missing_supplier",
			shipment: &domain.Shipment{
				TrackingNumber: "MAEU-1234567",
			},
			wantError: true,
			errorMsg:  "supplier_id is required",
		},
		{
			name: "missing_tracking_number",
			shipment: &domain.Shipment{
				SupplierID: supplierID,
			},
			wantError: true,
			errorMsg:  "tracking_number is required",
		},
		{
			name: "carrier_is_optional",
			shipment: &domain.Shipment{
				SupplierID:     supplierID,
				TrackingNumber: "CMA-987",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shipment.Validate()

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestShipment_PrepareForStorage(t *testing.T) {
	t.Run("generates_uuid_when_nil", func(t *testing.T) {
		shipment := &domain.Shipment{}

		shipment.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, shipment.ID)
		assert.NotZero(t, shipment.CreatedAt)
	})

	t.Run("preserves_existing_identity", func(t *testing.T) {
		existingID := uuid.New()
		shipment := &domain.Shipment{ID: existingID}

		shipment.PrepareForStorage()

		assert.Equal(t, existingID, shipment.ID)
	})
}

func TestCustomsClearance_Validate(t *testing.T) {
	shipmentID := uuid.New()

	t.Run("valid_clearance", func(t *testing.T) {
		clearance := &domain.CustomsClearance{
			ShipmentID: shipmentID,
			Status:     domain.ClearanceInProgress,
		}
		require.NoError(t, clearance.Validate())
		assert.Equal(t, domain.ClearanceInProgress, clearance.Status)
	})

	t.Run("missing_shipment", func(t *testing.T) {
		clearance := &domain.CustomsClearance{}
		err := clearance.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shipment_id is required")
	})

	t.Run("negative_fees_rejected", func(t *testing.T) {
		fees := decimal.NewFromInt(-1)
		clearance := &domain.CustomsClearance{
			ShipmentID:  shipmentID,
			CustomsFees: &fees,
		}
		err := clearance.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customs_fees cannot be negative")
	})

	t.Run("empty_status_defaults_to_pending", func(t *testing.T) {
		clearance := &domain.CustomsClearance{ShipmentID: shipmentID}
		require.NoError(t, clearance.Validate())
		assert.Equal(t, domain.ClearancePending, clearance.Status)
	})
}
