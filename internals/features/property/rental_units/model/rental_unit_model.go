// file: internals/features/property/rental_units/model/rental_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
)

type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "Vacant"
	UnitStatusOccupied UnitStatus = "Occupied"
	UnitStatusReserved UnitStatus = "Reserved"
)

// =========================================================
// MODEL
// =========================================================

type RentalUnit struct {
	RentalUnitID uuid.UUID `gorm:"column:rental_unit_id;type:uuid;primaryKey" json:"rental_unit_id"`

	RentalUnitApartmentID uuid.UUID `gorm:"column:rental_unit_apartment_id;type:uuid;not null;index" json:"rental_unit_apartment_id"`

	RentalUnitLabel       string          `gorm:"column:rental_unit_label;type:varchar(50);not null" json:"rental_unit_label"`
	RentalUnitDescription *string         `gorm:"column:rental_unit_description;type:text" json:"rental_unit_description,omitempty"`
	RentalUnitMonthlyRent decimal.Decimal `gorm:"column:rental_unit_monthly_rent;type:numeric(12,2);not null" json:"rental_unit_monthly_rent"`
	// free text, e.g. "Bedsitter", "1 Bedroom"
	RentalUnitCategory string `gorm:"column:rental_unit_category;type:varchar(50);not null;default:''" json:"rental_unit_category"`

	RentalUnitStatus          UnitStatus `gorm:"column:rental_unit_status;type:varchar(10);not null;default:'Vacant';index" json:"rental_unit_status"`
	// unique: a tenant occupies at most one unit
	RentalUnitCurrentTenantID *uuid.UUID `gorm:"column:rental_unit_current_tenant_id;type:uuid;uniqueIndex:uq_rental_unit_current_tenant" json:"rental_unit_current_tenant_id"`

	RentalUnitCreatedAt time.Time `gorm:"column:rental_unit_created_at;not null" json:"rental_unit_created_at"`
	RentalUnitUpdatedAt time.Time `gorm:"column:rental_unit_updated_at;not null" json:"rental_unit_updated_at"`
}

func (RentalUnit) TableName() string {
	return "rental_units"
}

func (m *RentalUnit) BeforeCreate(tx *gorm.DB) error {
	if m.RentalUnitID == uuid.Nil {
		m.RentalUnitID = uuid.New()
	}
	if m.RentalUnitStatus == "" {
		m.RentalUnitStatus = UnitStatusVacant
	}
	now := time.Now()
	if m.RentalUnitCreatedAt.IsZero() {
		m.RentalUnitCreatedAt = now
	}
	m.RentalUnitUpdatedAt = now
	return nil
}

func (m *RentalUnit) BeforeUpdate(tx *gorm.DB) error {
	m.RentalUnitUpdatedAt = time.Now()
	return nil
}

func (m *RentalUnit) IsVacant() bool { return m.RentalUnitStatus == UnitStatusVacant }

// HeldBy reports whether the unit row names tenantID as its occupant.
func (m *RentalUnit) HeldBy(tenantID uuid.UUID) bool {
	return m.RentalUnitStatus == UnitStatusOccupied &&
		m.RentalUnitCurrentTenantID != nil && *m.RentalUnitCurrentTenantID == tenantID
}

// CheckOccupancy verifies both sides of the occupancy link.
// Occupied: current tenant set and that tenant points back at this unit.
// Vacant/Reserved: no current tenant. tenant is the row named by
// RentalUnitCurrentTenantID and may be nil when that is unset.
func (m *RentalUnit) CheckOccupancy(tenant *tenantModel.Tenant) bool {
	switch m.RentalUnitStatus {
	case UnitStatusOccupied:
		if m.RentalUnitCurrentTenantID == nil || tenant == nil {
			return false
		}
		return tenant.TenantID == *m.RentalUnitCurrentTenantID && tenant.Occupies(m.RentalUnitID)
	case UnitStatusVacant, UnitStatusReserved:
		return m.RentalUnitCurrentTenantID == nil
	default:
		return false
	}
}
