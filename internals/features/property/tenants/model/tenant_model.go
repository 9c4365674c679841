// file: internals/features/property/tenants/model/tenant_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "Active"
	TenantStatusInactive TenantStatus = "Inactive"
)

// =========================================================
// MODEL
// =========================================================

type Tenant struct {
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`

	// cache of unit -> apartment -> owner; never trusted for authorization
	TenantLandlordID uuid.UUID `gorm:"column:tenant_landlord_id;type:uuid;not null;index:ix_tenant_landlord_status,priority:1" json:"tenant_landlord_id"`

	TenantFullName string  `gorm:"column:tenant_full_name;type:varchar(150);not null" json:"tenant_full_name"`
	TenantPhone    string  `gorm:"column:tenant_phone;type:varchar(30);not null;index:ix_tenant_phone" json:"tenant_phone"`
	TenantEmail    *string `gorm:"column:tenant_email;type:varchar(150)" json:"tenant_email,omitempty"`
	TenantIDNumber string  `gorm:"column:tenant_id_number;type:varchar(50);not null;default:''" json:"tenant_id_number"`

	// nil only while never placed
	TenantRentalUnitID *uuid.UUID `gorm:"column:tenant_rental_unit_id;type:uuid;index" json:"tenant_rental_unit_id"`

	TenantStatus      TenantStatus `gorm:"column:tenant_status;type:varchar(10);not null;default:'Active';index:ix_tenant_landlord_status,priority:2" json:"tenant_status"`
	TenantMoveInDate  time.Time    `gorm:"column:tenant_move_in_date;not null" json:"tenant_move_in_date"`
	TenantMoveOutDate *time.Time   `gorm:"column:tenant_move_out_date" json:"tenant_move_out_date,omitempty"`

	TenantCreatedAt time.Time `gorm:"column:tenant_created_at;not null" json:"tenant_created_at"`
	TenantUpdatedAt time.Time `gorm:"column:tenant_updated_at;not null" json:"tenant_updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (m *Tenant) BeforeCreate(tx *gorm.DB) error {
	if m.TenantID == uuid.Nil {
		m.TenantID = uuid.New()
	}
	now := time.Now()
	if m.TenantCreatedAt.IsZero() {
		m.TenantCreatedAt = now
	}
	if m.TenantMoveInDate.IsZero() {
		m.TenantMoveInDate = now
	}
	if m.TenantStatus == "" {
		m.TenantStatus = TenantStatusActive
	}
	m.TenantUpdatedAt = now
	return nil
}

func (m *Tenant) BeforeUpdate(tx *gorm.DB) error {
	m.TenantUpdatedAt = time.Now()
	return nil
}

func (m *Tenant) IsActive() bool { return m.TenantStatus == TenantStatusActive }

// Occupies reports whether the tenant record points at unitID.
func (m *Tenant) Occupies(unitID uuid.UUID) bool {
	return m.TenantRentalUnitID != nil && *m.TenantRentalUnitID == unitID
}
