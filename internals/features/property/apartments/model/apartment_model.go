// file: internals/features/property/apartments/model/apartment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL
// =========================================================

type Apartment struct {
	ApartmentID uuid.UUID `gorm:"column:apartment_id;type:uuid;primaryKey" json:"apartment_id"`

	// landlord user id (identity provider is external)
	ApartmentOwnerID uuid.UUID `gorm:"column:apartment_owner_id;type:uuid;not null;index:ix_apartment_owner" json:"apartment_owner_id"`

	ApartmentName        string  `gorm:"column:apartment_name;type:varchar(150);not null" json:"apartment_name"`
	ApartmentLocation    string  `gorm:"column:apartment_location;type:varchar(255);not null" json:"apartment_location"`
	ApartmentDescription *string `gorm:"column:apartment_description;type:text" json:"apartment_description,omitempty"`

	ApartmentCreatedAt time.Time      `gorm:"column:apartment_created_at;not null" json:"apartment_created_at"`
	ApartmentUpdatedAt time.Time      `gorm:"column:apartment_updated_at;not null" json:"apartment_updated_at"`
	ApartmentDeletedAt gorm.DeletedAt `gorm:"column:apartment_deleted_at;index" json:"-"`
}

func (Apartment) TableName() string {
	return "apartments"
}

// =========================================================
// HOOKS
// =========================================================

func (m *Apartment) BeforeCreate(tx *gorm.DB) error {
	if m.ApartmentID == uuid.Nil {
		m.ApartmentID = uuid.New()
	}
	now := time.Now()
	if m.ApartmentCreatedAt.IsZero() {
		m.ApartmentCreatedAt = now
	}
	m.ApartmentUpdatedAt = now
	return nil
}

func (m *Apartment) BeforeUpdate(tx *gorm.DB) error {
	m.ApartmentUpdatedAt = time.Now()
	return nil
}

// OwnedBy reports whether landlordID owns the building.
func (m *Apartment) OwnedBy(landlordID uuid.UUID) bool {
	return landlordID != uuid.Nil && m.ApartmentOwnerID == landlordID
}
