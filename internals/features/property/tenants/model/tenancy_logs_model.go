// file: internals/features/property/tenants/model/tenancy_logs_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAppendOnly is returned by the hooks below; the audit trail is never rewritten.
var ErrAppendOnly = errors.New("tenancy logs are append-only")

/*
  vacate_logs = one row per move-out
*/

type VacateLog struct {
	VacateLogID uuid.UUID `gorm:"column:vacate_log_id;type:uuid;primaryKey" json:"vacate_log_id"`

	VacateLogTenantID     uuid.UUID `gorm:"column:vacate_log_tenant_id;type:uuid;not null;index" json:"vacate_log_tenant_id"`
	VacateLogRentalUnitID uuid.UUID `gorm:"column:vacate_log_rental_unit_id;type:uuid;not null;index" json:"vacate_log_rental_unit_id"`
	VacateLogApartmentID  uuid.UUID `gorm:"column:vacate_log_apartment_id;type:uuid;not null;index" json:"vacate_log_apartment_id"`
	VacateLogRecordedBy   uuid.UUID `gorm:"column:vacate_log_recorded_by;type:uuid;not null" json:"vacate_log_recorded_by"`

	VacateLogDate   time.Time `gorm:"column:vacate_log_date;not null" json:"vacate_log_date"`
	VacateLogReason *string   `gorm:"column:vacate_log_reason;type:varchar(255)" json:"vacate_log_reason,omitempty"`
	VacateLogNotes  *string   `gorm:"column:vacate_log_notes;type:text" json:"vacate_log_notes,omitempty"`
}

func (VacateLog) TableName() string { return "vacate_logs" }

func (m *VacateLog) BeforeCreate(tx *gorm.DB) error {
	if m.VacateLogID == uuid.Nil {
		m.VacateLogID = uuid.New()
	}
	if m.VacateLogDate.IsZero() {
		m.VacateLogDate = time.Now()
	}
	return nil
}

func (m *VacateLog) BeforeUpdate(tx *gorm.DB) error { return ErrAppendOnly }
func (m *VacateLog) BeforeDelete(tx *gorm.DB) error { return ErrAppendOnly }

/*
  transfer_logs = one row per transfer or reactivation.
  OldUnitID is nil when a returning tenant is re-placed.
*/

type TransferLog struct {
	TransferLogID uuid.UUID `gorm:"column:transfer_log_id;type:uuid;primaryKey" json:"transfer_log_id"`

	TransferLogTenantID   uuid.UUID  `gorm:"column:transfer_log_tenant_id;type:uuid;not null;index" json:"transfer_log_tenant_id"`
	TransferLogOldUnitID  *uuid.UUID `gorm:"column:transfer_log_old_unit_id;type:uuid" json:"transfer_log_old_unit_id"`
	TransferLogNewUnitID  uuid.UUID  `gorm:"column:transfer_log_new_unit_id;type:uuid;not null" json:"transfer_log_new_unit_id"`
	TransferLogRecordedBy uuid.UUID  `gorm:"column:transfer_log_recorded_by;type:uuid;not null" json:"transfer_log_recorded_by"`

	TransferLogDate   time.Time `gorm:"column:transfer_log_date;not null" json:"transfer_log_date"`
	TransferLogReason *string   `gorm:"column:transfer_log_reason;type:varchar(255)" json:"transfer_log_reason,omitempty"`
}

func (TransferLog) TableName() string { return "transfer_logs" }

func (m *TransferLog) BeforeCreate(tx *gorm.DB) error {
	if m.TransferLogID == uuid.Nil {
		m.TransferLogID = uuid.New()
	}
	if m.TransferLogDate.IsZero() {
		m.TransferLogDate = time.Now()
	}
	return nil
}

func (m *TransferLog) BeforeUpdate(tx *gorm.DB) error { return ErrAppendOnly }
func (m *TransferLog) BeforeDelete(tx *gorm.DB) error { return ErrAppendOnly }
