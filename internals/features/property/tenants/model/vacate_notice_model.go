// file: internals/features/property/tenants/model/vacate_notice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacateNoticeStatus string

const (
	VacateNoticePending   VacateNoticeStatus = "Pending"
	VacateNoticeCompleted VacateNoticeStatus = "Completed"
	VacateNoticeCancelled VacateNoticeStatus = "Cancelled"
)

/*
  vacate_notices = a tenant's announced move-out.
  At most one Pending notice per tenant; VacateTenant completes it.
*/

type VacateNotice struct {
	VacateNoticeID uuid.UUID `gorm:"column:vacate_notice_id;type:uuid;primaryKey" json:"vacate_notice_id"`

	VacateNoticeTenantID     uuid.UUID `gorm:"column:vacate_notice_tenant_id;type:uuid;not null;index:ix_vacate_notice_tenant_status,priority:1" json:"vacate_notice_tenant_id"`
	VacateNoticeRentalUnitID uuid.UUID `gorm:"column:vacate_notice_rental_unit_id;type:uuid;not null;index" json:"vacate_notice_rental_unit_id"`
	VacateNoticeRecordedBy   uuid.UUID `gorm:"column:vacate_notice_recorded_by;type:uuid;not null" json:"vacate_notice_recorded_by"`

	VacateNoticeDate               time.Time  `gorm:"column:vacate_notice_date;not null" json:"vacate_notice_date"`
	VacateNoticeExpectedVacateDate time.Time  `gorm:"column:vacate_notice_expected_vacate_date;not null" json:"vacate_notice_expected_vacate_date"`
	VacateNoticeInspectionDate     *time.Time `gorm:"column:vacate_notice_inspection_date" json:"vacate_notice_inspection_date,omitempty"`
	VacateNoticeReason             *string    `gorm:"column:vacate_notice_reason;type:varchar(300)" json:"vacate_notice_reason,omitempty"`

	VacateNoticeStatus VacateNoticeStatus `gorm:"column:vacate_notice_status;type:varchar(10);not null;default:'Pending';index:ix_vacate_notice_tenant_status,priority:2" json:"vacate_notice_status"`
	// set when VacateTenant consumed the notice
	VacateNoticeVacateLogID *uuid.UUID `gorm:"column:vacate_notice_vacate_log_id;type:uuid" json:"vacate_notice_vacate_log_id,omitempty"`

	VacateNoticeCreatedAt time.Time `gorm:"column:vacate_notice_created_at;not null" json:"vacate_notice_created_at"`
	VacateNoticeUpdatedAt time.Time `gorm:"column:vacate_notice_updated_at;not null" json:"vacate_notice_updated_at"`
}

func (VacateNotice) TableName() string { return "vacate_notices" }

func (m *VacateNotice) BeforeCreate(tx *gorm.DB) error {
	if m.VacateNoticeID == uuid.Nil {
		m.VacateNoticeID = uuid.New()
	}
	if m.VacateNoticeStatus == "" {
		m.VacateNoticeStatus = VacateNoticePending
	}
	now := time.Now()
	if m.VacateNoticeCreatedAt.IsZero() {
		m.VacateNoticeCreatedAt = now
	}
	if m.VacateNoticeDate.IsZero() {
		m.VacateNoticeDate = now
	}
	m.VacateNoticeUpdatedAt = now
	return nil
}

func (m *VacateNotice) BeforeUpdate(tx *gorm.DB) error {
	m.VacateNoticeUpdatedAt = time.Now()
	return nil
}

func (m *VacateNotice) IsPending() bool { return m.VacateNoticeStatus == VacateNoticePending }
