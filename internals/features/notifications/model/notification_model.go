// file: internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Title is the inbox heading for a message kind.
func (k SMSKind) Title() string {
	switch k {
	case SMSKindBillIssued:
		return "New bill"
	case SMSKindBillReminder:
		return "Rent reminder"
	case SMSKindPaymentReceipt:
		return "Payment received"
	default:
		return "Notice"
	}
}

/*
  notifications = tenant inbox. One row per message addressed to a tenant,
  written whether or not the SMS went out.
*/

type Notification struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`

	NotificationLandlordID   uuid.UUID  `gorm:"column:notification_landlord_id;type:uuid;not null;index" json:"notification_landlord_id"`
	NotificationTenantID     uuid.UUID  `gorm:"column:notification_tenant_id;type:uuid;not null;index:ix_notification_tenant_read,priority:1" json:"notification_tenant_id"`
	NotificationRentalUnitID *uuid.UUID `gorm:"column:notification_rental_unit_id;type:uuid" json:"notification_rental_unit_id,omitempty"`
	NotificationBillID       *uuid.UUID `gorm:"column:notification_bill_id;type:uuid" json:"notification_bill_id,omitempty"`

	// tag, e.g. bill_reminder
	NotificationKind    SMSKind `gorm:"column:notification_kind;type:varchar(30);not null" json:"notification_kind"`
	NotificationTitle   string  `gorm:"column:notification_title;type:varchar(100);not null" json:"notification_title"`
	NotificationMessage string  `gorm:"column:notification_message;type:varchar(500);not null" json:"notification_message"`
	NotificationSentBy  string  `gorm:"column:notification_sent_by;type:varchar(100);not null;default:'System'" json:"notification_sent_by"`

	NotificationIsRead bool       `gorm:"column:notification_is_read;not null;default:false;index:ix_notification_tenant_read,priority:2" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`

	NotificationSentAt time.Time `gorm:"column:notification_sent_at;not null;index" json:"notification_sent_at"`
}

func (Notification) TableName() string { return "notifications" }

func (m *Notification) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	if m.NotificationSentBy == "" {
		m.NotificationSentBy = "System"
	}
	if m.NotificationTitle == "" {
		m.NotificationTitle = m.NotificationKind.Title()
	}
	if m.NotificationSentAt.IsZero() {
		m.NotificationSentAt = time.Now()
	}
	return nil
}
