// file: internals/features/notifications/model/sms_usage_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SMSKind string

const (
	SMSKindBillIssued     SMSKind = "bill_issued"
	SMSKindBillReminder   SMSKind = "bill_reminder"
	SMSKindPaymentReceipt SMSKind = "payment_receipt"
)

// SMSUsageLog is one delivered message; written only after the provider
// accepted it.
type SMSUsageLog struct {
	SMSUsageLogID uuid.UUID `gorm:"column:sms_usage_log_id;type:uuid;primaryKey" json:"sms_usage_log_id"`

	SMSUsageLogLandlordID uuid.UUID  `gorm:"column:sms_usage_log_landlord_id;type:uuid;not null;index" json:"sms_usage_log_landlord_id"`
	SMSUsageLogTenantID   *uuid.UUID `gorm:"column:sms_usage_log_tenant_id;type:uuid;index" json:"sms_usage_log_tenant_id,omitempty"`
	SMSUsageLogBillID     *uuid.UUID `gorm:"column:sms_usage_log_bill_id;type:uuid" json:"sms_usage_log_bill_id,omitempty"`

	SMSUsageLogKind        SMSKind `gorm:"column:sms_usage_log_kind;type:varchar(30);not null" json:"sms_usage_log_kind"`
	SMSUsageLogPhone       string  `gorm:"column:sms_usage_log_phone;type:varchar(30);not null" json:"sms_usage_log_phone"`
	SMSUsageLogMessage     string  `gorm:"column:sms_usage_log_message;type:text;not null" json:"sms_usage_log_message"`
	SMSUsageLogProviderRef *string `gorm:"column:sms_usage_log_provider_ref;type:varchar(120)" json:"sms_usage_log_provider_ref,omitempty"`
	SMSUsageLogCost        *string `gorm:"column:sms_usage_log_cost;type:varchar(30)" json:"sms_usage_log_cost,omitempty"`

	SMSUsageLogSentAt time.Time `gorm:"column:sms_usage_log_sent_at;not null;index" json:"sms_usage_log_sent_at"`
}

func (SMSUsageLog) TableName() string { return "sms_usage_logs" }

func (m *SMSUsageLog) BeforeCreate(tx *gorm.DB) error {
	if m.SMSUsageLogID == uuid.Nil {
		m.SMSUsageLogID = uuid.New()
	}
	if m.SMSUsageLogSentAt.IsZero() {
		m.SMSUsageLogSentAt = time.Now()
	}
	return nil
}
