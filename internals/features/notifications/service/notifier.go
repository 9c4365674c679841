package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	notifModel "nyumbasmart_backend/internals/features/notifications/model"
)

// Message is one tenant-facing notification.
type Message struct {
	Kind       notifModel.SMSKind
	LandlordID uuid.UUID
	TenantID   *uuid.UUID
	UnitID     *uuid.UUID
	BillID     *uuid.UUID
	Phone      string
	Body       string
}

// Notifier sends messages in the background once the caller's transaction
// has committed. Messages naming a tenant also land in the tenant's inbox.
// Failures are logged and never reach the caller.
type Notifier struct {
	Sender  Sender
	DB      *gorm.DB
	Log     *zap.Logger
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewNotifier(sender Sender, db *gorm.DB, log *zap.Logger, timeout time.Duration) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{Sender: sender, DB: db, Log: log.Named("notifier"), Timeout: timeout}
}

// Notify dispatches msg asynchronously. A nil Notifier is a no-op.
func (n *Notifier) Notify(msg Message) {
	if n == nil || (n.Sender == nil && n.DB == nil) {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.Log.Error("notification panicked", zap.Any("panic", r))
			}
		}()
		n.deliver(msg)
	}()
}

func (n *Notifier) deliver(msg Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()

	n.recordInbox(ctx, msg)

	if n.Sender == nil {
		return nil
	}
	if strings.TrimSpace(msg.Phone) == "" {
		n.Log.Debug("sms skipped, no phone", zap.String("kind", string(msg.Kind)))
		return nil
	}
	d, err := n.Sender.Send(ctx, msg.Phone, msg.Body)
	if err != nil {
		n.Log.Warn("notification failed",
			zap.String("kind", string(msg.Kind)),
			zap.String("phone", msg.Phone),
			zap.Error(err))
		return err
	}
	if n.DB == nil {
		return nil
	}

	row := notifModel.SMSUsageLog{
		SMSUsageLogLandlordID: msg.LandlordID,
		SMSUsageLogTenantID:   msg.TenantID,
		SMSUsageLogBillID:     msg.BillID,
		SMSUsageLogKind:       msg.Kind,
		SMSUsageLogPhone:      msg.Phone,
		SMSUsageLogMessage:    msg.Body,
		SMSUsageLogSentAt:     time.Now(),
	}
	if d.ProviderRef != "" {
		row.SMSUsageLogProviderRef = &d.ProviderRef
	}
	if d.Cost != "" {
		row.SMSUsageLogCost = &d.Cost
	}
	if err := n.DB.WithContext(ctx).Create(&row).Error; err != nil {
		n.Log.Warn("sms usage log not written", zap.Error(err))
	}
	return nil
}

func (n *Notifier) recordInbox(ctx context.Context, msg Message) {
	if n.DB == nil || msg.TenantID == nil {
		return
	}
	row := notifModel.Notification{
		NotificationLandlordID:   msg.LandlordID,
		NotificationTenantID:     *msg.TenantID,
		NotificationRentalUnitID: msg.UnitID,
		NotificationBillID:       msg.BillID,
		NotificationKind:         msg.Kind,
		NotificationTitle:        msg.Kind.Title(),
		NotificationMessage:      msg.Body,
		NotificationSentAt:       time.Now(),
	}
	if err := n.DB.WithContext(ctx).Create(&row).Error; err != nil {
		n.Log.Warn("inbox notification not written", zap.Error(err))
	}
}

// Wait blocks until every pending notification finished.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
