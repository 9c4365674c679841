package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

// InboxService reads and acknowledges tenant notifications. Access follows
// the tenant's current unit up to the apartment owner.
type InboxService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInboxService(db *gorm.DB) *InboxService {
	return &InboxService{DB: db, Now: time.Now}
}

type InboxFilter struct {
	UnreadOnly bool
}

// ListTenantNotifications pages through a tenant's inbox, newest first.
func (s *InboxService) ListTenantNotifications(ctx context.Context, caller, tenantID uuid.UUID, f InboxFilter, offset, limit int) ([]notifModel.Notification, int64, error) {
	if err := s.ensureTenantOwner(ctx, caller, tenantID); err != nil {
		return nil, 0, err
	}

	q := s.DB.WithContext(ctx).
		Model(&notifModel.Notification{}).
		Where("notification_tenant_id = ?", tenantID)
	if f.UnreadOnly {
		q = q.Where("notification_is_read = ?", false)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "count notifications")
	}
	var rows []notifModel.Notification
	if err := q.Order("notification_sent_at DESC").
		Order("notification_id").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.Internal(err, "list notifications")
	}
	return rows, total, nil
}

// MarkRead flags one notification as read. Marking twice keeps the first
// read time.
func (s *InboxService) MarkRead(ctx context.Context, caller, notificationID uuid.UUID) (*notifModel.Notification, error) {
	var n notifModel.Notification
	err := s.DB.WithContext(ctx).Where("notification_id = ?", notificationID).Take(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("notification %s not found", notificationID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "load notification")
	}
	if err := s.ensureTenantOwner(ctx, caller, n.NotificationTenantID); err != nil {
		return nil, err
	}
	if n.NotificationIsRead {
		return &n, nil
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if err := s.DB.WithContext(ctx).
		Model(&notifModel.Notification{}).
		Where("notification_id = ? AND notification_is_read = ?", notificationID, false).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": now,
		}).Error; err != nil {
		return nil, apperr.Internal(err, "mark notification read")
	}
	n.NotificationIsRead = true
	n.NotificationReadAt = &now
	return &n, nil
}

func (s *InboxService) ensureTenantOwner(ctx context.Context, caller, tenantID uuid.UUID) error {
	if caller == uuid.Nil {
		return apperr.Unauthorized("missing caller identity")
	}
	var t tenantModel.Tenant
	err := s.DB.WithContext(ctx).Where("tenant_id = ?", tenantID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("tenant %s not found", tenantID)
	}
	if err != nil {
		return apperr.Internal(err, "load tenant")
	}
	if t.TenantRentalUnitID == nil {
		return apperr.Forbidden("tenant %s is not managed by this landlord", tenantID)
	}
	_, err = aptService.EnsureUnitOwner(ctx, s.DB, caller, *t.TenantRentalUnitID, false)
	return err
}
