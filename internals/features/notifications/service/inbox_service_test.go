package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/testhelpers"
)

func TestInbox_ListAndMarkRead(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	unit := testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000")
	tn := testhelpers.MustTenant(t, db, unit, owner, "Achieng Odhiambo", "+254700000001")

	base := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	for i, kind := range []notifModel.SMSKind{notifModel.SMSKindBillIssued, notifModel.SMSKindBillReminder, notifModel.SMSKindPaymentReceipt} {
		require.NoError(t, db.Create(&notifModel.Notification{
			NotificationLandlordID: owner,
			NotificationTenantID:   tn.TenantID,
			NotificationKind:       kind,
			NotificationMessage:    string(kind),
			NotificationSentAt:     base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	svc := NewInboxService(db)
	readAt := base.Add(24 * time.Hour)
	svc.Now = func() time.Time { return readAt }
	ctx := context.Background()

	rows, total, err := svc.ListTenantNotifications(ctx, owner, tn.TenantID, InboxFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Equal(t, notifModel.SMSKindPaymentReceipt, rows[0].NotificationKind)
	assert.Equal(t, "Payment received", rows[0].NotificationTitle)

	got, err := svc.MarkRead(ctx, owner, rows[0].NotificationID)
	require.NoError(t, err)
	assert.True(t, got.NotificationIsRead)
	require.NotNil(t, got.NotificationReadAt)

	svc.Now = func() time.Time { return readAt.Add(time.Hour) }
	again, err := svc.MarkRead(ctx, owner, rows[0].NotificationID)
	require.NoError(t, err)
	require.NotNil(t, again.NotificationReadAt)
	assert.True(t, readAt.Equal(*again.NotificationReadAt))

	unread, total, err := svc.ListTenantNotifications(ctx, owner, tn.TenantID, InboxFilter{UnreadOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, unread, 2)

	page, total, err := svc.ListTenantNotifications(ctx, owner, tn.TenantID, InboxFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, notifModel.SMSKindBillIssued, page[0].NotificationKind)
}

func TestInbox_Errors(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	unit := testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000")
	tn := testhelpers.MustTenant(t, db, unit, owner, "Achieng Odhiambo", "+254700000001")
	n := &notifModel.Notification{
		NotificationLandlordID: owner,
		NotificationTenantID:   tn.TenantID,
		NotificationKind:       notifModel.SMSKindBillReminder,
		NotificationMessage:    "reminder",
	}
	require.NoError(t, db.Create(n).Error)

	svc := NewInboxService(db)
	ctx := context.Background()

	_, _, err := svc.ListTenantNotifications(ctx, uuid.New(), tn.TenantID, InboxFilter{}, 0, 10)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = svc.ListTenantNotifications(ctx, uuid.Nil, tn.TenantID, InboxFilter{}, 0, 10)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, _, err = svc.ListTenantNotifications(ctx, owner, uuid.New(), InboxFilter{}, 0, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.MarkRead(ctx, uuid.New(), n.NotificationID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.MarkRead(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var stored notifModel.Notification
	require.NoError(t, db.Where("notification_id = ?", n.NotificationID).Take(&stored).Error)
	assert.False(t, stored.NotificationIsRead)
}
