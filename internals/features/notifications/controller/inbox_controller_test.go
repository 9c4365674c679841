package controller_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	"nyumbasmart_backend/internals/features/notifications/route"
	"nyumbasmart_backend/internals/features/notifications/service"
	"nyumbasmart_backend/internals/testhelpers"
)

func TestInboxRoutes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	unit := testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000")
	tn := testhelpers.MustTenant(t, db, unit, owner, "Achieng Odhiambo", "+254700000001")
	n := &notifModel.Notification{
		NotificationLandlordID: owner,
		NotificationTenantID:   tn.TenantID,
		NotificationKind:       notifModel.SMSKindBillIssued,
		NotificationMessage:    "your October bill",
	}
	require.NoError(t, db.Create(n).Error)

	app, admin := testhelpers.NewTestApp(owner)
	route.InboxAdminRoutes(admin, service.NewInboxService(db))

	list := testhelpers.DoJSON(t, app, http.MethodGet, "/api/a/tenants/"+tn.TenantID.String()+"/notifications?unread=true", nil)
	require.Equal(t, http.StatusOK, list.Status, list.Message)
	rows, ok := list.Data.([]any)
	require.True(t, ok, "data is %T", list.Data)
	require.Len(t, rows, 1)
	assert.Equal(t, "New bill", rows[0].(map[string]any)["notification_title"])
	assert.EqualValues(t, 1, list.Pagination["total"])

	read := testhelpers.DoJSON(t, app, http.MethodPost, "/api/a/notifications/"+n.NotificationID.String()+"/read", nil)
	require.Equal(t, http.StatusOK, read.Status, read.Message)
	assert.Equal(t, true, read.DataMap(t)["notification_is_read"])

	list = testhelpers.DoJSON(t, app, http.MethodGet, "/api/a/tenants/"+tn.TenantID.String()+"/notifications?unread=true", nil)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Empty(t, list.Data)

	bad := testhelpers.DoJSON(t, app, http.MethodPost, "/api/a/notifications/nope/read", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
}
