package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGiveVacateNotice_ThenVacateCompletesIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := assign(t, f, f.unitA.RentalUnitID, "+254700000001", "")

	noticeDate := day(2026, time.October, 1)
	inspection := day(2026, time.October, 28)
	reason := "relocating for work"
	notice, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{
		NoticeDate:         &noticeDate,
		ExpectedVacateDate: day(2026, time.October, 31),
		InspectionDate:     &inspection,
		Reason:             &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, tenantModel.VacateNoticePending, notice.VacateNoticeStatus)
	assert.Equal(t, f.unitA.RentalUnitID, notice.VacateNoticeRentalUnitID)

	// the notice alone changes nothing about occupancy
	assert.True(t, loadUnit(t, f.db, f.unitA.RentalUnitID).HeldBy(res.Tenant.TenantID))

	vac, err := f.svc.VacateTenant(ctx, f.owner, res.Tenant.TenantID, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, vac.Notice)
	assert.Equal(t, notice.VacateNoticeID, vac.Notice.VacateNoticeID)
	assert.Equal(t, tenantModel.VacateNoticeCompleted, vac.Notice.VacateNoticeStatus)
	require.NotNil(t, vac.Log.VacateLogReason)
	assert.Equal(t, reason, *vac.Log.VacateLogReason)

	var stored tenantModel.VacateNotice
	require.NoError(t, f.db.Where("vacate_notice_id = ?", notice.VacateNoticeID).Take(&stored).Error)
	assert.Equal(t, tenantModel.VacateNoticeCompleted, stored.VacateNoticeStatus)
	require.NotNil(t, stored.VacateNoticeVacateLogID)
	assert.Equal(t, vac.Log.VacateLogID, *stored.VacateNoticeVacateLogID)
	assertOccupancyConsistent(t, f.db)
}

func TestVacateTenant_ExplicitReasonWinsOverNotice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := assign(t, f, f.unitA.RentalUnitID, "+254700000001", "")
	noticeReason := "buying a house"
	_, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{
		ExpectedVacateDate: time.Now().AddDate(0, 1, 0),
		Reason:             &noticeReason,
	})
	require.NoError(t, err)

	reason := "lease breach"
	vac, err := f.svc.VacateTenant(ctx, f.owner, res.Tenant.TenantID, &reason, nil)
	require.NoError(t, err)
	require.NotNil(t, vac.Log.VacateLogReason)
	assert.Equal(t, "lease breach", *vac.Log.VacateLogReason)
}

func TestGiveVacateNotice_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := assign(t, f, f.unitA.RentalUnitID, "+254700000001", "")
	noticeDate := day(2026, time.October, 10)
	valid := VacateNoticeInput{NoticeDate: &noticeDate, ExpectedVacateDate: day(2026, time.November, 10)}

	t.Run("missing expected date", func(t *testing.T) {
		_, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{})
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
	t.Run("expected date before notice", func(t *testing.T) {
		_, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{
			NoticeDate:         &noticeDate,
			ExpectedVacateDate: day(2026, time.October, 9),
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
	t.Run("inspection before notice", func(t *testing.T) {
		early := day(2026, time.October, 1)
		in := valid
		in.InspectionDate = &early
		_, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, in)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
	t.Run("not the owner", func(t *testing.T) {
		_, err := f.svc.GiveVacateNotice(ctx, uuid.New(), res.Tenant.TenantID, valid)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
	t.Run("unknown tenant", func(t *testing.T) {
		_, err := f.svc.GiveVacateNotice(ctx, f.owner, uuid.New(), valid)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
	t.Run("second pending notice", func(t *testing.T) {
		_, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, valid)
		require.NoError(t, err)
		_, err = f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, valid)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
	t.Run("inactive tenant", func(t *testing.T) {
		_, err := f.svc.VacateTenant(ctx, f.owner, res.Tenant.TenantID, nil, nil)
		require.NoError(t, err)
		_, err = f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, valid)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})
}

func TestCancelVacateNotice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := assign(t, f, f.unitA.RentalUnitID, "+254700000001", "")
	notice, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{
		ExpectedVacateDate: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	_, err = f.svc.CancelVacateNotice(ctx, uuid.New(), notice.VacateNoticeID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := f.svc.CancelVacateNotice(ctx, f.owner, notice.VacateNoticeID)
	require.NoError(t, err)
	assert.Equal(t, tenantModel.VacateNoticeCancelled, got.VacateNoticeStatus)

	_, err = f.svc.CancelVacateNotice(ctx, f.owner, notice.VacateNoticeID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = f.svc.CancelVacateNotice(ctx, f.owner, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// a cancelled notice is not consumed by the move-out
	vac, err := f.svc.VacateTenant(ctx, f.owner, res.Tenant.TenantID, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, vac.Notice)

	rows, err := f.svc.ListVacateNotices(ctx, f.owner, res.Tenant.TenantID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tenantModel.VacateNoticeCancelled, rows[0].VacateNoticeStatus)
}

func TestTransferTenant_CancelsNoticeOnOldUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := assign(t, f, f.unitA.RentalUnitID, "+254700000001", "")
	notice, err := f.svc.GiveVacateNotice(ctx, f.owner, res.Tenant.TenantID, VacateNoticeInput{
		ExpectedVacateDate: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	_, err = f.svc.TransferTenant(ctx, f.owner, res.Tenant.TenantID, TransferTenantInput{NewUnitID: f.unitB.RentalUnitID})
	require.NoError(t, err)

	var stored tenantModel.VacateNotice
	require.NoError(t, f.db.Where("vacate_notice_id = ?", notice.VacateNoticeID).Take(&stored).Error)
	assert.Equal(t, tenantModel.VacateNoticeCancelled, stored.VacateNoticeStatus)

	_, err = f.svc.ListVacateNotices(ctx, uuid.New(), res.Tenant.TenantID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
