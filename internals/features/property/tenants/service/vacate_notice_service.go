// file: internals/features/property/tenants/service/vacate_notice_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

type VacateNoticeInput struct {
	NoticeDate         *time.Time
	ExpectedVacateDate time.Time
	InspectionDate     *time.Time
	Reason             *string
}

// GiveVacateNotice records that an active tenant intends to leave their unit.
func (s *TenancyService) GiveVacateNotice(ctx context.Context, caller, tenantID uuid.UUID, in VacateNoticeInput) (*tenantModel.VacateNotice, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	if in.ExpectedVacateDate.IsZero() {
		return nil, apperr.InvalidArgument("expected vacate date is required")
	}
	noticeDate := s.now()
	if in.NoticeDate != nil && !in.NoticeDate.IsZero() {
		noticeDate = *in.NoticeDate
	}
	if dateOnly(in.ExpectedVacateDate).Before(dateOnly(noticeDate)) {
		return nil, apperr.InvalidArgument("expected vacate date is before the notice date")
	}
	if in.InspectionDate != nil && dateOnly(*in.InspectionDate).Before(dateOnly(noticeDate)) {
		return nil, apperr.InvalidArgument("inspection date is before the notice date")
	}

	var out tenantModel.VacateNotice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if tenant.TenantRentalUnitID == nil {
			return apperr.InvalidState("tenant %s has no rental unit", tenantID)
		}
		unitID := *tenant.TenantRentalUnitID
		if _, err := aptService.EnsureUnitOwner(ctx, tx, caller, unitID, false); err != nil {
			return err
		}
		if !tenant.IsActive() {
			return apperr.InvalidState("tenant %s is not active", tenantID)
		}

		pending, err := pendingNotice(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if pending != nil {
			return apperr.Conflict("tenant %s already has a pending vacate notice", tenantID)
		}

		out = tenantModel.VacateNotice{
			VacateNoticeTenantID:           tenantID,
			VacateNoticeRentalUnitID:       unitID,
			VacateNoticeRecordedBy:         caller,
			VacateNoticeDate:               noticeDate,
			VacateNoticeExpectedVacateDate: in.ExpectedVacateDate,
			VacateNoticeInspectionDate:     in.InspectionDate,
			VacateNoticeReason:             nullableTrim(in.Reason),
			VacateNoticeStatus:             tenantModel.VacateNoticePending,
		}
		if err := tx.Create(&out).Error; err != nil {
			return apperr.Internal(err, "create vacate notice")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("vacate notice given",
		zap.String("tenant_id", tenantID.String()),
		zap.String("notice_id", out.VacateNoticeID.String()),
		zap.Time("expected_vacate_date", out.VacateNoticeExpectedVacateDate))
	return &out, nil
}

// CancelVacateNotice withdraws a pending notice.
func (s *TenancyService) CancelVacateNotice(ctx context.Context, caller, noticeID uuid.UUID) (*tenantModel.VacateNotice, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}

	var out tenantModel.VacateNotice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vacate_notice_id = ?", noticeID).
			Take(&out).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("vacate notice %s not found", noticeID)
		}
		if err != nil {
			return apperr.Internal(err, "load vacate notice")
		}
		if _, err := aptService.EnsureUnitOwner(ctx, tx, caller, out.VacateNoticeRentalUnitID, false); err != nil {
			return err
		}
		if !out.IsPending() {
			return apperr.InvalidState("vacate notice %s is %s", noticeID, out.VacateNoticeStatus)
		}

		now := s.now()
		if err := tx.Model(&tenantModel.VacateNotice{}).
			Where("vacate_notice_id = ?", noticeID).
			Updates(map[string]any{
				"vacate_notice_status":     tenantModel.VacateNoticeCancelled,
				"vacate_notice_updated_at": now,
			}).Error; err != nil {
			return apperr.Internal(err, "cancel vacate notice")
		}
		out.VacateNoticeStatus = tenantModel.VacateNoticeCancelled
		out.VacateNoticeUpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVacateNotices returns the tenant's notices, newest first.
func (s *TenancyService) ListVacateNotices(ctx context.Context, caller, tenantID uuid.UUID) ([]tenantModel.VacateNotice, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	var tenant tenantModel.Tenant
	err := s.DB.WithContext(ctx).Where("tenant_id = ?", tenantID).Take(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("tenant %s not found", tenantID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "load tenant")
	}
	if tenant.TenantRentalUnitID == nil {
		return nil, apperr.Forbidden("tenant %s is not managed by this landlord", tenantID)
	}
	if _, err := aptService.EnsureUnitOwner(ctx, s.DB, caller, *tenant.TenantRentalUnitID, false); err != nil {
		return nil, err
	}

	var rows []tenantModel.VacateNotice
	if err := s.DB.WithContext(ctx).
		Where("vacate_notice_tenant_id = ?", tenantID).
		Order("vacate_notice_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "list vacate notices")
	}
	return rows, nil
}

// pendingNotice locks the tenant's pending notice, if any.
func pendingNotice(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*tenantModel.VacateNotice, error) {
	var rows []tenantModel.VacateNotice
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vacate_notice_tenant_id = ? AND vacate_notice_status = ?", tenantID, tenantModel.VacateNoticePending).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "load pending vacate notice")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
