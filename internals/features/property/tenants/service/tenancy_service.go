// file: internals/features/property/tenants/service/tenancy_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

/*
  Occupancy state machine.

  Lock order in every operation: tenant rows first, then unit rows in
  ascending id order. Unit status changes are additionally guarded in the
  UPDATE's WHERE clause, so a lost race surfaces as InvalidState rather
  than a double occupancy.
*/

type TenancyService struct {
	DB  *gorm.DB
	Log *zap.Logger
	Now func() time.Time
}

func NewTenancyService(db *gorm.DB, log *zap.Logger) *TenancyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TenancyService{DB: db, Log: log.Named("tenancy"), Now: time.Now}
}

func (s *TenancyService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// =========================================================
// ASSIGN
// =========================================================

type AssignTenantInput struct {
	FullName   string
	Phone      string
	Email      *string
	IDNumber   string
	MoveInDate *time.Time
}

type AssignResult struct {
	Tenant      tenantModel.Tenant
	Unit        unitModel.RentalUnit
	Reactivated bool
}

// AssignTenant places a tenant into a vacant unit. A returning tenant of the
// same landlord (same phone and id number, currently inactive) is
// reactivated instead of duplicated. An active tenant anywhere holding the
// phone or id number is a Conflict.
func (s *TenancyService) AssignTenant(ctx context.Context, caller, unitID uuid.UUID, in AssignTenantInput) (*AssignResult, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	if in.FullName == "" || in.Phone == "" {
		return nil, apperr.InvalidArgument("tenant full name and phone are required")
	}

	var out AssignResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chain, err := aptService.EnsureUnitOwner(ctx, tx, caller, unitID, false)
		if err != nil {
			return err
		}
		owner := chain.OwnerID()

		if err := s.ensureNoActiveMatch(ctx, tx, in.Phone, in.IDNumber); err != nil {
			return err
		}
		candidates, err := s.lockPortfolioMatches(ctx, tx, owner, in.Phone, in.IDNumber)
		if err != nil {
			return err
		}

		var returning *tenantModel.Tenant
		for i := range candidates {
			c := &candidates[i]
			if c.IsActive() {
				return apperr.Conflict("an active tenant already uses this phone or id number")
			}
			if returning == nil && c.TenantPhone == in.Phone && c.TenantIDNumber == in.IDNumber {
				returning = c
			}
		}

		unit, err := lockUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if !unit.IsVacant() {
			return apperr.InvalidState("rental unit %s is %s", unitID, unit.RentalUnitStatus)
		}

		now := s.now()
		moveIn := now
		if in.MoveInDate != nil && !in.MoveInDate.IsZero() {
			moveIn = *in.MoveInDate
		}

		var tenantID uuid.UUID
		if returning != nil {
			tenantID = returning.TenantID
			updates := map[string]any{
				"tenant_status":         tenantModel.TenantStatusActive,
				"tenant_rental_unit_id": unitID,
				"tenant_move_in_date":   moveIn,
				"tenant_move_out_date":  nil,
				"tenant_landlord_id":    owner,
				"tenant_full_name":      in.FullName,
				"tenant_updated_at":     now,
			}
			if in.Email != nil {
				updates["tenant_email"] = nullableTrim(in.Email)
			}
			if err := tx.Model(&tenantModel.Tenant{}).
				Where("tenant_id = ?", tenantID).
				Updates(updates).Error; err != nil {
				return apperr.Internal(err, "reactivate tenant")
			}
			reason := "reactivated"
			if err := tx.Create(&tenantModel.TransferLog{
				TransferLogTenantID:   tenantID,
				TransferLogOldUnitID:  nil,
				TransferLogNewUnitID:  unitID,
				TransferLogRecordedBy: caller,
				TransferLogDate:       now,
				TransferLogReason:     &reason,
			}).Error; err != nil {
				return apperr.Internal(err, "write transfer log")
			}
			out.Reactivated = true
		} else {
			t := tenantModel.Tenant{
				TenantLandlordID:   owner,
				TenantFullName:     in.FullName,
				TenantPhone:        in.Phone,
				TenantEmail:        nullableTrim(in.Email),
				TenantIDNumber:     in.IDNumber,
				TenantRentalUnitID: &unitID,
				TenantStatus:       tenantModel.TenantStatusActive,
				TenantMoveInDate:   moveIn,
			}
			if err := tx.Create(&t).Error; err != nil {
				return apperr.Internal(err, "create tenant")
			}
			tenantID = t.TenantID
		}

		if err := occupyUnit(tx, unitID, tenantID, now); err != nil {
			return err
		}

		return reload(ctx, tx, tenantID, &out.Tenant, unitID, &out.Unit)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("tenant assigned",
		zap.String("tenant_id", out.Tenant.TenantID.String()),
		zap.String("unit_id", unitID.String()),
		zap.Bool("reactivated", out.Reactivated))
	return &out, nil
}

// ensureNoActiveMatch rejects a phone or id number already held by an active
// tenant under any landlord.
func (s *TenancyService) ensureNoActiveMatch(ctx context.Context, tx *gorm.DB, phone, idNumber string) error {
	q := tx.WithContext(ctx).
		Model(&tenantModel.Tenant{}).
		Where("tenant_status = ?", tenantModel.TenantStatusActive)
	if idNumber != "" {
		q = q.Where("(tenant_phone = ? OR tenant_id_number = ?)", phone, idNumber)
	} else {
		q = q.Where("tenant_phone = ?", phone)
	}

	var active []tenantModel.Tenant
	if err := q.Clauses(clause.Locking{Strength: "UPDATE"}).
		Limit(1).
		Find(&active).Error; err != nil {
		return apperr.Internal(err, "match active tenants")
	}
	if len(active) > 0 {
		return apperr.Conflict("an active tenant already uses this phone or id number")
	}
	return nil
}

// lockPortfolioMatches returns tenants of landlordID whose phone matches, or
// whose id number matches when one was supplied. Portfolio membership follows
// each tenant's last unit, not the cached landlord id.
func (s *TenancyService) lockPortfolioMatches(ctx context.Context, tx *gorm.DB, landlordID uuid.UUID, phone, idNumber string) ([]tenantModel.Tenant, error) {
	q := tx.WithContext(ctx).
		Table("tenants AS t").
		Select("t.*").
		Joins("JOIN rental_units AS u ON u.rental_unit_id = t.tenant_rental_unit_id").
		Joins("JOIN apartments AS a ON a.apartment_id = u.rental_unit_apartment_id").
		Where("a.apartment_owner_id = ?", landlordID)
	if idNumber != "" {
		q = q.Where("(t.tenant_phone = ? OR t.tenant_id_number = ?)", phone, idNumber)
	} else {
		q = q.Where("t.tenant_phone = ?", phone)
	}

	var rows []tenantModel.Tenant
	if err := q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "t"}}).
		Order("t.tenant_id").
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "match existing tenants")
	}
	return rows, nil
}

// =========================================================
// VACATE
// =========================================================

type VacateResult struct {
	Tenant tenantModel.Tenant
	Unit   unitModel.RentalUnit
	Log    tenantModel.VacateLog
	// the pending notice this move-out completed, if any
	Notice *tenantModel.VacateNotice
}

// VacateTenant moves an active tenant out of the unit they occupy. A pending
// vacate notice is marked Completed and lends the log its reason when none
// was given.
func (s *TenancyService) VacateTenant(ctx context.Context, caller, tenantID uuid.UUID, reason, notes *string) (*VacateResult, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}

	var out VacateResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if tenant.TenantRentalUnitID == nil {
			return apperr.InvalidState("tenant %s has no rental unit", tenantID)
		}
		unitID := *tenant.TenantRentalUnitID

		chain, err := aptService.EnsureUnitOwner(ctx, tx, caller, unitID, false)
		if err != nil {
			return err
		}
		if !tenant.IsActive() {
			return apperr.InvalidState("tenant %s is not active", tenantID)
		}

		unit, err := lockUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if !unit.HeldBy(tenantID) {
			return apperr.InvalidState("rental unit %s is not occupied by tenant %s", unitID, tenantID)
		}

		now := s.now()
		if err := releaseUnit(tx, unitID, tenantID, now); err != nil {
			return err
		}
		if err := tx.Model(&tenantModel.Tenant{}).
			Where("tenant_id = ?", tenantID).
			Updates(map[string]any{
				"tenant_status":        tenantModel.TenantStatusInactive,
				"tenant_move_out_date": now,
				"tenant_updated_at":    now,
			}).Error; err != nil {
			return apperr.Internal(err, "deactivate tenant")
		}

		notice, err := pendingNotice(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		logReason := nullableTrim(reason)
		if logReason == nil && notice != nil {
			logReason = notice.VacateNoticeReason
		}

		out.Log = tenantModel.VacateLog{
			VacateLogTenantID:     tenantID,
			VacateLogRentalUnitID: unitID,
			VacateLogApartmentID:  chain.Apartment.ApartmentID,
			VacateLogRecordedBy:   caller,
			VacateLogDate:         now,
			VacateLogReason:       logReason,
			VacateLogNotes:        nullableTrim(notes),
		}
		if err := tx.Create(&out.Log).Error; err != nil {
			return apperr.Internal(err, "write vacate log")
		}

		if notice != nil {
			if err := tx.Model(&tenantModel.VacateNotice{}).
				Where("vacate_notice_id = ?", notice.VacateNoticeID).
				Updates(map[string]any{
					"vacate_notice_status":        tenantModel.VacateNoticeCompleted,
					"vacate_notice_vacate_log_id": out.Log.VacateLogID,
					"vacate_notice_updated_at":    now,
				}).Error; err != nil {
				return apperr.Internal(err, "complete vacate notice")
			}
			notice.VacateNoticeStatus = tenantModel.VacateNoticeCompleted
			notice.VacateNoticeVacateLogID = &out.Log.VacateLogID
			out.Notice = notice
		}

		return reload(ctx, tx, tenantID, &out.Tenant, unitID, &out.Unit)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("tenant vacated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("unit_id", out.Unit.RentalUnitID.String()))
	return &out, nil
}

// =========================================================
// TRANSFER
// =========================================================

type TransferTenantInput struct {
	NewUnitID  uuid.UUID
	MoveInDate *time.Time
	Reason     *string
}

type TransferResult struct {
	Tenant  tenantModel.Tenant
	OldUnit *unitModel.RentalUnit
	NewUnit unitModel.RentalUnit
	Log     tenantModel.TransferLog
}

// TransferTenant moves a tenant into a vacant unit. The old unit is released
// only while it still names this tenant. Inactive tenants may be transferred,
// which also reactivates them.
func (s *TenancyService) TransferTenant(ctx context.Context, caller, tenantID uuid.UUID, in TransferTenantInput) (*TransferResult, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	if in.NewUnitID == uuid.Nil {
		return nil, apperr.InvalidArgument("new unit id is required")
	}

	var out TransferResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := lockTenant(ctx, tx, tenantID)
		if err != nil {
			return err
		}

		newChain, err := aptService.EnsureUnitOwner(ctx, tx, caller, in.NewUnitID, false)
		if err != nil {
			return err
		}
		oldUnitID := tenant.TenantRentalUnitID
		if oldUnitID != nil {
			if _, err := aptService.EnsureUnitOwner(ctx, tx, caller, *oldUnitID, false); err != nil {
				return err
			}
			if tenant.IsActive() && *oldUnitID == in.NewUnitID {
				return apperr.InvalidState("tenant %s already lives in unit %s", tenantID, in.NewUnitID)
			}
		}
		// an inactive tenant may return to the unit they last left
		movesOut := oldUnitID != nil && *oldUnitID != in.NewUnitID

		ids := []uuid.UUID{in.NewUnitID}
		if movesOut {
			ids = append(ids, *oldUnitID)
		}
		locked, err := lockUnits(ctx, tx, ids)
		if err != nil {
			return err
		}
		newUnit, ok := locked[in.NewUnitID]
		if !ok {
			return apperr.NotFound("rental unit %s not found", in.NewUnitID)
		}
		if !newUnit.IsVacant() {
			return apperr.InvalidState("rental unit %s is %s", in.NewUnitID, newUnit.RentalUnitStatus)
		}

		now := s.now()
		if movesOut {
			if old, ok := locked[*oldUnitID]; ok && old.HeldBy(tenantID) {
				if err := releaseUnit(tx, *oldUnitID, tenantID, now); err != nil {
					return err
				}
			}
			// a notice on the unit being left no longer applies
			if err := tx.Model(&tenantModel.VacateNotice{}).
				Where("vacate_notice_tenant_id = ? AND vacate_notice_rental_unit_id = ? AND vacate_notice_status = ?",
					tenantID, *oldUnitID, tenantModel.VacateNoticePending).
				Updates(map[string]any{
					"vacate_notice_status":     tenantModel.VacateNoticeCancelled,
					"vacate_notice_updated_at": now,
				}).Error; err != nil {
				return apperr.Internal(err, "cancel vacate notice")
			}
		}

		moveIn := now
		if in.MoveInDate != nil && !in.MoveInDate.IsZero() {
			moveIn = *in.MoveInDate
		}
		if err := tx.Model(&tenantModel.Tenant{}).
			Where("tenant_id = ?", tenantID).
			Updates(map[string]any{
				"tenant_rental_unit_id": in.NewUnitID,
				"tenant_move_in_date":   moveIn,
				"tenant_move_out_date":  nil,
				"tenant_status":         tenantModel.TenantStatusActive,
				"tenant_landlord_id":    newChain.OwnerID(),
				"tenant_updated_at":     now,
			}).Error; err != nil {
			return apperr.Internal(err, "move tenant")
		}

		if err := occupyUnit(tx, in.NewUnitID, tenantID, now); err != nil {
			return err
		}

		out.Log = tenantModel.TransferLog{
			TransferLogTenantID:   tenantID,
			TransferLogOldUnitID:  oldUnitID,
			TransferLogNewUnitID:  in.NewUnitID,
			TransferLogRecordedBy: caller,
			TransferLogDate:       now,
			TransferLogReason:     nullableTrim(in.Reason),
		}
		if err := tx.Create(&out.Log).Error; err != nil {
			return apperr.Internal(err, "write transfer log")
		}

		if err := reload(ctx, tx, tenantID, &out.Tenant, in.NewUnitID, &out.NewUnit); err != nil {
			return err
		}
		if movesOut {
			var old unitModel.RentalUnit
			if err := tx.WithContext(ctx).Where("rental_unit_id = ?", *oldUnitID).Take(&old).Error; err != nil {
				return apperr.Internal(err, "reload old unit")
			}
			out.OldUnit = &old
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("tenant transferred",
		zap.String("tenant_id", tenantID.String()),
		zap.String("new_unit_id", in.NewUnitID.String()))
	return &out, nil
}

// =========================================================
// ROW HELPERS
// =========================================================

func lockTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (tenantModel.Tenant, error) {
	var t tenantModel.Tenant
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ?", tenantID).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t, apperr.NotFound("tenant %s not found", tenantID)
	}
	if err != nil {
		return t, apperr.Internal(err, "load tenant")
	}
	return t, nil
}

func lockUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (unitModel.RentalUnit, error) {
	units, err := lockUnits(ctx, tx, []uuid.UUID{unitID})
	if err != nil {
		return unitModel.RentalUnit{}, err
	}
	u, ok := units[unitID]
	if !ok {
		return u, apperr.NotFound("rental unit %s not found", unitID)
	}
	return u, nil
}

// lockUnits locks the given units in ascending id order.
func lockUnits(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]unitModel.RentalUnit, error) {
	sorted := append([]uuid.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	var rows []unitModel.RentalUnit
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("rental_unit_id IN ?", sorted).
		Order("rental_unit_id").
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "lock rental units")
	}
	out := make(map[uuid.UUID]unitModel.RentalUnit, len(rows))
	for _, r := range rows {
		out[r.RentalUnitID] = r
	}
	return out, nil
}

func occupyUnit(tx *gorm.DB, unitID, tenantID uuid.UUID, now time.Time) error {
	res := tx.Model(&unitModel.RentalUnit{}).
		Where("rental_unit_id = ? AND rental_unit_status = ?", unitID, unitModel.UnitStatusVacant).
		Updates(map[string]any{
			"rental_unit_status":            unitModel.UnitStatusOccupied,
			"rental_unit_current_tenant_id": tenantID,
			"rental_unit_updated_at":        now,
		})
	if res.Error != nil {
		return apperr.Internal(res.Error, "occupy rental unit")
	}
	if res.RowsAffected != 1 {
		return apperr.InvalidState("rental unit %s is no longer vacant", unitID)
	}
	return nil
}

func releaseUnit(tx *gorm.DB, unitID, tenantID uuid.UUID, now time.Time) error {
	res := tx.Model(&unitModel.RentalUnit{}).
		Where("rental_unit_id = ? AND rental_unit_current_tenant_id = ?", unitID, tenantID).
		Updates(map[string]any{
			"rental_unit_status":            unitModel.UnitStatusVacant,
			"rental_unit_current_tenant_id": nil,
			"rental_unit_updated_at":        now,
		})
	if res.Error != nil {
		return apperr.Internal(res.Error, "release rental unit")
	}
	if res.RowsAffected != 1 {
		return apperr.InvalidState("rental unit %s is not held by tenant %s", unitID, tenantID)
	}
	return nil
}

func reload(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, t *tenantModel.Tenant, unitID uuid.UUID, u *unitModel.RentalUnit) error {
	if err := tx.WithContext(ctx).Where("tenant_id = ?", tenantID).Take(t).Error; err != nil {
		return apperr.Internal(err, "reload tenant")
	}
	if err := tx.WithContext(ctx).Where("rental_unit_id = ?", unitID).Take(u).Error; err != nil {
		return apperr.Internal(err, "reload rental unit")
	}
	return nil
}

func nullableTrim(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
