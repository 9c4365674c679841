// file: internals/features/finance/bills/service/bill_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billModel "nyumbasmart_backend/internals/features/finance/bills/model"
	"nyumbasmart_backend/internals/features/finance/ledger"
	payModel "nyumbasmart_backend/internals/features/finance/payments/model"
	"nyumbasmart_backend/internals/features/finance/settlement"
	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/helpers/period"
)

const defaultDueDay = 5

type BillService struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Resolver settlement.Resolver
	Notifier *notifService.Notifier

	DueDay   int
	Location *time.Location
	Now      func() time.Time
}

func NewBillService(db *gorm.DB, log *zap.Logger, notifier *notifService.Notifier, dueDay int, loc *time.Location) *BillService {
	if log == nil {
		log = zap.NewNop()
	}
	if dueDay <= 0 {
		dueDay = defaultDueDay
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BillService{
		DB:       db,
		Log:      log.Named("bills"),
		Resolver: settlement.DefaultResolver(),
		Notifier: notifier,
		DueDay:   dueDay,
		Location: loc,
		Now:      time.Now,
	}
}

func (s *BillService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// =========================================================
// GENERATE OR UPDATE
// =========================================================

// UtilityOverrides carries the utility charges supplied by the landlord.
// A nil field means "not supplied".
type UtilityOverrides struct {
	Water       *decimal.Decimal
	Electricity *decimal.Decimal
	Garbage     *decimal.Decimal
	Internet    *decimal.Decimal
}

func (u UtilityOverrides) validate() error {
	for name, v := range map[string]*decimal.Decimal{
		"water": u.Water, "electricity": u.Electricity, "garbage": u.Garbage, "internet": u.Internet,
	} {
		if v != nil && v.IsNegative() {
			return apperr.InvalidArgument("%s charge must not be negative", name)
		}
	}
	return nil
}

func orZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return ledger.RoundCurrency(*v)
}

type GenerateInput struct {
	// blank means the current month in the billing timezone
	BillingMonth string
	TenantID     *uuid.UUID
	Utilities    UtilityOverrides
}

type SkippedTenant struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Reason   string    `json:"reason"`
}

type GenerateResult struct {
	Count   int              `json:"count"`
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Period  string           `json:"period"`
	Bills   []billModel.Bill `json:"bills"`
	Skips   []SkippedTenant  `json:"skips,omitempty"`
}

// skipError marks a per-tenant failure that does not fail the batch.
type skipError struct{ reason string }

func (e *skipError) Error() string { return e.reason }

// GenerateOrUpdateBills creates the period's bill for every active tenant the
// caller administers, or updates utilities on bills that already exist.
func (s *BillService) GenerateOrUpdateBills(ctx context.Context, caller uuid.UUID, in GenerateInput) (*GenerateResult, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	if err := in.Utilities.validate(); err != nil {
		return nil, err
	}
	p, err := period.ParseOrCurrent(in.BillingMonth, s.now(), s.Location)
	if err != nil {
		return nil, err
	}

	var tenants []tenantModel.Tenant
	if in.TenantID != nil {
		t, err := s.singleCandidate(ctx, caller, *in.TenantID)
		if err != nil {
			return nil, err
		}
		tenants = []tenantModel.Tenant{t}
	} else {
		tenants, err = s.candidates(ctx, caller)
		if err != nil {
			return nil, err
		}
	}

	res := &GenerateResult{Period: p.Label(), Bills: make([]billModel.Bill, 0, len(tenants))}
	for i := range tenants {
		t := &tenants[i]
		bill, created, err := s.generateOne(ctx, caller, t, p, in.Utilities)
		var skip *skipError
		if errors.As(err, &skip) {
			s.Log.Warn("bill generation skipped tenant",
				zap.String("tenant_id", t.TenantID.String()),
				zap.String("period", p.Label()),
				zap.String("reason", skip.reason))
			res.Skipped++
			res.Skips = append(res.Skips, SkippedTenant{TenantID: t.TenantID, Reason: skip.reason})
			continue
		}
		if err != nil {
			return nil, err
		}

		res.Bills = append(res.Bills, *bill)
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		s.Notifier.Notify(notifService.Message{
			Kind:       notifModel.SMSKindBillIssued,
			LandlordID: bill.BillLandlordID,
			TenantID:   &t.TenantID,
			UnitID:     &bill.BillRentalUnitID,
			BillID:     &bill.BillID,
			Phone:      t.TenantPhone,
			Body:       notifService.BillIssuedText(t.TenantFullName, bill.BillBillingMonth, bill.BillTotalAmountDue, bill.BillDueDate),
		})
	}
	res.Count = res.Created + res.Updated

	s.Log.Info("bills generated",
		zap.String("landlord_id", caller.String()),
		zap.String("period", res.Period),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *BillService) singleCandidate(ctx context.Context, caller, tenantID uuid.UUID) (tenantModel.Tenant, error) {
	var t tenantModel.Tenant
	err := s.DB.WithContext(ctx).Where("tenant_id = ?", tenantID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t, apperr.NotFound("tenant %s not found", tenantID)
	}
	if err != nil {
		return t, apperr.Internal(err, "load tenant")
	}

	owner := t.TenantLandlordID
	if t.TenantRentalUnitID != nil {
		if chain, err := aptService.ResolveUnit(ctx, s.DB, *t.TenantRentalUnitID, false); err == nil {
			owner = chain.OwnerID()
		} else if apperr.KindOf(err) != apperr.KindNotFound {
			return t, err
		}
	}
	if owner != caller {
		return t, apperr.Forbidden("tenant %s is not administered by this landlord", tenantID)
	}
	if !t.IsActive() {
		return t, apperr.InvalidState("tenant %s is not active", tenantID)
	}
	return t, nil
}

// candidates returns active tenants whose cached landlord is the caller or
// whose unit chain ends at the caller. Chain ownership is re-checked per
// tenant inside generateOne.
func (s *BillService) candidates(ctx context.Context, caller uuid.UUID) ([]tenantModel.Tenant, error) {
	var byCache []tenantModel.Tenant
	if err := s.DB.WithContext(ctx).
		Where("tenant_landlord_id = ? AND tenant_status = ?", caller, tenantModel.TenantStatusActive).
		Find(&byCache).Error; err != nil {
		return nil, apperr.Internal(err, "list tenants")
	}

	var byChain []tenantModel.Tenant
	if err := s.DB.WithContext(ctx).
		Table("tenants AS t").
		Select("t.*").
		Joins("JOIN rental_units AS u ON u.rental_unit_id = t.tenant_rental_unit_id").
		Joins("JOIN apartments AS a ON a.apartment_id = u.rental_unit_apartment_id").
		Where("a.apartment_owner_id = ? AND t.tenant_status = ?", caller, tenantModel.TenantStatusActive).
		Find(&byChain).Error; err != nil {
		return nil, apperr.Internal(err, "list tenants")
	}

	seen := make(map[uuid.UUID]bool, len(byCache)+len(byChain))
	out := make([]tenantModel.Tenant, 0, len(byCache)+len(byChain))
	for _, list := range [][]tenantModel.Tenant{byChain, byCache} {
		for _, t := range list {
			if !seen[t.TenantID] {
				seen[t.TenantID] = true
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID.String() < out[j].TenantID.String() })
	return out, nil
}

func (s *BillService) generateOne(ctx context.Context, caller uuid.UUID, t *tenantModel.Tenant, p period.Period, u UtilityOverrides) (*billModel.Bill, bool, error) {
	if t.TenantRentalUnitID == nil {
		return nil, false, &skipError{reason: "tenant has no rental unit"}
	}

	var (
		bill    billModel.Bill
		created bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chain, err := aptService.ResolveUnit(ctx, tx, *t.TenantRentalUnitID, false)
		if apperr.KindOf(err) == apperr.KindNotFound {
			return &skipError{reason: err.Error()}
		}
		if err != nil {
			return err
		}
		if chain.OwnerID() != caller {
			return &skipError{reason: "rental unit belongs to another landlord"}
		}

		found, err := lockBill(ctx, tx, t.TenantID, p.Label())
		if err != nil {
			return err
		}
		if found == nil {
			bill = billModel.Bill{
				BillID:           uuid.New(),
				BillTenantID:     t.TenantID,
				BillRentalUnitID: chain.Unit.RentalUnitID,
				BillLandlordID:   chain.OwnerID(),
				BillBillingMonth: p.Label(),
				BillPeriodStart:  p.Start(),
				BillRent:         ledger.RoundCurrency(chain.Unit.RentalUnitMonthlyRent),
				BillWater:        orZero(u.Water),
				BillElectricity:  orZero(u.Electricity),
				BillGarbage:      orZero(u.Garbage),
				BillInternet:     orZero(u.Internet),
				BillDueDate:      p.DueDate(s.DueDay),
				BillIssuedDate:   s.now(),
			}
			carry, _, err := s.Resolver.LatestBalance(ctx, tx, t.TenantID, p)
			if err != nil {
				return err
			}
			bill.BillCarriedForwardBalance = carry
			bill.Recompute()

			sum, err := s.Resolver.Summarize(ctx, tx, &bill)
			if err != nil {
				return err
			}
			bill.BillStatus = sum.Status

			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&bill)
			if res.Error != nil {
				return apperr.Internal(res.Error, "create bill")
			}
			if res.RowsAffected == 1 {
				created = true
				return nil
			}
			// lost an insert race; fall through to the update path
			found, err = lockBill(ctx, tx, t.TenantID, p.Label())
			if err != nil {
				return err
			}
			if found == nil {
				return apperr.Internal(nil, "bill for %s vanished", p.Label())
			}
		}

		bill = *found
		if u.Water != nil {
			bill.BillWater = orZero(u.Water)
		}
		if u.Electricity != nil {
			bill.BillElectricity = orZero(u.Electricity)
		}
		if u.Garbage != nil {
			bill.BillGarbage = orZero(u.Garbage)
		}
		if u.Internet != nil {
			bill.BillInternet = orZero(u.Internet)
		}
		bill.Recompute()

		sum, err := s.Resolver.Summarize(ctx, tx, &bill)
		if err != nil {
			return err
		}
		bill.BillStatus = sum.Status
		bill.BillUpdatedAt = s.now()

		if err := tx.Model(&billModel.Bill{}).
			Where("bill_id = ?", bill.BillID).
			Updates(map[string]any{
				"bill_water":            bill.BillWater,
				"bill_electricity":      bill.BillElectricity,
				"bill_garbage":          bill.BillGarbage,
				"bill_internet":         bill.BillInternet,
				"bill_total_amount_due": bill.BillTotalAmountDue,
				"bill_status":           bill.BillStatus,
				"bill_updated_at":       bill.BillUpdatedAt,
			}).Error; err != nil {
			return apperr.Internal(err, "update bill")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &bill, created, nil
}

func lockBill(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, label string) (*billModel.Bill, error) {
	var b billModel.Bill
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bill_tenant_id = ? AND bill_billing_month = ?", tenantID, label).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err, "load bill")
	}
	return &b, nil
}

// =========================================================
// READ / VOID / REMIND
// =========================================================

// loadOwnedBill returns NotFound for unknown ids and Forbidden when the
// bill's unit is not in the caller's portfolio.
func (s *BillService) loadOwnedBill(ctx context.Context, tx *gorm.DB, caller, billID uuid.UUID, lock bool) (*billModel.Bill, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	q := tx.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b billModel.Bill
	err := q.Where("bill_id = ?", billID).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("bill %s not found", billID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "load bill")
	}
	if _, err := aptService.EnsureUnitOwner(ctx, tx, caller, b.BillRentalUnitID, false); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBillSummary reports total due, paid to date, balance and status.
func (s *BillService) GetBillSummary(ctx context.Context, caller, billID uuid.UUID) (*settlement.Summary, error) {
	b, err := s.loadOwnedBill(ctx, s.DB, caller, billID, false)
	if err != nil {
		return nil, err
	}
	sum, err := s.Resolver.Summarize(ctx, s.DB, b)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

type VoidResult struct {
	BillID             uuid.UUID `json:"bill_id"`
	AllocationsRemoved int64     `json:"allocations_removed"`
}

// VoidBill deletes a bill and its allocations. Payments stay on record.
func (s *BillService) VoidBill(ctx context.Context, caller, billID uuid.UUID) (*VoidResult, error) {
	out := &VoidResult{BillID: billID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadOwnedBill(ctx, tx, caller, billID, true); err != nil {
			return err
		}
		res := tx.Where("allocation_bill_id = ?", billID).Delete(&payModel.Allocation{})
		if res.Error != nil {
			return apperr.Internal(res.Error, "delete allocations")
		}
		out.AllocationsRemoved = res.RowsAffected
		if err := tx.Where("bill_id = ?", billID).Delete(&billModel.Bill{}).Error; err != nil {
			return apperr.Internal(err, "delete bill")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("bill voided",
		zap.String("bill_id", billID.String()),
		zap.Int64("allocations_removed", out.AllocationsRemoved))
	return out, nil
}

type ReminderResult struct {
	BillID  uuid.UUID       `json:"bill_id"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"`
	Queued  bool            `json:"queued"`
}

// SendBillReminder queues an SMS for an outstanding bill. Delivery is best
// effort and never touches ledger rows.
func (s *BillService) SendBillReminder(ctx context.Context, caller, billID uuid.UUID) (*ReminderResult, error) {
	b, err := s.loadOwnedBill(ctx, s.DB, caller, billID, false)
	if err != nil {
		return nil, err
	}
	sum, err := s.Resolver.Summarize(ctx, s.DB, b)
	if err != nil {
		return nil, err
	}
	if !sum.Balance.IsPositive() {
		return nil, apperr.InvalidState("bill %s has nothing outstanding", billID)
	}

	var t tenantModel.Tenant
	if err := s.DB.WithContext(ctx).Where("tenant_id = ?", b.BillTenantID).Take(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tenant %s not found", b.BillTenantID)
		}
		return nil, apperr.Internal(err, "load tenant")
	}

	s.Notifier.Notify(notifService.Message{
		Kind:       notifModel.SMSKindBillReminder,
		LandlordID: b.BillLandlordID,
		TenantID:   &t.TenantID,
		UnitID:     &b.BillRentalUnitID,
		BillID:     &b.BillID,
		Phone:      t.TenantPhone,
		Body:       notifService.BillReminderText(t.TenantFullName, b.BillBillingMonth, sum.Balance, b.BillDueDate),
	})
	return &ReminderResult{
		BillID:  b.BillID,
		Phone:   t.TenantPhone,
		Balance: sum.Balance,
		Queued:  s.Notifier != nil,
	}, nil
}

// =========================================================
// LIST
// =========================================================

type BillFilter struct {
	BillingMonth string
	Status       ledger.SettlementStatus
	TenantID     *uuid.UUID
}

// ListBills pages through bills on units the caller owns, newest period first.
func (s *BillService) ListBills(ctx context.Context, caller uuid.UUID, f BillFilter, offset, limit int) ([]billModel.Bill, int64, error) {
	if caller == uuid.Nil {
		return nil, 0, apperr.Unauthorized("missing caller identity")
	}
	q := s.DB.WithContext(ctx).
		Model(&billModel.Bill{}).
		Joins("JOIN rental_units AS u ON u.rental_unit_id = bills.bill_rental_unit_id").
		Joins("JOIN apartments AS a ON a.apartment_id = u.rental_unit_apartment_id AND a.apartment_deleted_at IS NULL").
		Where("a.apartment_owner_id = ?", caller)

	if f.BillingMonth != "" {
		p, err := period.Parse(f.BillingMonth)
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("bills.bill_billing_month = ?", p.Label())
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, 0, apperr.InvalidArgument("unknown bill status %q", f.Status)
		}
		q = q.Where("bills.bill_status = ?", f.Status)
	}
	if f.TenantID != nil {
		q = q.Where("bills.bill_tenant_id = ?", *f.TenantID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "count bills")
	}
	var rows []billModel.Bill
	if err := q.Select("bills.*").
		Order("bills.bill_period_start DESC").
		Order("bills.bill_id").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.Internal(err, "list bills")
	}
	return rows, total, nil
}
