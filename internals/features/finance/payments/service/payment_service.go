// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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

type PaymentService struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Resolver settlement.Resolver
	Notifier *notifService.Notifier
	Now      func() time.Time
}

func NewPaymentService(db *gorm.DB, log *zap.Logger, notifier *notifService.Notifier) *PaymentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentService{
		DB:       db,
		Log:      log.Named("payments"),
		Resolver: settlement.DefaultResolver(),
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RecordPaymentInput struct {
	TenantID       uuid.UUID
	RentalUnitID   uuid.UUID
	BillingMonth   string
	AmountPaid     decimal.Decimal
	Channel        payModel.PaymentChannel
	TransactionRef *string
	PaymentDate    *time.Time
	Meta           map[string]any
}

type RecordPaymentResult struct {
	PaymentID  uuid.UUID               `json:"payment_id"`
	BillID     uuid.UUID               `json:"bill_id"`
	PaidToDate decimal.Decimal         `json:"paid_to_date"`
	Balance    decimal.Decimal         `json:"balance"`
	Status     ledger.SettlementStatus `json:"status"`
}

// RecordPayment applies a payment to the tenant's bill for the month and
// returns the bill's new balance and status.
func (s *PaymentService) RecordPayment(ctx context.Context, caller uuid.UUID, in RecordPaymentInput) (*RecordPaymentResult, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}

	// argument checks come before any lookup
	amount := ledger.RoundCurrency(in.AmountPaid)
	if !amount.IsPositive() {
		return nil, apperr.InvalidArgument("amount paid must be greater than zero")
	}
	p, err := period.Parse(in.BillingMonth)
	if err != nil {
		return nil, err
	}
	if in.Channel == "" {
		in.Channel = payModel.PaymentChannelCash
	}
	if !in.Channel.Valid() {
		return nil, apperr.InvalidArgument("unknown payment channel %q", in.Channel)
	}
	var ref *string
	if in.TransactionRef != nil {
		if r := strings.TrimSpace(*in.TransactionRef); r != "" {
			ref = &r
		}
	}

	bill, err := s.findBill(ctx, s.DB, in.TenantID, in.RentalUnitID, p.Label(), false)
	if err != nil {
		return nil, err
	}
	if _, err := aptService.EnsureUnitOwner(ctx, s.DB, caller, bill.BillRentalUnitID, false); err != nil {
		return nil, err
	}
	if ref != nil {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&payModel.Payment{}).
			Where("payment_transaction_ref = ?", *ref).
			Count(&n).Error; err != nil {
			return nil, apperr.Internal(err, "check transaction reference")
		}
		if n > 0 {
			return nil, apperr.Conflict("transaction reference %s already recorded", *ref)
		}
	}

	var out RecordPaymentResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.findBill(ctx, tx, in.TenantID, in.RentalUnitID, p.Label(), true)
		if err != nil {
			return err
		}
		if err := s.adoptLegacyPayments(ctx, tx, locked); err != nil {
			return err
		}

		before, err := s.Resolver.Summarize(ctx, tx, locked)
		if err != nil {
			return err
		}
		expected, _ := ledger.DeriveBalanceAndStatus(locked.BillTotalAmountDue, before.PaidToDate.Add(amount))

		paidAt := s.now()
		if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
			paidAt = *in.PaymentDate
		}
		pay := payModel.Payment{
			PaymentTenantID:       locked.BillTenantID,
			PaymentRentalUnitID:   locked.BillRentalUnitID,
			PaymentLandlordID:     locked.BillLandlordID,
			PaymentBillingMonth:   locked.BillBillingMonth,
			PaymentAmountPaid:     amount,
			PaymentBilledAmount:   locked.BillTotalAmountDue,
			PaymentBalanceAfter:   expected,
			PaymentChannel:        in.Channel,
			PaymentTransactionRef: ref,
			PaymentDate:           paidAt,
			PaymentRecordedBy:     caller,
		}
		if len(in.Meta) > 0 {
			pay.PaymentMeta = datatypes.JSONMap(in.Meta)
		}
		if err := tx.Create(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("transaction reference already recorded")
			}
			return apperr.Internal(err, "insert payment")
		}

		if err := tx.Create(&payModel.Allocation{
			AllocationPaymentID: pay.PaymentID,
			AllocationBillID:    locked.BillID,
			AllocationAmount:    amount,
		}).Error; err != nil {
			return apperr.Internal(err, "insert allocation")
		}

		after, err := s.Resolver.Summarize(ctx, tx, locked)
		if err != nil {
			return err
		}
		if err := tx.Model(&billModel.Bill{}).
			Where("bill_id = ?", locked.BillID).
			Updates(map[string]any{
				"bill_status":     after.Status,
				"bill_updated_at": s.now(),
			}).Error; err != nil {
			return apperr.Internal(err, "update bill status")
		}
		if !after.Balance.Equal(expected) {
			if err := tx.Model(&payModel.Payment{}).
				Where("payment_id = ?", pay.PaymentID).
				Update("payment_balance_after", after.Balance).Error; err != nil {
				return apperr.Internal(err, "update payment snapshot")
			}
		}

		out = RecordPaymentResult{
			PaymentID:  pay.PaymentID,
			BillID:     locked.BillID,
			PaidToDate: after.PaidToDate,
			Balance:    after.Balance,
			Status:     after.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("payment recorded",
		zap.String("payment_id", out.PaymentID.String()),
		zap.String("bill_id", out.BillID.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("status", string(out.Status)))

	s.notifyReceipt(ctx, bill, amount, out.Balance)
	return &out, nil
}

func (s *PaymentService) findBill(ctx context.Context, db *gorm.DB, tenantID, unitID uuid.UUID, label string, lock bool) (*billModel.Bill, error) {
	q := db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b billModel.Bill
	err := q.Where("bill_tenant_id = ? AND bill_rental_unit_id = ? AND bill_billing_month = ?", tenantID, unitID, label).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no bill for tenant %s, unit %s, %s", tenantID, unitID, label)
	}
	if err != nil {
		return nil, apperr.Internal(err, "load bill")
	}
	return &b, nil
}

// adoptLegacyPayments gives allocation rows to payments recorded for the
// bill's (tenant, unit, month) before allocations existed. Once a bill has
// any allocation, only allocations count, so this runs before the first one
// is written.
func (s *PaymentService) adoptLegacyPayments(ctx context.Context, tx *gorm.DB, bill *billModel.Bill) error {
	var n int64
	if err := tx.WithContext(ctx).Model(&payModel.Allocation{}).
		Where("allocation_bill_id = ?", bill.BillID).
		Count(&n).Error; err != nil {
		return apperr.Internal(err, "count allocations")
	}
	if n > 0 {
		return nil
	}

	var legacy []payModel.Payment
	if err := tx.WithContext(ctx).
		Where("payment_tenant_id = ? AND payment_rental_unit_id = ? AND payment_billing_month = ?",
			bill.BillTenantID, bill.BillRentalUnitID, bill.BillBillingMonth).
		Where("NOT EXISTS (SELECT 1 FROM payment_allocations pa WHERE pa.allocation_payment_id = payments.payment_id)").
		Find(&legacy).Error; err != nil {
		return apperr.Internal(err, "load legacy payments")
	}
	for _, lp := range legacy {
		if err := tx.Create(&payModel.Allocation{
			AllocationPaymentID: lp.PaymentID,
			AllocationBillID:    bill.BillID,
			AllocationAmount:    lp.PaymentAmountPaid,
		}).Error; err != nil {
			return apperr.Internal(err, "adopt legacy payment")
		}
	}
	if len(legacy) > 0 {
		s.Log.Info("legacy payments adopted",
			zap.String("bill_id", bill.BillID.String()),
			zap.Int("payments", len(legacy)))
	}
	return nil
}

func (s *PaymentService) notifyReceipt(ctx context.Context, bill *billModel.Bill, amount, balance decimal.Decimal) {
	if s.Notifier == nil {
		return
	}
	var t tenantModel.Tenant
	if err := s.DB.WithContext(ctx).Where("tenant_id = ?", bill.BillTenantID).Take(&t).Error; err != nil {
		s.Log.Warn("receipt skipped, tenant not loaded", zap.Error(err))
		return
	}
	s.Notifier.Notify(notifService.Message{
		Kind:       notifModel.SMSKindPaymentReceipt,
		LandlordID: bill.BillLandlordID,
		TenantID:   &t.TenantID,
		UnitID:     &bill.BillRentalUnitID,
		BillID:     &bill.BillID,
		Phone:      t.TenantPhone,
		Body:       notifService.PaymentReceiptText(t.TenantFullName, bill.BillBillingMonth, amount, balance),
	})
}

type PaymentFilter struct {
	TenantID     *uuid.UUID
	BillingMonth string
}

// ListPayments pages through payments on units the caller owns, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, caller uuid.UUID, f PaymentFilter, offset, limit int) ([]payModel.Payment, int64, error) {
	if caller == uuid.Nil {
		return nil, 0, apperr.Unauthorized("missing caller identity")
	}
	q := s.DB.WithContext(ctx).
		Model(&payModel.Payment{}).
		Joins("JOIN rental_units AS u ON u.rental_unit_id = payments.payment_rental_unit_id").
		Joins("JOIN apartments AS a ON a.apartment_id = u.rental_unit_apartment_id AND a.apartment_deleted_at IS NULL").
		Where("a.apartment_owner_id = ?", caller)
	if f.TenantID != nil {
		q = q.Where("payments.payment_tenant_id = ?", *f.TenantID)
	}
	if f.BillingMonth != "" {
		p, err := period.Parse(f.BillingMonth)
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("payments.payment_billing_month = ?", p.Label())
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "count payments")
	}
	var rows []payModel.Payment
	if err := q.Select("payments.*").
		Order("payments.payment_date DESC").
		Order("payments.payment_id").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.Internal(err, "list payments")
	}
	return rows, total, nil
}
