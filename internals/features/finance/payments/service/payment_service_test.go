package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billModel "nyumbasmart_backend/internals/features/finance/bills/model"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	"nyumbasmart_backend/internals/features/finance/ledger"
	payModel "nyumbasmart_backend/internals/features/finance/payments/model"
	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/testhelpers"
)

var dec = testhelpers.Dec

type payFixture struct {
	db     *gorm.DB
	svc    *PaymentService
	owner  uuid.UUID
	tenant *tenantModel.Tenant
	bill   billModel.Bill
}

// newPayFixture bills one tenant rent for October 2026.
func newPayFixture(t *testing.T, rent string) payFixture {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	unit := testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", rent)
	tn := testhelpers.MustTenant(t, db, unit, owner, "Achieng Odhiambo", "+254700000001")

	bills := billService.NewBillService(db, zap.NewNop(), nil, 5, time.UTC)
	res, err := bills.GenerateOrUpdateBills(context.Background(), owner, billService.GenerateInput{BillingMonth: "2026-10"})
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)

	return payFixture{
		db:     db,
		svc:    NewPaymentService(db, zap.NewNop(), nil),
		owner:  owner,
		tenant: tn,
		bill:   res.Bills[0],
	}
}

func (f payFixture) input(amount string) RecordPaymentInput {
	return RecordPaymentInput{
		TenantID:     f.tenant.TenantID,
		RentalUnitID: f.bill.BillRentalUnitID,
		BillingMonth: "October 2026",
		AmountPaid:   dec(amount),
		Channel:      payModel.PaymentChannelMobileMoney,
	}
}

func (f payFixture) pay(t *testing.T, amount string) *RecordPaymentResult {
	t.Helper()
	res, err := f.svc.RecordPayment(context.Background(), f.owner, f.input(amount))
	require.NoError(t, err)
	return res
}

func allocationsFor(t *testing.T, db *gorm.DB, billID uuid.UUID) []payModel.Allocation {
	t.Helper()
	var rows []payModel.Allocation
	require.NoError(t, db.Where("allocation_bill_id = ?", billID).Find(&rows).Error)
	return rows
}

func storedStatus(t *testing.T, db *gorm.DB, billID uuid.UUID) ledger.SettlementStatus {
	t.Helper()
	var b billModel.Bill
	require.NoError(t, db.Where("bill_id = ?", billID).Take(&b).Error)
	return b.BillStatus
}

func TestRecordPayment_SplitPaymentSettlesBill(t *testing.T) {
	f := newPayFixture(t, "3000")

	first := f.pay(t, "1000")
	assert.Equal(t, f.bill.BillID, first.BillID)
	assert.True(t, dec("1000").Equal(first.PaidToDate))
	assert.True(t, dec("2000").Equal(first.Balance))
	assert.Equal(t, ledger.StatusPartiallyPaid, first.Status)
	assert.Equal(t, ledger.StatusPartiallyPaid, storedStatus(t, f.db, f.bill.BillID))

	second := f.pay(t, "2000")
	assert.True(t, second.Balance.IsZero())
	assert.Equal(t, ledger.StatusPaid, second.Status)
	assert.Equal(t, ledger.StatusPaid, storedStatus(t, f.db, f.bill.BillID))

	assert.Len(t, allocationsFor(t, f.db, f.bill.BillID), 2)

	var p payModel.Payment
	require.NoError(t, f.db.Where("payment_id = ?", second.PaymentID).Take(&p).Error)
	assert.True(t, dec("3000").Equal(p.PaymentBilledAmount))
	assert.True(t, p.PaymentBalanceAfter.IsZero())
	assert.Equal(t, f.owner, p.PaymentLandlordID)
	assert.Equal(t, f.owner, p.PaymentRecordedBy)
	assert.Equal(t, "October 2026", p.PaymentBillingMonth)
}

func TestRecordPayment_Overpayment(t *testing.T) {
	f := newPayFixture(t, "5000")

	res := f.pay(t, "6000")
	assert.True(t, dec("-1000").Equal(res.Balance))
	assert.Equal(t, ledger.StatusOverpaid, res.Status)
}

func TestRecordPayment_RoundsToCents(t *testing.T) {
	f := newPayFixture(t, "100")

	res := f.pay(t, "33.335")
	assert.True(t, dec("33.34").Equal(res.PaidToDate), res.PaidToDate.String())
	assert.True(t, dec("66.66").Equal(res.Balance), res.Balance.String())
}

func TestRecordPayment_AdoptsLegacyPayments(t *testing.T) {
	f := newPayFixture(t, "5000")
	legacy := &payModel.Payment{
		PaymentTenantID:     f.bill.BillTenantID,
		PaymentRentalUnitID: f.bill.BillRentalUnitID,
		PaymentLandlordID:   f.owner,
		PaymentBillingMonth: f.bill.BillBillingMonth,
		PaymentAmountPaid:   dec("1000"),
		PaymentBilledAmount: dec("5000"),
		PaymentChannel:      payModel.PaymentChannelCash,
		PaymentDate:         time.Now(),
		PaymentRecordedBy:   f.owner,
	}
	require.NoError(t, f.db.Create(legacy).Error)

	res := f.pay(t, "2000")
	assert.True(t, dec("3000").Equal(res.PaidToDate), res.PaidToDate.String())
	assert.True(t, dec("2000").Equal(res.Balance))

	allocs := allocationsFor(t, f.db, f.bill.BillID)
	require.Len(t, allocs, 2)
	ids := map[uuid.UUID]bool{}
	for _, a := range allocs {
		ids[a.AllocationPaymentID] = true
	}
	assert.True(t, ids[legacy.PaymentID])
}

func TestRecordPayment_AllocationsConserved(t *testing.T) {
	f := newPayFixture(t, "10000")
	for _, amt := range []string{"1200", "800.25", "3000", "99.75"} {
		f.pay(t, amt)
	}

	var payments []payModel.Payment
	require.NoError(t, f.db.Find(&payments).Error)
	require.Len(t, payments, 4)

	total := decimal.Zero
	for _, p := range payments {
		var allocs []payModel.Allocation
		require.NoError(t, f.db.Where("allocation_payment_id = ?", p.PaymentID).Find(&allocs).Error)
		sum := decimal.Zero
		for _, a := range allocs {
			sum = sum.Add(a.AllocationAmount)
		}
		assert.True(t, p.PaymentAmountPaid.Equal(sum), "payment %s", p.PaymentID)
		total = total.Add(p.PaymentAmountPaid)
	}
	assert.True(t, dec("5100").Equal(total), total.String())
}

func TestRecordPayment_ConcurrentPaymentsAllCount(t *testing.T) {
	f := newPayFixture(t, "3000")

	const n = 6
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordPayment(context.Background(), f.owner, f.input("500"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sum, err := f.svc.Resolver.Summarize(context.Background(), f.db, &f.bill)
	require.NoError(t, err)
	assert.True(t, dec("3000").Equal(sum.PaidToDate), sum.PaidToDate.String())
	assert.Equal(t, ledger.StatusPaid, sum.Status)
	assert.Equal(t, ledger.StatusPaid, storedStatus(t, f.db, f.bill.BillID))
	assert.Len(t, allocationsFor(t, f.db, f.bill.BillID), n)

	// each transaction saw every earlier allocation, so snapshots never repeat
	var payments []payModel.Payment
	require.NoError(t, f.db.Where("payment_billing_month = ?", f.bill.BillBillingMonth).Find(&payments).Error)
	require.Len(t, payments, n)
	seen := map[string]bool{}
	for _, p := range payments {
		seen[p.PaymentBalanceAfter.StringFixed(2)] = true
	}
	for _, want := range []string{"2500.00", "2000.00", "1500.00", "1000.00", "500.00", "0.00"} {
		assert.True(t, seen[want], "missing balance snapshot %s", want)
	}
}

func TestRecordPayment_SequentialPaymentsSeeEarlierAllocations(t *testing.T) {
	f := newPayFixture(t, "3000")

	first := f.pay(t, "1000")
	second := f.pay(t, "1500")

	assert.True(t, dec("1000").Equal(first.PaidToDate))
	assert.True(t, dec("2500").Equal(second.PaidToDate), second.PaidToDate.String())
	assert.True(t, dec("500").Equal(second.Balance), second.Balance.String())
	assert.Equal(t, ledger.StatusPartiallyPaid, second.Status)

	allocs := allocationsFor(t, f.db, f.bill.BillID)
	require.Len(t, allocs, 2)
	byPayment := map[uuid.UUID]decimal.Decimal{}
	for _, a := range allocs {
		byPayment[a.AllocationPaymentID] = a.AllocationAmount
	}
	assert.True(t, dec("1000").Equal(byPayment[first.PaymentID]))
	assert.True(t, dec("1500").Equal(byPayment[second.PaymentID]))

	var p1, p2 payModel.Payment
	require.NoError(t, f.db.Where("payment_id = ?", first.PaymentID).Take(&p1).Error)
	require.NoError(t, f.db.Where("payment_id = ?", second.PaymentID).Take(&p2).Error)
	assert.True(t, dec("2000").Equal(p1.PaymentBalanceAfter), p1.PaymentBalanceAfter.String())
	assert.True(t, dec("500").Equal(p2.PaymentBalanceAfter), p2.PaymentBalanceAfter.String())
}

func TestRecordPayment_DuplicateTransactionRef(t *testing.T) {
	f := newPayFixture(t, "5000")
	ref := "QKJ7HX1P2A"

	in := f.input("1000")
	in.TransactionRef = &ref
	in.Meta = map[string]any{"msisdn": "254700000001"}
	_, err := f.svc.RecordPayment(context.Background(), f.owner, in)
	require.NoError(t, err)

	padded := "  " + ref + " "
	in.TransactionRef = &padded
	_, err = f.svc.RecordPayment(context.Background(), f.owner, in)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	blank := "   "
	in.TransactionRef = &blank
	_, err = f.svc.RecordPayment(context.Background(), f.owner, in)
	assert.NoError(t, err)
}

func TestRecordPayment_Errors(t *testing.T) {
	f := newPayFixture(t, "5000")
	ctx := context.Background()

	cases := []struct {
		name   string
		caller uuid.UUID
		mutate func(*RecordPaymentInput)
		want   error
	}{
		{"zero amount", f.owner, func(in *RecordPaymentInput) { in.AmountPaid = decimal.Zero }, apperr.ErrInvalidArgument},
		{"negative amount", f.owner, func(in *RecordPaymentInput) { in.AmountPaid = dec("-10") }, apperr.ErrInvalidArgument},
		{"bad month", f.owner, func(in *RecordPaymentInput) { in.BillingMonth = "13/2026" }, apperr.ErrInvalidArgument},
		{"bad channel", f.owner, func(in *RecordPaymentInput) { in.Channel = "barter" }, apperr.ErrInvalidArgument},
		{"no bill for month", f.owner, func(in *RecordPaymentInput) { in.BillingMonth = "2026-11" }, apperr.ErrNotFound},
		{"wrong unit", f.owner, func(in *RecordPaymentInput) { in.RentalUnitID = uuid.New() }, apperr.ErrNotFound},
		{"not the owner", uuid.New(), func(in *RecordPaymentInput) {}, apperr.ErrForbidden},
		{"missing caller", uuid.Nil, func(in *RecordPaymentInput) {}, apperr.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.input("1000")
			tc.mutate(&in)
			_, err := f.svc.RecordPayment(ctx, tc.caller, in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&payModel.Payment{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, ledger.StatusUnpaid, storedStatus(t, f.db, f.bill.BillID))
}

func TestRecordPayment_DefaultsToCash(t *testing.T) {
	f := newPayFixture(t, "5000")
	in := f.input("100")
	in.Channel = ""

	res, err := f.svc.RecordPayment(context.Background(), f.owner, in)
	require.NoError(t, err)

	var p payModel.Payment
	require.NoError(t, f.db.Where("payment_id = ?", res.PaymentID).Take(&p).Error)
	assert.Equal(t, payModel.PaymentChannelCash, p.PaymentChannel)
}

type receiptSender struct {
	mu     sync.Mutex
	bodies []string
}

func (r *receiptSender) Send(ctx context.Context, to, body string) (notifService.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies = append(r.bodies, body)
	return notifService.Delivery{}, nil
}

func TestRecordPayment_SendsReceipt(t *testing.T) {
	f := newPayFixture(t, "3000")
	rec := &receiptSender{}
	f.svc.Notifier = notifService.NewNotifier(rec, f.db, zap.NewNop(), time.Second)

	f.pay(t, "3000")
	f.svc.Notifier.Wait()

	require.Len(t, rec.bodies, 1)
	assert.Contains(t, rec.bodies[0], "KES 3000.00")
	assert.Contains(t, rec.bodies[0], "fully paid")

	var inbox []notifModel.Notification
	require.NoError(t, f.db.Where("notification_tenant_id = ?", f.tenant.TenantID).Find(&inbox).Error)
	require.Len(t, inbox, 1)
	assert.Equal(t, notifModel.SMSKindPaymentReceipt, inbox[0].NotificationKind)
	require.NotNil(t, inbox[0].NotificationRentalUnitID)
	assert.Equal(t, f.bill.BillRentalUnitID, *inbox[0].NotificationRentalUnitID)
}
