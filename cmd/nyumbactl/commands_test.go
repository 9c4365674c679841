package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/configs"
	"nyumbasmart_backend/internals/testhelpers"
)

// run executes args against db. Commands close the pool when done, so each
// call gets a fresh fixture.
func run(t *testing.T, db *gorm.DB, args ...string) (string, error) {
	t.Helper()
	cli := &cliApp{
		cfg: configs.AppConfig{
			SMS:     configs.SMSConfig{Disabled: true, Timeout: time.Second},
			Billing: configs.BillingConfig{DueDay: 5, Timezone: "UTC"},
		},
		log:    zap.NewNop(),
		openDB: func() (*gorm.DB, error) { return db, nil },
	}
	var out bytes.Buffer
	root := newRootCmd(cli)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBillsGenerate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	testhelpers.MustTenant(t, db, testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000"), owner, "Kamau Mwangi", "+254700000001")
	testhelpers.MustTenant(t, db, testhelpers.MustUnit(t, db, apt.ApartmentID, "A2", "6000"), owner, "Achieng Odhiambo", "+254700000002")

	out, err := run(t, db, "bills", "generate", "--landlord", owner.String(), "--period", "2026-10")
	require.NoError(t, err)
	assert.Contains(t, out, "October 2026: 2 created, 0 updated, 0 skipped")
}

func TestBillsGenerate_BadFlags(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	_, err := run(t, db, "bills", "generate")
	assert.Error(t, err)

	_, err = run(t, db, "bills", "generate", "--landlord", "nope")
	assert.ErrorContains(t, err, "--landlord")

	_, err = run(t, db, "bills", "generate", "--landlord", uuid.NewString(), "--tenant", "nope")
	assert.ErrorContains(t, err, "--tenant")
}

func TestLandlordsReconcile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	testhelpers.MustTenant(t, db, testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000"), uuid.New(), "Kamau Mwangi", "+254700000001")

	out, err := run(t, db, "landlords", "reconcile", "--landlord", owner.String())
	require.NoError(t, err)
	assert.Contains(t, out, "reconciled 1 rows (tenants 1, bills 0, payments 0)")
}

func TestMigrate(t *testing.T) {
	out, err := run(t, testhelpers.NewTestDB(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")
}

func TestSeed(t *testing.T) {
	_, err := run(t, testhelpers.NewTestDB(t), "seed", "--dir", "../../internals/seeds")
	require.NoError(t, err)
}
