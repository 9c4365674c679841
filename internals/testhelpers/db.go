// Package testhelpers opens throwaway sqlite databases for service tests.
package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "nyumbasmart_backend/internals/databases"
	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
)

// NewTestDB returns a migrated in-memory database. One connection only, so
// every goroutine sees the same memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func MustApartment(t *testing.T, db *gorm.DB, owner uuid.UUID, name string) *aptModel.Apartment {
	t.Helper()
	apt := &aptModel.Apartment{
		ApartmentOwnerID:  owner,
		ApartmentName:     name,
		ApartmentLocation: "Kilimani, Nairobi",
	}
	require.NoError(t, db.Create(apt).Error)
	return apt
}

func MustUnit(t *testing.T, db *gorm.DB, apartmentID uuid.UUID, label, rent string) *unitModel.RentalUnit {
	t.Helper()
	unit := &unitModel.RentalUnit{
		RentalUnitApartmentID: apartmentID,
		RentalUnitLabel:       label,
		RentalUnitMonthlyRent: decimal.RequireFromString(rent),
		RentalUnitCategory:    "1 Bedroom",
		RentalUnitStatus:      unitModel.UnitStatusVacant,
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

// MustTenant places an active tenant in unit and marks the unit occupied.
func MustTenant(t *testing.T, db *gorm.DB, unit *unitModel.RentalUnit, landlord uuid.UUID, name, phone string) *tenantModel.Tenant {
	t.Helper()
	tn := &tenantModel.Tenant{
		TenantLandlordID:   landlord,
		TenantFullName:     name,
		TenantPhone:        phone,
		TenantRentalUnitID: &unit.RentalUnitID,
		TenantStatus:       tenantModel.TenantStatusActive,
	}
	require.NoError(t, db.Create(tn).Error)
	require.NoError(t, db.Model(&unitModel.RentalUnit{}).
		Where("rental_unit_id = ?", unit.RentalUnitID).
		Updates(map[string]any{
			"rental_unit_status":            unitModel.UnitStatusOccupied,
			"rental_unit_current_tenant_id": tn.TenantID,
		}).Error)
	unit.RentalUnitStatus = unitModel.UnitStatusOccupied
	unit.RentalUnitCurrentTenantID = &tn.TenantID
	return tn
}

func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func DecPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
