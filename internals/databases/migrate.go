package database

import (
	"gorm.io/gorm"

	billModel "nyumbasmart_backend/internals/features/finance/bills/model"
	payModel "nyumbasmart_backend/internals/features/finance/payments/model"
	notifModel "nyumbasmart_backend/internals/features/notifications/model"
	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&aptModel.Apartment{},
		&unitModel.RentalUnit{},
		&tenantModel.Tenant{},
		&tenantModel.VacateLog{},
		&tenantModel.TransferLog{},
		&tenantModel.VacateNotice{},
		&billModel.Bill{},
		&payModel.Payment{},
		&payModel.Allocation{},
		&notifModel.SMSUsageLog{},
		&notifModel.Notification{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
