package property

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
)

type UnitSeed struct {
	Label       string          `json:"rental_unit_label"`
	MonthlyRent decimal.Decimal `json:"rental_unit_monthly_rent"`
	Category    string          `json:"rental_unit_category"`
}

type ApartmentSeed struct {
	OwnerID  uuid.UUID  `json:"apartment_owner_id"`
	Name     string     `json:"apartment_name"`
	Location string     `json:"apartment_location"`
	Units    []UnitSeed `json:"units"`
}

type SeedResult struct {
	Apartments int
	Units      int
}

// SeedPortfolioFromJSON inserts apartments and their vacant units. An
// apartment whose owner already has one with the same name is skipped.
func SeedPortfolioFromJSON(db *gorm.DB, log *zap.Logger, filePath string) (SeedResult, error) {
	var res SeedResult
	log.Info("reading seed file", zap.String("path", filePath))

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return res, fmt.Errorf("read seed file: %w", err)
	}
	var apartments []ApartmentSeed
	if err := sonic.Unmarshal(raw, &apartments); err != nil {
		return res, fmt.Errorf("decode seed file: %w", err)
	}

	for _, a := range apartments {
		var n int64
		if err := db.Model(&aptModel.Apartment{}).
			Where("apartment_owner_id = ? AND apartment_name = ?", a.OwnerID, a.Name).
			Count(&n).Error; err != nil {
			return res, err
		}
		if n > 0 {
			log.Info("apartment exists, skipping", zap.String("name", a.Name))
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			apt := aptModel.Apartment{
				ApartmentOwnerID:  a.OwnerID,
				ApartmentName:     a.Name,
				ApartmentLocation: a.Location,
			}
			if err := tx.Create(&apt).Error; err != nil {
				return fmt.Errorf("insert apartment %s: %w", a.Name, err)
			}
			for _, u := range a.Units {
				unit := unitModel.RentalUnit{
					RentalUnitApartmentID: apt.ApartmentID,
					RentalUnitLabel:       u.Label,
					RentalUnitMonthlyRent: u.MonthlyRent.Round(2),
					RentalUnitCategory:    u.Category,
					RentalUnitStatus:      unitModel.UnitStatusVacant,
				}
				if err := tx.Create(&unit).Error; err != nil {
					return fmt.Errorf("insert unit %s/%s: %w", a.Name, u.Label, err)
				}
			}
			return nil
		})
		if err != nil {
			return res, err
		}
		res.Apartments++
		res.Units += len(a.Units)
		log.Info("apartment seeded", zap.String("name", a.Name), zap.Int("units", len(a.Units)))
	}
	return res, nil
}
