package seeds

import (
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/seeds/property"
)

// RunAllSeeds loads the demo portfolio from dir (the repo's internals/seeds).
func RunAllSeeds(db *gorm.DB, log *zap.Logger, dir string) error {
	res, err := property.SeedPortfolioFromJSON(db, log, filepath.Join(dir, "property", "data_portfolio.json"))
	if err != nil {
		return err
	}
	log.Info("seeding done", zap.Int("apartments", res.Apartments), zap.Int("units", res.Units))
	return nil
}
