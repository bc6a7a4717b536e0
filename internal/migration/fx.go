package migration

import (
	"github.com/markahope-aag/hazardos-sub007/internal/config"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	"github.com/markahope-aag/hazardos-sub007/internal/seed"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql development setups rely on AutoMigrate.
			if err := conn.AutoMigrate(
				&ratetabledomain.LaborRate{},
				&ratetabledomain.EquipmentRate{},
				&ratetabledomain.MaterialCost{},
				&ratetabledomain.DisposalFee{},
				&ratetabledomain.TravelRate{},
				&ratetabledomain.PricingSetting{},
				&surveydomain.SiteSurvey{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoOrg(conn, cfg.DefaultOrgID)
		}
		return nil
	}),
)
