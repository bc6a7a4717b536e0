// Package seed provisions a demo organization's rate tables so a fresh
// install can produce estimates immediately.
package seed

import (
	"github.com/bwmarrin/snowflake"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	pkgdb "github.com/markahope-aag/hazardos-sub007/pkg/db"
	"gorm.io/gorm"
)

const demoOrgID = snowflake.ID(1)

// EnsureDemoOrg inserts a baseline rate configuration for the demo
// organization when none exists. Safe to run on every startup.
func EnsureDemoOrg(db *gorm.DB, orgID int64) error {
	org := demoOrgID
	if orgID != 0 {
		org = snowflake.ID(orgID)
	}

	var count int64
	if err := db.Model(&ratetabledomain.LaborRate{}).Where("org_id = ?", org).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	node, err := snowflake.NewNode(9)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		laborRates := []ratetabledomain.LaborRate{
			{ID: node.Generate(), OrgID: org, RoleTitle: "Supervisor", HourlyRate: 85, OvertimeRate: 127.5, Active: true},
			{ID: node.Generate(), OrgID: org, RoleTitle: "Technician", HourlyRate: 55, OvertimeRate: 82.5, Active: true},
		}
		if err := tx.Create(&laborRates).Error; err != nil {
			return err
		}

		equipmentRates := []ratetabledomain.EquipmentRate{
			{ID: node.Generate(), OrgID: org, Name: "HEPA Vacuum", DailyRate: ptr(75.0), Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Negative Air Machine", DailyRate: ptr(125.0), Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Decontamination Unit", DailyRate: ptr(200.0), Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Dehumidifier", DailyRate: ptr(95.0), Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Glove Bag Kit", DailyRate: ptr(40.0), Active: true},
		}
		if err := tx.Create(&equipmentRates).Error; err != nil {
			return err
		}

		materialCosts := []ratetabledomain.MaterialCost{
			{ID: node.Generate(), OrgID: org, Name: "Poly Sheeting (6 mil)", Unit: "sqft", UnitCost: 0.35, Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Duct Tape", Unit: "roll", UnitCost: 8.5, Active: true},
			{ID: node.Generate(), OrgID: org, Name: "Disposal Bags", Unit: "each", UnitCost: 4.25, Active: true},
		}
		if err := tx.Create(&materialCosts).Error; err != nil {
			return err
		}

		disposalFees := []ratetabledomain.DisposalFee{
			{ID: node.Generate(), OrgID: org, HazardCode: "asbestos-friable", Unit: "cubic yard", UnitCost: 185, Active: true},
			{ID: node.Generate(), OrgID: org, HazardCode: "asbestos-nonfriable", Unit: "cubic yard", UnitCost: 125, Active: true},
			{ID: node.Generate(), OrgID: org, HazardCode: "mold", Unit: "cubic yard", UnitCost: 85, Active: true},
			{ID: node.Generate(), OrgID: org, HazardCode: "lead", Unit: "cubic yard", UnitCost: 150, Active: true},
			{ID: node.Generate(), OrgID: org, HazardCode: "vermiculite", Unit: "cubic yard", UnitCost: 140, Active: true},
			{ID: node.Generate(), OrgID: org, HazardCode: "general", Unit: "cubic yard", UnitCost: 65, Active: true},
		}
		if err := tx.Create(&disposalFees).Error; err != nil {
			return err
		}

		travelRate := ratetabledomain.TravelRate{
			ID: node.Generate(), OrgID: org, PerMileRate: ptr(2.5), MinimumFee: ptr(95.0), Active: true,
		}
		if err := tx.Create(&travelRate).Error; err != nil {
			return err
		}

		setting := ratetabledomain.PricingSetting{
			ID: node.Generate(), OrgID: org, DefaultMarkupPercent: 20, MinimumMarkupPercent: 10, MaximumDiscountPercent: 15, Active: true,
		}
		return tx.Create(&setting).Error
	})
	// Another replica may have seeded concurrently.
	if pkgdb.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}

func ptr(v float64) *float64 { return &v }
