package service

import (
	"strings"

	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
)

// Business-policy constants. The exact curves are organization policy; the
// values here are the shipped defaults and every curve is monotonically
// non-decreasing in containment level and effective area. Adopting
// organizations tune these, the structure stays.
const (
	// Area resolution fallbacks.
	linearFtBandWidth    = 2.0   // linear containment modeled as a 2 ft working band
	volumeWorkingHeight  = 8.0   // nominal 8 ft working height
	defaultMinimumAreaSq = 100.0 // floor so every survey prices non-degenerate

	// Labor hours per square foot by role class.
	supervisorHoursPerSqft = 0.02
	technicianHoursPerSqft = 0.05
	supervisorMinimumHours = 2.0
	technicianMinimumHours = 4.0

	// Equipment rental duration.
	equipmentSqftPerDay = 500.0

	// Daily-rate derivation when the daily column is not populated.
	hoursPerRentalDay  = 8.0
	rentalDaysPerWeek  = 5.0
	rentalDaysPerMonth = 21.0

	// Material quantity for non-area units (rolls, each, ...).
	materialSqftPerUnit = 1000.0

	// Disposal volume: nominal 3 in (0.25 ft) debris depth, 27 cuft per
	// cubic yard, at least one yard hauled.
	disposalDepthFt        = 0.25
	cuftPerCubicYard       = 27.0
	disposalMinimumCuYards = 1.0

	// Travel defaults.
	defaultTravelMiles = 50.0

	// Clearance testing: base fee plus a per-level increment.
	testingBaseFee     = 350.0
	testingPerLevelFee = 150.0

	// Regulatory filings.
	notificationFilingFee = 150.0
	hazardPermitFee       = 250.0

	// Markup fallback when the organization has no pricing settings.
	defaultMarkupPercent = 20.0
)

// containmentMultiplier scales labor hours and equipment duration. Higher
// containment means more setup, slower production.
var containmentMultiplier = map[int]float64{
	1: 1.0,
	2: 1.25,
	3: 1.5,
	4: 2.0,
}

// equipmentSelection maps survey conditions to equipment names. Names are
// matched case-insensitively against the organization's configured
// equipment rates.
func equipmentSelection(hazard surveydomain.HazardType, containmentLevel int) []string {
	names := []string{"hepa vacuum"}
	if containmentLevel >= 2 {
		names = append(names, "negative air machine")
	}
	if containmentLevel >= 3 {
		names = append(names, "decontamination unit")
	}
	switch hazard {
	case surveydomain.HazardMold:
		names = append(names, "dehumidifier")
	case surveydomain.HazardAsbestos, surveydomain.HazardVermiculite:
		if containmentLevel >= 2 {
			names = append(names, "glove bag")
		}
	}
	return names
}

// disposalCodes returns the candidate disposal-fee codes for a survey, most
// specific first. The first code with a configured fee wins.
func disposalCodes(hazard surveydomain.HazardType, containmentLevel int) []string {
	switch hazard {
	case surveydomain.HazardAsbestos:
		if containmentLevel >= 3 {
			return []string{"asbestos-friable", "asbestos", "general"}
		}
		return []string{"asbestos-nonfriable", "asbestos", "general"}
	case surveydomain.HazardVermiculite:
		return []string{"vermiculite", "asbestos-nonfriable", "asbestos", "general"}
	default:
		return []string{string(hazard), "general"}
	}
}

// hazardPermitRequired reports whether the hazard carries a dedicated
// permit filing on top of the regulatory notification.
func hazardPermitRequired(hazard surveydomain.HazardType) bool {
	return hazard == surveydomain.HazardAsbestos || hazard == surveydomain.HazardLead
}

// isSupervisorRole classifies a labor role by title. Unmatched titles are
// technician-class.
func isSupervisorRole(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range []string{"supervisor", "foreman", "manager"} {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// dailyEquipmentRate resolves a daily rate from whichever rate column is
// populated: daily, then hourly, weekly, monthly.
func dailyEquipmentRate(rate ratetabledomain.EquipmentRate) (float64, bool) {
	switch {
	case rate.DailyRate != nil:
		return *rate.DailyRate, true
	case rate.HourlyRate != nil:
		return *rate.HourlyRate * hoursPerRentalDay, true
	case rate.WeeklyRate != nil:
		return *rate.WeeklyRate / rentalDaysPerWeek, true
	case rate.MonthlyRate != nil:
		return *rate.MonthlyRate / rentalDaysPerMonth, true
	default:
		return 0, false
	}
}
