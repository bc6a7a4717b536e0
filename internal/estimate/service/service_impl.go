package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	estimatedomain "github.com/markahope-aag/hazardos-sub007/internal/estimate/domain"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"go.uber.org/zap"
)

// Calculator prices surveys for one organization. The rate tables are
// fetched lazily on the first calculation and cached for the instance
// lifetime; after a successful load they are read-only, so concurrent
// calculations are safe.
type Calculator struct {
	log      *zap.Logger
	provider ratetabledomain.Provider
	orgID    snowflake.ID

	mu     sync.Mutex
	tables *ratetabledomain.Tables
}

func NewCalculator(provider ratetabledomain.Provider, log *zap.Logger, orgID snowflake.ID) *Calculator {
	return &Calculator{
		log:      log.Named("estimate.calculator").With(zap.String("org_id", orgID.String())),
		provider: provider,
		orgID:    orgID,
	}
}

func (c *Calculator) CalculateFromSurvey(ctx context.Context, survey *surveydomain.SiteSurvey, opts estimatedomain.Options) (*estimatedomain.Result, error) {
	if err := validateSurvey(survey); err != nil {
		return nil, err
	}

	tables, err := c.rateTables(ctx)
	if err != nil {
		return nil, err
	}

	area := resolveEffectiveArea(survey)
	mult := containmentMultiplier[survey.ContainmentLevel]

	items := make([]estimatedomain.LineItem, 0, 16)
	items = append(items, c.laborItems(tables, survey, area, mult)...)
	items = append(items, c.equipmentItems(tables, survey, area, mult)...)
	items = append(items, c.materialItems(tables, area)...)
	items = append(items, c.disposalItem(tables, survey, area)...)
	if opts.IncludeTravelOrDefault() {
		items = append(items, c.travelItem(tables)...)
	}
	if opts.IncludeTestingOrDefault() && survey.ClearanceRequired {
		items = append(items, c.testingItem(survey)...)
	}
	if opts.IncludePermitsOrDefault() && survey.RegulatoryNotificationsNeeded {
		items = append(items, c.permitItems(survey)...)
	}

	for i := range items {
		items[i].SortOrder = i + 1
	}

	result := buildTotals(items, opts, tables.PricingSetting)

	c.log.Debug("estimate computed",
		zap.String("hazard_type", string(survey.HazardType)),
		zap.Int("containment_level", survey.ContainmentLevel),
		zap.Float64("effective_area", area),
		zap.Int("line_items", len(result.LineItems)),
		zap.Float64("total", result.Total),
	)
	return result, nil
}

func validateSurvey(survey *surveydomain.SiteSurvey) error {
	if survey == nil {
		return estimatedomain.ErrSurveyRequired
	}
	if strings.TrimSpace(string(survey.HazardType)) == "" {
		return estimatedomain.ErrMissingHazardType
	}
	if !survey.HazardType.Valid() {
		return estimatedomain.ErrInvalidHazardType
	}
	if survey.ContainmentLevel < surveydomain.ContainmentLevelMin || survey.ContainmentLevel > surveydomain.ContainmentLevelMax {
		return estimatedomain.ErrInvalidContainmentLevel
	}
	return nil
}

// rateTables loads the organization's rate tables on first use. A failed
// load is not cached; the next calculation retries.
func (c *Calculator) rateTables(ctx context.Context) (*ratetabledomain.Tables, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tables != nil {
		return c.tables, nil
	}

	tables, err := c.provider.Load(ctx, c.orgID)
	if err != nil {
		return nil, err
	}

	c.log.Info("rate tables loaded",
		zap.Int("labor_rates", len(tables.LaborRates)),
		zap.Int("equipment_rates", len(tables.EquipmentRates)),
		zap.Int("material_costs", len(tables.MaterialCosts)),
		zap.Int("disposal_fees", len(tables.DisposalFees)),
		zap.Int("travel_rates", len(tables.TravelRates)),
	)
	c.tables = tables
	return tables, nil
}

// resolveEffectiveArea collapses whichever measurement the survey carries
// into square-foot-equivalent units. Only the first applicable rule fires:
// area, then linear footage, then volume, then the minimum default.
func resolveEffectiveArea(survey *surveydomain.SiteSurvey) float64 {
	if survey.AreaSqft != nil && *survey.AreaSqft > 0 {
		return *survey.AreaSqft
	}
	if survey.LinearFt != nil && *survey.LinearFt > 0 {
		return *survey.LinearFt * linearFtBandWidth
	}
	if survey.VolumeCuft != nil && *survey.VolumeCuft > 0 {
		return *survey.VolumeCuft / volumeWorkingHeight
	}
	return defaultMinimumAreaSq
}

func (c *Calculator) laborItems(tables *ratetabledomain.Tables, survey *surveydomain.SiteSurvey, area, mult float64) []estimatedomain.LineItem {
	items := make([]estimatedomain.LineItem, 0, len(tables.LaborRates))
	for _, rate := range tables.LaborRates {
		perSqft := technicianHoursPerSqft
		minimum := technicianMinimumHours
		if isSupervisorRole(rate.RoleTitle) {
			perSqft = supervisorHoursPerSqft
			minimum = supervisorMinimumHours
		}
		hours := round2(math.Max(minimum, area*perSqft*mult))
		items = append(items, newLineItem(
			estimatedomain.ItemTypeLabor,
			fmt.Sprintf("%s (%s, containment level %d)", rate.RoleTitle, string(survey.HazardType), survey.ContainmentLevel),
			hours,
			rate.HourlyRate,
		))
	}
	return items
}

func (c *Calculator) equipmentItems(tables *ratetabledomain.Tables, survey *surveydomain.SiteSurvey, area, mult float64) []estimatedomain.LineItem {
	if len(tables.EquipmentRates) == 0 {
		return nil
	}

	days := math.Max(1, math.Ceil(area/equipmentSqftPerDay*mult))
	items := make([]estimatedomain.LineItem, 0, 4)
	for _, name := range equipmentSelection(survey.HazardType, survey.ContainmentLevel) {
		rate, ok := matchEquipmentRate(tables.EquipmentRates, name)
		if !ok {
			continue
		}
		daily, ok := dailyEquipmentRate(rate)
		if !ok {
			continue
		}
		items = append(items, newLineItem(
			estimatedomain.ItemTypeEquipment,
			fmt.Sprintf("%s rental (%.0f days)", rate.Name, days),
			days,
			daily,
		))
	}

	// Any survey with a known hazard type yields at least one equipment
	// item when equipment is configured at all.
	if len(items) == 0 {
		rate := tables.EquipmentRates[0]
		if daily, ok := dailyEquipmentRate(rate); ok {
			items = append(items, newLineItem(
				estimatedomain.ItemTypeEquipment,
				fmt.Sprintf("%s rental (%.0f days)", rate.Name, days),
				days,
				daily,
			))
		}
	}
	return items
}

func matchEquipmentRate(rates []ratetabledomain.EquipmentRate, name string) (ratetabledomain.EquipmentRate, bool) {
	for _, rate := range rates {
		if strings.Contains(strings.ToLower(rate.Name), name) {
			return rate, true
		}
	}
	return ratetabledomain.EquipmentRate{}, false
}

func (c *Calculator) materialItems(tables *ratetabledomain.Tables, area float64) []estimatedomain.LineItem {
	items := make([]estimatedomain.LineItem, 0, len(tables.MaterialCosts))
	for _, material := range tables.MaterialCosts {
		var qty float64
		if strings.EqualFold(strings.TrimSpace(material.Unit), "sqft") {
			qty = area
		} else {
			qty = math.Max(1, math.Ceil(area/materialSqftPerUnit))
		}
		items = append(items, newLineItem(
			estimatedomain.ItemTypeMaterial,
			fmt.Sprintf("%s (%s)", material.Name, material.Unit),
			qty,
			material.UnitCost,
		))
	}
	return items
}

// disposalItem produces exactly one line item when a fee matches the
// survey's disposal code chain, zero otherwise.
func (c *Calculator) disposalItem(tables *ratetabledomain.Tables, survey *surveydomain.SiteSurvey, area float64) []estimatedomain.LineItem {
	if len(tables.DisposalFees) == 0 {
		return nil
	}

	for _, code := range disposalCodes(survey.HazardType, survey.ContainmentLevel) {
		fee, ok := matchDisposalFee(tables.DisposalFees, code)
		if !ok {
			continue
		}
		yards := round2(math.Max(disposalMinimumCuYards, area*disposalDepthFt/cuftPerCubicYard))
		return []estimatedomain.LineItem{newLineItem(
			estimatedomain.ItemTypeDisposal,
			fmt.Sprintf("Disposal: %s (%s)", fee.HazardCode, fee.Unit),
			yards,
			fee.UnitCost,
		)}
	}

	c.log.Warn("no disposal fee configured for hazard",
		zap.String("hazard_type", string(survey.HazardType)),
	)
	return nil
}

func matchDisposalFee(fees []ratetabledomain.DisposalFee, code string) (ratetabledomain.DisposalFee, bool) {
	for _, fee := range fees {
		if strings.EqualFold(strings.TrimSpace(fee.HazardCode), code) {
			return fee, true
		}
	}
	return ratetabledomain.DisposalFee{}, false
}

func (c *Calculator) travelItem(tables *ratetabledomain.Tables) []estimatedomain.LineItem {
	if len(tables.TravelRates) == 0 {
		return nil
	}

	rate := tables.TravelRates[0]
	var cost float64
	switch {
	case rate.FlatFee != nil:
		cost = *rate.FlatFee
	case rate.PerMileRate != nil:
		cost = *rate.PerMileRate * defaultTravelMiles
	default:
		return nil
	}
	if rate.MinimumFee != nil && cost < *rate.MinimumFee {
		cost = *rate.MinimumFee
	}

	return []estimatedomain.LineItem{newLineItem(
		estimatedomain.ItemTypeTravel,
		"Travel and mobilization",
		1,
		cost,
	)}
}

func (c *Calculator) testingItem(survey *surveydomain.SiteSurvey) []estimatedomain.LineItem {
	fee := testingBaseFee + testingPerLevelFee*float64(survey.ContainmentLevel-1)
	return []estimatedomain.LineItem{newLineItem(
		estimatedomain.ItemTypeTesting,
		"Clearance testing and air monitoring",
		1,
		fee,
	)}
}

func (c *Calculator) permitItems(survey *surveydomain.SiteSurvey) []estimatedomain.LineItem {
	items := []estimatedomain.LineItem{newLineItem(
		estimatedomain.ItemTypePermit,
		"Regulatory notification filing",
		1,
		notificationFilingFee,
	)}
	if hazardPermitRequired(survey.HazardType) {
		items = append(items, newLineItem(
			estimatedomain.ItemTypePermit,
			fmt.Sprintf("%s abatement permit", capitalize(string(survey.HazardType))),
			1,
			hazardPermitFee,
		))
	}
	return items
}

func buildTotals(items []estimatedomain.LineItem, opts estimatedomain.Options, settings *ratetabledomain.PricingSetting) *estimatedomain.Result {
	var subtotal float64
	for _, item := range items {
		if !item.Included {
			continue
		}
		subtotal += item.Total
	}
	subtotal = round2(subtotal)

	markupPercent := resolveMarkupPercent(opts, settings)
	markupAmount := round2(subtotal * markupPercent / 100)

	// Discount and tax are reserved hooks; this flow leaves them at zero.
	result := &estimatedomain.Result{
		LineItems:     items,
		Subtotal:      subtotal,
		MarkupPercent: markupPercent,
		MarkupAmount:  markupAmount,
	}
	result.Total = round2(result.Subtotal + result.MarkupAmount - result.DiscountAmount + result.TaxAmount)
	return result
}

// resolveMarkupPercent: explicit custom markup wins verbatim, then the
// organization default (floored at the configured minimum), then the
// hard-coded fallback.
func resolveMarkupPercent(opts estimatedomain.Options, settings *ratetabledomain.PricingSetting) float64 {
	if opts.CustomMarkup != nil {
		return *opts.CustomMarkup
	}
	if settings != nil && settings.DefaultMarkupPercent > 0 {
		percent := settings.DefaultMarkupPercent
		if settings.MinimumMarkupPercent > percent {
			percent = settings.MinimumMarkupPercent
		}
		return percent
	}
	return defaultMarkupPercent
}

func newLineItem(itemType estimatedomain.ItemType, description string, quantity, unitCost float64) estimatedomain.LineItem {
	return estimatedomain.LineItem{
		ItemType:    itemType,
		Description: description,
		Quantity:    quantity,
		UnitCost:    unitCost,
		Total:       round2(quantity * unitCost),
		Included:    true,
	}
}

func round2(raw float64) float64 {
	return math.Round(raw*100) / 100
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
