// Package domain contains the estimate calculator types. Estimates are
// ephemeral: they are computed per call and never persisted by this module.
package domain

// ItemType tags a line item with its pricing category.
type ItemType string

const (
	ItemTypeLabor     ItemType = "labor"
	ItemTypeEquipment ItemType = "equipment"
	ItemTypeMaterial  ItemType = "material"
	ItemTypeDisposal  ItemType = "disposal"
	ItemTypeTravel    ItemType = "travel"
	ItemTypeTesting   ItemType = "testing"
	ItemTypePermit    ItemType = "permit"
)

// CategoryOrder is the fixed generation order; sort_order values are
// assigned monotonically along it.
var CategoryOrder = []ItemType{
	ItemTypeLabor,
	ItemTypeEquipment,
	ItemTypeMaterial,
	ItemTypeDisposal,
	ItemTypeTravel,
	ItemTypeTesting,
	ItemTypePermit,
}

// LineItem is one priced row of an estimate. Total is Quantity × UnitCost
// rounded to 2 decimals. Items flagged not included are kept on the result
// but excluded from the subtotal.
type LineItem struct {
	ItemType    ItemType `json:"item_type"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitCost    float64  `json:"unit_cost"`
	Total       float64  `json:"total"`
	Included    bool     `json:"is_included"`
	SortOrder   int      `json:"sort_order"`
}

// Result is the fully itemized estimate. Every money field is rounded to
// exactly 2 decimal places before the result is returned.
type Result struct {
	LineItems []LineItem `json:"line_items"`

	Subtotal        float64 `json:"subtotal"`
	MarkupPercent   float64 `json:"markup_percent"`
	MarkupAmount    float64 `json:"markup_amount"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	TaxPercent      float64 `json:"tax_percent"`
	TaxAmount       float64 `json:"tax_amount"`
	Total           float64 `json:"total"`
}

// Options toggles optional categories and overrides markup policy. Nil
// fields take their defaults: travel, testing and permits are included,
// markup follows organization policy.
type Options struct {
	IncludeTravel  *bool    `json:"include_travel"`
	IncludeTesting *bool    `json:"include_testing"`
	IncludePermits *bool    `json:"include_permits"`
	CustomMarkup   *float64 `json:"custom_markup"`
}

// IncludeTravelOrDefault resolves the travel toggle (default true).
func (o Options) IncludeTravelOrDefault() bool {
	return o.IncludeTravel == nil || *o.IncludeTravel
}

// IncludeTestingOrDefault resolves the testing toggle (default true).
func (o Options) IncludeTestingOrDefault() bool {
	return o.IncludeTesting == nil || *o.IncludeTesting
}

// IncludePermitsOrDefault resolves the permits toggle (default true).
func (o Options) IncludePermitsOrDefault() bool {
	return o.IncludePermits == nil || *o.IncludePermits
}
