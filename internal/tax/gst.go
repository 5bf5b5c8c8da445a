// Package tax decides between intra-state (CGST+SGST) and inter-state (IGST)
// GST treatment and computes the resulting tax amounts.
package tax

import (
	"strings"

	"docdesk/internal/money"
)

// Seller defaults for this deployment (Tamil Nadu).
const (
	DefaultSellerStateCode = "33"
	DefaultSellerState     = "Tamil Nadu"
	DefaultRate            = 18.0
)

// StateSource records where a buyer state code was taken from.
type StateSource string

const (
	StateFromCode    StateSource = "state_code"
	StateFromGSTIN   StateSource = "gstin"
	StateFromName    StateSource = "state_name"
	StateFromDefault StateSource = "default"
)

// Rules holds the seller-side GST configuration.
type Rules struct {
	SellerStateCode string
	SellerState     string
	// Rate is the combined GST rate in percent applied when a document carries none.
	Rate float64
	// DefaultBuyerStateCode is used when the buyer location cannot be determined.
	DefaultBuyerStateCode string
}

// DefaultRules returns the rules for a Tamil Nadu seller at 18%.
func DefaultRules() Rules {
	return Rules{
		SellerStateCode:       DefaultSellerStateCode,
		SellerState:           DefaultSellerState,
		Rate:                  DefaultRate,
		DefaultBuyerStateCode: DefaultSellerStateCode,
	}
}

// Place describes what is known about a counterparty's location.
type Place struct {
	StateCode string
	State     string
	GSTIN     string
}

// Breakdown is the result of applying the GST rules to a taxable value.
type Breakdown struct {
	TaxableValue float64 `json:"taxableValue"`
	Rate         float64 `json:"rate"`
	CGSTRate     float64 `json:"cgstRate"`
	SGSTRate     float64 `json:"sgstRate"`
	IGSTRate     float64 `json:"igstRate"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	Interstate   bool    `json:"interstate"`
	StateCode    string  `json:"stateCode"`
}

// Total returns the sum of all tax components.
func (b Breakdown) Total() float64 {
	return money.Sum(b.CGST, b.SGST, b.IGST)
}

// ResolveStateCode determines the buyer state code: explicit code, then the
// GSTIN prefix, then the state name, then the configured default.
func (r Rules) ResolveStateCode(p Place) (string, StateSource) {
	if code := strings.TrimSpace(p.StateCode); code != "" {
		if len(code) == 1 {
			code = "0" + code
		}
		return code, StateFromCode
	}
	if code, ok := StateCodeFromGSTIN(p.GSTIN); ok {
		return code, StateFromGSTIN
	}
	if code, ok := StateCodeFor(p.State); ok {
		return code, StateFromName
	}
	code := r.DefaultBuyerStateCode
	if code == "" {
		code = r.SellerStateCode
	}
	return code, StateFromDefault
}

// Known reports whether the buyer location can be determined without the default.
func (r Rules) Known(p Place) bool {
	_, src := r.ResolveStateCode(p)
	return src != StateFromDefault
}

// Intrastate reports whether a supply to p is within the seller's state.
func (r Rules) Intrastate(p Place) bool {
	code, _ := r.ResolveStateCode(p)
	if code == r.SellerStateCode {
		return true
	}
	return r.SellerState != "" && strings.EqualFold(strings.TrimSpace(p.State), r.SellerState)
}

// Compute applies the GST split to taxable at rate percent for a supply to p.
// Negative taxable values are treated as zero.
func (r Rules) Compute(taxable float64, p Place, rate float64) Breakdown {
	if taxable < 0 {
		taxable = 0
	}
	if rate < 0 {
		rate = 0
	}
	code, _ := r.ResolveStateCode(p)
	b := Breakdown{
		TaxableValue: money.Round(taxable),
		Rate:         rate,
		StateCode:    code,
	}
	if r.Intrastate(p) {
		b.CGSTRate = rate / 2
		b.SGSTRate = rate / 2
		b.CGST = money.Percent(taxable, b.CGSTRate)
		b.SGST = money.Percent(taxable, b.SGSTRate)
		return b
	}
	b.Interstate = true
	b.IGSTRate = rate
	b.IGST = money.Percent(taxable, rate)
	return b
}

// SplitCombined divides a combined tax amount into equal CGST and SGST halves.
// The odd paisa, if any, goes to CGST.
func SplitCombined(total float64) (cgst, sgst float64) {
	total = money.Round(total)
	cgst = money.Round(total / 2)
	sgst = money.Sum(total, -cgst)
	return cgst, sgst
}
