package catalogs

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Rate periods with special display rules.
const (
	PeriodPercentage = "PERCENTAGE"
	OpenEndedValidTo = "9999-01-01" // validTo of a rate with no end date
)

// BudgetCodes holds the two budget code lists: codes a participant is
// entitled to and codes claimed against usage.
type BudgetCodes struct {
	Entitlement []BudgetCode `json:"entitlementCodes" yaml:"entitlementCodes"`
	Usage       []BudgetCode `json:"usageCodes" yaml:"usageCodes"`
}

// BudgetCode is one budget item and its rate history.
type BudgetCode struct {
	Code  string `json:"budgetItemCode" yaml:"budgetItemCode"`
	Text  string `json:"budgetItemText" yaml:"budgetItemText"`
	Rates []Rate `json:"rates,omitempty" yaml:"rates,omitempty"`
}

// Rate is an amount allocated per frequency period. A nil Rate means the
// code carries no amount for the period.
type Rate struct {
	Rate            *float64 `json:"rate" yaml:"rate"`
	Frequency       int      `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	FrequencyPeriod string   `json:"frequencyPeriod,omitempty" yaml:"frequencyPeriod,omitempty"`
	ValidFrom       string   `json:"validFrom,omitempty" yaml:"validFrom,omitempty"`
	ValidTo         string   `json:"validTo,omitempty" yaml:"validTo,omitempty"`
}

// Len returns the number of codes in both lists.
func (b BudgetCodes) Len() int {
	return len(b.Entitlement) + len(b.Usage)
}

// FirstRate returns the code's headline rate.
func (c BudgetCode) FirstRate() (Rate, bool) {
	if len(c.Rates) == 0 {
		return Rate{}, false
	}
	return c.Rates[0], true
}

var amountPrinter = message.NewPrinter(language.English)

// Amount formats the rate value: "12.5%" for percentages, "$1,234.56"
// otherwise. It returns "" when there is no value.
func (r Rate) Amount() string {
	if r.Rate == nil {
		return ""
	}
	if r.FrequencyPeriod == PeriodPercentage {
		return fmt.Sprintf("%g%%", *r.Rate)
	}
	return "$" + amountPrinter.Sprint(number.Decimal(*r.Rate, number.MaxFractionDigits(3)))
}

// Per formats the frequency, e.g. "/quarter" or "x2 /week". Percentages
// have none.
func (r Rate) Per() string {
	if r.FrequencyPeriod == PeriodPercentage {
		return ""
	}
	var b strings.Builder
	if r.Frequency != 0 && r.Frequency != 1 {
		fmt.Fprintf(&b, "x%d ", r.Frequency)
	}
	b.WriteString("/")
	b.WriteString(strings.ToLower(r.FrequencyPeriod))
	return b.String()
}

// String formats the rate for display, e.g. "$1,234 /quarter".
func (r Rate) String() string {
	amount := r.Amount()
	if amount == "" {
		return "No rate"
	}
	if per := r.Per(); per != "" {
		return amount + " " + per
	}
	return amount
}

// Validity formats the validity window. An open-ended rate shows only its
// start date.
func (r Rate) Validity() string {
	if r.ValidFrom == "" {
		return ""
	}
	if r.ValidTo == "" || r.ValidTo == OpenEndedValidTo {
		return r.ValidFrom
	}
	return r.ValidFrom + " – " + r.ValidTo
}
