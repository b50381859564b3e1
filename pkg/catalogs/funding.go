package catalogs

import (
	"fmt"
	"slices"
	"strings"
)

// FundingSource is a program that funds services, together with the entry
// categories and classifications it covers.
type FundingSource struct {
	Code                   string           `json:"fundingSourceCode" yaml:"fundingSourceCode"`
	Text                   string           `json:"fundingSourceText" yaml:"fundingSourceText"`
	EntryCategories        []EntryCategory  `json:"entryCategories,omitempty" yaml:"entryCategories,omitempty"`
	Classifications        []Classification `json:"classifications,omitempty" yaml:"classifications,omitempty"`
	BudgetClaimingSequence []BudgetClaim    `json:"budgetClaimingSequence,omitempty" yaml:"budgetClaimingSequence,omitempty"`
}

// EntryCategory is a participant entry category of a funding source.
type EntryCategory struct {
	Code string `json:"entryCategoryCode,omitempty" yaml:"entryCategoryCode,omitempty"`
	Text string `json:"entryCategoryText" yaml:"entryCategoryText"`
}

// BudgetClaim is one step of a funding source's budget claiming sequence.
type BudgetClaim struct {
	Priority       int    `json:"priority" yaml:"priority"`
	BudgetTypeCode string `json:"budgetTypeCode,omitempty" yaml:"budgetTypeCode,omitempty"`
	BudgetTypeText string `json:"budgetTypeText" yaml:"budgetTypeText"`
}

// ClaimingSequence returns a copy of the budget claiming sequence ordered
// by ascending priority. Equal priorities keep their input order.
func (f FundingSource) ClaimingSequence() []BudgetClaim {
	seq := slices.Clone(f.BudgetClaimingSequence)
	slices.SortStableFunc(seq, func(a, b BudgetClaim) int {
		return a.Priority - b.Priority
	})
	return seq
}

// FormatClaimingSequence renders the sequence inline, e.g. "1. Home Care → 2. Respite".
func (f FundingSource) FormatClaimingSequence() string {
	seq := f.ClaimingSequence()
	parts := make([]string, 0, len(seq))
	for _, b := range seq {
		parts = append(parts, fmt.Sprintf("%d. %s", b.Priority, b.BudgetTypeText))
	}
	return strings.Join(parts, " → ")
}
