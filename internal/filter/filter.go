package filter

import (
	"github.com/amishk599/leadbrief/internal/model"
)

// ExistingCompanies returns the set of company names already tracked in rows.
// Names are compared exactly; "Acme" and "acme" are different companies.
func ExistingCompanies(rows []model.OpportunityRow) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[r.Company] = struct{}{}
	}
	return set
}

// LeadFilter admits candidates whose company is not yet tracked, up to a
// per-run cap. Admission is first-come-first-served; an admitted company is
// treated as tracked for the rest of the run.
type LeadFilter struct {
	existing map[string]struct{}
	max      int
	admitted int
}

// NewLeadFilter returns a filter over a copy of existing that admits at most max candidates.
func NewLeadFilter(existing map[string]struct{}, max int) *LeadFilter {
	seen := make(map[string]struct{}, len(existing))
	for name := range existing {
		seen[name] = struct{}{}
	}
	return &LeadFilter{existing: seen, max: max}
}

// Admit reports whether c should become a new row, and records it if so.
func (f *LeadFilter) Admit(c model.Candidate) bool {
	if f.admitted >= f.max {
		return false
	}
	if _, ok := f.existing[c.Company]; ok {
		return false
	}
	f.existing[c.Company] = struct{}{}
	f.admitted++
	return true
}

// Admitted returns how many candidates have been admitted so far.
func (f *LeadFilter) Admitted() int {
	return f.admitted
}

// Full reports whether the cap has been reached.
func (f *LeadFilter) Full() bool {
	return f.admitted >= f.max
}
