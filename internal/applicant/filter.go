package applicant

import "strings"

// StatusAll is the filter value that matches every status.
const StatusAll Status = "All"

// Filter selects the visible subset of applications.
type Filter struct {
	Query  string
	Status Status // StatusAll or "" matches any status
	// ShortlistedOnly forces Status = Shortlisted regardless of Status.
	ShortlistedOnly bool
}

// Match reports whether a passes both the text and the status predicate.
func (f Filter) Match(a Application) bool {
	if !f.matchText(a) {
		return false
	}
	if f.ShortlistedOnly {
		return a.Status == StatusShortlisted
	}
	if f.Status == "" || f.Status == StatusAll {
		return true
	}
	return a.Status == f.Status
}

func (f Filter) matchText(a Application) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.CandidateName), q) ||
		strings.Contains(strings.ToLower(a.JobTitle), q)
}

// Apply returns the matching records in input order. The result never
// aliases records.
func (f Filter) Apply(records []Application) []Application {
	out := make([]Application, 0, len(records))
	for _, a := range records {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// NextStatusFilter cycles All -> New -> ... -> Rejected -> All.
func NextStatusFilter(current Status) Status {
	if current == "" || current == StatusAll {
		return Statuses[0]
	}
	for i, st := range Statuses {
		if st == current && i+1 < len(Statuses) {
			return Statuses[i+1]
		}
	}
	return StatusAll
}
