package dataset

import "sort"

// FilterYears keeps papers published within the inclusive year range.
// Order is preserved.
func FilterYears(papers []Paper, start, end int) []Paper {
	var kept []Paper
	for _, p := range papers {
		if p.Year >= start && p.Year <= end {
			kept = append(kept, p)
		}
	}
	return kept
}

// IDSet collects the paper ids into a set.
func IDSet(papers []Paper) map[string]bool {
	set := make(map[string]bool, len(papers))
	for _, p := range papers {
		set[p.ID] = true
	}
	return set
}

// RestrictAuthorships keeps rows naming a surviving paper.
func RestrictAuthorships(rows []Authorship, papers map[string]bool) []Authorship {
	var kept []Authorship
	for _, a := range rows {
		if papers[a.PaperID] {
			kept = append(kept, a)
		}
	}
	return kept
}

// AuthorIDSet collects the author ids appearing in the rows.
func AuthorIDSet(rows []Authorship) map[string]bool {
	set := make(map[string]bool)
	for _, a := range rows {
		set[a.AuthorID] = true
	}
	return set
}

// RestrictPersons keeps person rows whose id appears in the author set.
func RestrictPersons(table *PersonTable, authors map[string]bool) *PersonTable {
	kept := &PersonTable{Header: table.Header}
	for _, p := range table.Rows {
		if authors[p.ID] {
			kept.Rows = append(kept.Rows, p)
		}
	}
	return kept
}

// RestrictReferences keeps citations whose endpoints both survive.
func RestrictReferences(refs []Reference, papers map[string]bool) []Reference {
	var kept []Reference
	for _, ref := range refs {
		if papers[ref.PaperID] && papers[ref.RefID] {
			kept = append(kept, ref)
		}
	}
	return kept
}

// Venues returns the distinct venue names, sorted.
func Venues(papers []Paper) []string {
	seen := make(map[string]bool)
	var venues []string
	for _, p := range papers {
		if !seen[p.Venue] {
			seen[p.Venue] = true
			venues = append(venues, p.Venue)
		}
	}
	sort.Strings(venues)
	return venues
}

// Years returns the distinct publication years, ascending.
func Years(papers []Paper) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range papers {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	sort.Ints(years)
	return years
}
