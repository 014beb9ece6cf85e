// Package listingview derives the dashboard view of a listing collection:
// tab selection, text search, equity-band filtering and ordering. The same
// derivation backs the developer, recruiter and investor dashboards.
package listingview

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cofoundry-backend/internal/model"
)

// Tab selects which slice of the collection a dashboard shows.
type Tab string

const (
	TabAll   Tab = "all"
	TabSaved Tab = "saved"
	// TabApplied shows the same set as TabAll; there is no persisted
	// applied-listing tracking yet.
	TabApplied Tab = "applied"
)

// ParseTab maps a query-string value to a Tab, defaulting to TabAll.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(s)) {
	case TabSaved:
		return TabSaved
	case TabApplied:
		return TabApplied
	default:
		return TabAll
	}
}

// SortOption orders listings by creation time.
type SortOption string

const (
	SortNewest SortOption = "newest"
	SortOldest SortOption = "oldest"
)

// ParseSort maps a query-string value to a SortOption, defaulting to SortNewest.
func ParseSort(s string) SortOption {
	if SortOption(strings.ToLower(s)) == SortOldest {
		return SortOldest
	}
	return SortNewest
}

// EquityBand filters listings by their offered equity percentage.
type EquityBand string

const (
	BandAll     EquityBand = "all"
	BandBelow1  EquityBand = "below1"
	Band1To5    EquityBand = "1to5"
	Band5To10   EquityBand = "5to10"
	BandAbove10 EquityBand = "above10"
)

// ParseEquityBand maps a query-string value to an EquityBand, defaulting to BandAll.
func ParseEquityBand(s string) EquityBand {
	switch EquityBand(strings.ToLower(s)) {
	case BandBelow1:
		return BandBelow1
	case Band1To5:
		return Band1To5
	case Band5To10:
		return Band5To10
	case BandAbove10:
		return BandAbove10
	default:
		return BandAll
	}
}

// SavedSet is the session-local set of saved listing ids.
type SavedSet map[uuid.UUID]struct{}

// NewSavedSet builds a SavedSet from a list of ids.
func NewSavedSet(ids []uuid.UUID) SavedSet {
	set := make(SavedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports membership; a nil set contains nothing.
func (s SavedSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Filter holds every dashboard control that narrows or orders the collection.
type Filter struct {
	Tab      Tab
	Query    string
	Band     EquityBand
	Sort     SortOption
	SavedIDs SavedSet
}

// VisibleListings applies the dashboard controls in their fixed order:
// tab, then text search, then equity band, then sort. The order is part of
// the contract; search runs over the tab-selected subset, not the whole
// collection.
func VisibleListings(listings []model.Idea, f Filter) []model.Idea {
	out := make([]model.Idea, 0, len(listings))

	for _, l := range listings {
		if f.Tab == TabSaved && !f.SavedIDs.Contains(l.ID) {
			continue
		}
		if !matchesQuery(l, f.Query) {
			continue
		}
		if !inBand(l.EquityRange, f.Band) {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, f.Sort)
	return out
}

// matchesQuery is a case-insensitive substring match over the searchable
// fields. An empty query matches everything.
func matchesQuery(l model.Idea, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{l.CofounderRole, l.CompanyName, l.Email, l.IdeaDescription} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ParseEquityPercent extracts the leading numeric value from an equity-range
// string, ignoring a trailing "%" and anything after the number ("3%",
// "3 %", "3-5%" all parse to 3). The bool is false when no leading number
// exists.
func ParseEquityPercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}

	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// inBand reports whether an equity-range string falls in the band. The band
// boundaries are inclusive on both ends, so a listing at exactly 5% belongs
// to both Band1To5 and Band5To10. Unparseable strings fall in no band except
// BandAll. The zero band of an unset Filter means no equity filter.
func inBand(equityRange string, band EquityBand) bool {
	if band == BandAll || band == "" {
		return true
	}
	v, ok := ParseEquityPercent(equityRange)
	if !ok {
		return false
	}
	switch band {
	case BandBelow1:
		return v < 1
	case Band1To5:
		return v >= 1 && v <= 5
	case Band5To10:
		return v >= 5 && v <= 10
	case BandAbove10:
		return v > 10
	}
	return false
}

// sortListings orders by creation time. Ties and zero timestamps keep their
// relative input order.
func sortListings(listings []model.Idea, option SortOption) {
	sort.SliceStable(listings, func(i, j int) bool {
		if option == SortOldest {
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

// TabCounts reports how many listings each tab would show under the current
// search and equity filters. "applied" mirrors "all".
func TabCounts(listings []model.Idea, f Filter) map[Tab]int {
	counts := map[Tab]int{TabAll: 0, TabSaved: 0, TabApplied: 0}
	for _, l := range listings {
		if !matchesQuery(l, f.Query) || !inBand(l.EquityRange, f.Band) {
			continue
		}
		counts[TabAll]++
		counts[TabApplied]++
		if f.SavedIDs.Contains(l.ID) {
			counts[TabSaved]++
		}
	}
	return counts
}

// TruncateThreshold is the length above which long free-text fields are
// served truncated, with the full text available on expansion.
const TruncateThreshold = 150

// Truncate shortens a long field to the threshold and reports whether it was
// cut. The threshold counts runes, never splitting a multi-byte character.
// Fields at or under the threshold pass through unchanged.
func Truncate(s string) (string, bool) {
	if len(s) <= TruncateThreshold {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= TruncateThreshold {
		return s, false
	}
	return string(runes[:TruncateThreshold]), true
}
