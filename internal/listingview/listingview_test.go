package listingview

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cofoundry-backend/internal/model"
)

func makeListing(role, company, email, description, equity string, createdAt time.Time) model.Idea {
	return model.Idea{
		ID: uuid.New(),
		EditableIdeaInfo: model.EditableIdeaInfo{
			CofounderRole:   role,
			CompanyName:     company,
			EquityRange:     equity,
			IdeaDescription: description,
		},
		Email:     email,
		CreatedAt: createdAt,
	}
}

func ids(listings []model.Idea) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestParseEquityPercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3%", 3, true},
		{"3 %", 3, true},
		{"0.5%", 0.5, true},
		{"12", 12, true},
		{"3-5%", 3, true},
		{"  7% ", 7, true},
		{"", 0, false},
		{"%", 0, false},
		{"negotiable", 0, false},
		{"around 5%", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseEquityPercent(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "input %q", c.in)
		}
	}
}

func TestEquityBandBoundaries(t *testing.T) {
	cases := []struct {
		equity string
		bands  []EquityBand
	}{
		{"0.5%", []EquityBand{BandBelow1}},
		{"1%", []EquityBand{Band1To5}},
		{"3%", []EquityBand{Band1To5}},
		// 5% sits in both adjacent bands; both ends are inclusive.
		{"5%", []EquityBand{Band1To5, Band5To10}},
		{"10%", []EquityBand{Band5To10}},
		{"10.1%", []EquityBand{BandAbove10}},
		// Unparseable equity matches no band except "all".
		{"negotiable", nil},
	}

	allBands := []EquityBand{BandBelow1, Band1To5, Band5To10, BandAbove10}
	for _, c := range cases {
		for _, band := range allBands {
			want := false
			for _, b := range c.bands {
				if b == band {
					want = true
				}
			}
			assert.Equal(t, want, inBand(c.equity, band), "equity %q band %q", c.equity, band)
		}
		assert.True(t, inBand(c.equity, BandAll), "equity %q must pass the all band", c.equity)
	}
}

func TestVisibleListingsEquityAndSort(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	l1 := makeListing("CTO", "TechNova", "a@example.com", "tooling", "3%", t1)
	l2 := makeListing("CEO", "DataForge", "b@example.com", "analytics", "7%", t2)
	all := []model.Idea{l1, l2}

	got := VisibleListings(all, Filter{Tab: TabAll, Band: Band1To5, Sort: SortNewest})
	assert.Equal(t, []uuid.UUID{l1.ID}, ids(got))

	got = VisibleListings(all, Filter{Tab: TabAll, Band: BandAll, Sort: SortNewest})
	assert.Equal(t, []uuid.UUID{l2.ID, l1.ID}, ids(got))

	got = VisibleListings(all, Filter{Tab: TabAll, Band: BandAll, Sort: SortOldest})
	assert.Equal(t, []uuid.UUID{l1.ID, l2.ID}, ids(got))
}

func TestVisibleListingsSearch(t *testing.T) {
	t0 := time.Now()
	l1 := makeListing("CTO", "TechNova", "carol@example.com", "developer tooling", "3%", t0)
	l2 := makeListing("CMO", "DataForge", "dan@example.com", "growth marketing", "3%", t0)
	all := []model.Idea{l1, l2}

	// Matches are case-insensitive and span role, company, email and description.
	for _, q := range []string{"cto", "TECHNOVA", "carol@", "tooling"} {
		got := VisibleListings(all, Filter{Tab: TabAll, Query: q, Band: BandAll})
		assert.Equal(t, []uuid.UUID{l1.ID}, ids(got), "query %q", q)
	}

	got := VisibleListings(all, Filter{Tab: TabAll, Query: "", Band: BandAll})
	assert.Len(t, got, 2)

	got = VisibleListings(all, Filter{Tab: TabAll, Query: "no such thing", Band: BandAll})
	assert.Empty(t, got)
}

func TestVisibleListingsSearchRunsAfterTab(t *testing.T) {
	t0 := time.Now()
	saved := makeListing("CTO", "TechNova", "a@example.com", "saved one", "3%", t0)
	unsaved := makeListing("CTO", "TechNova", "b@example.com", "unsaved one", "3%", t0)
	all := []model.Idea{saved, unsaved}

	f := Filter{
		Tab:      TabSaved,
		Query:    "technova",
		Band:     BandAll,
		SavedIDs: NewSavedSet([]uuid.UUID{saved.ID}),
	}
	got := VisibleListings(all, f)
	assert.Equal(t, []uuid.UUID{saved.ID}, ids(got))
}

func TestSavedTabOnEmptySet(t *testing.T) {
	l1 := makeListing("CTO", "TechNova", "a@example.com", "x", "3%", time.Now())

	got := VisibleListings([]model.Idea{l1}, Filter{Tab: TabSaved, Band: BandAll})
	assert.Empty(t, got)

	// Saving the listing makes the saved tab show exactly it.
	got = VisibleListings([]model.Idea{l1}, Filter{
		Tab:      TabSaved,
		Band:     BandAll,
		SavedIDs: NewSavedSet([]uuid.UUID{l1.ID}),
	})
	assert.Equal(t, []uuid.UUID{l1.ID}, ids(got))
}

func TestAppliedTabMirrorsAll(t *testing.T) {
	t0 := time.Now()
	all := []model.Idea{
		makeListing("CTO", "A", "a@example.com", "x", "3%", t0),
		makeListing("CEO", "B", "b@example.com", "y", "7%", t0),
	}

	fromAll := VisibleListings(all, Filter{Tab: TabAll, Band: BandAll})
	fromApplied := VisibleListings(all, Filter{Tab: TabApplied, Band: BandAll})
	assert.Equal(t, ids(fromAll), ids(fromApplied))
}

func TestSortStability(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Three listings sharing a timestamp, one zero-timestamp straggler.
	a := makeListing("A", "", "", "", "", t0)
	b := makeListing("B", "", "", "", "", t0)
	c := makeListing("C", "", "", "", "", t0)
	z := makeListing("Z", "", "", "", "", time.Time{})
	all := []model.Idea{a, b, z, c}

	newest := VisibleListings(all, Filter{Tab: TabAll, Band: BandAll, Sort: SortNewest})
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID, z.ID}, ids(newest))

	oldest := VisibleListings(all, Filter{Tab: TabAll, Band: BandAll, Sort: SortOldest})
	assert.Equal(t, []uuid.UUID{z.ID, a.ID, b.ID, c.ID}, ids(oldest))
}

func TestZeroFilterShowsEverything(t *testing.T) {
	t0 := time.Now()
	all := []model.Idea{
		makeListing("CTO", "TechNova", "a@example.com", "x", "3%", t0),
		makeListing("CEO", "DataForge", "b@example.com", "y", "none", t0),
	}

	// An unset Filter applies no equity filter at all; even listings with
	// unparseable equity stay visible.
	got := VisibleListings(all, Filter{})
	assert.Len(t, got, 2)

	counts := TabCounts(all, Filter{})
	assert.Equal(t, 2, counts[TabAll])
}

func TestTabCounts(t *testing.T) {
	t0 := time.Now()
	l1 := makeListing("CTO", "TechNova", "a@example.com", "x", "3%", t0)
	l2 := makeListing("CEO", "DataForge", "b@example.com", "y", "7%", t0)
	l3 := makeListing("CMO", "TechNova", "c@example.com", "z", "none", t0)
	all := []model.Idea{l1, l2, l3}

	counts := TabCounts(all, Filter{SavedIDs: NewSavedSet([]uuid.UUID{l2.ID})})
	assert.Equal(t, 3, counts[TabAll])
	assert.Equal(t, 3, counts[TabApplied])
	assert.Equal(t, 1, counts[TabSaved])

	// Counts respect the active filters.
	counts = TabCounts(all, Filter{Band: Band5To10, SavedIDs: NewSavedSet([]uuid.UUID{l2.ID})})
	assert.Equal(t, 1, counts[TabAll])
	assert.Equal(t, 1, counts[TabSaved])
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, TabSaved, ParseTab("saved"))
	assert.Equal(t, TabApplied, ParseTab("APPLIED"))
	assert.Equal(t, TabAll, ParseTab("bogus"))
	assert.Equal(t, TabAll, ParseTab(""))

	assert.Equal(t, SortOldest, ParseSort("oldest"))
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("bogus"))

	assert.Equal(t, Band5To10, ParseEquityBand("5to10"))
	assert.Equal(t, BandAll, ParseEquityBand("anything"))
}

func TestTruncate(t *testing.T) {
	short := "short description"
	got, cut := Truncate(short)
	assert.Equal(t, short, got)
	assert.False(t, cut)

	long := ""
	for len(long) <= TruncateThreshold {
		long += "lorem ipsum "
	}
	got, cut = Truncate(long)
	assert.True(t, cut)
	assert.Len(t, got, TruncateThreshold)
}

func TestTruncateMultiByte(t *testing.T) {
	long := "a" + strings.Repeat("あ", 2*TruncateThreshold)
	got, cut := Truncate(long)
	assert.True(t, cut)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, TruncateThreshold, utf8.RuneCountInString(got))

	// At the threshold in runes but over it in bytes: no cut.
	exact := strings.Repeat("あ", TruncateThreshold)
	got, cut = Truncate(exact)
	assert.Equal(t, exact, got)
	assert.False(t, cut)
}
