package adventure

import (
	"sort"

	"belizevibes-booking/internal/domain/money"
)

// Entry is a static catalog record. Price keeps the display form it was
// authored in ("$100", "BZ$ 1,299.50").
type Entry struct {
	ID    string
	Title string
	Price string
}

func (e Entry) PricePerPerson() (money.Money, error) {
	return money.Parse(e.Price)
}

type Catalog struct {
	entries map[string]Entry
}

func NewCatalog(entries []Entry) *Catalog {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return &Catalog{entries: m}
}

func (c *Catalog) Lookup(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the records ordered by id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var staticEntries = []Entry{
	{ID: "tour-42", Title: "Cave Tubing & Zip Line Combo", Price: "$100"},
	{ID: "atm-cave", Title: "Actun Tunichil Muknal Cave Expedition", Price: "$125"},
	{ID: "blue-hole-dive", Title: "Great Blue Hole Dive Trip", Price: "$350"},
	{ID: "xunantunich", Title: "Xunantunich Maya Ruins Day Trip", Price: "$89.50"},
	{ID: "caye-caulker-snorkel", Title: "Hol Chan & Shark Ray Alley Snorkel", Price: "$75"},
	{ID: "cockscomb-hike", Title: "Cockscomb Basin Jaguar Preserve Hike", Price: "$95"},
	{ID: "lamanai-river", Title: "Lamanai River Safari", Price: "$140"},
	{ID: "belize-week", Title: "Seven-Day Jungle to Reef Expedition", Price: "$1,299.50"},
}

// StaticCatalog is the in-process fallback consulted when the live catalog misses.
var StaticCatalog = NewCatalog(staticEntries)
