// Package catalog is the activity catalog provider: the read-only source of
// preferences, budget tiers, destinations and the activity templates users
// add to their itinerary.
//
// The built-in catalog is a TOML document embedded at compile time. A file
// with the same layout can replace it (see Load).
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

//go:embed catalog.toml
var builtin []byte

// Destination is a preset destination offered on trip creation.
type Destination struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SampleEntry places one catalog activity in the sample itinerary.
// DayOffset counts from the first day of the trip.
type SampleEntry struct {
	ActivityID string
	DayOffset  int
	TimeSlot   string
}

// Catalog is an immutable, validated catalog. It is safe for concurrent use.
type Catalog struct {
	preferences  []domain.Preference
	tiers        []domain.BudgetTier
	destinations []Destination
	activities   []domain.Activity
	defaults     []string
	sample       []SampleEntry

	byID         map[string]domain.Activity
	byPreference map[string][]string
}

// catalogFile mirrors the TOML layout.
type catalogFile struct {
	Defaults     []string         `toml:"defaults"`
	Preferences  []preferenceRow  `toml:"preferences"`
	BudgetTiers  []tierRow        `toml:"budget_tiers"`
	Destinations []destinationRow `toml:"destinations"`
	Activities   []activityRow    `toml:"activities"`
	Sample       []sampleRow      `toml:"sample"`
}

type preferenceRow struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Icon string `toml:"icon"`
}

type tierRow struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Amount float64 `toml:"amount"`
}

type destinationRow struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Image string `toml:"image"`
}

type activityRow struct {
	ID          string   `toml:"id"`
	Preferences []string `toml:"preferences"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Location    string   `toml:"location"`
	Image       string   `toml:"image"`
	Price       float64  `toml:"price"`
	Category    string   `toml:"category"`
	Duration    float64  `toml:"duration"`
	Rating      float64  `toml:"rating"`
}

type sampleRow struct {
	Activity string `toml:"activity"`
	Day      int    `toml:"day"`
	TimeSlot string `toml:"time_slot"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog from path, or returns the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c := &Catalog{
		defaults:     f.Defaults,
		byID:         make(map[string]domain.Activity, len(f.Activities)),
		byPreference: make(map[string][]string),
	}

	prefIDs := make(map[string]bool, len(f.Preferences))
	for _, p := range f.Preferences {
		if p.ID == "" || prefIDs[p.ID] {
			return nil, fmt.Errorf("catalog.Parse: %w: preference id %q is empty or duplicated", domain.ErrValidation, p.ID)
		}
		prefIDs[p.ID] = true
		c.preferences = append(c.preferences, domain.Preference{ID: p.ID, Name: p.Name, Icon: p.Icon})
	}

	for _, t := range f.BudgetTiers {
		if t.ID == "" || t.Amount < 0 {
			return nil, fmt.Errorf("catalog.Parse: %w: budget tier %q needs an id and a non-negative amount", domain.ErrValidation, t.ID)
		}
		c.tiers = append(c.tiers, domain.BudgetTier{ID: t.ID, Name: t.Name, Amount: decimal.NewFromFloat(t.Amount)})
	}

	for _, d := range f.Destinations {
		c.destinations = append(c.destinations, Destination(d))
	}

	for _, row := range f.Activities {
		a, err := row.toActivity()
		if err != nil {
			return nil, fmt.Errorf("catalog.Parse: %w", err)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("catalog.Parse: %w: duplicate activity id %q", domain.ErrValidation, a.ID)
		}
		c.byID[a.ID] = a
		c.activities = append(c.activities, a)
		for _, p := range row.Preferences {
			if !prefIDs[p] {
				return nil, fmt.Errorf("catalog.Parse: %w: activity %q references unknown preference %q", domain.ErrValidation, a.ID, p)
			}
			c.byPreference[p] = append(c.byPreference[p], a.ID)
		}
	}

	for _, p := range c.defaults {
		if !prefIDs[p] {
			return nil, fmt.Errorf("catalog.Parse: %w: unknown default preference %q", domain.ErrValidation, p)
		}
	}

	for _, s := range f.Sample {
		if _, ok := c.byID[s.Activity]; !ok {
			return nil, fmt.Errorf("catalog.Parse: %w: sample references unknown activity %q", domain.ErrValidation, s.Activity)
		}
		if s.Day < 0 {
			return nil, fmt.Errorf("catalog.Parse: %w: sample day offset must not be negative", domain.ErrValidation)
		}
		c.sample = append(c.sample, SampleEntry{ActivityID: s.Activity, DayOffset: s.Day, TimeSlot: s.TimeSlot})
	}

	return c, nil
}

// toActivity validates a row and converts it to a domain.Activity.
func (r activityRow) toActivity() (domain.Activity, error) {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return domain.Activity{}, fmt.Errorf("%w: activity id is required", domain.ErrValidation)
	case strings.TrimSpace(r.Name) == "":
		return domain.Activity{}, fmt.Errorf("%w: activity %q has no name", domain.ErrValidation, r.ID)
	case r.Price < 0:
		return domain.Activity{}, fmt.Errorf("%w: activity %q has a negative price", domain.ErrValidation, r.ID)
	case r.Duration <= 0:
		return domain.Activity{}, fmt.Errorf("%w: activity %q needs a positive duration", domain.ErrValidation, r.ID)
	case r.Rating < 0 || r.Rating > 5:
		return domain.Activity{}, fmt.Errorf("%w: activity %q rating must be between 0 and 5", domain.ErrValidation, r.ID)
	}
	category := strings.ToLower(strings.TrimSpace(r.Category))
	if category == "" {
		category = domain.CategoryOther
	}
	return domain.Activity{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Location:      r.Location,
		Image:         r.Image,
		Price:         decimal.NewFromFloat(r.Price),
		Category:      category,
		DurationHours: r.Duration,
		Rating:        r.Rating,
	}, nil
}

// Preferences returns the preference catalog in display order.
func (c *Catalog) Preferences() []domain.Preference {
	return append([]domain.Preference(nil), c.preferences...)
}

// HasPreference reports whether id names a preference in the catalog.
func (c *Catalog) HasPreference(id string) bool {
	for _, p := range c.preferences {
		if p.ID == id {
			return true
		}
	}
	return false
}

// BudgetTiers returns the budget presets in display order.
func (c *Catalog) BudgetTiers() []domain.BudgetTier {
	return append([]domain.BudgetTier(nil), c.tiers...)
}

// Tier looks up a budget tier by id.
func (c *Catalog) Tier(id string) (domain.BudgetTier, bool) {
	for _, t := range c.tiers {
		if t.ID == id {
			return t, true
		}
	}
	return domain.BudgetTier{}, false
}

// Destinations returns the destination presets.
func (c *Catalog) Destinations() []Destination {
	return append([]Destination(nil), c.destinations...)
}

// DestinationLabel resolves a destination preset id to its display name.
// Anything that is not a preset id is returned unchanged, so free-text
// destinations pass through.
func (c *Catalog) DestinationLabel(idOrName string) string {
	for _, d := range c.destinations {
		if d.ID == idOrName {
			return d.Name
		}
	}
	return idOrName
}

// ByID returns the catalog activity with the given id.
// Returns domain.ErrNotFound if there is none.
func (c *Catalog) ByID(id string) (domain.Activity, error) {
	a, ok := c.byID[id]
	if !ok {
		return domain.Activity{}, fmt.Errorf("catalog.ByID: %w: no catalog activity %q", domain.ErrNotFound, id)
	}
	return a, nil
}

// ForPreferences returns the activities offered for any of the given
// preferences, deduplicated by catalog id. Activities appear in the order of
// the preferences, then in catalog order. Unknown preference ids are ignored.
func (c *Catalog) ForPreferences(prefIDs []string) []domain.Activity {
	seen := make(map[string]bool)
	out := []domain.Activity{}
	for _, p := range prefIDs {
		for _, id := range c.byPreference[p] {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, c.byID[id])
		}
	}
	return out
}

// Defaults returns the activities shown when no preference is selected.
func (c *Catalog) Defaults() []domain.Activity {
	return c.ForPreferences(c.defaults)
}

// SamplePlan returns the entries of the sample itinerary.
func (c *Catalog) SamplePlan() []SampleEntry {
	return append([]SampleEntry(nil), c.sample...)
}
