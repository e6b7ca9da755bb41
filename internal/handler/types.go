package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// Money fields are decimal.Decimal, which encodes as a JSON string ("12.50")
// and decodes from either a string or a number.

// Activity is a catalog activity.
type Activity struct {
	Id            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Image         string          `json:"image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	DurationHours float64         `json:"duration_hours"`
	Rating        float64         `json:"rating"`
}

// ScheduledActivity is an activity placed on a day of the trip.
type ScheduledActivity struct {
	Id        openapi_types.UUID `json:"id"`
	CatalogId string             `json:"catalog_id"`
	Date      openapi_types.Date `json:"date"`
	TimeSlot  string             `json:"time_slot"`
	Activity  Activity           `json:"activity"`
}

// Trip is the trip of a session together with its itinerary.
type Trip struct {
	Id            openapi_types.UUID  `json:"id"`
	Name          string              `json:"name"`
	Destination   string              `json:"destination"`
	StartDate     openapi_types.Date  `json:"start_date"`
	EndDate       openapi_types.Date  `json:"end_date"`
	Budget        decimal.Decimal     `json:"budget"`
	TravelerCount int                 `json:"traveler_count"`
	Activities    []ScheduledActivity `json:"activities"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Expense is one entry of the expense ledger.
type Expense struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Session is the full state of a planning session.
type Session struct {
	Id                  openapi_types.UUID  `json:"id"`
	Preferences         []domain.Preference `json:"preferences"`
	SelectedPreferences []string            `json:"selected_preferences"`
	BudgetTier          *string             `json:"budget_tier,omitempty"`
	Budget              decimal.Decimal     `json:"budget"`
	Trip                *Trip               `json:"trip,omitempty"`
	Expenses            []Expense           `json:"expenses"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// PreferenceCatalog is the response of GET /preferences.
type PreferenceCatalog struct {
	Preferences []domain.Preference `json:"preferences"`
	BudgetTiers []domain.BudgetTier `json:"budget_tiers"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Category is a category id with its display label.
type Category struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// CatalogPage is the response of GET /sessions/{id}/catalog.
type CatalogPage struct {
	Data       []Activity `json:"data"`
	Categories []Category `json:"categories"`
	Scheduled  []string   `json:"scheduled"`
	Pagination Pagination `json:"pagination"`
}

// DayList is the response of GET /sessions/{id}/days.
type DayList struct {
	Days []openapi_types.Date `json:"days"`
}

// DaySpend is the activity spend of one day.
type DaySpend struct {
	Date   openapi_types.Date `json:"date"`
	Amount decimal.Decimal    `json:"amount"`
}

// CategorySpend is the spend of one category, largest first in responses.
type CategorySpend struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
}

// BudgetSummary is the response of GET /sessions/{id}/budget.
type BudgetSummary struct {
	Budget          decimal.Decimal `json:"budget"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	PerCategory     []CategorySpend `json:"per_category"`
	PerDay          []DaySpend      `json:"per_day"`
	DayCount        int             `json:"day_count"`
	TravelerCount   int             `json:"traveler_count"`
	BudgetPerDay    decimal.Decimal `json:"budget_per_day"`
	BudgetPerPerson decimal.Decimal `json:"budget_per_person"`
	PercentSpent    int             `json:"percent_spent"`
	PercentSpentRaw int             `json:"percent_spent_raw"`
	Status          string          `json:"status"`
	OverBudgetBy    decimal.Decimal `json:"over_budget_by"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// SampleResult is the response of POST /sessions/{id}/itinerary/sample.
type SampleResult struct {
	Generated  bool                `json:"generated"`
	Activities []ScheduledActivity `json:"activities"`
}

// ExportRow is one row of the itinerary export.
type ExportRow struct {
	TripId        openapi_types.UUID `json:"trip_id"`
	TripName      string             `json:"trip_name"`
	Destination   string             `json:"destination"`
	DayNumber     int                `json:"day_number"`
	Date          openapi_types.Date `json:"date"`
	TimeSlot      string             `json:"time_slot"`
	ActivityId    openapi_types.UUID `json:"activity_id"`
	ActivityName  string             `json:"activity_name"`
	Category      string             `json:"category"`
	Location      string             `json:"location,omitempty"`
	Price         decimal.Decimal    `json:"price"`
	DurationHours float64            `json:"duration_hours"`
}

// ---- request bodies --------------------------------------------------------

// SetPreferencesRequest is the body of PUT /sessions/{id}/preferences.
type SetPreferencesRequest struct {
	Ids []string `json:"ids"`
}

// ChooseBudgetTierRequest is the body of PUT /sessions/{id}/budget-tier.
type ChooseBudgetTierRequest struct {
	Tier string `json:"tier"`
}

// CreateTripRequest is the body of POST /sessions/{id}/trip.
// A missing budget uses the session's tier; a missing traveler count means 1.
type CreateTripRequest struct {
	Name          string              `json:"name"`
	Destination   string              `json:"destination"`
	StartDate     *openapi_types.Date `json:"start_date"`
	EndDate       *openapi_types.Date `json:"end_date"`
	Budget        *decimal.Decimal    `json:"budget,omitempty"`
	TravelerCount *int                `json:"traveler_count,omitempty"`
}

// ScheduleActivityRequest is the body of POST /sessions/{id}/activities.
type ScheduleActivityRequest struct {
	CatalogId string              `json:"catalog_id"`
	Date      *openapi_types.Date `json:"date"`
	TimeSlot  string              `json:"time_slot,omitempty"`
}

// MoveActivityRequest is the body of POST /sessions/{id}/activities/{activityId}/move.
type MoveActivityRequest struct {
	FromDay *openapi_types.Date `json:"from_day"`
	ToDay   *openapi_types.Date `json:"to_day"`
}

// ReorderRequest is the body of POST /sessions/{id}/days/{day}/reorder.
type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// AddExpenseRequest is the body of POST /sessions/{id}/expenses.
type AddExpenseRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}

// ---- mapping helpers -------------------------------------------------------

// labelFor title-cases category ids for display ("dining" → "Dining").
// A cases.Caser is stateful, so a new one is built per call.
func labelFor(category string) string {
	return cases.Title(language.English).String(category)
}

func toDate(d domain.Day) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func fromDate(d openapi_types.Date) domain.Day {
	return domain.NewDay(d.Time)
}

func activityToResponse(a domain.Activity) Activity {
	return Activity{
		Id:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		Location:      a.Location,
		Image:         a.Image,
		Price:         a.Price,
		Category:      a.Category,
		CategoryLabel: labelFor(a.Category),
		DurationHours: a.DurationHours,
		Rating:        a.Rating,
	}
}

func scheduledToResponse(a domain.ScheduledActivity) ScheduledActivity {
	return ScheduledActivity{
		Id:        a.ID,
		CatalogId: a.CatalogID(),
		Date:      toDate(a.Date),
		TimeSlot:  a.TimeSlot,
		Activity:  activityToResponse(a.Activity),
	}
}

func scheduledListToResponse(list []domain.ScheduledActivity) []ScheduledActivity {
	out := make([]ScheduledActivity, len(list))
	for i, a := range list {
		out[i] = scheduledToResponse(a)
	}
	return out
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		Id:            t.ID,
		Name:          t.Name,
		Destination:   t.Destination,
		StartDate:     toDate(t.StartDate),
		EndDate:       toDate(t.EndDate),
		Budget:        t.Budget,
		TravelerCount: t.TravelerCount,
		Activities:    scheduledListToResponse(t.Activities),
		CreatedAt:     t.CreatedAt,
	}
}

func sessionToResponse(s domain.Session) Session {
	resp := Session{
		Id:                  s.ID,
		Preferences:         s.Preferences,
		SelectedPreferences: s.SelectedPreferences,
		Budget:              s.Budget,
		Expenses:            make([]Expense, len(s.Expenses)),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if resp.Preferences == nil {
		resp.Preferences = []domain.Preference{}
	}
	if resp.SelectedPreferences == nil {
		resp.SelectedPreferences = []string{}
	}
	if s.BudgetTier != "" {
		resp.BudgetTier = &s.BudgetTier
	}
	if s.Trip != nil {
		t := tripToResponse(*s.Trip)
		resp.Trip = &t
	}
	for i, e := range s.Expenses {
		resp.Expenses[i] = Expense{Category: e.Category, Amount: e.Amount, CreatedAt: e.CreatedAt}
	}
	return resp
}

func summaryToResponse(b domain.BudgetSummary) BudgetSummary {
	resp := BudgetSummary{
		Budget:          b.Budget,
		TotalSpent:      b.TotalSpent,
		PerCategory:     []CategorySpend{},
		PerDay:          make([]DaySpend, len(b.PerDay)),
		DayCount:        b.DayCount,
		TravelerCount:   b.TravelerCount,
		BudgetPerDay:    b.BudgetPerDay,
		BudgetPerPerson: b.BudgetPerPerson,
		PercentSpent:    b.PercentSpent,
		PercentSpentRaw: b.PercentSpentRaw,
		Status:          string(b.Status),
		OverBudgetBy:    b.OverBudgetBy,
		Remaining:       b.Remaining,
	}
	for _, c := range b.Categories() {
		resp.PerCategory = append(resp.PerCategory, CategorySpend{Category: c.Category, Label: labelFor(c.Category), Amount: c.Amount})
	}
	for i, d := range b.PerDay {
		resp.PerDay[i] = DaySpend{Date: toDate(d.Day), Amount: d.Amount}
	}
	return resp
}

func catalogPageToResponse(p service.CatalogPage) CatalogPage {
	resp := CatalogPage{
		Data:       make([]Activity, len(p.Activities)),
		Categories: make([]Category, len(p.Categories)),
		Scheduled:  p.Scheduled,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total},
	}
	for i, a := range p.Activities {
		resp.Data[i] = activityToResponse(a)
	}
	for i, c := range p.Categories {
		resp.Categories[i] = Category{Id: c, Label: labelFor(c)}
	}
	if resp.Scheduled == nil {
		resp.Scheduled = []string{}
	}
	return resp
}
