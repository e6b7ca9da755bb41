package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// Plan is a trip described in a TOML file:
//
//	[trip]
//	name = "Spring in Paris"
//	destination = "paris"
//	start = "2025-04-01"
//	end = "2025-04-03"
//	travelers = 2
//	tier = "medium"        # or budget = "2500.00"
//	preferences = ["food"]
//	sample = false         # fill an empty trip with the sample itinerary
//
//	[[activity]]
//	id = "f1"
//	day = 1                # 1 is the first day of the trip
//	time = "19:00"
//
//	[[expense]]
//	category = "transport"
//	amount = "45.50"
type Plan struct {
	Trip       PlanTrip       `toml:"trip"`
	Activities []PlanActivity `toml:"activity"`
	Expenses   []PlanExpense  `toml:"expense"`
}

// PlanTrip holds the trip header of a plan.
type PlanTrip struct {
	Name        string   `toml:"name"`
	Destination string   `toml:"destination"`
	Start       string   `toml:"start"`
	End         string   `toml:"end"`
	Travelers   int      `toml:"travelers"`
	Tier        string   `toml:"tier"`
	Budget      string   `toml:"budget"`
	Preferences []string `toml:"preferences"`
	Sample      bool     `toml:"sample"`
}

// PlanActivity places one catalog activity on a trip day.
type PlanActivity struct {
	ID   string `toml:"id"`
	Day  int    `toml:"day"`
	Time string `toml:"time"`
}

// PlanExpense is an ad-hoc ledger entry.
type PlanExpense struct {
	Category string `toml:"category"`
	Amount   string `toml:"amount"`
}

// LoadPlan reads and parses the plan file at path.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("cli.LoadPlan: %w", err)
	}
	p, err := ParsePlan(data)
	if err != nil {
		return Plan{}, fmt.Errorf("cli.LoadPlan: %s: %w", path, err)
	}
	return p, nil
}

// ParsePlan decodes a TOML plan. Unknown keys are rejected.
func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Plan{}, fmt.Errorf("%w: unknown key %q", domain.ErrValidation, undecoded[0].String())
	}
	if p.Trip.Travelers == 0 {
		p.Trip.Travelers = 1
	}
	return p, nil
}

// Result is the outcome of running a plan.
type Result struct {
	Trip    domain.Trip
	Rows    []domain.ExportRow
	Summary domain.BudgetSummary
}

// Runner plays plans through the same services the API uses, backed by a
// throwaway in-memory session.
type Runner struct {
	sessions  *service.SessionService
	itinerary *service.ItineraryService
	budget    *service.BudgetService
	export    *service.ExportService
}

// NewRunner constructs a Runner over catalog c.
func NewRunner(c service.ActivityCatalog) *Runner {
	r := repo.NewMemorySessionRepo()
	return &Runner{
		sessions:  service.NewSessionService(r, c),
		itinerary: service.NewItineraryService(r, c),
		budget:    service.NewBudgetService(r),
		export:    service.NewExportService(r),
	}
}

// Run creates the trip, schedules every activity in file order, records the
// expenses and returns the resulting itinerary and budget. The first failing
// step aborts the run.
func (r *Runner) Run(ctx context.Context, p Plan) (Result, error) {
	sess, err := r.sessions.Start(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: %w", err)
	}
	defer r.sessions.End(context.WithoutCancel(ctx), sess.ID) //nolint:errcheck

	if len(p.Trip.Preferences) > 0 {
		if _, err := r.sessions.SetPreferences(ctx, sess.ID, p.Trip.Preferences); err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: preferences: %w", err)
		}
	}
	if p.Trip.Tier != "" {
		if _, err := r.sessions.ChooseBudgetTier(ctx, sess.ID, p.Trip.Tier); err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: tier: %w", err)
		}
	}

	in, err := tripInput(p.Trip)
	if err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: %w", err)
	}
	trip, err := r.sessions.CreateTrip(ctx, sess.ID, in)
	if err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: trip: %w", err)
	}

	if p.Trip.Sample {
		if _, _, err := r.itinerary.GenerateSample(ctx, sess.ID); err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: sample: %w", err)
		}
	}

	for i, a := range p.Activities {
		if a.Day < 1 {
			return Result{}, fmt.Errorf("cli.Runner.Run: activity %d (%s): %w: day must be at least 1", i+1, a.ID, domain.ErrValidation)
		}
		day := trip.StartDate.AddDays(a.Day - 1)
		if _, err := r.itinerary.Schedule(ctx, sess.ID, a.ID, day, a.Time); err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: activity %d (%s): %w", i+1, a.ID, err)
		}
	}

	for i, e := range p.Expenses {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: expense %d: %w: amount %q is not a number", i+1, domain.ErrValidation, e.Amount)
		}
		if _, err := r.sessions.AddExpense(ctx, sess.ID, e.Category, amount); err != nil {
			return Result{}, fmt.Errorf("cli.Runner.Run: expense %d: %w", i+1, err)
		}
	}

	var res Result
	if res.Trip, err = r.sessions.GetTrip(ctx, sess.ID); err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: %w", err)
	}
	if res.Rows, err = r.export.Export(ctx, sess.ID); err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: %w", err)
	}
	if res.Summary, err = r.budget.Summary(ctx, sess.ID); err != nil {
		return Result{}, fmt.Errorf("cli.Runner.Run: %w", err)
	}
	return res, nil
}

func tripInput(t PlanTrip) (service.TripInput, error) {
	start, err := domain.ParseDay(t.Start)
	if err != nil {
		return service.TripInput{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseDay(t.End)
	if err != nil {
		return service.TripInput{}, fmt.Errorf("end: %w", err)
	}

	in := service.TripInput{
		Name:          t.Name,
		Destination:   t.Destination,
		StartDate:     start,
		EndDate:       end,
		TravelerCount: t.Travelers,
	}
	if t.Budget != "" {
		b, err := decimal.NewFromString(t.Budget)
		if err != nil {
			return service.TripInput{}, fmt.Errorf("%w: budget %q is not a number", domain.ErrValidation, t.Budget)
		}
		in.Budget = &b
	}
	return in, nil
}
