package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Theme colors.
var (
	ColorBorder = lipgloss.Color("#3B4252")
	ColorText   = lipgloss.Color("#ECEFF4")
	ColorMuted  = lipgloss.Color("#7B88A1")
	ColorAccent = lipgloss.Color("#88C0D0")
	ColorGreen  = lipgloss.Color("#A3BE8C")
	ColorRed    = lipgloss.Color("#BF616A")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	borderStyle = lipgloss.NewStyle().Foreground(ColorBorder)
)

// Table is a bordered text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAlign marks columns whose cells are right-aligned (amounts, counts).
	RightAlign map[int]bool
}

// RenderTitle renders a title bar in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders. Column widths fit the
// widest cell. A row of a single "---" cell draws a separator line.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮", widths))
	if len(t.Headers) > 0 {
		b.WriteString(t.line(t.Headers, widths, headerStyle))
		b.WriteString(rule("├", "┼", "┤", widths))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤", widths))
			continue
		}
		b.WriteString(t.line(row, widths, lipgloss.NewStyle()))
	}
	b.WriteString(rule("╰", "┴", "╯", widths))
	return b.String()
}

func (t Table) line(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(borderStyle.Render("│"))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if t.RightAlign[i] {
			cell = pad + style.Render(cell)
		} else {
			cell = style.Render(cell) + pad
		}
		b.WriteString(" " + cell + " ")
		b.WriteString(borderStyle.Render("│"))
	}
	b.WriteString("\n")
	return b.String()
}

func rule(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return borderStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

// RenderItinerary renders export rows as a day-by-day table.
// Rows must already be ordered by day and position.
func RenderItinerary(rows []domain.ExportRow) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No activities scheduled.") + "\n"
	}

	t := Table{
		Title:      "Itinerary",
		Headers:    []string{"Day", "Date", "Time", "Activity", "Category", "Length", "Price"},
		RightAlign: map[int]bool{0: true, 5: true, 6: true},
	}
	prevDay := 0
	for _, r := range rows {
		if prevDay != 0 && r.DayNumber != prevDay {
			t.Rows = append(t.Rows, []string{"---"})
		}
		prevDay = r.DayNumber
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.DayNumber),
			r.Day.String(),
			r.TimeSlot,
			r.ActivityName,
			r.Category,
			FormatHours(r.DurationHours),
			FormatMoney(r.Price),
		})
	}
	return RenderTable(t)
}

// RenderBudget renders the budget overview, the per-category breakdown and
// the per-day spend of s.
func RenderBudget(s domain.BudgetSummary) string {
	var b strings.Builder

	status := okStyle.Render(fmt.Sprintf("On budget, %s remaining", FormatMoney(s.Remaining)))
	if s.Status == domain.StatusOverBudget {
		status = overStyle.Render(fmt.Sprintf("Over budget by %s", FormatMoney(s.OverBudgetBy)))
	}

	b.WriteString(RenderTable(Table{
		Title: "Budget",
		Rows: [][]string{
			{"Budget", FormatMoney(s.Budget)},
			{"Spent", FormatMoney(s.TotalSpent) + " (" + FormatPercent(s.PercentSpentRaw) + ")"},
			{"Per day", FormatMoney(s.BudgetPerDay) + " over " + strconv.Itoa(s.DayCount) + " days"},
			{"Per person", FormatMoney(s.BudgetPerPerson) + " for " + strconv.Itoa(s.TravelerCount) + " travelers"},
		},
	}))
	b.WriteString(status)
	b.WriteString("\n")

	if cats := s.Categories(); len(cats) > 0 {
		t := Table{
			Title:      "By Category",
			Headers:    []string{"Category", "Spent"},
			RightAlign: map[int]bool{1: true},
		}
		for _, c := range cats {
			t.Rows = append(t.Rows, []string{c.Category, FormatMoney(c.Amount)})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable(t))
	}

	if len(s.PerDay) > 0 {
		t := Table{
			Title:      "By Day",
			Headers:    []string{"Date", "Spent"},
			RightAlign: map[int]bool{1: true},
		}
		for _, d := range s.PerDay {
			t.Rows = append(t.Rows, []string{d.Day.String(), FormatMoney(d.Amount)})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable(t))
	}

	return b.String()
}

// RenderActivities renders catalog activities for the catalog command.
func RenderActivities(title string, activities []domain.Activity) string {
	t := Table{
		Title:      title,
		Headers:    []string{"ID", "Name", "Category", "Location", "Length", "Price", "Rating"},
		RightAlign: map[int]bool{4: true, 5: true, 6: true},
	}
	for _, a := range activities {
		t.Rows = append(t.Rows, []string{
			a.ID,
			a.Name,
			a.Category,
			a.Location,
			FormatHours(a.DurationHours),
			FormatMoney(a.Price),
			strconv.FormatFloat(a.Rating, 'f', 1, 64),
		})
	}
	return RenderTable(t)
}
