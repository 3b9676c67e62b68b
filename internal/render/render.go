// Package render draws insight reports and the hub view for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorDanger  = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
	colorMuted   = lipgloss.Color("#7a8597")
)

// Styles is the set of lipgloss styles used by the renderer
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Good    lipgloss.Style
	Warn    lipgloss.Style
	Bad     lipgloss.Style
	Info    lipgloss.Style
	Box     lipgloss.Style
}

// DefaultStyles builds styles bound to r's color profile
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		Heading: r.NewStyle().Bold(true).Underline(true),
		Body:    r.NewStyle(),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Good:    r.NewStyle().Foreground(colorAccent),
		Warn:    r.NewStyle().Foreground(colorWarning),
		Bad:     r.NewStyle().Foreground(colorDanger).Bold(true),
		Info:    r.NewStyle().Foreground(colorInfo),
		Box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
	}
}

// Renderer formats reports for one output. Colors are dropped when the
// output is not a terminal.
type Renderer struct {
	styles   Styles
	settings insight.Settings
}

// New creates a renderer for w. settings supply labels and metric order.
func New(w io.Writer, settings insight.Settings) *Renderer {
	return &Renderer{
		styles:   DefaultStyles(lipgloss.NewRenderer(w)),
		settings: settings,
	}
}

// Report renders the full insight report
func (r *Renderer) Report(report *models.InsightReport) string {
	sections := []string{
		r.header(report.AsOf, report.ResetDay),
		r.synthesis(report.Insight),
		r.streaks(report.Streaks),
		r.weight(report.Weight),
		r.habits(report.Habits),
		r.patterns(report.Patterns),
		r.plan(report.TodaysPlan),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// Hub renders the home view
func (r *Renderer) Hub(hub *models.HubResponse) string {
	sections := []string{
		r.header(hub.Date, hub.ResetDay),
		r.synthesis(hub.Insight),
		r.checklist(hub.Checklist),
		r.streaks(hub.Streaks),
		r.weight(hub.Weight),
		r.patterns(hub.Patterns),
		r.plan(hub.TodaysPlan),
		r.styles.Muted.Render(fmt.Sprintf("Open todos: %d", hub.OpenTodos)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (r *Renderer) header(asOf string, resetDay int) string {
	return r.styles.Title.Render(fmt.Sprintf("Day %d of the reset", resetDay)) +
		r.styles.Muted.Render("  "+asOf)
}

func (r *Renderer) synthesis(in models.StructuredInsight) string {
	lines := []string{r.styles.Good.Render(in.Streak)}
	if in.Opportunity != "" {
		lines = append(lines, r.styles.Info.Render(in.Opportunity))
	}
	if in.Warning != nil {
		lines = append(lines, r.styles.Bad.Render(*in.Warning))
	}
	lines = append(lines, r.styles.Body.Render(in.Momentum))
	return r.styles.Box.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) checklist(items []models.HubSignal) string {
	lines := []string{r.styles.Heading.Render("Today")}
	for _, item := range items {
		var mark string
		switch {
		case !item.Done.Valid:
			mark = r.styles.Muted.Render("[ ]")
		case item.Done.Value:
			mark = r.styles.Good.Render("[x]")
		default:
			mark = r.styles.Bad.Render("[-]")
		}
		lines = append(lines, mark+" "+item.Label)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) streaks(streaks map[string]models.StreakInfo) string {
	rows := make([][]string, 0, len(streaks))
	for _, m := range r.settings.StreakMetrics() {
		s, ok := streaks[m]
		if !ok || s.Best == 0 {
			continue
		}
		rows = append(rows, []string{r.settings.Label(m), strconv.Itoa(s.Current), strconv.Itoa(s.Best)})
	}
	if len(rows) == 0 {
		return r.styles.Heading.Render("Streaks") + "\n" + r.styles.Muted.Render("nothing logged yet")
	}
	return r.styles.Heading.Render("Streaks") + "\n" + r.table([]string{"metric", "current", "best"}, rows)
}

func (r *Renderer) weight(w models.WeightInsight) string {
	if w.Current == nil {
		return r.styles.Heading.Render("Weight") + "\n" + r.styles.Muted.Render("no weigh-ins")
	}

	line := fmt.Sprintf("%.1f", *w.Current)
	if w.WeekAgo != nil {
		line += fmt.Sprintf("  (week ago %.1f, %s)", *w.WeekAgo, w.Trend)
	}
	if w.MonthTarget != nil {
		target := fmt.Sprintf("  %s target %.1f", w.MonthLabel, *w.MonthTarget)
		if w.OnTrack {
			line += r.styles.Good.Render(target + " on track")
		} else {
			line += r.styles.Warn.Render(target + " behind")
		}
	}
	return r.styles.Heading.Render("Weight") + "\n" + line
}

func (r *Renderer) habits(h models.HabitSummary) string {
	rows := make([][]string, 0, len(r.settings.BuildHabits))
	for _, m := range r.settings.BuildHabits {
		yesterday := "no"
		if h.Yesterday[m] {
			yesterday = "yes"
		}
		rows = append(rows, []string{r.settings.Label(m), fmt.Sprintf("%d/7", h.Last7Days[m]), yesterday})
	}
	return r.styles.Heading.Render("Habits") + "\n" + r.table([]string{"habit", "week", "yesterday"}, rows)
}

func (r *Renderer) patterns(patterns []models.Pattern) string {
	lines := []string{r.styles.Heading.Render("Patterns")}
	if len(patterns) == 0 {
		lines = append(lines, r.styles.Muted.Render("none detected"))
	}
	for _, p := range patterns {
		var style lipgloss.Style
		var icon string
		switch p.Type {
		case models.PatternTypeWarning:
			style, icon = r.styles.Bad, "!"
		case models.PatternTypePositive, models.PatternTypeStreak:
			style, icon = r.styles.Good, "+"
		default:
			style, icon = r.styles.Info, "~"
		}
		lines = append(lines, style.Render(icon)+" "+p.Message)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) plan(p models.PlanSummary) string {
	if p.ItemCount == 0 {
		return r.styles.Muted.Render("No plan for today")
	}
	return r.styles.Body.Render(fmt.Sprintf("Plan: %d/%d done", p.DoneCount, p.ItemCount))
}

// table pads columns to their widest cell
func (r *Renderer) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i]).Render(cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	writeRow(headers, r.styles.Muted)
	for _, row := range rows {
		writeRow(row, r.styles.Body)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
