package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
)

// Theme colors of the terminal output
type Theme struct {
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
}

// TokyoNight default palette
var TokyoNight = Theme{
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),
	Primary:       lipgloss.Color("#7aa2f7"),
	Success:       lipgloss.Color("#9ece6a"),
	Warning:       lipgloss.Color("#e0af68"),
	Error:         lipgloss.Color("#f7768e"),
	Border:        lipgloss.Color("#3b4261"),
}

var theme = TokyoNight

const columnWidth = 28

func priorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityUrgente:
		return theme.Error
	case models.PriorityAlta:
		return theme.Warning
	case models.PriorityMedia:
		return theme.Primary
	}
	return theme.ForegroundDim
}

func title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(s)
}

func dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.ForegroundDim).Render(s)
}

func success(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Success).Render(s)
}

// RenderKanban columns side by side
func RenderKanban(board *dto.BoardResponse, view *dto.KanbanResponse, now time.Time) string {
	columns := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		columns = append(columns, renderColumn(col, now))
	}

	header := view.BoardID
	if board != nil {
		header = board.Title
	}
	summary := dim(fmt.Sprintf("%d of %d tasks", view.Visible, view.Total))

	return lipgloss.JoinVertical(lipgloss.Left,
		title(header)+"  "+summary,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
}

func renderColumn(col dto.KanbanColumn, now time.Time) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Foreground).
		Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks)))

	cards := []string{heading}
	for i := range col.Tasks {
		cards = append(cards, renderCard(&col.Tasks[i], now))
	}
	if len(col.Tasks) == 0 {
		cards = append(cards, dim("no tasks"))
	}

	return lipgloss.NewStyle().
		Width(columnWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, cards...))
}

func renderCard(t *dto.TaskResponse, now time.Time) string {
	badge := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority))
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Foreground).Render(truncate(t.Title, columnWidth-4)),
		badge + " " + dim(shortID(t.ID)),
	}

	var meta []string
	if t.DueDate != nil {
		due := t.DueDate.Format("02 Jan")
		if t.ColumnID != models.ColumnDone && t.DueDate.Before(now) {
			due = lipgloss.NewStyle().Foreground(theme.Error).Render(due)
		}
		meta = append(meta, due)
	}
	if t.CommentCount > 0 {
		meta = append(meta, fmt.Sprintf("%dc", t.CommentCount))
	}
	if t.AttachmentCount > 0 {
		meta = append(meta, fmt.Sprintf("%da", t.AttachmentCount))
	}
	if len(meta) > 0 {
		lines = append(lines, dim(strings.Join(meta, " · ")))
	}
	return lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderBoards one line per board with its stats
func RenderBoards(boards []dto.BoardResponse) string {
	if len(boards) == 0 {
		return dim("No boards yet. Create one with: tasktrack boards create <title>")
	}
	lines := make([]string, 0, len(boards))
	for _, b := range boards {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			dim(b.ID),
			title(b.Title),
			dim(fmt.Sprintf("deadlines %d · in progress %d · done %d",
				b.Stats.Deadlines, b.Stats.InProgress, b.Stats.Completed)),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderBoard details of a single board
func RenderBoard(b *dto.BoardResponse) string {
	lines := []string{title(b.Title)}
	if b.Description != "" {
		lines = append(lines, b.Description)
	}
	lines = append(lines,
		dim(fmt.Sprintf("id %s · %s · %s", b.ID, b.Icon, b.Theme)),
		fmt.Sprintf("Deadlines: %d  In progress: %d  Completed: %d",
			b.Stats.Deadlines, b.Stats.InProgress, b.Stats.Completed),
	)
	if len(b.Categories) > 0 {
		names := make([]string, len(b.Categories))
		for i, c := range b.Categories {
			names[i] = c.Name
		}
		lines = append(lines, "Categories: "+strings.Join(names, ", "))
	}
	if len(b.Guests) > 0 {
		lines = append(lines, "Guests: "+strings.Join(b.Guests, ", "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderPriorities reminder settings, unsaved marks a pending draft
func RenderPriorities(configs []dto.PriorityConfigResponse, unsaved bool) string {
	lines := make([]string, 0, len(configs)+1)
	for _, cfg := range configs {
		badge := lipgloss.NewStyle().Bold(true).Foreground(priorityColor(cfg.Priority)).Render(string(cfg.Priority))
		reminders := make([]string, len(cfg.Reminders))
		for i, r := range cfg.Reminders {
			reminders[i] = fmt.Sprintf("[%d] %d %s", i, r.Value, r.Unit)
		}
		list := dim("no reminders")
		if len(reminders) > 0 {
			list = strings.Join(reminders, "  ")
		}
		lines = append(lines, fmt.Sprintf("%-9s %s", badge, list))
	}
	if unsaved {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render("Unsaved changes, run: tasktrack reminders save"))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
