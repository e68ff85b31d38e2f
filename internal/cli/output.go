package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// renderTable renders rows under headers with a plain border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// banner renders a collection-scope error the way pages render it: one
// line near the affected list.
func banner(message string) string {
	return errorStyle.Render("Error: " + message)
}

func warn(message string) string {
	return warnStyle.Render(message)
}

func ok(message string) string {
	return okStyle.Render(message)
}

// renderIssues prints every validation failure inline beneath the command,
// addressed by field path.
func renderIssues(issues validate.Issues) string {
	out := ""
	tree := validate.MapIssues(issues)
	tree.Walk(func(path validate.Path, message string) {
		out += errorStyle.Render(fmt.Sprintf("  %s: %s", path, message)) + "\n"
	})
	return out
}

// formatDateTime renders a timestamp the way pages do: "Jun 2, 2025 10:00".
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
