package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitreadme/internal/client/models"
)

type theme struct {
	Header  lipgloss.Style
	Panel   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00FFFF")
	secondary := lipgloss.Color("#7D7D7D")
	success := lipgloss.Color("#00FF00")
	danger := lipgloss.Color("#FF0055")

	return theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Success: lipgloss.NewStyle().
			Foreground(success),
		Danger: lipgloss.NewStyle().
			Foreground(danger),
	}
}

// previewLimit caps how much of a generated README the inline preview shows.
const previewLimit = 30

// renderPreview frames the first previewLimit lines of content in a panel.
func (t theme) renderPreview(content string) string {
	lines := strings.Split(content, "\n")
	truncated := false
	if len(lines) > previewLimit {
		lines = lines[:previewLimit]
		truncated = true
	}
	body := strings.Join(lines, "\n")
	if truncated {
		body += "\n" + t.Muted.Render("... (use 'save' to write the full file)")
	}
	return t.Panel.Render(body)
}

// renderRepoLine formats one repository for the list view.
func (t theme) renderRepoLine(r *models.Repo) string {
	var sb strings.Builder
	sb.WriteString(t.Accent.Render(r.FullName))
	if r.Language != "" {
		sb.WriteString("  " + t.Muted.Render(r.Language))
	}
	if r.StargazersCount > 0 {
		sb.WriteString(t.Muted.Render(fmt.Sprintf("  %d stars", r.StargazersCount)))
	}
	if r.Imported() {
		sb.WriteString("  " + t.Success.Render("imported"))
	}
	return sb.String()
}

// renderDraftLine formats one locally cached draft for the history view.
// The full draft id is shown so it can be passed to 'show' and 'delete'.
func (t theme) renderDraftLine(d *models.Draft) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		t.Muted.Render(d.CreatedAt.Local().Format("2006-01-02 15:04")),
		t.Accent.Render(d.RepoFullName),
		string(d.Template),
		t.Muted.Render(d.ID),
	)
}
