package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "  Initializing..."
	}

	var body string
	switch m.state.ActiveTab() {
	case session.TabOverview:
		body = m.viewOverview()
	case session.TabLearningPaths:
		body = m.viewLearningPaths()
	case session.TabProjects:
		body = m.viewProjects()
	case session.TabTutor:
		body = m.viewTutor()
	case session.TabPricing:
		body = m.viewPricing()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	theme := "☀ light"
	if m.state.DarkMode() {
		theme = "☾ dark"
	}
	title := m.styles.title.Render("⚡ TraceTutor") + m.styles.dim.Render("  "+theme)

	active := m.state.ActiveTab()
	tabs := make([]string, 0, len(session.Tabs))
	for i, t := range session.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == active {
			tabs = append(tabs, m.styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.tab.Render(label))
		}
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) viewFooter() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = m.styles.err.Render(m.status)
		} else {
			status = m.styles.status.Render(m.status)
		}
	}
	if m.recommending {
		status = m.spinner.View() + " " + status
	}
	return status + "\n" + m.styles.dim.Render(m.helpLine())
}

func (m Model) helpLine() string {
	switch {
	case m.focus == focusSearch:
		return "enter: recommend a learning path • esc: done"
	case m.focus == focusChat:
		return "enter: send • ↑/↓: scroll • tab: next tab • esc: leave input"
	}
	switch m.state.ActiveTab() {
	case session.TabProjects:
		return "/: search • f: level • r: recommend • j/k: move • enter: start • esc: back • d: theme • q: quit"
	case session.TabLearningPaths:
		return "j/k: move • enter: start path • esc: back • d: theme • q: quit"
	case session.TabTutor:
		return "i: type a message • pgup/pgdown: scroll • d: theme • q: quit"
	}
	return "tab/1-5: switch tabs • d: theme • q: quit"
}

func (m Model) viewOverview() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(catalog.Headline) + "\n")
	b.WriteString(m.styles.text.Width(m.contentWidth()).Render(catalog.Tagline) + "\n\n")
	b.WriteString(m.styles.heading.Render("Why Choose TraceTutor?") + "\n")
	for _, f := range m.catalog.Features {
		b.WriteString("  " + m.styles.selected.Render(f.Title) + "\n")
		b.WriteString("  " + m.styles.dim.Render(f.Description) + "\n")
	}
	return b.String()
}

func (m Model) viewProjects() string {
	if id := m.state.CurrentProject(); id != 0 {
		if p, ok := m.catalog.Project(id); ok {
			return m.viewProjectDetail(p)
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.input.Render(m.search.View()) + "\n")
	b.WriteString(m.styles.dim.Render("Level: ") + m.styles.badge.Render(string(m.state.Level())) + "\n\n")

	list := m.state.FilteredProjects(m.catalog.Projects)
	if len(list) == 0 {
		b.WriteString(m.styles.dim.Render("No projects match your search."))
		return b.String()
	}
	for i, p := range list {
		line := fmt.Sprintf("%s %s  %s  %s", p.Icon, p.Title,
			m.styles.badge.Render(p.Difficulty), m.styles.dim.Render(p.Duration))
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("› ") + line + "\n")
			b.WriteString("    " + m.styles.dim.Render(p.Description) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) viewProjectDetail(p catalog.Project) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(p.Icon+" "+p.Title) + "\n")
	b.WriteString(m.styles.badge.Render(p.Difficulty) + m.styles.dim.Render("  "+p.Duration) + "\n\n")
	b.WriteString(m.styles.text.Width(m.contentWidth()).Render(p.Description) + "\n\n")
	b.WriteString(m.styles.heading.Render("Skills") + "\n")
	for _, s := range p.Skills {
		b.WriteString("  • " + s + "\n")
	}
	b.WriteString("\n" + m.styles.dim.Render("Tags: "+strings.Join(p.Tags, ", ")) + "\n")
	return b.String()
}

func (m Model) viewLearningPaths() string {
	if id := m.state.CurrentPath(); id != 0 {
		if lp, ok := m.catalog.LearningPath(id); ok {
			return m.viewPathDetail(lp)
		}
	}

	var b strings.Builder
	for i, lp := range m.catalog.LearningPaths {
		line := fmt.Sprintf("%s %s  %s  %s", lp.Icon, lp.Title,
			m.styles.badge.Render(lp.Difficulty), m.styles.dim.Render(lp.Duration))
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("› ") + line + "\n")
			b.WriteString("    " + m.styles.dim.Render(lp.Description) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) viewPathDetail(lp catalog.LearningPath) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(lp.Icon+" "+lp.Title) + "\n")
	b.WriteString(m.styles.badge.Render(lp.Difficulty) + m.styles.dim.Render("  "+lp.Duration) + "\n\n")
	b.WriteString(m.styles.text.Width(m.contentWidth()).Render(lp.Description) + "\n\n")

	b.WriteString(m.styles.heading.Render("Milestones") + "\n")
	for i, ms := range lp.Milestones {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, ms))
	}

	b.WriteString("\n" + m.styles.heading.Render("Projects") + "\n")
	for _, p := range m.catalog.PathProjects(lp) {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", p.Icon, p.Title, m.styles.dim.Render(p.Duration)))
	}
	return b.String()
}

func (m Model) viewTutor() string {
	input := m.chat.View()
	if m.state.Pending() || m.sending {
		input = m.spinner.View() + m.styles.dim.Render(" waiting for the tutor...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.styles.input.Width(m.contentWidth()).Render(input),
	)
}

func (m Model) viewPricing() string {
	cards := make([]string, 0, len(m.catalog.Plans))
	for _, p := range m.catalog.Plans {
		price := "Free"
		if p.MonthlyPrice > 0 {
			price = fmt.Sprintf("$%d/month", p.MonthlyPrice)
		}

		var b strings.Builder
		b.WriteString(m.styles.heading.Render(p.Name) + "\n")
		b.WriteString(m.styles.title.Render(price) + "\n\n")
		for _, f := range p.Features {
			b.WriteString(m.styles.selected.Render("✓ ") + f + "\n")
		}
		b.WriteString("\n" + m.styles.badge.Render(p.CallToAction))

		style := m.styles.card
		if p.Highlighted {
			style = m.styles.highlighted
		}
		cards = append(cards, style.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
