package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/commitlab/pubs/internal/facet"
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.query.View())
	b.WriteString("\n")

	facets := stylePane.
		Width(facetPaneWidth - 2).
		Height(a.results.Height).
		Render(a.renderFacets())
	results := stylePane.
		Width(a.resultsWidth()).
		Height(a.results.Height).
		Render(a.results.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, facets, results))
	b.WriteString("\n")

	switch {
	case a.loadErr != nil:
		b.WriteString(styleError.Render("Could not load publications: " + a.loadErr.Error()))
	case a.status != "":
		b.WriteString(a.status)
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(keys))

	return b.String()
}

func (a *App) renderHeader() string {
	title := styleTitle.Render("Publications")
	info := "loading..."
	if !a.loading {
		info = fmt.Sprintf("%d of %d shown, %s", a.view.Shown, a.view.Total, sortLabel(a.view.SortKey, a.view.SortDesc))
		if a.sess.State().Active() {
			info += ", filtered"
		}
	}
	return title + "  " + styleSubtitle.Render(info)
}

func (a *App) renderFacets() string {
	var tabs []string
	for i, name := range facet.All {
		style := styleTab
		if i == a.facet {
			style = styleTabActive
		}
		tabs = append(tabs, style.Render(facetTitle(name)))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	fc := a.currentCounts()
	if len(fc.Values) == 0 {
		b.WriteString(styleSubtitle.Render("  (none)"))
		return b.String()
	}

	// Keep the cursor inside a window that fits the pane.
	rows := max(a.results.Height-2, 1)
	cur := a.cursor[fc.Name]
	start := 0
	if cur >= rows {
		start = cur - rows + 1
	}
	end := min(start+rows, len(fc.Values))

	width := facetPaneWidth - 4
	for i := start; i < end; i++ {
		b.WriteString(renderFacetValue(fc.Values[i], i == cur && a.focus == focusFacets, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
