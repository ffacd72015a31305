package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
)

// renderRecord formats one publication as a title line, a byline and an
// optional links line.
func renderRecord(r publication.Record, width int) string {
	var b strings.Builder
	b.WriteString(styleRecordTitle.Render(truncate(r.DisplayTitle(), width)))
	b.WriteString("\n")

	var meta []string
	if authors := r.Authors(); len(authors) > 0 {
		meta = append(meta, strings.Join(authors, ", "))
	}
	if venue := r.Venue(); venue != "" {
		meta = append(meta, venue)
	}
	if loc := r.Location(); loc != "" {
		meta = append(meta, loc)
	}
	if date := strings.TrimSpace(r.Month + " " + yearString(r.Year)); date != "" {
		meta = append(meta, date)
	}
	meta = append(meta, publication.TypeLabel(r.ItemType))
	b.WriteString(styleSubtitle.Render(truncate(strings.Join(meta, " · "), width)))

	var links []string
	if r.URL != "" {
		links = append(links, "[pdf] "+export.LocalizeAssetURL(r.URL))
	}
	if r.Slides != "" {
		links = append(links, "[slides] "+export.LocalizeAssetURL(r.Slides))
	}
	if r.DOI != "" {
		links = append(links, "[doi] "+r.DOI)
	}
	if len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(styleLink.Render(truncate(strings.Join(links, "  "), width)))
	}
	return b.String()
}

func yearString(y int) string {
	if y <= 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// renderGroups formats the grouped result list.
func renderGroups(groups []present.Group, width int) string {
	if len(groups) == 0 {
		return styleSubtitle.Render("No publications match the current filters.")
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleGroup.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Records))))
		for _, r := range g.Records {
			b.WriteString("\n\n")
			b.WriteString(renderRecord(r, width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderFacetValue formats one checkbox row.
func renderFacetValue(vc filter.ValueCount, active bool, width int) string {
	box := "[ ]"
	if vc.Selected {
		box = "[x]"
	}
	line := truncate(fmt.Sprintf("%s %s (%d)", box, vc.Label, vc.Count), width-2)
	switch {
	case active:
		return styleCursor.Render("> " + line)
	case vc.Disabled:
		return styleDisabled.Render("  " + line)
	}
	return "  " + line
}

// facetTitle is the tab label of a facet.
func facetTitle(name facet.Name) string {
	s := string(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sortLabel describes the active sort for the header.
func sortLabel(key present.SortKey, desc bool) string {
	if key == present.SortNone {
		return "unsorted"
	}
	dir := "asc"
	if desc {
		dir = "desc"
	}
	return fmt.Sprintf("by %s (%s)", key, dir)
}
