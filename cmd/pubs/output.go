package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/session"
)

// Constants for output formatting.
const (
	ListTitleMaxLen  = 70 // Used in view and featured listings
	DetailMaxLen     = 60 // Used for author and venue lines
	FacetValuesLimit = 12 // Values shown per facet in human view output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is the JSON error format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatRecordHuman renders one record as an indented title line plus a
// detail line.
func formatRecordHuman(r publication.Record) string {
	var b strings.Builder
	title := r.DisplayTitle()
	if r.Featured {
		title = "* " + title
	}
	fmt.Fprintf(&b, "  %s\n", truncateString(title, ListTitleMaxLen))

	var details []string
	if a := r.AuthorsRaw; a != "" {
		details = append(details, truncateString(a, DetailMaxLen))
	}
	if v := r.Venue(); v != "" {
		details = append(details, truncateString(v, DetailMaxLen))
	}
	details = append(details, publication.TypeLabel(r.ItemType))
	fmt.Fprintf(&b, "    %s\n", strings.Join(details, " | "))
	return b.String()
}

// formatGroupsHuman renders year groups with their records.
func formatGroupsHuman(groups []present.Group) string {
	if len(groups) == 0 {
		return "No publications match the current filters.\n"
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%d)\n", g.Label, len(g.Records))
		for _, r := range g.Records {
			b.WriteString(formatRecordHuman(r))
		}
	}
	return b.String()
}

// formatFacetHuman renders one facet's values with counts. Selected values
// are marked [x]; disabled values are omitted. limit <= 0 shows everything.
func formatFacetHuman(fc filter.FacetCounts, limit int) string {
	var parts []string
	hidden := 0
	for _, v := range fc.Values {
		if v.Disabled {
			continue
		}
		if limit > 0 && len(parts) >= limit && !v.Selected {
			hidden++
			continue
		}
		mark := ""
		if v.Selected {
			mark = "[x] "
		}
		parts = append(parts, fmt.Sprintf("%s%s (%d)", mark, v.Label, v.Count))
	}
	line := fmt.Sprintf("%-9s %s", fc.Name+":", strings.Join(parts, ", "))
	if hidden > 0 {
		line += fmt.Sprintf(", +%d more", hidden)
	}
	return line + "\n"
}

// printViewHuman prints the whole view: filter summary, facets and groups.
func printViewHuman(v session.View) {
	sortDir := "asc"
	if v.SortDesc {
		sortDir = "desc"
	}
	outputHuman("Showing %d of %d publications (sort: %s %s)\n", v.Shown, v.Total, v.SortKey, sortDir)
	if v.Query != "" {
		outputHuman("Title contains: %q\n", v.Query)
	}
	outputHuman("\n")
	for _, fc := range v.Facets {
		outputHuman("%s", formatFacetHuman(fc, FacetValuesLimit))
	}
	outputHuman("\n%s", formatGroupsHuman(v.Groups))
}

// printView prints a view in the selected output format.
func printView(v session.View) {
	if humanOutput {
		printViewHuman(v)
		return
	}
	outputJSON(v)
}
