package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps DOI values to citation keys
	DOIs map[string]string
	// Entries maps citation keys to the raw entry text
	Entries map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys:    make(map[string]bool),
		DOIs:    make(map[string]string),
		Entries: make(map[string]string),
	}
}

// HasEntry returns true if the entry already exists (by DOI or key).
// DOI is the primary match; citation key is the fallback if no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	// Primary: match by DOI if available
	if doi != "" {
		if _, exists := idx.DOIs[normalizeDOI(doi)]; exists {
			return true
		}
	}

	// Fallback: match by citation key
	return idx.Keys[key]
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`^\s*@(\w+)\s*\{\s*([^,\s]+)\s*,`)
	// Match DOI field: doi = {value} or doi = "value"
	doiFieldRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist or is empty.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewBibTeXIndex(), nil
		}
		return nil, err
	}
	defer file.Close()

	return ParseBibTeX(file)
}

// ParseBibTeX builds an index from BibTeX text. Raw entries are captured by
// brace depth from the "@type{key," line to its matching closing brace;
// @comment, @string and @preamble blocks are skipped.
func ParseBibTeX(r io.Reader) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		currentKey string
		entry      strings.Builder
		depth      int
	)

	for scanner.Scan() {
		line := scanner.Text()

		if depth == 0 {
			matches := entryStartRegex.FindStringSubmatch(line)
			if matches == nil {
				continue
			}
			switch strings.ToLower(matches[1]) {
			case "comment", "string", "preamble":
				continue
			}
			currentKey = matches[2]
			idx.Keys[currentKey] = true
			entry.Reset()
		}

		if currentKey == "" {
			continue
		}

		entry.WriteString(line)
		entry.WriteString("\n")
		depth += braceDelta(line)

		// Check for DOI field
		if matches := doiFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			if doi := normalizeDOI(matches[1]); doi != "" {
				idx.DOIs[doi] = currentKey
			}
		}

		if depth <= 0 {
			idx.Entries[currentKey] = strings.TrimSpace(entry.String()) + "\n"
			currentKey = ""
			depth = 0
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}
	return idx, nil
}

// braceDelta counts unescaped opening minus closing braces.
func braceDelta(line string) int {
	delta := 0
	for i := 0; i < len(line); i++ {
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		switch line[i] {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content)
	return err
}
