package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/clipboard"
	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/present"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/session"
	"github.com/commitlab/pubs/internal/storage"
)

var (
	exportOut       string
	exportKeys      string
	exportAll       bool
	exportAppendTo  string
	exportClipboard bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, or - for stdout (default: export file name in the current directory)")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only these citation keys (comma-separated)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Ignore the saved filters")
	exportCmd.Flags().StringVar(&exportAppendTo, "append-to", "", "Append entries missing from this .bib file instead of writing a new one")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the BibTeX to the clipboard instead of writing a file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the visible publications to BibTeX",
	Long: `Export the publications matching the saved filters to BibTeX, in the
order they are displayed.

With --keys, exactly the named publications are exported; a single key
produces <key>.bib. With --append-to, entries already present in the target
file (matched by DOI, then by citation key) are skipped.

Examples:
  pubs export
  pubs export -o - > lab.bib
  pubs export --keys smith2020deep
  pubs export --clipboard
  pubs export --all --append-to ~/papers/refs.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResult is the response for the export command.
type ExportResult struct {
	Status  string `json:"status"`
	Path    string `json:"path,omitempty"`
	Count   int    `json:"count"`
	Skipped int    `json:"skipped,omitempty"`
	Tool    string `json:"tool,omitempty"`
}

// parseKeys splits a comma-separated key list, dropping blanks.
func parseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// selectNew splits records into those missing from idx and the number
// already present.
func selectNew(records []publication.Record, idx *export.BibTeXIndex) ([]publication.Record, int) {
	var fresh []publication.Record
	skipped := 0
	for _, r := range records {
		if idx.HasEntry(export.CitationKey(r), r.DOI) {
			skipped++
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh, skipped
}

// writeDownload writes a download to path, or to dir/<filename> when path
// is empty. Returns the path written.
func writeDownload(dl *export.Download, path, dir string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, dl.Filename)
	}
	if err := os.WriteFile(path, []byte(dl.Content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// findByKeys resolves citation keys against the cache. A key shared by
// several publications exports all of them.
func findByKeys(db *storage.DB, keys []string) ([]publication.Record, error) {
	var records []publication.Record
	for _, key := range keys {
		found, err := db.FindByCitationKey(key)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("unknown key: %s", key)
		}
		if len(found) > 1 {
			logger.Warn().Str("key", key).Int("matches", len(found)).Msg("citation key is shared")
		}
		records = append(records, found...)
	}
	return records, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	records, err := loadRecords(db, settings.DataPath)
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	var dl *export.Download
	var selected []publication.Record

	if keys := parseKeys(exportKeys); len(keys) > 0 {
		selected, err = findByKeys(db, keys)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if len(selected) == 1 {
			dl = export.ExportRecord(selected[0])
		} else {
			dl, err = export.ExportRecords(selected, settings.ExportFilename)
		}
	} else {
		st := filter.NewState()
		if !exportAll {
			st = mustReadState(repoRoot)
		}
		sess := session.New(records, st,
			session.WithExportFilename(settings.ExportFilename),
			session.WithLogger(logger),
		)
		selected = present.Flatten(sess.View().Groups)
		dl, err = sess.Export()
	}
	if errors.Is(err, export.ErrNothingToExport) {
		exitWithError(ExitNothingToExport, "%v", err)
	}
	if err != nil {
		exitWithError(ExitError, "exporting: %v", err)
	}

	if exportAppendTo != "" {
		return appendExport(selected, exportAppendTo)
	}

	if exportClipboard {
		cb := clipboard.New()
		if err := cb.Copy(dl.Content); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
		if humanOutput {
			outputHuman("Copied %d entries to the clipboard with %s\n", dl.Count, cb.Tool())
		} else {
			outputJSON(ExportResult{Status: "copied", Count: dl.Count, Tool: cb.Tool()})
		}
		return nil
	}

	if exportOut == "-" {
		// BibTeX is always text output, never JSON
		fmt.Println(dl.Content)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	path, err := writeDownload(dl, exportOut, cwd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	logger.Info().Str("path", path).Int("count", dl.Count).Msg("exported")
	if humanOutput {
		outputHuman("Exported %d entries to %s\n", dl.Count, path)
	} else {
		outputJSON(ExportResult{Status: "exported", Path: path, Count: dl.Count})
	}
	return nil
}

func appendExport(records []publication.Record, target string) error {
	idx, err := export.ParseBibTeXFile(target)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", target, err)
	}

	fresh, skipped := selectNew(records, idx)
	status := "up_to_date"
	if len(fresh) > 0 {
		if err := export.AppendToBibFile(target, export.ToBibTeXList(fresh)+"\n"); err != nil {
			exitWithError(ExitError, "appending to %s: %v", target, err)
		}
		status = "appended"
	}

	if humanOutput {
		outputHuman("Appended %d entries to %s (%d already present)\n", len(fresh), target, skipped)
	} else {
		outputJSON(ExportResult{Status: status, Path: target, Count: len(fresh), Skipped: skipped})
	}
	return nil
}
