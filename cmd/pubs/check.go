package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/check"
)

var (
	checkScanPDFs bool
	checkStrict   bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkScanPDFs, "scan-pdfs", false, "Read local PDFs and compare the DOI they print")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when warnings are found")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the publication list against the site",
	Long: `Verify the publication list against the site directory.

Reports PDF and slides links that point at missing local files, DOIs shared
by more than one publication, and citation keys that export more than once.
With --scan-pdfs, local PDFs are read for a DOI: a DOI missing from the
record is reported, as is one that differs.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status   string        `json:"status"`
	Checked  int           `json:"checked"`
	Warnings int           `json:"warnings"`
	Issues   []check.Issue `json:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	records, err := loadRecords(db, settings.DataPath)
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	report, err := check.New(settings.SiteRoot, checkScanPDFs, logger).Run(records, db)
	if err != nil {
		exitWithError(ExitError, "checking: %v", err)
	}

	warnings := report.Warnings()
	status := "ok"
	if warnings > 0 {
		status = "warnings"
	}

	if humanOutput {
		if len(report.Issues) == 0 {
			fmt.Printf("Checked %d publications: no issues found\n", report.Checked)
		} else {
			fmt.Printf("Checked %d publications: %d issues (%d warnings)\n\n", report.Checked, len(report.Issues), warnings)
			for _, is := range report.Issues {
				fmt.Printf("[%s] %s: %s\n", is.Severity, is.Kind, is.Value)
				if is.Title != "" {
					fmt.Printf("    %s\n", truncateString(is.Title, ListTitleMaxLen))
				}
				if is.Detail != "" {
					fmt.Printf("    %s\n", is.Detail)
				}
			}
		}
	} else {
		outputJSON(CheckResult{
			Status:   status,
			Checked:  report.Checked,
			Warnings: warnings,
			Issues:   report.Issues,
		})
	}

	if checkStrict && warnings > 0 {
		os.Exit(ExitCheckFailed)
	}
	return nil
}
