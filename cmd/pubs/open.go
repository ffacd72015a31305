package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitlab/pubs/internal/pdf"
	"github.com/commitlab/pubs/internal/publication"
)

var (
	openSlides bool
	openPrint  bool
)

func init() {
	openCmd.Flags().BoolVar(&openSlides, "slides", false, "Open the slides instead of the paper")
	openCmd.Flags().BoolVar(&openPrint, "print", false, "Print the resolved target without opening it")
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <key>",
	Short: "Open a publication's PDF or slides",
	Long: `Open a publication's PDF or slides with the system viewer.

Links to papers/ and presentations/ resolve to files under the site root,
whichever mirror they were written against; other links open in the browser.

Examples:
  pubs open smith2020deep
  pubs open smith2020deep --slides
  pubs open smith2020deep --print`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// OpenResult is the response for the open command.
type OpenResult struct {
	Key    string `json:"key"`
	Target string `json:"target"`
	Remote bool   `json:"remote"`
	Opened bool   `json:"opened"`
}

// assetLink picks the link to open.
func assetLink(r publication.Record, slides bool) (string, error) {
	if slides {
		if r.Slides == "" {
			return "", fmt.Errorf("no slides for %q", r.DisplayTitle())
		}
		return r.Slides, nil
	}
	if r.URL == "" {
		return "", fmt.Errorf("no PDF for %q", r.DisplayTitle())
	}
	return r.URL, nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	key := args[0]

	repoRoot := mustFindRepository()
	settings := mustLoadSettings(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if _, err := loadRecords(db, settings.DataPath); err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	found, err := findByKeys(db, []string{key})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	link, err := assetLink(found[0], openSlides)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	opener := pdf.NewOpener(settings.SiteRoot)
	result := OpenResult{Key: key}

	path, err := opener.ResolvePath(link)
	switch {
	case errors.Is(err, pdf.ErrRemoteAsset):
		result.Target = link
		result.Remote = true
	case err != nil:
		exitWithError(ExitError, "%v", err)
	default:
		result.Target = path
	}

	if !openPrint {
		if err := opener.Open(result.Target); err != nil {
			exitWithError(ExitError, "opening %s: %v", result.Target, err)
		}
		result.Opened = true
	}

	if humanOutput {
		if result.Opened {
			fmt.Printf("Opened: %s\n", result.Target)
		} else {
			fmt.Println(result.Target)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
