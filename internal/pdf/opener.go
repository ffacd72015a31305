// Package pdf locates the site's local papers and slides and reads DOIs
// from them.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/commitlab/pubs/internal/export"
)

// ErrRemoteAsset is returned when a link points off-site after localization.
var ErrRemoteAsset = errors.New("asset is not hosted on this site")

// ErrOutsideSite is returned when a relative link escapes the site root.
var ErrOutsideSite = errors.New("asset path leaves the site root")

// Opener resolves asset links against the site root and opens them.
type Opener struct {
	siteRoot string
}

// NewOpener creates an opener for the site rooted at siteRoot.
func NewOpener(siteRoot string) *Opener {
	return &Opener{siteRoot: siteRoot}
}

// LocalPath maps a url or slides link to a file path under the site root.
// Remote links yield ErrRemoteAsset and links resolving above the root yield
// ErrOutsideSite. The file is not required to exist.
func (o *Opener) LocalPath(link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("no link specified")
	}
	local := export.LocalizeAssetURL(link)
	lower := strings.ToLower(local)
	if strings.Contains(lower, "://") || strings.HasPrefix(lower, "mailto:") {
		return "", fmt.Errorf("%w: %s", ErrRemoteAsset, link)
	}
	root := filepath.Clean(o.siteRoot)
	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(local, "/")))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSite, link)
	}
	return full, nil
}

// ResolvePath maps a link to an existing local file.
func (o *Opener) ResolvePath(link string) (string, error) {
	fullPath, err := o.LocalPath(link)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("asset not found: %s", fullPath)
		}
		return "", fmt.Errorf("checking asset: %w", err)
	}

	return fullPath, nil
}

// Open opens a local file or a remote URL with the system handler.
func (o *Opener) Open(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
