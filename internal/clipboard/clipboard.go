// Package clipboard copies exported BibTeX to the system clipboard through
// the platform's command-line helper.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard helper is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// tool is one clipboard helper and the arguments that make it read stdin.
type tool struct {
	name string
	args []string
}

// toolsFor lists the helpers tried on goos, in preference order.
func toolsFor(goos string) []tool {
	switch goos {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "linux", "freebsd", "openbsd":
		return []tool{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
	return nil
}

// Copier writes text to the clipboard with the first helper found.
type Copier struct {
	tools    []tool
	lookPath func(string) (string, error)
	run      func(name string, args []string, input string) error
}

// New returns a copier for the running platform.
func New() *Copier {
	return &Copier{
		tools:    toolsFor(runtime.GOOS),
		lookPath: exec.LookPath,
		run:      runTool,
	}
}

func runTool(name string, args []string, input string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// detect returns the first installed helper.
func (c *Copier) detect() (tool, error) {
	for _, t := range c.tools {
		if _, err := c.lookPath(t.name); err == nil {
			return t, nil
		}
	}
	return tool{}, ErrClipboardUnavailable
}

// Available reports whether a clipboard helper is installed.
func (c *Copier) Available() bool {
	_, err := c.detect()
	return err == nil
}

// Tool returns the name of the helper Copy would use, or "".
func (c *Copier) Tool() string {
	t, err := c.detect()
	if err != nil {
		return ""
	}
	return t.name
}

// Copy replaces the clipboard contents with text.
func (c *Copier) Copy(text string) error {
	t, err := c.detect()
	if err != nil {
		return err
	}
	return c.run(t.name, t.args, text)
}
