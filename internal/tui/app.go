// Package tui is the interactive faceted publication browser.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/facet"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/session"
)

type focus int

const (
	focusFacets focus = iota
	focusQuery
)

// facetPaneWidth is the outer width of the facet column.
const facetPaneWidth = 38

type loadedMsg struct {
	records []publication.Record
}

type loadErrorMsg struct {
	err error
}

// Options configures the browser.
type Options struct {
	// Load supplies the collection once, off the UI loop.
	Load func() ([]publication.Record, error)
	// State is the initial filter state; nil starts empty.
	State          *filter.State
	ExportFilename string
	// SaveExport writes a download and returns where it went.
	SaveExport func(*export.Download) (string, error)
	// Copy puts exported text on the clipboard when set.
	Copy func(string) error
	// SaveState persists the state after every action when set.
	SaveState func(*filter.State) error
	Logger    zerolog.Logger
}

// App is the bubbletea model of the browser.
type App struct {
	opts Options

	width  int
	height int

	sess    *session.Session
	view    session.View
	loading bool
	loadErr error

	facet  int // index into facet.All
	cursor map[facet.Name]int
	focus  focus

	query    textinput.Model
	results  viewport.Model
	help     help.Model
	showHelp bool

	status   string
	quitting bool
}

// NewApp returns a browser that loads its collection on Init.
func NewApp(opts Options) *App {
	q := textinput.New()
	q.Prompt = "/ "
	q.Placeholder = "search titles"
	if opts.State != nil {
		q.SetValue(opts.State.Query)
	}

	a := &App{
		opts:    opts,
		loading: true,
		cursor:  make(map[facet.Name]int, len(facet.All)),
		query:   q,
		results: viewport.New(0, 0),
		help:    help.New(),
	}
	// Until the load completes the browser shows an empty collection.
	a.sess = session.New(nil, opts.State, a.sessionOptions()...)
	a.view = a.sess.View()
	return a
}

func (a *App) sessionOptions() []session.Option {
	return []session.Option{
		session.WithExportFilename(a.opts.ExportFilename),
		session.WithLogger(a.opts.Logger),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), a.load())
}

func (a *App) load() tea.Cmd {
	loader := a.opts.Load
	return func() tea.Msg {
		if loader == nil {
			return loadErrorMsg{errors.New("no publication source configured")}
		}
		records, err := loader()
		if err != nil {
			return loadErrorMsg{err}
		}
		return loadedMsg{records}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.resize()

	case loadedMsg:
		a.loading = false
		a.sess = session.New(msg.records, a.sess.State(), a.sessionOptions()...)
		a.opts.Logger.Info().Int("records", len(a.sess.Records())).Msg("collection loaded")
		a.apply(a.sess.View())

	case loadErrorMsg:
		a.loading = false
		a.loadErr = msg.err
		a.opts.Logger.Error().Err(msg.err).Msg("loading publications")
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.focus == focusQuery {
		return a.handleQueryKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if a.showHelp {
			a.showHelp = false
			return nil
		}
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		a.resize()

	case key.Matches(msg, keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, keys.NextFacet):
		a.facet = (a.facet + 1) % len(facet.All)

	case key.Matches(msg, keys.PrevFacet):
		a.facet = (a.facet + len(facet.All) - 1) % len(facet.All)

	case key.Matches(msg, keys.Toggle):
		vc, ok := a.currentValue()
		if !ok {
			break
		}
		if vc.Disabled && !vc.Selected {
			a.status = styleError.Render(fmt.Sprintf("%s matches nothing under the current filters", vc.Value))
			break
		}
		a.apply(a.sess.Toggle(a.currentFacet(), vc.Value))

	case key.Matches(msg, keys.Search):
		a.focus = focusQuery
		return a.query.Focus()

	case key.Matches(msg, keys.Sort):
		st := a.sess.State()
		a.apply(a.sess.SetSort(st.SortKey.Next(), st.SortDesc))

	case key.Matches(msg, keys.Direction):
		st := a.sess.State()
		a.apply(a.sess.SetSort(st.SortKey, !st.SortDesc))

	case key.Matches(msg, keys.Clear):
		a.query.SetValue("")
		a.apply(a.sess.Clear())

	case key.Matches(msg, keys.Export):
		a.export()

	case key.Matches(msg, keys.Copy):
		a.copyBibTeX()

	case key.Matches(msg, keys.PageUp):
		a.results.HalfViewUp()

	case key.Matches(msg, keys.PageDown):
		a.results.HalfViewDown()
	}
	return nil
}

func (a *App) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Done) {
		a.focus = focusFacets
		a.query.Blur()
		return nil
	}

	var cmd tea.Cmd
	a.query, cmd = a.query.Update(msg)
	if a.query.Value() != a.sess.State().Query {
		a.apply(a.sess.SetQuery(a.query.Value()))
	}
	return cmd
}

// apply adopts a freshly computed view and persists the state.
func (a *App) apply(v session.View) {
	a.view = v
	a.clampCursors()
	a.results.SetContent(renderGroups(v.Groups, a.resultsWidth()))
	a.results.GotoTop()

	if a.opts.SaveState != nil {
		if err := a.opts.SaveState(a.sess.State()); err != nil {
			a.status = styleError.Render("saving state: " + err.Error())
		}
	}
}

func (a *App) export() {
	dl, err := a.sess.Export()
	if errors.Is(err, export.ErrNothingToExport) {
		a.status = styleError.Render("Nothing to export: no publications match the current filters.")
		return
	}
	if err != nil {
		a.status = styleError.Render(err.Error())
		return
	}
	if a.opts.SaveExport == nil {
		a.status = styleError.Render("export is not available")
		return
	}
	path, err := a.opts.SaveExport(dl)
	if err != nil {
		a.status = styleError.Render("export failed: " + err.Error())
		return
	}
	a.status = styleStatus.Render(fmt.Sprintf("Exported %d entries to %s", dl.Count, path))
}

func (a *App) copyBibTeX() {
	if a.opts.Copy == nil {
		a.status = styleError.Render("clipboard is not available")
		return
	}
	dl, err := a.sess.Export()
	if errors.Is(err, export.ErrNothingToExport) {
		a.status = styleError.Render("Nothing to copy: no publications match the current filters.")
		return
	}
	if err != nil {
		a.status = styleError.Render(err.Error())
		return
	}
	if err := a.opts.Copy(dl.Content); err != nil {
		a.status = styleError.Render("copy failed: " + err.Error())
		return
	}
	a.status = styleStatus.Render(fmt.Sprintf("Copied %d entries to the clipboard", dl.Count))
}

func (a *App) currentFacet() facet.Name {
	return facet.All[a.facet]
}

func (a *App) currentCounts() filter.FacetCounts {
	name := a.currentFacet()
	for _, fc := range a.view.Facets {
		if fc.Name == name {
			return fc
		}
	}
	return filter.FacetCounts{Name: name}
}

func (a *App) currentValue() (filter.ValueCount, bool) {
	values := a.currentCounts().Values
	i := a.cursor[a.currentFacet()]
	if i < 0 || i >= len(values) {
		return filter.ValueCount{}, false
	}
	return values[i], true
}

func (a *App) moveCursor(delta int) {
	name := a.currentFacet()
	a.cursor[name] += delta
	a.clampCursors()
}

func (a *App) clampCursors() {
	for _, fc := range a.view.Facets {
		i := a.cursor[fc.Name]
		if i >= len(fc.Values) {
			i = len(fc.Values) - 1
		}
		if i < 0 {
			i = 0
		}
		a.cursor[fc.Name] = i
	}
}

func (a *App) resultsWidth() int {
	return max(a.width-facetPaneWidth-4, 20)
}

// chromeHeight is the number of rows outside the two panes.
func (a *App) chromeHeight() int {
	rows := 6 // header, tabs, query, status, help, pane borders
	if a.showHelp {
		rows += 3
	}
	return rows
}

func (a *App) resize() {
	a.results.Width = a.resultsWidth()
	a.results.Height = max(a.height-a.chromeHeight(), 3)
	a.results.SetContent(renderGroups(a.view.Groups, a.resultsWidth()))
}
