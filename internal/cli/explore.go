package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb"
	"github.com/matzehuels/treemap/pkg/render/treemap/styles"
	"github.com/matzehuels/treemap/pkg/scene"
	"github.com/matzehuels/treemap/pkg/tree"
	"github.com/matzehuels/treemap/pkg/watcher"
)

// Rows reserved around the treemap: title, breadcrumb, help.
const (
	exploreChromeRows = 3
	exploreMinWidth   = 10
	exploreMinHeight  = 3
)

var (
	exploreTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	exploreCrumbStyle  = lipgloss.NewStyle().Foreground(colorValue).Background(colorFaint)
	exploreActiveCrumb = lipgloss.NewStyle().Bold(true).Foreground(colorValue).Background(colorAccent)
	exploreHelpStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	exploreStatusStyle = lipgloss.NewStyle().Foreground(colorWarn)
)

// exploreKeys are the explorer bindings; they double as the help line.
type exploreKeys struct {
	Up, Down, Left, Right key.Binding
	Click, Drill, Parent  key.Binding
	Root, Copy, Help      key.Binding
	Quit                  key.Binding
}

func newExploreKeys() exploreKeys {
	return exploreKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "click")),
		Drill:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drill")),
		Parent: key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "up a level")),
		Root:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "root")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Drill, k.Parent, k.Root, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Click, k.Drill, k.Parent, k.Root},
		{k.Copy, k.Help, k.Quit},
	}
}

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		series seriesFlags
		root   string
		watch  bool
		poll   bool
	)

	cmd := &cobra.Command{
		Use:   "explore [data.json]",
		Short: "Browse a hierarchy interactively",
		Long: `Browse a hierarchy interactively in the terminal.

Move between cells with the arrow keys or hjkl, click or press enter to apply
the node click action, d to drill into the selected node, u to roll up one
level and r to return to the root. y copies the selected node id and ?
shows every binding. With --watch the data and options files are reloaded
when they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := series.load(cmd)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), args[0], series.config, s, root, watch, poll)
		},
	}

	series.register(cmd)
	cmd.Flags().StringVar(&root, "root", "", "start drilled into this node id")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the data or options file changes")
	cmd.Flags().BoolVar(&poll, "poll", false, "watch by polling instead of file system events")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, dataPath, configPath string, s config.Series, root string, watch, poll bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrCodeUnsupported, "explore needs an interactive terminal")
	}

	t, err := pipeline.Load(ctx, dataPath)
	if err != nil {
		return err
	}

	m := newExploreModel(t, s, c.Logger)
	m.dataPath, m.configPath = dataPath, configPath
	if root != "" {
		res, ok := m.chart.RootToNode(root)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "root node %q not found", root)
		}
		m.refresh(res)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if watch {
		w, err := watcher.New([]string{dataPath, configPath}, watcherOpts(poll, c.Logger)...)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				c.Logger.Warn("watcher stopped", "err", err)
			}
		}()
		m.changes = w.Changes()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func watcherOpts(poll bool, l *log.Logger) []watcher.Option {
	opts := []watcher.Option{watcher.WithLogger(l)}
	if poll {
		opts = append(opts, watcher.WithPolling())
	}
	return opts
}

// =============================================================================
// Model
// =============================================================================

type reloadMsg struct {
	paths  []string
	tree   *tree.Tree
	series *config.Series
	err    error
}

// exploreModel is the bubbletea model of the explorer. Terminal cells are
// the layout unit.
type exploreModel struct {
	series config.Series
	chart  *treemap.Chart
	logger *log.Logger

	width, height int
	layout        scene.Layout
	canvas        *canvas
	crumbs        []breadcrumb.Chip
	selected      int // index into layout.Cells, -1 for none
	status        string
	keys          exploreKeys
	help          help.Model

	dataPath, configPath string
	changes              <-chan []string
}

func newExploreModel(t *tree.Tree, s config.Series, logger *log.Logger) *exploreModel {
	m := &exploreModel{
		series:   s,
		logger:   logger,
		selected: -1,
		width:    80,
		height:   24,
		keys:     newExploreKeys(),
		help:     help.New(),
	}
	m.help.Width = m.width
	m.help.Styles.ShortDesc = exploreHelpStyle
	m.help.Styles.FullDesc = exploreHelpStyle
	m.chart = treemap.New(t, m.terminalSeries(), treemap.WithLogger(logger))
	m.refresh(m.chart.Render(nil))
	return m
}

// terminalSeries adapts the series to cell units: no borders or gaps,
// one-row headers, and a minimum visible area of one cell.
func (m *exploreModel) terminalSeries() config.Series {
	s := m.series
	s.Width = float64(max(m.width, exploreMinWidth))
	s.Height = float64(max(m.height-exploreChromeRows, exploreMinHeight))
	s.ItemStyle.BorderWidth = 0
	s.ItemStyle.GapWidth = 0
	s.VisibleMin = min(s.VisibleMin, 1)
	s.UpperLabel.Height = 1
	s.Breadcrumb.Show = false

	s.Levels = make([]tree.StyleOverride, len(m.series.Levels))
	for i, lv := range m.series.Levels {
		s.Levels[i] = tree.StyleOverride{Color: lv.Color, UpperLabel: lv.UpperLabel}
	}
	return s
}

// crumbOptions sizes the trail in terminal cells.
func (m *exploreModel) crumbOptions() breadcrumb.Options {
	return breadcrumb.Options{
		Measurer:       breadcrumb.CellMeasurer{},
		AvailableWidth: float64(m.width),
		Padding:        1,
		ItemGap:        1,
		EmptyItemWidth: 3,
	}
}

// refresh snapshots the chart after an action and keeps the selection on
// the same node when it is still shown.
func (m *exploreModel) refresh(res treemap.Result) {
	prev := ""
	if m.selected >= 0 && m.selected < len(m.layout.Cells) {
		prev = m.layout.Cells[m.selected].ID
	}

	s := m.chart.Series()
	m.layout = scene.FromChart(m.chart, res, breadcrumb.CellMeasurer{})
	m.canvas = newCanvas(m.layout, int(s.Width), int(s.Height))

	opts := m.crumbOptions()
	m.crumbs = breadcrumb.Layout(breadcrumb.Build(m.chart.BreadcrumbTarget(), opts), 0, 0, 1, opts)

	m.selected = -1
	candidates := m.canvas.selectable()
	for _, i := range candidates {
		if m.layout.Cells[i].ID == prev {
			m.selected = i
		}
	}
	if m.selected < 0 && len(candidates) > 0 {
		m.selected = candidates[0]
	}
}

// resize lays the chart out again at the terminal size, keeping the view
// root.
func (m *exploreModel) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	t, vr := m.chart.Tree(), m.chart.ViewRoot()
	m.chart = treemap.New(t, m.terminalSeries(), treemap.WithLogger(m.logger))
	res := m.chart.Render(nil)
	if vr != nil && vr != t.Root {
		if r, ok := m.chart.RootToNode(vr.ID); ok {
			res = r
		}
	}
	m.refresh(res)
}

func (m *exploreModel) selectedNode() *tree.Node {
	if m.selected < 0 || m.selected >= len(m.layout.Cells) {
		return nil
	}
	return m.chart.Tree().NodeByID(m.layout.Cells[m.selected].ID)
}

func (m *exploreModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher and reloads the changed files.
func (m *exploreModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes, dataPath, configPath := m.changes, m.dataPath, m.configPath
	return func() tea.Msg {
		paths, ok := <-changes
		if !ok {
			return nil
		}
		return loadChange(paths, dataPath, configPath)
	}
}

// loadChange rereads every input among paths. Paths other than the series
// file count as data changes.
func loadChange(paths []string, dataPath, configPath string) reloadMsg {
	msg := reloadMsg{paths: paths}
	var data, series bool
	for _, p := range paths {
		if configPath != "" && sameFile(p, configPath) {
			series = true
		} else {
			data = true
		}
	}
	if series {
		s, err := config.Load(configPath)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.series = &s
	}
	if data {
		msg.tree, msg.err = pipeline.Load(context.Background(), dataPath)
	}
	return msg
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case reloadMsg:
		m.applyReload(msg)
		return m, m.waitForChange()
	}
	return m, nil
}

func (m *exploreModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Click):
		if c := m.selectedCell(); c != nil {
			x, y := centre(*c)
			m.click(x, y)
		}
	case key.Matches(msg, m.keys.Drill):
		if n := m.selectedNode(); n != nil {
			if res, ok := m.chart.RootToNode(n); ok {
				m.refresh(res)
			}
		}
	case key.Matches(msg, m.keys.Parent):
		if vr := m.chart.ViewRoot(); vr != nil && vr.Parent != nil {
			if res, ok := m.chart.RootToNode(vr.Parent); ok {
				m.refresh(res)
			}
		}
	case key.Matches(msg, m.keys.Root):
		if t := m.chart.Tree(); t != nil {
			res, ok := m.chart.RootToNode(t.Root)
			if !ok {
				res = m.chart.Render(nil)
			}
			m.refresh(res)
		}
	case key.Matches(msg, m.keys.Copy):
		if c := m.selectedCell(); c != nil {
			if err := clipboard.WriteAll(c.ID); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied " + c.ID
			}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *exploreModel) selectedCell() *scene.Cell {
	if m.selected < 0 || m.selected >= len(m.layout.Cells) {
		return nil
	}
	return &m.layout.Cells[m.selected]
}

func (m *exploreModel) move(dx, dy int) {
	m.selected = nearest(m.layout.Cells, m.canvas.selectable(), m.selected, dx, dy)
}

func (m *exploreModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	switch row := msg.Y - 1; {
	case row >= 0 && row < m.canvas.h:
		m.click(float64(msg.X)+0.5, float64(row)+0.5)
	case row == m.canvas.h:
		if chip := breadcrumb.Hit(m.crumbs, float64(msg.X)+0.5, 0.5); chip != nil {
			if res, ok := m.chart.Navigate(chip.Node); ok {
				m.refresh(res)
			}
		}
	}
}

// click applies the node click policy at a treemap point.
func (m *exploreModel) click(x, y float64) {
	out := m.chart.Click(x, y)
	switch {
	case out.Acted:
		m.refresh(out.Result)
	case out.Link != "":
		m.status = fmt.Sprintf("link (%s): %s", out.LinkTarget, out.Link)
	case out.Node != nil:
		if i := m.canvas.at(int(x), int(y)); i >= 0 {
			m.selected = i
		}
	}
}

func (m *exploreModel) applyReload(msg reloadMsg) {
	if msg.err != nil {
		m.status = "reload failed: " + errors.UserMessage(msg.err)
		m.logger.Warn("reload failed", "paths", msg.paths, "err", msg.err)
		return
	}
	prog := newProgress(m.logger)
	if msg.series != nil {
		m.series = *msg.series
		m.resize(m.width, m.height)
	}
	if msg.tree != nil {
		m.chart.SetTree(msg.tree)
		vr := m.chart.ViewRoot()
		res := m.chart.Render(nil)
		if vr != nil && vr != msg.tree.Root {
			if r, ok := m.chart.RootToNode(vr); ok {
				res = r
			}
		}
		m.refresh(res)
	}
	names := make([]string, len(msg.paths))
	for i, p := range msg.paths {
		names[i] = filepath.Base(p)
	}
	m.status = "reloaded " + strings.Join(names, ", ")
	prog.done("Reloaded " + strings.Join(msg.paths, ", "))
}

func (m *exploreModel) View() string {
	var b strings.Builder

	title := m.layout.Name
	if vr := m.chart.ViewRoot(); vr != nil && vr.Parent != nil {
		title += " › " + vr.Label()
	}
	if c := m.selectedCell(); c != nil {
		title += styleFaint.Render(fmt.Sprintf("  %s = %g", c.Label, c.Value))
	}
	b.WriteString(exploreTitleStyle.Render(title))
	b.WriteByte('\n')

	b.WriteString(m.canvas.render(styles.ForLayout(m.layout), m.selected))
	b.WriteByte('\n')

	b.WriteString(m.crumbLine())
	b.WriteByte('\n')

	if m.status != "" {
		b.WriteString(exploreStatusStyle.Render(m.status))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// crumbLine draws the trail, padding each chip to its laid out width.
func (m *exploreModel) crumbLine() string {
	var b strings.Builder
	x := 0
	for i, ch := range m.crumbs {
		if gap := int(ch.X) - x; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
			x += gap
		}
		w := int(ch.Width)
		label := styles.Truncate(ch.Label, w-2)
		if ch.Collapsed {
			label = "…"
		}
		text := " " + label + strings.Repeat(" ", max(0, w-2-lipgloss.Width(label))) + " "
		style := exploreCrumbStyle
		if i == len(m.crumbs)-1 {
			style = exploreActiveCrumb
		}
		b.WriteString(style.Render(text))
		x += lipgloss.Width(text)
	}
	return b.String()
}
