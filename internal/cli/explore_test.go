package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/tree"
)

func diskTree(t *testing.T, extra ...tree.Item) *tree.Tree {
	t.Helper()
	v := func(f float64) *float64 { return &f }
	items := []tree.Item{
		{ID: "src", Name: "src", Children: []tree.Item{
			{ID: "main", Name: "main.go", Value: v(120)},
			{ID: "util", Name: "util.go", Value: v(80)},
		}},
		{ID: "docs", Name: "docs", Value: v(100)},
	}
	tr, err := tree.Build("disk", append(items, extra...))
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func newTestExplorer(t *testing.T) *exploreModel {
	t.Helper()
	m := newExploreModel(diskTree(t), config.Default(), log.New(io.Discard))
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return m
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (m *exploreModel) selectID(t *testing.T, id string) {
	t.Helper()
	for i, c := range m.layout.Cells {
		if c.ID == id {
			m.selected = i
			return
		}
	}
	t.Fatalf("cell %q not in layout", id)
}

func viewRootID(m *exploreModel) string {
	if vr := m.chart.ViewRoot(); vr != nil {
		return vr.ID
	}
	return ""
}

func TestExploreResize(t *testing.T) {
	m := newTestExplorer(t)
	if m.canvas.w != 60 || m.canvas.h != 20-exploreChromeRows {
		t.Errorf("canvas = %dx%d, want 60x%d", m.canvas.w, m.canvas.h, 20-exploreChromeRows)
	}
	if m.selected < 0 {
		t.Error("a cell should be selected after layout")
	}

	m.Update(tea.WindowSizeMsg{Width: 2, Height: 1})
	if m.canvas.w != exploreMinWidth || m.canvas.h != exploreMinHeight {
		t.Errorf("tiny terminal canvas = %dx%d, want minimum", m.canvas.w, m.canvas.h)
	}
}

func TestExploreKeys(t *testing.T) {
	m := newTestExplorer(t)

	m.selectID(t, "src")
	m.Update(press("d"))
	if got := viewRootID(m); got != "src" {
		t.Fatalf("after d view root = %q, want src", got)
	}
	if m.layout.Direction != "drillDown" {
		t.Errorf("direction = %q, want drillDown", m.layout.Direction)
	}

	m.Update(press("u"))
	if got := viewRootID(m); got != "disk" {
		t.Errorf("after u view root = %q, want disk", got)
	}
	if m.layout.Direction != "rollUp" {
		t.Errorf("direction = %q, want rollUp", m.layout.Direction)
	}

	m.selectID(t, "src")
	m.Update(press("d"))
	m.Update(press("r"))
	if got := viewRootID(m); got != "disk" {
		t.Errorf("after r view root = %q, want disk", got)
	}

	_, cmd := m.Update(press("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestExploreMoveSelection(t *testing.T) {
	m := newTestExplorer(t)
	seen := map[string]bool{m.layout.Cells[m.selected].ID: true}
	for _, k := range []string{"right", "l", "down", "j", "left", "h", "up", "k"} {
		m.handleKey(press(k))
		seen[m.layout.Cells[m.selected].ID] = true
	}
	if len(seen) < 2 {
		t.Errorf("moving should reach more than one cell, saw %v", seen)
	}
}

func TestExploreClickZooms(t *testing.T) {
	m := newTestExplorer(t)
	m.selectID(t, "docs")
	m.Update(press("enter"))
	if m.layout.Action != "zoomToNode" {
		t.Errorf("action = %q, want zoomToNode", m.layout.Action)
	}
	if got := viewRootID(m); got != "disk" {
		t.Errorf("zoom should keep the view root, got %q", got)
	}
}

func TestExploreBreadcrumbClick(t *testing.T) {
	m := newTestExplorer(t)
	m.selectID(t, "src")
	m.handleKey(press("d"))
	if len(m.crumbs) < 2 {
		t.Fatalf("crumbs = %d, want a trail below the root", len(m.crumbs))
	}

	first := m.crumbs[0]
	m.Update(tea.MouseMsg{
		X:      int(first.X) + 1,
		Y:      m.canvas.h + 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if got := viewRootID(m); got != "disk" {
		t.Errorf("clicking the root crumb should roll up, view root = %q", got)
	}
}

func TestExploreReload(t *testing.T) {
	m := newTestExplorer(t)
	m.selectID(t, "src")
	m.handleKey(press("d"))

	v := 50.0
	m.Update(reloadMsg{paths: []string{"disk.json"}, tree: diskTree(t, tree.Item{ID: "tmp", Name: "tmp", Value: &v})})
	if got := viewRootID(m); got != "src" {
		t.Errorf("reload should keep the view root, got %q", got)
	}
	if m.chart.Tree().NodeByID("tmp") == nil {
		t.Error("reload should install the new tree")
	}
	if !strings.Contains(m.status, "reloaded") {
		t.Errorf("status = %q", m.status)
	}

	s := config.Default()
	s.Name = "volume"
	m.Update(reloadMsg{paths: []string{"series.toml"}, series: &s})
	if m.layout.Name != "volume" {
		t.Errorf("reloaded series name = %q, want volume", m.layout.Name)
	}

	m.Update(reloadMsg{paths: []string{"disk.json"}, err: errors.New("boom")})
	if !strings.HasPrefix(m.status, "reload failed") {
		t.Errorf("status = %q, want reload failed", m.status)
	}
}

func TestLoadChange(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeData(t, dir)
	configPath := filepath.Join(dir, "series.toml")
	if err := os.WriteFile(configPath, []byte("name = \"volume\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		paths      []string
		wantTree   bool
		wantSeries bool
	}{
		{"data", []string{dataPath}, true, false},
		{"series", []string{configPath}, false, true},
		{"both", []string{dataPath, configPath}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := loadChange(tt.paths, dataPath, configPath)
			if msg.err != nil {
				t.Fatalf("loadChange() error = %v", msg.err)
			}
			if (msg.tree != nil) != tt.wantTree {
				t.Errorf("tree reloaded = %v, want %v", msg.tree != nil, tt.wantTree)
			}
			if (msg.series != nil) != tt.wantSeries {
				t.Errorf("series reloaded = %v, want %v", msg.series != nil, tt.wantSeries)
			}
			if msg.series != nil && msg.series.Name != "volume" {
				t.Errorf("series name = %q, want volume", msg.series.Name)
			}
		})
	}
}

func TestExploreHelpAndCopy(t *testing.T) {
	m := newTestExplorer(t)
	short := m.View()
	m.Update(press("?"))
	if !m.help.ShowAll {
		t.Fatal("? should expand the help")
	}
	if full := m.View(); !strings.Contains(full, "copy id") || strings.Contains(short, "copy id") {
		t.Error("the expanded help should list the copy binding")
	}

	// The clipboard may be unavailable in CI; either outcome is reported.
	m.selectID(t, "docs")
	m.Update(press("y"))
	if !strings.HasPrefix(m.status, "copied docs") && !strings.HasPrefix(m.status, "copy failed") {
		t.Errorf("status = %q", m.status)
	}
}

func TestExploreView(t *testing.T) {
	m := newTestExplorer(t)
	m.selectID(t, "src")
	m.handleKey(press("d"))

	view := m.View()
	for _, want := range []string{"disk", "src", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
