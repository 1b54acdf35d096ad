// Package config handles loading treemap series options.
//
// Options are read from TOML or YAML files, chosen by extension, and merged
// over [Default]. Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/treemap/config.toml
//   - Cache:  ~/.cache/treemap/
package config

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/tree"
)

const appName = "treemap"

// Node click behaviours.
const (
	NodeClickZoom = "zoomToNode"
	NodeClickLink = "link"
	NodeClickNone = "none"
)

// ItemStyle holds the series-wide cell style.
type ItemStyle struct {
	BorderWidth float64 `toml:"borderWidth" yaml:"borderWidth" json:"borderWidth"`
	GapWidth    float64 `toml:"gapWidth" yaml:"gapWidth" json:"gapWidth"`
	BorderColor string  `toml:"borderColor" yaml:"borderColor" json:"borderColor"`
}

// UpperLabel controls the header band drawn above a parent's children.
type UpperLabel struct {
	Show   bool    `toml:"show" yaml:"show" json:"show"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Breadcrumb controls the navigation trail.
type Breadcrumb struct {
	Show           bool    `toml:"show" yaml:"show" json:"show"`
	Height         float64 `toml:"height" yaml:"height" json:"height"`
	EmptyItemWidth float64 `toml:"emptyItemWidth" yaml:"emptyItemWidth" json:"emptyItemWidth"`
}

// Series is the complete option set of one treemap.
type Series struct {
	Name   string  `toml:"name" yaml:"name" json:"name"`
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`

	// Sort is "desc", "asc" or "none".
	Sort               string   `toml:"sort" yaml:"sort" json:"sort"`
	SquareRatio        float64  `toml:"squareRatio" yaml:"squareRatio" json:"squareRatio"`
	LeafDepth          *int     `toml:"leafDepth,omitempty" yaml:"leafDepth,omitempty" json:"leafDepth,omitempty"`
	ZoomToNodeRatio    float64  `toml:"zoomToNodeRatio" yaml:"zoomToNodeRatio" json:"zoomToNodeRatio"`
	VisibleMin         float64  `toml:"visibleMin" yaml:"visibleMin" json:"visibleMin"`
	ChildrenVisibleMin *float64 `toml:"childrenVisibleMin,omitempty" yaml:"childrenVisibleMin,omitempty" json:"childrenVisibleMin,omitempty"`
	NodeClick          string   `toml:"nodeClick" yaml:"nodeClick" json:"nodeClick"`

	ItemStyle  ItemStyle  `toml:"itemStyle" yaml:"itemStyle" json:"itemStyle"`
	UpperLabel UpperLabel `toml:"upperLabel" yaml:"upperLabel" json:"upperLabel"`
	Breadcrumb Breadcrumb `toml:"breadcrumb" yaml:"breadcrumb" json:"breadcrumb"`

	// Levels override the style per depth; Levels[0] is the root.
	Levels []tree.StyleOverride `toml:"levels,omitempty" yaml:"levels,omitempty" json:"levels,omitempty"`
	// Colors is the palette assigned to top-level branches.
	Colors []string `toml:"colors,omitempty" yaml:"colors,omitempty" json:"colors,omitempty"`
}

// Default returns the standard series options.
func Default() Series {
	return Series{
		Name:            "root",
		Width:           800,
		Height:          600,
		Sort:            "desc",
		SquareRatio:     layout.GoldenRatio,
		ZoomToNodeRatio: layout.DefaultZoomToNodeRatio,
		VisibleMin:      10,
		NodeClick:       NodeClickZoom,
		ItemStyle: ItemStyle{
			BorderColor: "#fff",
		},
		UpperLabel: UpperLabel{Height: 20},
		Breadcrumb: Breadcrumb{
			Show:           true,
			Height:         breadcrumb.DefaultHeight,
			EmptyItemWidth: breadcrumb.DefaultEmptyItemWidth,
		},
	}
}

// Load reads series options from path, merged over Default. The format is
// chosen by extension: .yaml/.yml for YAML, anything else for TOML.
func Load(path string) (Series, error) {
	s := Default()
	if err := errors.ValidatePath(path); err != nil {
		return s, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		_, err = toml.Decode(string(data), &s)
	}
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return s, s.Validate()
}

// LoadDefault reads ConfigPath if it exists and returns Default otherwise.
func LoadDefault() (Series, error) {
	path := ConfigPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the options for values the layout cannot use.
func (s Series) Validate() error {
	if err := errors.ValidateDimensions(s.Width, s.Height); err != nil {
		return err
	}
	if err := errors.ValidateSort(s.Sort); err != nil {
		return err
	}
	if err := errors.ValidateRatio("squareRatio", s.SquareRatio); err != nil {
		return err
	}
	if err := errors.ValidateRatio("zoomToNodeRatio", s.ZoomToNodeRatio); err != nil {
		return err
	}
	if s.LeafDepth != nil && *s.LeafDepth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "leafDepth must be at least 1 (got %d)", *s.LeafDepth)
	}
	if s.VisibleMin < 0 || math.IsNaN(s.VisibleMin) {
		return errors.New(errors.ErrCodeInvalidConfig, "visibleMin must not be negative")
	}
	if s.ItemStyle.BorderWidth < 0 || s.ItemStyle.GapWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "borderWidth and gapWidth must not be negative")
	}
	switch s.NodeClick {
	case NodeClickZoom, NodeClickLink, NodeClickNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid nodeClick: %q (must be '%s', '%s' or '%s')",
			s.NodeClick, NodeClickZoom, NodeClickLink, NodeClickNone)
	}
	return nil
}

// LayoutOptions returns the options of a layout pass.
func (s Series) LayoutOptions() layout.Options {
	return layout.Options{
		Sort:            layout.ParseSort(s.Sort),
		SquareRatio:     s.SquareRatio,
		LeafDepth:       s.LeafDepth,
		ZoomToNodeRatio: s.ZoomToNodeRatio,
	}
}

// BaseStyle returns the style every node falls back to.
func (s Series) BaseStyle() tree.Style {
	return tree.Style{
		BorderWidth:        s.ItemStyle.BorderWidth,
		GapWidth:           s.ItemStyle.GapWidth,
		BorderColor:        s.ItemStyle.BorderColor,
		VisibleMin:         s.VisibleMin,
		ChildrenVisibleMin: s.ChildrenVisibleMin,
		UpperLabel:         s.UpperLabel.Show,
		UpperLabelHeight:   s.UpperLabel.Height,
	}
}

// Apply installs the series style on t.
func (s Series) Apply(t *tree.Tree) {
	if t == nil {
		return
	}
	t.Base = s.BaseStyle()
	t.Levels = s.Levels
}

// Container returns the layout box.
func (s Series) Container() layout.Rect {
	return layout.NewRect(0, 0, s.Width, s.Height)
}

// BreadcrumbOptions returns the trail metrics for a measurer.
func (s Series) BreadcrumbOptions(m breadcrumb.Measurer) breadcrumb.Options {
	opts := breadcrumb.DefaultOptions()
	opts.Measurer = m
	opts.AvailableWidth = s.Width
	if s.Breadcrumb.EmptyItemWidth > 0 {
		opts.EmptyItemWidth = s.Breadcrumb.EmptyItemWidth
	}
	return opts
}

// Encode writes s as TOML.
func (s Series) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Hash returns a stable byte form of s for cache keys.
func (s Series) Hash() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "encode series")
	}
	return buf.Bytes(), nil
}

// ConfigDir returns the XDG config directory for treemap.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// CacheDir returns the XDG cache directory for treemap.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
