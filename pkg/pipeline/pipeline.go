// Package pipeline provides the load → layout → render pipeline of treemap.
//
// The CLI commands and the interactive explorer both drive the same stages,
// so defaults, validation and caching behave identically everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a hierarchical JSON document into a tree
//  2. Layout: Run the squarified layout, optionally drilled to a node
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DataPath: "disk.json",
//	    Series:   config.Default(),
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/scene"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	DataPath string `json:"data_path"`

	// Layout options
	Series config.Series `json:"series"`
	// Root drills the view root down to this node id before rendering.
	Root string `json:"root,omitempty"`
	// Zoom zooms the view root's layout in on this node id.
	Zoom string `json:"zoom,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tree *tree.Tree
	// DataHash is the content hash of the normalised data.
	DataHash  string
	Layout    scene.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	CellCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data path is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates the series and fills layout defaults.
func (o *Options) ValidateForLayout() error {
	if o.Series.Width == 0 && o.Series.Height == 0 && o.Series.Sort == "" {
		o.Series = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Series.Validate()
}

// ValidateForRender validates formats and fills render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if !(o.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive (got %g)", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// Action returns the layout action the options ask for. A zoom target wins
// over a drill target since zooming happens after drilling.
func (o *Options) Action() layout.Action {
	switch {
	case o.Zoom != "":
		return layout.ActionZoomToNode
	case o.Root != "":
		return layout.ActionRootToNode
	default:
		return layout.ActionRender
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	series, err := o.Series.Hash()
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	return cache.LayoutKeyOpts{
		Series: cache.Hash(series),
		Action: o.Action().String(),
		Target: o.Root + "/" + o.Zoom,
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Labels: !o.NoLabels}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
