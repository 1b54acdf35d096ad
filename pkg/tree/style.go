package tree

// Style is the fully resolved set of visual options for a node.
type Style struct {
	BorderWidth float64
	GapWidth    float64
	BorderColor string
	Color       string

	// VisibleMin is the minimum area a child needs to be kept, when the
	// children are sorted.
	VisibleMin float64
	// ChildrenVisibleMin hides grandchildren when the node's own area is
	// below it. Nil disables the check.
	ChildrenVisibleMin *float64

	// UpperLabel enables the header band of UpperLabelHeight above the
	// children.
	UpperLabel       bool
	UpperLabelHeight float64
}

// HeaderHeight returns the upper label band height, zero when upper labels
// are off.
func (s Style) HeaderHeight() float64 {
	if !s.UpperLabel || s.UpperLabelHeight < 0 {
		return 0
	}
	return s.UpperLabelHeight
}

// StyleOverride carries optional per-node or per-level style options.
type StyleOverride struct {
	BorderWidth        *float64 `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty" toml:"borderWidth,omitempty"`
	GapWidth           *float64 `json:"gapWidth,omitempty" yaml:"gapWidth,omitempty" toml:"gapWidth,omitempty"`
	BorderColor        *string  `json:"borderColor,omitempty" yaml:"borderColor,omitempty" toml:"borderColor,omitempty"`
	Color              *string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	VisibleMin         *float64 `json:"visibleMin,omitempty" yaml:"visibleMin,omitempty" toml:"visibleMin,omitempty"`
	ChildrenVisibleMin *float64 `json:"childrenVisibleMin,omitempty" yaml:"childrenVisibleMin,omitempty" toml:"childrenVisibleMin,omitempty"`
	UpperLabel         *bool    `json:"upperLabel,omitempty" yaml:"upperLabel,omitempty" toml:"upperLabel,omitempty"`
	UpperLabelHeight   *float64 `json:"upperLabelHeight,omitempty" yaml:"upperLabelHeight,omitempty" toml:"upperLabelHeight,omitempty"`
}

func (o *StyleOverride) applyTo(s *Style) {
	if o == nil {
		return
	}
	if o.BorderWidth != nil {
		s.BorderWidth = *o.BorderWidth
	}
	if o.GapWidth != nil {
		s.GapWidth = *o.GapWidth
	}
	if o.BorderColor != nil {
		s.BorderColor = *o.BorderColor
	}
	if o.Color != nil {
		s.Color = *o.Color
	}
	if o.VisibleMin != nil {
		s.VisibleMin = *o.VisibleMin
	}
	if o.ChildrenVisibleMin != nil {
		v := *o.ChildrenVisibleMin
		s.ChildrenVisibleMin = &v
	}
	if o.UpperLabel != nil {
		s.UpperLabel = *o.UpperLabel
	}
	if o.UpperLabelHeight != nil {
		s.UpperLabelHeight = *o.UpperLabelHeight
	}
}

// Style resolves the node's style through node -> level -> tree base.
func (n *Node) Style() Style {
	var s Style
	if n.tree != nil {
		s = n.tree.Base
		if s.ChildrenVisibleMin != nil {
			v := *s.ChildrenVisibleMin
			s.ChildrenVisibleMin = &v
		}
		if n.Depth < len(n.tree.Levels) {
			lvl := n.tree.Levels[n.Depth]
			lvl.applyTo(&s)
		}
	}
	n.Override.applyTo(&s)
	if s.BorderWidth < 0 {
		s.BorderWidth = 0
	}
	if s.GapWidth < 0 {
		s.GapWidth = 0
	}
	return s
}
