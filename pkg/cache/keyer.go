package cache

// LayoutKeyOpts are the inputs besides the data that determine a layout.
type LayoutKeyOpts struct {
	// Series is the hash of the encoded series options.
	Series string `json:"series"`
	// Action is the action that produced the layout.
	Action string `json:"action,omitempty"`
	// Target is the zoom or drill target id.
	Target string `json:"target,omitempty"`
}

// ArtifactKeyOpts are the inputs besides the layout that determine a
// rendered file.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Labels bool    `json:"labels"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(dataHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
