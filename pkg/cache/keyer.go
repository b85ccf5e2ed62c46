package cache

// SplitKeyOpts are the options that change the result of a split for the
// same input.
type SplitKeyOpts struct {
	Transforms []string `json:"transforms"` // registered transform names
	TraceTypes []string `json:"trace_types"`
	Version    string   `json:"version,omitempty"`
}

// Keyer produces cache keys.
type Keyer interface {
	// SplitKey returns the key of a split result for input data with the
	// given content hash.
	SplitKey(inputHash string, opts SplitKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SplitKey implements Keyer.
func (DefaultKeyer) SplitKey(inputHash string, opts SplitKeyOpts) string {
	return hashKey("split", inputHash, opts)
}
