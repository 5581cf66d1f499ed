package cache

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes an encoded figure.
type ArtifactKeyOpts struct {
	Kind     string  `json:"kind"`
	MaskHash string  `json:"mask_hash,omitempty"`
	Scale    string  `json:"scale,omitempty"`
	Ramp     string  `json:"ramp,omitempty"`
	Title    string  `json:"title,omitempty"`
	YTicks   string  `json:"y_ticks,omitempty"`
	DPI      int     `json:"dpi"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
