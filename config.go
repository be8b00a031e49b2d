package img2paint

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the file form of a painter configuration.
//
//	strokes = 10000
//	size = 50
//	noise = 0.3
//	angles = 36
//	seed = 1
//	oriented = true
//	brush = "brushes/flat.png"
type Config struct {
	Strokes        int     `toml:"strokes"`
	Size           int     `toml:"size"`
	Noise          float64 `toml:"noise"`
	Angles         int     `toml:"angles"`
	Seed           uint64  `toml:"seed"`
	Oriented       bool    `toml:"oriented"`
	SharpnessSigma float64 `toml:"sharpness_sigma"`
	TensorSigma    float64 `toml:"tensor_sigma"`
	TensorFactor   float64 `toml:"tensor_factor"`

	// Brush is a texture path. Empty selects the procedural brush.
	Brush string `toml:"brush"`
	// MaxSize limits the larger input dimension; 0 keeps the input size.
	MaxSize int `toml:"max_size"`
	// FromInput starts from a copy of the input instead of a black canvas.
	FromInput bool `toml:"from_input"`
}

// DefaultConfig returns the configuration matching NewPainter defaults.
func DefaultConfig() Config {
	return Config{
		Strokes:        DefaultStrokes,
		Size:           DefaultSize,
		Noise:          DefaultNoise,
		Angles:         DefaultAngles,
		Seed:           DefaultSeed,
		SharpnessSigma: DefaultSharpnessSigma,
		TensorSigma:    DefaultTensorSigma,
		TensorFactor:   DefaultTensorFactor,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s: %w",
			path, strings.Join(keys, ", "), ErrInvalidParameter)
	}
	return cfg, cfg.Validate()
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size %d: %w", c.MaxSize, ErrInvalidParameter)
	}
	return NewPainter(WithConfig(c)).Validate()
}

// WithConfig applies every painter setting in cfg.
func WithConfig(cfg Config) PainterOption {
	return func(p *Painter) {
		p.Strokes = cfg.Strokes
		p.Size = cfg.Size
		p.Noise = cfg.Noise
		p.Angles = cfg.Angles
		p.Seed = cfg.Seed
		p.SharpnessSigma = cfg.SharpnessSigma
		p.TensorSigma = cfg.TensorSigma
		p.TensorFactor = cfg.TensorFactor
	}
}
