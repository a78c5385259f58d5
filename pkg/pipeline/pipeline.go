// Package pipeline drives level generation for the CLI and the HTTP server.
//
// The generator itself is step-driven: one placement per [level.Generator.Step]
// call. This package is the host loop around it, shared by every entry point
// so they behave the same way.
//
// # Architecture
//
// A run has two stages:
//
//  1. Generate: build the catalog and the generator, then step it until the
//     level is accepted, generation fails, the context is cancelled or the
//     reset cap is hit
//  2. Render: export the accepted level in the requested formats (text, JSON,
//     DOT, SVG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Seed:    7,
//	    Teams:   2,
//	    Formats: []string{"text", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
//
// Hosts that step the generator themselves (such as the interactive watch
// command) build it with [Options.NewGenerator] and reuse [Render].
package pipeline

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/level"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxResets bounds how many rejected attempts a CLI or API run
	// tolerates. Zero in [Options] means unbounded.
	DefaultMaxResets = 1000

	// MaxResetDelay caps the pause between a reset and the next attempt.
	MaxResetDelay = 10 * time.Second
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// FormatExtensions maps each format to the file extension used on disk.
var FormatExtensions = map[string]string{
	FormatText: ".txt",
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generator options
	Seed            uint64 `json:"seed,omitempty"`
	Teams           int    `json:"teams,omitempty"`
	AccelerateUntil int    `json:"accelerate_until,omitempty"`
	DecelerateAt    int    `json:"decelerate_at,omitempty"`
	MaxAttempts     int    `json:"max_attempts,omitempty"`
	SeedTemplate    string `json:"seed_template,omitempty"`

	// Host loop options
	MaxResets  int           `json:"max_resets,omitempty"` // 0 = unbounded
	ResetDelay time.Duration `json:"reset_delay,omitempty"`

	// Catalog options. Templates wins over CatalogPath; with neither the
	// builtin catalog is used.
	CatalogPath string             `json:"-"`
	Templates   []catalog.Template `json:"templates,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Detailed DOT/SVG node labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// OnStep, if set, is called by [Runner.Drive] after every generator
	// step. It runs on the driving goroutine and must not block.
	OnStep func(Progress) `json:"-"`
}

// Progress is a snapshot of a running generator.
type Progress struct {
	Phase         level.Phase
	Rooms         int
	SpawnRooms    int
	OpenEntrances int
	Steps         int
	Resets        int
}

// ProgressOf snapshots g.
func ProgressOf(g *level.Generator) Progress {
	return Progress{
		Phase:         g.Phase(),
		Rooms:         len(g.Rooms()),
		SpawnRooms:    len(g.SpawnRooms()),
		OpenEntrances: g.AvailableEntrances(),
		Steps:         g.Steps(),
		Resets:        g.Resets(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Level is the accepted level.
	Level level.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rooms        int
	SpawnRooms   int
	Steps        int
	Resets       int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
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

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It does not touch MaxResets, where zero
// is meaningful.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	cfg := o.LevelConfig()
	cfg.SetDefaults()
	o.Teams = cfg.Teams
	o.AccelerateUntil = cfg.AccelerateUntil
	o.DecelerateAt = cfg.DecelerateAt
	o.MaxAttempts = cfg.MaxAttempts
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges and formats.
func (o *Options) Validate() error {
	if err := o.LevelConfig().Validate(); err != nil {
		return err
	}
	if o.MaxResets < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_resets must be at least 0 (got %d)", o.MaxResets)
	}
	if o.ResetDelay < 0 || o.ResetDelay > MaxResetDelay {
		return errors.New(errors.ErrCodeInvalidConfig, "reset_delay must be between 0 and %s (got %s)", MaxResetDelay, o.ResetDelay)
	}
	if o.CatalogPath != "" {
		if err := errors.ValidatePath(o.CatalogPath); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// LevelConfig returns the generator settings carried by the options.
func (o *Options) LevelConfig() level.Config {
	return level.Config{
		Teams:           o.Teams,
		AccelerateUntil: o.AccelerateUntil,
		DecelerateAt:    o.DecelerateAt,
		MaxAttempts:     o.MaxAttempts,
		SeedTemplate:    o.SeedTemplate,
	}
}

// ApplyLevelConfig copies non-zero generator settings from c, as loaded
// from a config file. Fields already set on o take precedence.
func (o *Options) ApplyLevelConfig(c level.Config) {
	if o.Teams == 0 {
		o.Teams = c.Teams
	}
	if o.AccelerateUntil == 0 {
		o.AccelerateUntil = c.AccelerateUntil
	}
	if o.DecelerateAt == 0 {
		o.DecelerateAt = c.DecelerateAt
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = c.MaxAttempts
	}
	if o.SeedTemplate == "" {
		o.SeedTemplate = c.SeedTemplate
	}
}

// Library builds the template catalog for the run.
func (o *Options) Library() (*catalog.Library, error) {
	if len(o.Templates) > 0 {
		return catalog.NewLibrary(o.Templates...)
	}
	return catalog.Load(o.CatalogPath)
}

// NewGenerator builds the catalog and a generator seeded from o.Seed.
// extra options are applied after the ones derived from o.
// Call SetDefaults first.
func (o *Options) NewGenerator(extra ...level.Option) (*level.Generator, error) {
	lib, err := o.Library()
	if err != nil {
		return nil, err
	}
	opts := append([]level.Option{
		level.WithConfig(o.LevelConfig()),
		level.WithLogger(o.Logger),
	}, extra...)
	return level.New(lib, NewRNG(o.Seed), opts...)
}

// NewRNG returns the deterministic generator used for a seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
