package level

import "github.com/matzehuels/roomgen/pkg/errors"

// Default generator settings.
const (
	DefaultTeams           = 2
	DefaultAccelerateUntil = 4
	DefaultDecelerateAt    = 10
	DefaultMaxAttempts     = 100_000
)

// Config holds the generator thresholds. Zero values are replaced by
// [Config.SetDefaults].
type Config struct {
	// Teams is the number of playing teams; each needs a spawn room.
	Teams int `toml:"teams" json:"teams"`

	// AccelerateUntil is the room count at which growing switches to filling.
	AccelerateUntil int `toml:"accelerate_until" json:"accelerate_until"`

	// DecelerateAt is carried for compatibility with existing configs and
	// does not influence generation.
	DecelerateAt int `toml:"decelerate_at" json:"decelerate_at"`

	// MaxAttempts bounds consecutive failed samples within one step.
	MaxAttempts int `toml:"max_attempts" json:"max_attempts"`

	// SeedTemplate names the template of the first room. Empty picks a
	// random template with the highest entrance count.
	SeedTemplate string `toml:"seed_template,omitempty" json:"seed_template,omitempty"`
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Teams == 0 {
		c.Teams = DefaultTeams
	}
	if c.AccelerateUntil == 0 {
		c.AccelerateUntil = DefaultAccelerateUntil
	}
	if c.DecelerateAt == 0 {
		c.DecelerateAt = DefaultDecelerateAt
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	if err := errors.ValidateRange("teams", c.Teams, 1, 64); err != nil {
		return err
	}
	if err := errors.ValidateRange("accelerate_until", c.AccelerateUntil, 1, 0); err != nil {
		return err
	}
	if err := errors.ValidateRange("decelerate_at", c.DecelerateAt, 0, 0); err != nil {
		return err
	}
	if err := errors.ValidateRange("max_attempts", c.MaxAttempts, 1, 0); err != nil {
		return err
	}
	if c.SeedTemplate != "" {
		return errors.ValidateTemplateName(c.SeedTemplate)
	}
	return nil
}

// NumberOfTeams counts team slots including the neutral one.
func (c Config) NumberOfTeams() int { return c.Teams + 1 }

// RequiredSpawnRooms is the number of spawn-capable rooms an attempt needs
// to be accepted.
func (c Config) RequiredSpawnRooms() int { return c.NumberOfTeams() - 1 }
