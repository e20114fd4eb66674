package collision

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/srizzi88/SENSEI-sub038/obbtree"
	"github.com/srizzi88/SENSEI-sub038/utils"
)

// CollisionMode selects how much contact information is gathered.
type CollisionMode int

const (
	// AllContacts records every intersecting cell pair with a contact segment.
	AllContacts CollisionMode = iota
	// FirstContact stops at the first intersecting cell pair.
	FirstContact
	// HalfContacts records every intersecting cell pair with a single contact point.
	HalfContacts
)

var collisionModeNames = map[CollisionMode]string{
	AllContacts:  "all_contacts",
	FirstContact: "first_contact",
	HalfContacts: "half_contacts",
}

func (m CollisionMode) String() string {
	if name, ok := collisionModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseCollisionMode accepts a mode name ("all_contacts", "first_contact", "half_contacts") or
// its short form ("all", "first", "half"), case insensitively.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all_contacts", "all":
		return AllContacts, nil
	case "first_contact", "first":
		return FirstContact, nil
	case "half_contacts", "half":
		return HalfContacts, nil
	default:
		return AllContacts, errors.Errorf("unknown collision mode %q", s)
	}
}

// MarshalJSON writes the mode name.
func (m CollisionMode) MarshalJSON() ([]byte, error) {
	if _, ok := collisionModeNames[m]; !ok {
		return nil, errors.Errorf("invalid collision mode %d", int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON parses a mode name.
func (m *CollisionMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseCollisionMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// maxContactPoints is the number of contact points gathered per intersecting cell pair.
func (m CollisionMode) maxContactPoints() int {
	if m == AllContacts {
		return 2
	}
	return 1
}

// Config holds the parameters of a collision filter.
type Config struct {
	// BoxTolerance pads the box disjointness test.
	BoxTolerance float64 `json:"box_tolerance"`
	// CellTolerance pads the cell intersection test.
	CellTolerance float64 `json:"cell_tolerance"`
	// NumberOfCellsPerNode is the leaf size of the trees.
	NumberOfCellsPerNode int           `json:"cells_per_node"`
	MaxLevel             int           `json:"max_level"`
	CollisionMode        CollisionMode `json:"collision_mode"`
	GenerateScalars      bool          `json:"generate_scalars"`
	// Opacity is the alpha of generated scalars, in [0, 1].
	Opacity float64 `json:"opacity"`
}

// DefaultConfig returns the filter defaults.
func DefaultConfig() Config {
	return Config{
		NumberOfCellsPerNode: 2,
		MaxLevel:             obbtree.DefaultMaxLevel,
		CollisionMode:        AllContacts,
		Opacity:              1,
	}
}

// UnmarshalJSON decodes a config, keeping defaults for absent fields.
func (cfg *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	decoded := plain(DefaultConfig())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*cfg = Config(decoded)
	return nil
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.BoxTolerance < 0 {
		err = multierr.Append(err, errors.Errorf("box_tolerance must not be negative, got %f", cfg.BoxTolerance))
	}
	if cfg.CellTolerance < 0 {
		err = multierr.Append(err, errors.Errorf("cell_tolerance must not be negative, got %f", cfg.CellTolerance))
	}
	if cfg.NumberOfCellsPerNode < 1 {
		err = multierr.Append(err, errors.Errorf("cells_per_node must be at least 1, got %d", cfg.NumberOfCellsPerNode))
	}
	if cfg.MaxLevel < 0 {
		err = multierr.Append(err, errors.Errorf("max_level must not be negative, got %d", cfg.MaxLevel))
	}
	if _, ok := collisionModeNames[cfg.CollisionMode]; !ok {
		err = multierr.Append(err, errors.Errorf("invalid collision_mode %d", int(cfg.CollisionMode)))
	}
	if cfg.Opacity < 0 || cfg.Opacity > 1 {
		err = multierr.Append(err, errors.Errorf("opacity must be in [0, 1], got %f", cfg.Opacity))
	}
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}
