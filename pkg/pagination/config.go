package pagination

import (
	"errors"
	"fmt"
)

// Position selects where the control group is placed relative to the rows.
type Position string

const (
	// PositionTop places the controls before the row container.
	PositionTop Position = "top"

	// PositionBottom places the controls after the row container.
	PositionBottom Position = "bottom"
)

// DefaultRows is the page size used when none is configured.
const DefaultRows = 5

// Validation errors.
var (
	ErrInvalidRows     = errors.New("rows per page must be > 0")
	ErrInvalidPosition = errors.New("position must be \"top\" or \"bottom\"")
)

// Config holds paginator settings.
type Config struct {
	// Rows is the number of rows per page.
	Rows int `yaml:"rows" json:"rows"`

	// Position selects control placement (default: bottom).
	Position Position `yaml:"position" json:"position"`

	// ShowIfLess displays the controls even when every row fits on one page.
	ShowIfLess bool `yaml:"show_if_less" json:"show_if_less"`
}

// DefaultConfig returns the default paginator configuration.
func DefaultConfig() Config {
	return Config{
		Rows:       DefaultRows,
		Position:   PositionBottom,
		ShowIfLess: true,
	}
}

// Validate reports configuration values a paginator cannot page with.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidRows, c.Rows)
	}
	if !c.Position.Valid() {
		return fmt.Errorf("%w (got %q)", ErrInvalidPosition, c.Position)
	}
	return nil
}

// Valid reports whether p is a known placement.
func (p Position) Valid() bool {
	return p == PositionTop || p == PositionBottom
}
