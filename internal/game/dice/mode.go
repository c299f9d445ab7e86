package dice

import (
	"fmt"
	"strings"
)

// Mode selects how a d20 is rolled. It doubles as the net vantage after all
// advantage and disadvantage sources are combined.
type Mode int

const (
	Normal Mode = iota
	Advantage
	Disadvantage
)

// String returns the mode label used in logs and configuration.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return "unknown"
	}
}

// Combine folds another vantage source into m.
//
// Postcondition: Advantage and Disadvantage cancel to Normal in either order;
// Normal is the identity; same polarity is preserved.
func (m Mode) Combine(other Mode) Mode {
	switch {
	case m == Normal:
		return other
	case other == Normal:
		return m
	case m == other:
		return m
	default:
		return Normal
	}
}

// ParseMode maps a configuration string to a Mode. Accepts the full names and
// the short forms "adv" and "dis", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "adv", "advantage":
		return Advantage, nil
	case "dis", "disadvantage":
		return Disadvantage, nil
	default:
		return Normal, fmt.Errorf("dice: unknown roll mode %q", s)
	}
}
