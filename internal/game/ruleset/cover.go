package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cover is a positional bonus to a defender's AC.
type Cover int

const (
	CoverNone Cover = iota
	CoverHalf
	CoverThreeQuarters
)

// ACBonus returns +0, +2 or +5.
func (c Cover) ACBonus() int {
	switch c {
	case CoverHalf:
		return 2
	case CoverThreeQuarters:
		return 5
	default:
		return 0
	}
}

// String returns the cover label.
func (c Cover) String() string {
	switch c {
	case CoverHalf:
		return "Half"
	case CoverThreeQuarters:
		return "ThreeQuarters"
	default:
		return "None"
	}
}

// ParseCover accepts "none", "half" and "three_quarters" in any case, with
// or without separators.
func ParseCover(s string) (Cover, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "", "none":
		return CoverNone, nil
	case "half":
		return CoverHalf, nil
	case "threequarters", "3/4":
		return CoverThreeQuarters, nil
	default:
		return CoverNone, fmt.Errorf("ruleset: unknown cover %q", s)
	}
}

// UnmarshalYAML decodes a cover name.
func (c *Cover) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseCover(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
