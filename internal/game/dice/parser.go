package dice

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Upper bounds on a rollable pool. A crit doubles Count past MaxCount, which
// stays well inside int range.
const (
	MaxCount = 100
	MaxSides = 1000
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count >= 1, Sides >= 2 after successful Parse.
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3", "4d6kh3+1".
//
// Postcondition: Returns an Expression with Count in [1, MaxCount] and Sides
// in [2, MaxSides], or an error wrapping ErrInvalidDice.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", ErrInvalidDice)
	}

	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("%w: missing 'd' in %q", ErrInvalidDice, expr)
	}

	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n <= 0 || n > MaxCount {
			return Expression{}, fmt.Errorf("%w: die count in %q must be an integer in [1, %d]", ErrInvalidDice, expr, MaxCount)
		}
		count = n
	}

	body, modifier, err := splitModifier(rest)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: modifier in %q: %v", ErrInvalidDice, expr, err)
	}

	keep := 0
	if sidesStr, khStr, found := strings.Cut(body, "kh"); found {
		kh, err := strconv.Atoi(khStr)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: kh value in %q: %v", ErrInvalidDice, expr, err)
		}
		if kh <= 0 || kh >= count {
			return Expression{}, fmt.Errorf("%w: kh value %d must be > 0 and < count %d in %q", ErrInvalidDice, kh, count, expr)
		}
		keep = kh
		body = sidesStr
	}

	sides, err := strconv.Atoi(body)
	if err != nil || sides < 2 || sides > MaxSides {
		return Expression{}, fmt.Errorf("%w: die sides in %q must be an integer in [2, %d]", ErrInvalidDice, expr, MaxSides)
	}

	return Expression{
		Raw:         expr,
		Count:       count,
		Sides:       sides,
		Modifier:    modifier,
		KeepHighest: keep,
	}, nil
}

// splitModifier separates a trailing "+N" or "-N" from s. A sign at index 0
// is never treated as a modifier.
func splitModifier(s string) (string, int, error) {
	idx := strings.IndexAny(s[min(1, len(s)):], "+-")
	if idx < 0 {
		return s, 0, nil
	}
	idx++
	mod, err := strconv.Atoi(s[idx:])
	if err != nil {
		return "", 0, err
	}
	return s[:idx], mod, nil
}

// DamageDice is a plain NdS pool. Critical hits double Count, never the
// rolled total.
type DamageDice struct {
	Count int `yaml:"count" json:"count"`
	Sides int `yaml:"sides" json:"sides"`
}

// ParseDamageDice parses "NdS" (no modifier, no keep suffix).
//
// Postcondition: Returns a pool passing Validate, or an error wrapping ErrInvalidDice.
func ParseDamageDice(s string) (DamageDice, error) {
	e, err := Parse(s)
	if err != nil {
		return DamageDice{}, err
	}
	if e.Modifier != 0 || e.KeepHighest != 0 {
		return DamageDice{}, fmt.Errorf("%w: damage dice %q must be plain NdS", ErrInvalidDice, s)
	}
	return DamageDice{Count: e.Count, Sides: e.Sides}, nil
}

// Crit returns the pool rolled on a critical hit.
func (d DamageDice) Crit() DamageDice {
	return DamageDice{Count: d.Count * 2, Sides: d.Sides}
}

// String renders "NdS".
func (d DamageDice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Validate reports whether the pool can be rolled.
//
// Postcondition: nil iff 1 <= Count <= MaxCount and 2 <= Sides <= MaxSides.
func (d DamageDice) Validate() error {
	if d.Count < 1 || d.Count > MaxCount || d.Sides < 2 || d.Sides > MaxSides {
		return fmt.Errorf("%w: %dd%d needs count in [1, %d] and sides in [2, %d]", ErrInvalidDice, d.Count, d.Sides, MaxCount, MaxSides)
	}
	return nil
}

// UnmarshalYAML accepts either the scalar form "1d8" or a
// {count, sides} mapping.
func (d *DamageDice) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		dd, err := ParseDamageDice(value.Value)
		if err != nil {
			return err
		}
		*d = dd
		return nil
	}
	type plain DamageDice
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if err := DamageDice(p).Validate(); err != nil {
		return err
	}
	*d = DamageDice(p)
	return nil
}

// MarshalYAML emits the scalar "NdS" form.
func (d DamageDice) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
