// Package condition implements the condition effect engine: active-condition
// records, vantage derived from condition sets, turn-boundary expiry and
// save-to-end, on-hit application, and the grapple and shove contests.
package condition

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is a closed set of condition kinds that drive rules logic.
type Kind int

const (
	Poisoned Kind = iota
	Prone
	Restrained
	Grappled
)

var kindNames = [...]string{"Poisoned", "Prone", "Restrained", "Grappled"}

// String returns the capitalised name, e.g. "Prone".
func (k Kind) String() string {
	if k < Poisoned || k > Grappled {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind matches a condition name case-insensitively.
func ParseKind(s string) (Kind, error) {
	norm := strings.TrimSpace(s)
	for i, name := range kindNames {
		if strings.EqualFold(name, norm) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("condition: unknown condition %q", s)
}

// ParseKinds parses every name, rejecting the first unknown entry.
// Blank entries are skipped.
func ParseKinds(names []string) ([]Kind, error) {
	var out []Kind
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// ParseList parses a comma-separated list such as "poisoned, prone".
func ParseList(csv string) ([]Kind, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	return ParseKinds(strings.Split(csv, ","))
}

// UnmarshalYAML decodes a condition name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseKind(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the lower-case name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return strings.ToLower(k.String()), nil
}

// Phase is a turn boundary. PhaseNone marks a condition without a fixed
// expiry.
type Phase int

const (
	PhaseNone Phase = iota
	StartOfTurn
	EndOfTurn
)

// String returns "StartOfTurn", "EndOfTurn" or "None".
func (p Phase) String() string {
	switch p {
	case StartOfTurn:
		return "StartOfTurn"
	case EndOfTurn:
		return "EndOfTurn"
	default:
		return "None"
	}
}

// UnmarshalYAML accepts "start_of_turn"/"end_of_turn" and the camel-case forms.
func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ReplaceAll(strings.ToLower(value.Value), "_", "") {
	case "", "none":
		*p = PhaseNone
	case "startofturn":
		*p = StartOfTurn
	case "endofturn":
		*p = EndOfTurn
	default:
		return fmt.Errorf("condition: unknown phase %q", value.Value)
	}
	return nil
}
