package condition

import "github.com/cory-johannsen/solo5e/internal/game/dice"

// Style is the attack delivery, used for the prone interaction.
type Style int

const (
	Melee Style = iota
	Ranged
)

// String returns "melee" or "ranged".
func (s Style) String() string {
	if s == Ranged {
		return "ranged"
	}
	return "melee"
}

// FromConditions derives the attacker's vantage from both condition sets.
//
// Attacker Poisoned or Restrained contributes Disadvantage. Target
// Restrained contributes Advantage. Target Prone contributes Advantage to a
// melee attack and Disadvantage to a ranged one. Contributions combine with
// dice.Mode.Combine.
func FromConditions(attacker, target *Set, style Style) dice.Mode {
	net := dice.Normal
	if attacker.Has(Poisoned) || attacker.Has(Restrained) {
		net = net.Combine(dice.Disadvantage)
	}
	for _, c := range target.items {
		switch c.Kind {
		case Restrained:
			net = net.Combine(dice.Advantage)
		case Prone:
			if style == Ranged {
				net = net.Combine(dice.Disadvantage)
			} else {
				net = net.Combine(dice.Advantage)
			}
		}
	}
	return net
}
