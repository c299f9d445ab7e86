package combat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// FormatD20Sequence renders the raw d20 faces and the kept one, e.g.
// "d20=7 (keep=7)" or "d20=4 vs d20=17 (keep=17)".
func FormatD20Sequence(rolls []int, kept int) string {
	switch len(rolls) {
	case 0:
		return fmt.Sprintf("d20=? (keep=%d)", kept)
	case 1:
		return fmt.Sprintf("d20=%d (keep=%d)", rolls[0], kept)
	case 2:
		return fmt.Sprintf("d20=%d vs d20=%d (keep=%d)", rolls[0], rolls[1], kept)
	}
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	return fmt.Sprintf("d20s=[%s] (keep=%d)", strings.Join(parts, ", "), kept)
}

// FormatModifier renders m with an explicit sign: "+3", "+0", "-1".
func FormatModifier(m int) string {
	if m >= 0 {
		return fmt.Sprintf("+%d", m)
	}
	return fmt.Sprintf("-%d", -m)
}

// AttackOutcome labels an attack result for the transcript.
func AttackOutcome(atk ruleset.AttackResult) string {
	switch {
	case atk.Crit:
		return "CRIT!"
	case atk.Hit:
		return "HIT"
	case atk.Nat1:
		return "MISS (NAT1)"
	default:
		return "MISS"
	}
}

func logAttack(sink eventlog.Sink, name string, atk ruleset.AttackResult) {
	mark := "✖"
	if atk.Hit {
		mark = "✔"
	}
	eventlog.Emitf(sink, eventlog.TagAttack, name, "%s → %s to-hit=%d vs AC=%d %s",
		FormatD20Sequence(atk.Rolls, atk.Roll), AttackOutcome(atk), atk.Total, atk.AC, mark)
}

func logDamage(sink eventlog.Sink, name string, pool dice.DamageDice, mod int, crit bool, total int, dt ruleset.DamageType) {
	expr := pool.String()
	prefix := ""
	if crit {
		expr = fmt.Sprintf("2×(%s)", pool)
		prefix = "crit: "
	}
	eventlog.Emitf(sink, eventlog.TagDamage, name, "%srolled %s %s = %d [%s]",
		prefix, expr, FormatModifier(mod), total, dt)
}

func logDefense(sink eventlog.Sink, name string, baseAC int, cover ruleset.Cover) {
	bonus := cover.ACBonus()
	eventlog.Emitf(sink, eventlog.TagDefense, name, "AC %d + cover(%+d) = %d", baseAC, bonus, baseAC+bonus)
}
