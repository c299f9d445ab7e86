package character

import (
	"fmt"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

func passFail(passed bool) string {
	if passed {
		return "SUCCESS"
	}
	return "FAIL"
}

// DemoChecks rolls a STR ability check, an Athletics skill check and a CON
// save for c against dc, in that order, and returns one line per roll.
func DemoChecks(c *Character, r *dice.Roller, mode dice.Mode, dc int) []string {
	strMod := c.AbilityMod(ruleset.Str)
	a := ruleset.Check(r, dc, strMod, mode)

	athMod := c.SkillMod(ruleset.Athletics)
	s := ruleset.Check(r, dc, athMod, mode)

	conMod := c.SaveMod(ruleset.Con)
	sv := ruleset.Check(r, dc, conMod, mode)

	return []string{
		fmt.Sprintf("ability STR (mod=%+d): roll=%d total=%d vs dc=%d => %s", strMod, a.Roll, a.Total, a.DC, passFail(a.Passed)),
		fmt.Sprintf("skill Athletics (mod=%+d): roll=%d total=%d vs dc=%d => %s", athMod, s.Roll, s.Total, s.DC, passFail(s.Passed)),
		fmt.Sprintf("save CON (mod=%+d): roll=%d total=%d vs dc=%d => %s", conMod, sv.Roll, sv.Total, sv.DC, passFail(sv.Passed)),
	}
}
