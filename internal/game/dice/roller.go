package dice

import (
	"sort"

	"go.uber.org/zap"
)

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count when KeepHighest == 0, or
//
//	len(result.Dice) == expr.KeepHighest when KeepHighest > 0.
//	result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	kept := rolled
	if expr.KeepHighest > 0 {
		sorted := make([]int, len(rolled))
		copy(sorted, rolled)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		kept = sorted[:expr.KeepHighest]
	}

	return RollResult{
		Expression: expr.Raw,
		Dice:       kept,
		Modifier:   expr.Modifier,
	}
}

// D20Result records a d20 draw with every raw die, not just the kept one.
type D20Result struct {
	Mode  Mode
	Rolls []int // one entry for Normal, two for Advantage/Disadvantage
	Kept  int
}

// Roller is the Dice engine: a Source plus a debug logger. Every draw is
// logged with its raw faces.
//
// Roller is not safe for concurrent use.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that draws from src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// NewSeededRoller returns a Roller over NewSeededSource(seed).
//
// Postcondition: Two Rollers with equal seeds produce identical draw sequences.
func NewSeededRoller(seed uint64, logger *zap.Logger) *Roller {
	return NewRoller(NewSeededSource(seed), logger)
}

// D20 rolls a d20 under mode. Advantage keeps the higher of two draws,
// Disadvantage the lower.
//
// Postcondition: 1 <= Kept <= 20; Kept is one of Rolls.
func (r *Roller) D20(mode Mode) D20Result {
	first := r.src.Intn(20) + 1
	res := D20Result{Mode: mode, Rolls: []int{first}, Kept: first}
	switch mode {
	case Advantage:
		second := r.src.Intn(20) + 1
		res.Rolls = append(res.Rolls, second)
		res.Kept = max(first, second)
	case Disadvantage:
		second := r.src.Intn(20) + 1
		res.Rolls = append(res.Rolls, second)
		res.Kept = min(first, second)
	}
	r.logger.Debug("d20 roll",
		zap.Stringer("mode", mode),
		zap.Ints("rolls", res.Rolls),
		zap.Int("kept", res.Kept),
	)
	return res
}

// Die rolls one die with the given number of sides.
//
// Precondition: sides >= 1.
// Postcondition: 1 <= result <= sides.
func (r *Roller) Die(sides int) int {
	v := r.src.Intn(sides) + 1
	r.logger.Debug("die roll", zap.Int("sides", sides), zap.Int("result", v))
	return v
}

// RollDamage rolls every die of pool, doubling the count when crit is set.
//
// Precondition: pool.Validate() == nil.
// Postcondition: len(result) == pool.Count (or 2*pool.Count on crit); each entry in [1, pool.Sides].
func (r *Roller) RollDamage(pool DamageDice, crit bool) []int {
	if crit {
		pool = pool.Crit()
	}
	faces := make([]int, pool.Count)
	for i := range faces {
		faces[i] = r.src.Intn(pool.Sides) + 1
	}
	r.logger.Debug("damage roll",
		zap.Stringer("dice", pool),
		zap.Bool("crit", crit),
		zap.Ints("faces", faces),
	)
	return faces
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
