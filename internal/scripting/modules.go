package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Roller draws a uniform die face in [1, sides].
type Roller interface {
	Die(sides int) int
}

// RegisterModules registers the engine.* Lua table into L:
//
//	engine.roll(sides)   draws from roller; sides < 1 raises a Lua error
//	engine.log.info(msg) and engine.log.debug(msg) write to logger
//
// Precondition: L must be from NewSandboxedState; roller and logger must be non-nil.
// Postcondition: engine global is defined in L.
func RegisterModules(L *lua.LState, roller Roller, logger *zap.Logger) {
	engine := L.NewTable()
	engine.RawSetString("roll", L.NewFunction(func(L *lua.LState) int {
		sides := L.CheckInt(1)
		if sides < 1 {
			L.ArgError(1, "sides must be >= 1")
			return 0
		}
		L.Push(lua.LNumber(roller.Die(sides)))
		return 1
	}))

	logTable := L.NewTable()
	logTable.RawSetString("info", L.NewFunction(func(L *lua.LState) int {
		logger.Info(L.CheckString(1), zap.String("source", "lua"))
		return 0
	}))
	logTable.RawSetString("debug", L.NewFunction(func(L *lua.LState) int {
		logger.Debug(L.CheckString(1), zap.String("source", "lua"))
		return 0
	}))
	engine.RawSetString("log", logTable)

	L.SetGlobal("engine", engine)
}
