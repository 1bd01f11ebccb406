package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (turn loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext holds pre-packed data for a melee damage calculation.
type DamageContext struct {
	AttackerPower   int
	AttackerHP      int
	AttackerMaxHP   int
	DefenderDefense int
	DefenderHP      int
	DefenderMaxHP   int
}

// CalcDamage calls the Lua calc_damage function. When the script is
// missing or errors, the built-in formula max(0, power - defense) is
// used instead so combat keeps working without scripts on disk.
func (e *Engine) CalcDamage(ctx DamageContext) int {
	fallback := ctx.AttackerPower - ctx.DefenderDefense
	if fallback < 0 {
		fallback = 0
	}

	fn := e.vm.GetGlobal("calc_damage")
	if fn == lua.LNil {
		return fallback
	}

	// Build context table
	t := e.vm.NewTable()

	atk := e.vm.NewTable()
	atk.RawSetString("power", lua.LNumber(ctx.AttackerPower))
	atk.RawSetString("hp", lua.LNumber(ctx.AttackerHP))
	atk.RawSetString("max_hp", lua.LNumber(ctx.AttackerMaxHP))
	t.RawSetString("attacker", atk)

	def := e.vm.NewTable()
	def.RawSetString("defense", lua.LNumber(ctx.DefenderDefense))
	def.RawSetString("hp", lua.LNumber(ctx.DefenderHP))
	def.RawSetString("max_hp", lua.LNumber(ctx.DefenderMaxHP))
	t.RawSetString("defender", def)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_damage error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	dmg := int(lua.LVAsNumber(result))
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
