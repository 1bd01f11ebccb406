package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEngine_CalcDamageFromScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "combat.lua", `
function calc_damage(ctx)
    return ctx.attacker.power * 2 - ctx.defender.defense
end
`)
	e := newEngine(t, dir)

	dmg := e.CalcDamage(DamageContext{AttackerPower: 5, DefenderDefense: 3})
	if dmg != 7 {
		t.Fatalf("damage = %d, want 7", dmg)
	}
}

func TestEngine_BuiltInFormulaWithoutScript(t *testing.T) {
	e := newEngine(t, t.TempDir())

	if dmg := e.CalcDamage(DamageContext{AttackerPower: 5, DefenderDefense: 2}); dmg != 3 {
		t.Fatalf("damage = %d, want 3", dmg)
	}
	if dmg := e.CalcDamage(DamageContext{AttackerPower: 1, DefenderDefense: 9}); dmg != 0 {
		t.Fatalf("damage = %d, want 0 when defense exceeds power", dmg)
	}
}

func TestEngine_NegativeScriptResultClamped(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "combat.lua", `
function calc_damage(ctx)
    return -5
end
`)
	e := newEngine(t, dir)

	if dmg := e.CalcDamage(DamageContext{AttackerPower: 5, DefenderDefense: 1}); dmg != 0 {
		t.Fatalf("damage = %d, want 0", dmg)
	}
}

func TestEngine_ScriptErrorFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "combat.lua", `
function calc_damage(ctx)
    error("broken formula")
end
`)
	e := newEngine(t, dir)

	if dmg := e.CalcDamage(DamageContext{AttackerPower: 6, DefenderDefense: 2}); dmg != 4 {
		t.Fatalf("damage = %d, want the built-in 4", dmg)
	}
}

func TestEngine_ContextCarriesAllFields(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "combat.lua", `
function calc_damage(ctx)
    return ctx.attacker.hp + ctx.attacker.max_hp + ctx.defender.hp + ctx.defender.max_hp
end
`)
	e := newEngine(t, dir)

	dmg := e.CalcDamage(DamageContext{
		AttackerHP: 1, AttackerMaxHP: 2,
		DefenderHP: 3, DefenderMaxHP: 4,
	})
	if dmg != 10 {
		t.Fatalf("damage = %d, want 10", dmg)
	}
}

func TestEngine_MissingScriptsDirIsFine(t *testing.T) {
	e := newEngine(t, filepath.Join(t.TempDir(), "nope"))
	if dmg := e.CalcDamage(DamageContext{AttackerPower: 2}); dmg != 2 {
		t.Fatalf("damage = %d, want 2", dmg)
	}
}

func TestEngine_BrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `function calc_damage( return end`)

	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected load error for invalid lua")
	}
}
