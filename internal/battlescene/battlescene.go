// Package battlescene renders RPG state as plain text screens for a terminal.
// Every function is pure; nothing here changes state.
package battlescene

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

const (
	width = 43

	// DefaultBarLength is the cell count of an in-battle HP bar.
	DefaultBarLength = 10
	statusBarLength  = 15

	// miniBossLevel is the level below which a non-secret boss is billed as
	// a mini-boss.
	miniBossLevel = 5
)

var (
	heavyRule = strings.Repeat("═", width)
	lightRule = strings.Repeat("─", width)

	printer = message.NewPrinter(language.English)
)

// Victory is what a won fight is shown with.
type Victory struct {
	EnemyName      string
	XPGained       int
	CurrencyGained int
	ItemsLooted    []string
	LeveledUp      bool
	NewLevel       int
}

func banner(b *strings.Builder, title string) {
	b.WriteString(heavyRule + "\n" + title + "\n" + heavyRule + "\n\n")
}

func number(n int) string {
	return printer.Sprintf("%d", n)
}

// HPBar draws a fill bar like [████████░░] for 80%. A non-positive max
// draws an empty bar.
func HPBar(current, maximum, length int) string {
	fraction := 0.0
	if maximum > 0 {
		fraction = min(1, max(0, float64(current)/float64(maximum)))
	}
	filled := int(fraction * float64(length))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

// BattleScene is the main combat screen with the latest log lines.
func BattleScene(state *rpg.State, log []rpg.CombatAction) string {
	enemy := state.CurrentEnemy
	if enemy == nil {
		return "No enemy in combat."
	}

	var b strings.Builder
	banner(&b, "BATTLE")
	fmt.Fprintf(&b, "%s (Level %d)\n%s\n\n", enemy.Name, enemy.Level, enemy.Description)
	fmt.Fprintf(&b, "Enemy HP: %s %d/%d", HPBar(enemy.HP, enemy.MaxHP, DefaultBarLength), enemy.HP, enemy.MaxHP)
	if enemy.Defending {
		b.WriteString("  (guarding)")
	}
	b.WriteString("\n")

	if len(enemy.Minions) > 0 {
		b.WriteString("\nMinions:\n")
		for _, m := range enemy.Minions {
			fmt.Fprintf(&b, "  %s: %s %d/%d\n", m.Name, HPBar(m.HP, m.MaxHP, DefaultBarLength), m.HP, m.MaxHP)
		}
	}

	b.WriteString("\n" + lightRule + "\n\n")
	fmt.Fprintf(&b, "Your HP: %s %d/%d\n", HPBar(state.HP, state.MaxHP, DefaultBarLength), state.HP, state.MaxHP)
	fmt.Fprintf(&b, "ATK: %d | DEF: %d | SPD: %d\n",
		state.Stats.Atk+state.CombatBuffs.Atk, state.Stats.Def+state.CombatBuffs.Def, state.Stats.Spd)
	if state.PlayerDefending {
		b.WriteString("🛡️ DEFENDING (50% damage reduction)\n")
	}
	if s := state.StatusEffects; s.PoisonTurns > 0 {
		fmt.Fprintf(&b, "☠️ POISONED (%d dmg, %d turns)\n", s.PoisonDamage, s.PoisonTurns)
	}
	if s := state.StatusEffects; s.ConstrictTurns > 0 {
		fmt.Fprintf(&b, "🐍 CONSTRICTED (%d dmg, %d turns)\n", s.ConstrictDamage, s.ConstrictTurns)
	}

	if len(log) > 0 {
		b.WriteString("\n")
		for _, a := range log {
			b.WriteString("→ " + a.Message + "\n")
		}
	}

	b.WriteString("\n" + heavyRule + "\n\nWhat will you do?")
	return b.String()
}

// VictoryScreen summarizes the rewards of a won fight.
func VictoryScreen(v Victory) string {
	var b strings.Builder
	banner(&b, "VICTORY!")
	fmt.Fprintf(&b, "You defeated the %s!\n\n", v.EnemyName)
	fmt.Fprintf(&b, "XP Gained: +%s\nCrumbs: +%s\n", number(v.XPGained), number(v.CurrencyGained))
	if len(v.ItemsLooted) > 0 {
		b.WriteString("Items Found:\n")
		for _, item := range v.ItemsLooted {
			b.WriteString("  → " + item + "\n")
		}
	}
	if v.LeveledUp {
		fmt.Fprintf(&b, "\n🌟 LEVEL UP! You are now Level %d!\n   HP+%d, ATK+%d, DEF+%d, SPD+%d\n",
			v.NewLevel, rpg.LevelUpHPGain, rpg.LevelUpAtkGain, rpg.LevelUpDefGain, rpg.LevelUpSpdGain)
	}
	b.WriteString("\n" + heavyRule)
	return b.String()
}

// DefeatScreen is shown when the player falls with no revive left.
func DefeatScreen() string {
	var b strings.Builder
	banner(&b, "DEFEAT")
	b.WriteString("You have been defeated...\n\nThe darkness takes you.\n\nBut you're not done yet.\n\n")
	b.WriteString(heavyRule)
	return b.String()
}

// FleeScreen is shown after a successful escape.
func FleeScreen(enemyName string) string {
	var b strings.Builder
	banner(&b, "FLED FROM BATTLE")
	fmt.Fprintf(&b, "You successfully escaped from the %s.\n\n", enemyName)
	b.WriteString("Sometimes survival is more important than victory.\n\n")
	b.WriteString(heavyRule)
	return b.String()
}

// CombatLog renders actions one per line, prefixed by who acted.
func CombatLog(actions []rpg.CombatAction) string {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		prefix := "Enemy"
		if a.Actor == rpg.ActorPlayer {
			prefix = "You"
		}
		lines = append(lines, prefix+": "+a.Message)
	}
	return strings.Join(lines, "\n")
}

// EnemyIntro announces the enemy when combat starts. Bosses with intro lines
// get a cutscene.
func EnemyIntro(state *rpg.State) string {
	enemy := state.CurrentEnemy
	if enemy == nil {
		return "An enemy appears!"
	}

	var b strings.Builder
	if enemy.IsBoss && len(enemy.BossIntro) > 0 {
		switch {
		case enemy.IsSecretBoss:
			banner(&b, "!!!  SECRET BOSS ENCOUNTER  !!!")
		case enemy.Level < miniBossLevel:
			banner(&b, "!!!  MINI-BOSS ENCOUNTER  !!!")
		default:
			banner(&b, "!!!  BOSS ENCOUNTER  !!!")
		}
		b.WriteString(strings.Join(enemy.BossIntro, "\n") + "\n\n")
		fmt.Fprintf(&b, "%s\n\n", enemy.Description)
		fmt.Fprintf(&b, "Level %d | HP: %d\nATK: %d | DEF: %d | SPD: %d\n\n",
			enemy.Level, enemy.MaxHP, enemy.Atk, enemy.Def, enemy.Spd)
		if !enemy.IsSecretBoss {
			b.WriteString("The boss battle begins!\n\n")
		}
		b.WriteString(heavyRule)
		return b.String()
	}

	banner(&b, "ENEMY ENCOUNTER!")
	fmt.Fprintf(&b, "A wild %s appears!\n\n%s\n\n", enemy.Name, enemy.Description)
	fmt.Fprintf(&b, "Level %d\nHP: %d | ATK: %d | DEF: %d\n\n", enemy.Level, enemy.MaxHP, enemy.Atk, enemy.Def)
	b.WriteString("Prepare for battle!\n\n" + heavyRule)
	return b.String()
}

// BagDisplay lists the bag with consumables and equipment grouped apart.
func BagDisplay(state *rpg.State) string {
	if len(state.Inventory) == 0 {
		return "Your bag is empty."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bag (%d/%d):", len(state.Inventory), rpg.MaxInventorySize)
	groups := []struct {
		title    string
		itemType rpg.ItemType
	}{
		{"Consumables", rpg.ItemTypeConsumable},
		{"Equipment", rpg.ItemTypeEquipment},
	}
	for _, g := range groups {
		items := state.ItemsOfType(g.itemType)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:", g.title)
		for _, item := range items {
			fmt.Fprintf(&b, "\n  %-20s %s x%d", item.ID, item.Name, item.Quantity)
		}
	}
	return b.String()
}

// LocationName turns a location id like back_alley into "Back Alley".
func LocationName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// StatusDisplay is the out-of-combat character sheet.
func StatusDisplay(state *rpg.State) string {
	var b strings.Builder
	b.WriteString(lightRule + "\nCHARACTER STATUS\n" + lightRule + "\n\n")
	fmt.Fprintf(&b, "Level %d\n", state.Level)
	fmt.Fprintf(&b, "HP: %s %d/%d\n", HPBar(state.HP, state.MaxHP, statusBarLength), state.HP, state.MaxHP)
	fmt.Fprintf(&b, "XP: %s %d/%d\n\n", HPBar(state.XP, state.MaxXP, statusBarLength), state.XP, state.MaxXP)
	fmt.Fprintf(&b, "Stats:\n  ATK: %d\n  DEF: %d\n  SPD: %d\n\n", state.Stats.Atk, state.Stats.Def, state.Stats.Spd)

	b.WriteString("Equipment:\n")
	for _, slot := range rpg.LoadoutSlots {
		name := "(empty)"
		if eq := state.Equipment.Get(slot); eq != nil {
			name = eq.Name
		}
		fmt.Fprintf(&b, "  %-11s %s\n", string(slot)+":", name)
	}

	fmt.Fprintf(&b, "\nCrumbs: %s\n\nIngredient Powers Active:\n", number(state.Currency))
	powers := make([]string, 0, len(state.IngredientBonuses))
	for id := range state.IngredientBonuses {
		powers = append(powers, id)
	}
	slices.Sort(powers)
	if len(powers) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, id := range powers {
		b.WriteString("  → " + id + "\n")
	}

	if abilities := state.UnlockedAbilities(); len(abilities) > 0 {
		b.WriteString("\nAbilities:\n")
		for _, a := range abilities {
			fmt.Fprintf(&b, "  → %s: %s\n", a.Name, a.Description)
		}
	}

	fmt.Fprintf(&b, "\nLocation: %s\n", LocationName(state.CurrentLocation))
	b.WriteString(lightRule)
	return b.String()
}
