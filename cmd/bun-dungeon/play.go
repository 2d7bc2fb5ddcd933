package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bun-dungeon/internal/battlescene"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/orchestrators/game"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
)

var (
	ingredients []string
	resumeID    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the dungeon in the terminal",
	Long: `Start a new run, or resume one stored in Redis, and play it one command per
line. Type "help" in the game for the command list. Examples:

  play --ingredients cheese,bacon,pickle
  play --redis localhost:6379 --session game_0b4c...`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringSliceVar(&ingredients, "ingredients", nil, "Ingredients carried into the dungeon")
	playCmd.Flags().StringVar(&resumeID, "session", "", "Resume an existing session")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	c := newConsole(a.service, a.data, os.Stdin, os.Stdout)
	subscribeToasts(a.bus, c.out)
	return c.run(ctx, resumeID, ingredients)
}

// console is the line-oriented game loop
type console struct {
	svc  game.Service
	data *gamedata.Data
	in   *bufio.Scanner
	out  io.Writer

	sessionID string
	// state is the last saved state, used to pick the prompt
	state *rpg.State
}

func newConsole(svc game.Service, data *gamedata.Data, in io.Reader, out io.Writer) *console {
	return &console{svc: svc, data: data, in: bufio.NewScanner(in), out: out}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) track(sess *session.Session) {
	c.sessionID = sess.ID
	c.state = sess.State
}

// run starts or resumes a session and reads commands until quit or EOF
func (c *console) run(ctx context.Context, sessionID string, carried []string) error {
	if sessionID != "" {
		out, err := c.svc.GetGame(ctx, &game.GetGameInput{SessionID: sessionID})
		if err != nil {
			return err
		}
		c.track(out.Session)
		c.printf("Resumed session %s.\n\n", sessionID)
	} else {
		out, err := c.svc.NewGame(ctx, &game.NewGameInput{Ingredients: carried})
		if err != nil {
			return err
		}
		c.track(out.Session)
		c.printf("New session %s.\n\n", out.Session.ID)
	}

	if c.state.InCombat {
		c.println(battlescene.BattleScene(c.state, nil))
	} else {
		c.println(battlescene.StatusDisplay(c.state))
		c.look()
	}

	for {
		c.prompt()
		if !c.in.Scan() {
			return c.in.Err()
		}
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}
		verb, args := strings.ToLower(fields[0]), fields[1:]
		if verb == "quit" || verb == "exit" {
			c.printf("Your session id is %s.\n", c.sessionID)
			return nil
		}

		if err := c.dispatch(ctx, verb, args); err != nil {
			// Refusals come back as messages; errors here are request mistakes
			// or storage failures.
			if errors.IsInvalidArgument(err) || errors.IsFailedPrecondition(err) || errors.IsNotFound(err) {
				c.printf("%s\n", errors.GetMessage(err))
				continue
			}
			return err
		}
	}
}

func (c *console) prompt() {
	if c.state.InCombat {
		c.printf("\n[battle] > ")
		return
	}
	c.printf("\n[%s] > ", c.state.CurrentLocation)
}

func (c *console) dispatch(ctx context.Context, verb string, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch verb {
	case "help":
		c.help()
	case "status":
		c.println(battlescene.StatusDisplay(c.state))
	case "look":
		c.look()
	case "bag", "inventory":
		c.bag()
	case "attack", "defend", "flee":
		return c.turn(ctx, rpg.PlayerAction(verb), "")
	case "item", "ability":
		return c.turn(ctx, rpg.PlayerAction(verb), arg)
	case "travel", "go":
		return c.travel(ctx, arg)
	case "explore":
		return c.explore(ctx)
	case "fight":
		return c.fight(ctx, arg)
	case "use":
		return c.use(ctx, arg)
	case "equip":
		return c.equip(ctx, arg)
	case "unequip":
		return c.unequip(ctx, arg)
	case "shop":
		return c.shop(ctx)
	case "buy":
		return c.buy(ctx, arg)
	case "sell":
		return c.sell(ctx, arg)
	case "restart":
		return c.restart(ctx)
	default:
		c.printf("Unknown command %q. Type help for the list.\n", verb)
	}
	return nil
}

func (c *console) help() {
	if c.state.InCombat {
		c.println(`Battle commands:
  attack            strike the enemy (minions first)
  defend            halve incoming damage and counter-attack
  item <id>         use a consumable
  ability <id>      use an unlocked ability
  flee              try to escape (not from bosses)
  status | bag | quit`)
		return
	}
	c.println(`Commands:
  look              describe this location
  travel <id>       move to a connected location
  explore           look for a fight
  fight [enemy]     challenge an enemy here, or the boss
  use <item>        use a consumable
  equip <item>      equip an item from the bag
  unequip <slot>    empty a slot
  shop              list this location's shop
  buy <item>        buy one unit
  sell <item>       sell one unit
  status | bag | restart | quit`)
}

func (c *console) look() {
	loc, ok := c.data.Location(c.state.CurrentLocation)
	if !ok {
		return
	}
	c.printf("%s\n%s\n", loc.Name, loc.Description)
	if len(loc.Connections) > 0 {
		c.printf("Paths: %s\n", strings.Join(loc.Connections, ", "))
	}
	if loc.Boss != "" && !c.state.HasDefeatedBoss(loc.Boss) {
		c.println("Something big lurks here. Type fight to face it.")
	}
	if len(c.data.Shop(loc.ID)) > 0 {
		c.println("There is a shop here.")
	}
}

func (c *console) bag() {
	c.println(battlescene.BagDisplay(c.state))
}

func (c *console) turn(ctx context.Context, action rpg.PlayerAction, target string) error {
	out, err := c.svc.TakeTurn(ctx, &game.TakeTurnInput{SessionID: c.sessionID, Action: action, TargetID: target})
	if err != nil {
		return err
	}
	c.track(out.Session)

	switch out.Outcome {
	case rpg.OutcomeVictory:
		c.println(battlescene.CombatLog(out.Actions))
		r := out.Rewards
		c.println(battlescene.VictoryScreen(battlescene.Victory{
			EnemyName:      out.EnemyName,
			XPGained:       r.XPGained,
			CurrencyGained: r.CurrencyGained,
			ItemsLooted:    r.ItemsLooted,
			LeveledUp:      r.LeveledUp,
			NewLevel:       r.NewLevel,
		}))
	case rpg.OutcomeDefeat:
		c.println(battlescene.CombatLog(out.Actions))
		c.println(battlescene.DefeatScreen())
		c.printf("You wake up at the %s.\n", battlescene.LocationName(c.state.CurrentLocation))
	case rpg.OutcomeFled:
		c.println(battlescene.FleeScreen(out.EnemyName))
	default:
		c.println(battlescene.BattleScene(c.state, out.Actions))
	}
	return nil
}

func (c *console) travel(ctx context.Context, locationID string) error {
	out, err := c.svc.Travel(ctx, &game.TravelInput{SessionID: c.sessionID, LocationID: locationID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	if out.Success {
		c.look()
	}
	return nil
}

func (c *console) explore(ctx context.Context) error {
	out, err := c.svc.Explore(ctx, &game.ExploreInput{SessionID: c.sessionID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	if out.Enemy == nil {
		c.println(out.Message)
		return nil
	}
	c.println(battlescene.EnemyIntro(c.state))
	c.println(battlescene.BattleScene(c.state, nil))
	return nil
}

func (c *console) fight(ctx context.Context, enemyID string) error {
	out, err := c.svc.StartBattle(ctx, &game.StartBattleInput{SessionID: c.sessionID, EnemyID: enemyID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	if !out.Success {
		c.println(out.Message)
		return nil
	}
	c.println(battlescene.EnemyIntro(c.state))
	c.println(battlescene.BattleScene(c.state, nil))
	return nil
}

func (c *console) use(ctx context.Context, itemID string) error {
	out, err := c.svc.UseItem(ctx, &game.UseItemInput{SessionID: c.sessionID, ItemID: itemID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	return nil
}

func (c *console) equip(ctx context.Context, itemID string) error {
	out, err := c.svc.Equip(ctx, &game.EquipInput{SessionID: c.sessionID, ItemID: itemID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	return nil
}

func (c *console) unequip(ctx context.Context, slot string) error {
	out, err := c.svc.Unequip(ctx, &game.UnequipInput{SessionID: c.sessionID, Slot: rpg.Slot(slot)})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	return nil
}

func (c *console) shop(ctx context.Context) error {
	out, err := c.svc.ListShop(ctx, &game.ListShopInput{SessionID: c.sessionID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	if !out.HasShop {
		c.println("There is no shop here.")
		return nil
	}
	c.printf("Crumbs: %d\n", c.state.Currency)
	writeListings(c.out, out.Listings)
	if len(out.Sellable) > 0 {
		c.println("\nWill buy:")
		for _, s := range out.Sellable {
			c.printf("  %-20s %-22s x%d  %d Crumbs each\n", s.Item.ID, s.Item.Name, s.Quantity, s.SellPrice)
		}
	}
	return nil
}

func (c *console) buy(ctx context.Context, itemID string) error {
	out, err := c.svc.Buy(ctx, &game.BuyInput{SessionID: c.sessionID, ItemID: itemID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	return nil
}

func (c *console) sell(ctx context.Context, itemID string) error {
	out, err := c.svc.Sell(ctx, &game.SellInput{SessionID: c.sessionID, ItemID: itemID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println(out.Message)
	return nil
}

func (c *console) restart(ctx context.Context) error {
	out, err := c.svc.Restart(ctx, &game.RestartInput{SessionID: c.sessionID})
	if err != nil {
		return err
	}
	c.track(out.Session)
	c.println("You crawl back into the garbage can and start over.")
	c.println(battlescene.StatusDisplay(c.state))
	return nil
}
