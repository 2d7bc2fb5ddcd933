package rpg

// Actor is who performed a combat action.
type Actor string

// Actors
const (
	ActorPlayer Actor = "player"
	ActorEnemy  Actor = "enemy"
)

// ActionKind classifies a combat log entry.
type ActionKind string

// Action kinds
const (
	ActionAttack  ActionKind = "attack"
	ActionDefend  ActionKind = "defend"
	ActionItem    ActionKind = "item"
	ActionAbility ActionKind = "ability"
	ActionFlee    ActionKind = "flee"
	ActionRevive  ActionKind = "revive"
)

// PlayerAction is what the player chose to do this round.
type PlayerAction = ActionKind

// IsPlayerAction reports whether the kind can be chosen by the player.
func (k ActionKind) IsPlayerAction() bool {
	switch k {
	case ActionAttack, ActionDefend, ActionItem, ActionAbility, ActionFlee:
		return true
	default:
		return false
	}
}

// CombatAction is one entry of the combat log.
type CombatAction struct {
	Actor      Actor      `json:"actor"`
	Action     ActionKind `json:"action"`
	Damage     int        `json:"damage,omitempty"`
	HealAmount int        `json:"healAmount,omitempty"`
	Message    string     `json:"message"`
	Success    bool       `json:"success,omitempty"`
	AutoUsed   bool       `json:"autoUsed,omitempty"`
}

// Outcome is the state of a fight after a round.
type Outcome string

// Outcomes
const (
	OutcomeContinue Outcome = "continue"
	OutcomeVictory  Outcome = "victory"
	OutcomeDefeat   Outcome = "defeat"
	OutcomeFled     Outcome = "fled"
)

// Ended reports whether the fight is over.
func (o Outcome) Ended() bool {
	return o != OutcomeContinue
}
