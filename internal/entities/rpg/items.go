package rpg

// ItemType is the broad category of an item definition.
type ItemType string

// Item types
const (
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeEquipment  ItemType = "equipment"
)

// Slot identifies where a piece of equipment goes. Items only ever declare
// weapon, armor, shield or accessory; accessory2 exists on the loadout so a
// player can wear two accessories.
type Slot string

// Equipment slots
const (
	SlotWeapon     Slot = "weapon"
	SlotArmor      Slot = "armor"
	SlotShield     Slot = "shield"
	SlotAccessory  Slot = "accessory"
	SlotAccessory2 Slot = "accessory2"
)

// ItemSlots are the slots an item definition may declare.
var ItemSlots = []Slot{SlotWeapon, SlotArmor, SlotShield, SlotAccessory}

// LoadoutSlots are every slot on the player's loadout.
var LoadoutSlots = []Slot{SlotWeapon, SlotArmor, SlotShield, SlotAccessory, SlotAccessory2}

// IsItemSlot reports whether s may appear on an item definition.
func (s Slot) IsItemSlot() bool {
	for _, v := range ItemSlots {
		if v == s {
			return true
		}
	}
	return false
}

// IsMandatory reports whether the slot always holds something.
func (s Slot) IsMandatory() bool {
	return s == SlotWeapon || s == SlotArmor || s == SlotShield
}

// Stats is the atk/def/spd triple shared by players, enemies and gear.
type Stats struct {
	Atk int `json:"atk" yaml:"atk"`
	Def int `json:"def" yaml:"def"`
	Spd int `json:"spd" yaml:"spd"`
}

// Add returns the component-wise sum.
func (s Stats) Add(o Stats) Stats {
	return Stats{Atk: s.Atk + o.Atk, Def: s.Def + o.Def, Spd: s.Spd + o.Spd}
}

// Effect is what a consumable does when used.
type Effect struct {
	HealHP        int  `json:"healHp,omitempty" yaml:"healHp,omitempty"`
	HealHPPercent int  `json:"healHpPercent,omitempty" yaml:"healHpPercent,omitempty"`
	BuffAtk       int  `json:"buffAtk,omitempty" yaml:"buffAtk,omitempty"`
	BuffDef       int  `json:"buffDef,omitempty" yaml:"buffDef,omitempty"`
	Revive        bool `json:"revive,omitempty" yaml:"revive,omitempty"`
}

// IsZero reports whether the effect does nothing.
func (e Effect) IsZero() bool {
	return e == Effect{}
}

// InventoryItem is one stack in the player's bag.
type InventoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
	Effect      *Effect  `json:"effect,omitempty"`
	Quantity    int      `json:"quantity"`
}

// Equipment is an item sitting in a loadout slot.
type Equipment struct {
	InventoryItem
	Slot  Slot  `json:"slot"`
	Stats Stats `json:"stats"`
}

// Loadout holds the player's equipped gear.
type Loadout struct {
	Weapon     *Equipment `json:"weapon,omitempty"`
	Armor      *Equipment `json:"armor,omitempty"`
	Shield     *Equipment `json:"shield,omitempty"`
	Accessory  *Equipment `json:"accessory,omitempty"`
	Accessory2 *Equipment `json:"accessory2,omitempty"`
}

// Get returns the equipment in a slot, or nil.
func (l Loadout) Get(slot Slot) *Equipment {
	switch slot {
	case SlotWeapon:
		return l.Weapon
	case SlotArmor:
		return l.Armor
	case SlotShield:
		return l.Shield
	case SlotAccessory:
		return l.Accessory
	case SlotAccessory2:
		return l.Accessory2
	default:
		return nil
	}
}

// With returns a copy of the loadout with slot replaced by eq.
func (l Loadout) With(slot Slot, eq *Equipment) Loadout {
	switch slot {
	case SlotWeapon:
		l.Weapon = eq
	case SlotArmor:
		l.Armor = eq
	case SlotShield:
		l.Shield = eq
	case SlotAccessory:
		l.Accessory = eq
	case SlotAccessory2:
		l.Accessory2 = eq
	}
	return l
}

// Equipped returns every occupied slot's equipment in slot order.
func (l Loadout) Equipped() []*Equipment {
	var out []*Equipment
	for _, slot := range LoadoutSlots {
		if eq := l.Get(slot); eq != nil {
			out = append(out, eq)
		}
	}
	return out
}

// IsEquipped reports whether any slot holds the given item id.
func (l Loadout) IsEquipped(itemID string) bool {
	for _, eq := range l.Equipped() {
		if eq.ID == itemID {
			return true
		}
	}
	return false
}

// Clone deep-copies every slot.
func (l Loadout) Clone() Loadout {
	out := Loadout{}
	for _, slot := range LoadoutSlots {
		if eq := l.Get(slot); eq != nil {
			out = out.With(slot, eq.clone())
		}
	}
	return out
}

func (e *Equipment) clone() *Equipment {
	c := *e
	c.InventoryItem = e.InventoryItem.clone()
	return &c
}

func (i InventoryItem) clone() InventoryItem {
	if i.Effect != nil {
		eff := *i.Effect
		i.Effect = &eff
	}
	return i
}
