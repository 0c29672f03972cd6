package world

import "fmt"

// ActionKind is the opcode of an Action, numbered as in the world document.
type ActionKind int

// Action opcodes.
const (
	KindDisplayMessage          ActionKind = 0
	KindAddItemToScene          ActionKind = 1
	KindRemoveItemFromInventory ActionKind = 2
	KindMoveToLocation          ActionKind = 3
	KindSetFlag                 ActionKind = 4
	// KindInvalid marks an action the loader could not decode.
	KindInvalid ActionKind = -1
)

// String returns the editor label for the opcode.
func (k ActionKind) String() string {
	switch k {
	case KindDisplayMessage:
		return "Display Message"
	case KindAddItemToScene:
		return "Add Item to Scene"
	case KindRemoveItemFromInventory:
		return "Remove Item"
	case KindMoveToLocation:
		return "Move to Location"
	case KindSetFlag:
		return "Set Flag"
	default:
		return "Invalid"
	}
}

// Action is one atomic step of an Event or CommandAlias. The concrete types
// below are the only implementations.
type Action interface {
	Kind() ActionKind
	isAction()
}

// DisplayMessage emits Text verbatim.
type DisplayMessage struct {
	Text string
}

// AddItemToScene spawns ItemID in the current location.
type AddItemToScene struct {
	ItemID string
}

// RemoveItemFromInventory drops ItemID from the inventory if it is carried.
type RemoveItemFromInventory struct {
	ItemID string
}

// MoveToLocation moves the player to location Index of the current map.
type MoveToLocation struct {
	Index int
}

// SetFlag sets flag Name to Value.
type SetFlag struct {
	Name  string
	Value bool
}

// InvalidAction preserves an action the loader could not decode. It does
// nothing when executed.
type InvalidAction struct {
	Opcode    int
	Arguments []string
	Reason    string
}

func (DisplayMessage) Kind() ActionKind          { return KindDisplayMessage }
func (AddItemToScene) Kind() ActionKind          { return KindAddItemToScene }
func (RemoveItemFromInventory) Kind() ActionKind { return KindRemoveItemFromInventory }
func (MoveToLocation) Kind() ActionKind          { return KindMoveToLocation }
func (SetFlag) Kind() ActionKind                 { return KindSetFlag }
func (InvalidAction) Kind() ActionKind           { return KindInvalid }

func (DisplayMessage) isAction()          {}
func (AddItemToScene) isAction()          {}
func (RemoveItemFromInventory) isAction() {}
func (MoveToLocation) isAction()          {}
func (SetFlag) isAction()                 {}
func (InvalidAction) isAction()           {}

// NewDisplayMessage returns an action that emits text.
func NewDisplayMessage(text string) Action { return DisplayMessage{Text: text} }

// NewAddItemToScene returns an action that spawns itemID in the current location.
func NewAddItemToScene(itemID string) Action { return AddItemToScene{ItemID: itemID} }

// NewRemoveItemFromInventory returns an action that removes itemID from the inventory.
func NewRemoveItemFromInventory(itemID string) Action {
	return RemoveItemFromInventory{ItemID: itemID}
}

// NewMoveToLocation returns an action that moves the player to location index.
func NewMoveToLocation(index int) Action { return MoveToLocation{Index: index} }

// NewSetFlag returns an action that sets flag name to value.
func NewSetFlag(name string, value bool) Action { return SetFlag{Name: name, Value: value} }

// describeAction renders an action for lint output.
func describeAction(a Action) string {
	switch act := a.(type) {
	case DisplayMessage:
		return fmt.Sprintf("%s(%q)", act.Kind(), act.Text)
	case AddItemToScene:
		return fmt.Sprintf("%s(%s)", act.Kind(), act.ItemID)
	case RemoveItemFromInventory:
		return fmt.Sprintf("%s(%s)", act.Kind(), act.ItemID)
	case MoveToLocation:
		return fmt.Sprintf("%s(%d)", act.Kind(), act.Index)
	case SetFlag:
		return fmt.Sprintf("%s(%s=%t)", act.Kind(), act.Name, act.Value)
	case InvalidAction:
		return fmt.Sprintf("opcode %d %v: %s", act.Opcode, act.Arguments, act.Reason)
	default:
		return "unknown action"
	}
}
