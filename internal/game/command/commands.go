// Package command provides the input parser and the table of standard verbs.
package command

import "strings"

// Handler identifiers for the standard verbs.
const (
	HandlerLook      = "look"
	HandlerExamine   = "examine"
	HandlerInteract  = "interact"
	HandlerMove      = "move"
	HandlerInventory = "inventory"
	HandlerUse       = "use"
	HandlerTake      = "take"
	HandlerHelp      = "help"
)

// Usage is one line of help for a command.
type Usage struct {
	// Syntax shows how the command is typed, e.g. "take [item]".
	Syntax string
	// Help describes what that form does.
	Help string
}

// Command defines a standard verb. Standard verbs always take precedence over
// custom verbs defined on focal points.
type Command struct {
	// Name is the verb as typed.
	Name string
	// Usages are listed in the help text in order.
	Usages []Usage
	// Handler selects the built-in handler.
	Handler string
}

// StandardCommands returns the fixed set of standard verbs in help order.
func StandardCommands() []Command {
	return []Command{
		{Name: "look", Handler: HandlerLook, Usages: []Usage{
			{"look", "Look around the current location"},
		}},
		{Name: "examine", Handler: HandlerExamine, Usages: []Usage{
			{"examine [object]", "Examine an object closely"},
		}},
		{Name: "interact", Handler: HandlerInteract, Usages: []Usage{
			{"interact [object]", "Interact with an object"},
		}},
		{Name: "move", Handler: HandlerMove, Usages: []Usage{
			{"move", "List available locations to move to"},
			{"move [location]", "Move to a specific location"},
		}},
		{Name: "inventory", Handler: HandlerInventory, Usages: []Usage{
			{"inventory", "Check your inventory"},
		}},
		{Name: "use", Handler: HandlerUse, Usages: []Usage{
			{"use [item] on [object]", "Use an item on an object"},
		}},
		{Name: "take", Handler: HandlerTake, Usages: []Usage{
			{"take [item]", "Take an item"},
		}},
		{Name: "help", Handler: HandlerHelp, Usages: []Usage{
			{"help", "Show this help message"},
		}},
	}
}

// HelpLines renders the command reference shown by the help verb.
func HelpLines(cmds []*Command) []string {
	lines := []string{"Available commands:"}
	for _, cmd := range cmds {
		for _, u := range cmd.Usages {
			lines = append(lines, "  "+u.Syntax+" - "+u.Help)
		}
	}
	return append(lines, "", "Custom commands are available for certain objects - try different verbs!")
}

// HelpText is HelpLines joined with newlines.
func HelpText(cmds []*Command) string {
	return strings.Join(HelpLines(cmds), "\n")
}
