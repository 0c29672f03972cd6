package command

import "fmt"

// Registry maps verbs to standard Command definitions.
type Registry struct {
	commands map[string]*Command
	order    []*Command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a name.
// Postcondition: Returns a Registry or an error on name collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		order:    make([]*Command, 0, len(cmds)),
	}
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Name == "" {
			return nil, fmt.Errorf("command %d: name must not be empty", i)
		}
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.order = append(r.order, cmd)
	}
	return r, nil
}

// DefaultRegistry creates a Registry with the standard verbs.
//
// Postcondition: Returns a Registry with all standard verbs registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(StandardCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a standard verb. The verb must already be lowercased.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(verb string) (*Command, bool) {
	cmd, ok := r.commands[verb]
	return cmd, ok
}

// IsStandard reports whether verb is a standard verb.
func (r *Registry) IsStandard(verb string) bool {
	_, ok := r.commands[verb]
	return ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Help returns the command reference for the registered commands.
func (r *Registry) Help() []string {
	return HelpLines(r.order)
}
