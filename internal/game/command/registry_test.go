package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry_StandardVerbs(t *testing.T) {
	r := DefaultRegistry()

	for _, verb := range []string{"look", "examine", "interact", "move", "inventory", "use", "take", "help"} {
		cmd, ok := r.Resolve(verb)
		require.True(t, ok, verb)
		assert.Equal(t, verb, cmd.Name)
		assert.Equal(t, verb, cmd.Handler)
	}
	assert.Len(t, r.Commands(), 8)
}

func TestRegistry_UnknownVerb(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("lift")
	assert.False(t, ok)
	assert.False(t, r.IsStandard("LOOK"))
	assert.True(t, r.IsStandard("look"))
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: "look"}, {Name: "look"}})
	assert.Error(t, err)
}

func TestNewRegistry_EmptyName(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: ""}})
	assert.Error(t, err)
}

func TestRegistry_CommandsIsCopy(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	cmds[0] = nil

	assert.NotNil(t, r.Commands()[0])
}

func TestRegistry_Help(t *testing.T) {
	help := DefaultRegistry().Help()

	require.Len(t, help, 12)
	assert.Equal(t, "Available commands:", help[0])
	assert.Equal(t, "  look - Look around the current location", help[1])
	assert.Equal(t, "  move - List available locations to move to", help[4])
	assert.Equal(t, "  move [location] - Move to a specific location", help[5])
	assert.Equal(t, "", help[10])
	assert.Equal(t, "Custom commands are available for certain objects - try different verbs!", help[11])
	assert.Equal(t, strings.Join(help, "\n"), HelpText(DefaultRegistry().Commands()))
}

func TestPropertyEveryCommandAppearsInHelp(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	help := strings.Join(r.Help(), "\n")
	rapid.Check(t, func(t *rapid.T) {
		cmd := cmds[rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")]
		for _, u := range cmd.Usages {
			assert.Contains(t, help, "  "+u.Syntax+" - ")
		}
	})
}
