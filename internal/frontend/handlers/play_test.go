package handlers

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/focalpoint/internal/config"
	"github.com/cory-johannsen/focalpoint/internal/frontend/telnet"
	"github.com/cory-johannsen/focalpoint/internal/game/engine"
	"github.com/cory-johannsen/focalpoint/internal/game/savegame"
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
	"github.com/cory-johannsen/focalpoint/internal/testutil"
)

// playWorld is a two-room world: a cellar with a lantern and a ladder up to
// the attic.
func playWorld() *world.World {
	return &world.World{
		Items: []world.Item{{ID: "lantern", Name: "Lantern", Description: "Brass and glass."}},
		Maps: []world.Map{{
			Name:         "House",
			Introduction: "You wake in a cellar.",
			Locations: []world.Location{
				{
					Name:        "Cellar",
					Description: "A damp cellar.",
					Items:       []string{"lantern"},
					FocalPoints: []world.FocalPoint{{
						Name:        "Ladder",
						Description: "It leads up.",
						Events: []world.Event{{
							Kind:    world.Interact,
							Actions: []world.Action{world.NewDisplayMessage("You climb up."), world.NewMoveToLocation(1)},
						}},
					}},
				},
				{
					Name:        "Attic",
					Description: "Dusty rafters.",
					FocalPoints: []world.FocalPoint{{
						Name:        "Trapdoor",
						Description: "It leads down.",
						Events: []world.Event{{
							Kind:    world.Interact,
							Actions: []world.Action{world.NewMoveToLocation(0)},
						}},
					}},
				},
			},
		}},
	}
}

type testServer struct {
	addr    string
	players *session.Manager
	store   *savegame.Store
}

func startServer(t *testing.T, color bool, maxSlots int) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ts := &testServer{
		players: session.NewManager(),
		store:   savegame.NewStore(filepath.Join(t.TempDir(), "saves"), maxSlots),
	}
	handler := NewPlayHandler(playWorld(), ts.store, ts.players, color, logger)
	acc := telnet.NewAcceptor(config.TelnetConfig{
		Host:         "127.0.0.1",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, handler, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- acc.Start() }()
	select {
	case <-acc.Ready():
	case err := <-errCh:
		t.Fatalf("acceptor failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("acceptor did not start in time")
	}
	t.Cleanup(acc.Stop)

	ts.addr = acc.Addr()
	return ts
}

// connect dials the server and consumes the introduction.
func (ts *testServer) connect(t *testing.T) (*testutil.TelnetClient, string) {
	t.Helper()
	c := testutil.NewTelnetClient(t, ts.addr)
	return c, c.Expect(Prompt)
}

func TestPlay_Introduction(t *testing.T) {
	ts := startServer(t, false, 0)
	_, intro := ts.connect(t)

	assert.Contains(t, intro, "You wake in a cellar.\r\n")
	assert.Contains(t, intro, "Location: Cellar\r\nA damp cellar.\r\n")
	assert.Contains(t, intro, engine.MsgHelpHint)
	assert.Equal(t, 1, ts.players.PlayerCount())
}

func TestPlay_CommandsReachEngine(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	out := c.Command("look", Prompt)
	assert.Contains(t, out, "A damp cellar.\r\n")
	assert.Contains(t, out, "- Ladder\r\n")
	assert.Contains(t, out, "- Lantern\r\n")

	assert.Contains(t, c.Command("TAKE lantern", Prompt), "You take the Lantern.")
	assert.Contains(t, c.Command("frobnicate", Prompt), engine.MsgUnknownCommand)
}

func TestPlay_EmptyLineJustPrompts(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	assert.Equal(t, "", c.Command("   ", Prompt))
}

func TestPlay_MoveTracksLocation(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	out := c.Command("move attic", Prompt)
	assert.Contains(t, out, "Location: Attic\r\nDusty rafters.\r\n")
	assert.Len(t, ts.players.PlayersAt(session.LocationKey(0, 1)), 1)
	assert.Empty(t, ts.players.PlayersAt(session.LocationKey(0, 0)))

	c.Command("interact trapdoor", Prompt)
	assert.Len(t, ts.players.PlayersAt(session.LocationKey(0, 0)), 1)
}

func TestPlay_Help(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	out := c.Command("help", Prompt)
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, MsgSessionHelp)
}

func TestPlay_SaveRestartLoad(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	c.Command("take lantern", Prompt)
	c.Command("interact ladder", Prompt)
	assert.Contains(t, c.Command("save slot1", Prompt), `Saved to slot "slot1".`)

	out := c.Command("restart", Prompt)
	assert.Contains(t, out, MsgRestarted)
	assert.Contains(t, out, "Location: Cellar")
	assert.Contains(t, c.Command("inventory", Prompt), engine.MsgNotCarrying)

	out = c.Command("LOAD slot1", Prompt)
	assert.Contains(t, out, `Loaded slot "slot1".`)
	assert.Contains(t, out, "Dusty rafters.")
	assert.Contains(t, c.Command("inventory", Prompt), "- Lantern")
	assert.Len(t, ts.players.PlayersAt(session.LocationKey(0, 1)), 1)
}

func TestPlay_DefaultSlotAndList(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	assert.Contains(t, c.Command("saves", Prompt), MsgNoSaves)
	assert.Contains(t, c.Command("save", Prompt), `Saved to slot "session-`)

	slots, err := ts.store.List()
	require.NoError(t, err)
	require.Len(t, slots, 1)

	out := c.Command("saves", Prompt)
	assert.Contains(t, out, MsgSavedGames)
	assert.Contains(t, out, "- "+slots[0])
}

func TestPlay_SaveErrors(t *testing.T) {
	ts := startServer(t, false, 1)
	c, _ := ts.connect(t)

	assert.Contains(t, c.Command("save ../../etc", Prompt), MsgBadSlot)
	assert.Contains(t, c.Command("save first", Prompt), `Saved to slot "first".`)
	assert.Contains(t, c.Command("save second", Prompt), MsgSlotsFull)
	assert.Contains(t, c.Command("save first", Prompt), `Saved to slot "first".`)
}

func TestPlay_LoadErrors(t *testing.T) {
	ts := startServer(t, false, 0)
	require.NoError(t, ts.store.Save("broken", []byte("{not json")))
	c, _ := ts.connect(t)

	assert.Contains(t, c.Command("load", Prompt), MsgLoadUsage)
	assert.Contains(t, c.Command("load nowhere", Prompt), `There is no save named "nowhere".`)
	assert.Contains(t, c.Command("load no/where", Prompt), MsgBadSlot)
	assert.Contains(t, c.Command("load broken", Prompt), MsgDamagedSave)

	// a failed load leaves the game as it was
	assert.Contains(t, c.Command("look", Prompt), "A damp cellar.")
}

func TestPlay_Who(t *testing.T) {
	ts := startServer(t, false, 0)
	first, _ := ts.connect(t)
	second, _ := ts.connect(t)

	assert.Contains(t, first.Command("who", Prompt), fmt.Sprintf(whoFmt, 2, 1))

	second.Command("move attic", Prompt)
	assert.Contains(t, first.Command("who", Prompt), fmt.Sprintf(whoFmt, 2, 0))
}

func TestPlay_SessionsAreIndependent(t *testing.T) {
	ts := startServer(t, false, 0)
	first, _ := ts.connect(t)
	second, _ := ts.connect(t)

	first.Command("take lantern", Prompt)
	assert.Contains(t, second.Command("look", Prompt), "- Lantern")
	assert.Contains(t, second.Command("inventory", Prompt), engine.MsgNotCarrying)
}

func TestPlay_QuitRemovesPlayer(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	c.Send("quit")
	c.Expect(MsgGoodbye)
	c.WaitClosed(2 * time.Second)
	assert.Eventually(t, func() bool { return ts.players.PlayerCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestPlay_HangupRemovesPlayer(t *testing.T) {
	ts := startServer(t, false, 0)
	c, _ := ts.connect(t)

	c.Close()
	assert.Eventually(t, func() bool { return ts.players.PlayerCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestPlay_Color(t *testing.T) {
	ts := startServer(t, true, 0)
	c := testutil.NewTelnetClient(t, ts.addr)
	intro := c.Expect(Prompt)

	assert.Contains(t, intro, telnet.BrightYellow+"Location: Cellar"+telnet.Reset)
	assert.Contains(t, c.Command("dance", Prompt), telnet.Dim+engine.MsgUnknownCommand+telnet.Reset)
}
