// Package handlers runs the game for each Telnet connection.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/frontend/telnet"
	"github.com/cory-johannsen/focalpoint/internal/game/engine"
	"github.com/cory-johannsen/focalpoint/internal/game/savegame"
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// Session command responses.
const (
	MsgGoodbye      = "Goodbye."
	MsgNoSaves      = "No saved games."
	MsgSavedGames   = "Saved games:"
	MsgLoadUsage    = "Usage: load <slot>"
	MsgSaveFailed   = "Saving failed. Try again later."
	MsgLoadFailed   = "Loading failed. Try again later."
	MsgBadSlot      = "Slot names use a-z, 0-9, '-' and '_', at most 32 characters."
	MsgSlotsFull    = "There are no free save slots. Save over an existing one."
	MsgDamagedSave  = "That save is damaged and cannot be loaded."
	MsgRestarted    = "The story begins again."
	MsgSessionHelp  = "Session commands: save [slot], load <slot>, saves, restart, who, quit"
	savedFmt        = "Saved to slot %q."
	loadedFmt       = "Loaded slot %q."
	noSaveFmt       = "There is no save named %q."
	whoFmt          = "Players connected: %d. Here with you: %d."
	defaultSlotBase = "session-"
)

// PlayHandler gives every connection its own interpreter over a shared,
// read-only World. It implements telnet.SessionHandler.
type PlayHandler struct {
	world   *world.World
	store   *savegame.Store
	players *session.Manager
	render  *TextRenderer
	logger  *zap.Logger
}

// NewPlayHandler creates a handler for w.
//
// Precondition: w, store, players, and logger must be non-nil.
// Postcondition: Returns a handler ready to be passed to telnet.NewAcceptor.
func NewPlayHandler(w *world.World, store *savegame.Store, players *session.Manager, color bool, logger *zap.Logger) *PlayHandler {
	return &PlayHandler{
		world:   w,
		store:   store,
		players: players,
		render:  NewTextRenderer(color),
		logger:  logger,
	}
}

// play is the per-connection state.
type play struct {
	h      *PlayHandler
	conn   *telnet.Conn
	in     *engine.Interpreter
	logger *zap.Logger
}

// HandleSession runs the read-eval-print loop for one connection.
//
// Postcondition: Returns nil when the player quits or hangs up, ctx.Err() on
// cancellation, or a wrapped error on a transport failure.
func (h *PlayHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	logger := h.logger.With(zap.String("session_id", conn.ID()))
	p := &play{
		h:      h,
		conn:   conn,
		in:     engine.New(h.world, nil, logger),
		logger: logger,
	}

	if _, err := h.players.AddPlayer(conn.ID(), remoteAddr(conn), p.locationKey()); err != nil {
		return fmt.Errorf("registering player: %w", err)
	}
	defer func() {
		if err := h.players.RemovePlayer(conn.ID()); err != nil {
			logger.Warn("removing player", zap.Error(err))
		}
	}()
	logger.Info("play started", zap.Int("players", h.players.PlayerCount()))

	if err := p.writeEngine(p.in.Introduction()); err != nil {
		return err
	}
	return p.loop(ctx)
}

func (p *play) loop(ctx context.Context) error {
	for {
		if err := p.conn.WritePrompt(p.h.render.Prompt()); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := p.conn.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		done, err := p.handle(line)
		if err != nil || done {
			return err
		}
	}
}

// handle runs one line. It reports done when the player asked to quit.
func (p *play) handle(line string) (bool, error) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "quit":
		return true, p.conn.WriteLine(p.h.render.Notice(MsgGoodbye))
	case "save":
		return false, p.save(args)
	case "load":
		return false, p.load(args)
	case "saves":
		return false, p.listSaves()
	case "restart":
		p.in.Reset()
		p.moved()
		if err := p.conn.WriteLine(p.h.render.Notice(MsgRestarted)); err != nil {
			return false, err
		}
		return false, p.writeEngine(p.in.Introduction())
	case "who":
		return false, p.who()
	}

	out := p.in.HandleCommand(line)
	p.moved()
	if err := p.writeEngine(out); err != nil {
		return false, err
	}
	if verb == "help" {
		return false, p.conn.WriteLines([]string{"", p.h.render.Notice(MsgSessionHelp)})
	}
	return false, nil
}

func (p *play) save(args []string) error {
	slot := defaultSlotBase + p.conn.ID()[:8]
	if len(args) > 0 {
		slot = strings.ToLower(args[0])
	}

	data, err := p.in.Snapshot()
	if err == nil {
		err = p.h.store.Save(slot, data)
	}
	switch {
	case err == nil:
		p.logger.Info("game saved", zap.String("slot", slot))
		return p.conn.WriteLine(p.h.render.Notice(fmt.Sprintf(savedFmt, slot)))
	case errors.Is(err, savegame.ErrInvalidSlot):
		return p.conn.WriteLine(p.h.render.Error(MsgBadSlot))
	case errors.Is(err, savegame.ErrSlotLimit):
		return p.conn.WriteLine(p.h.render.Error(MsgSlotsFull))
	default:
		p.logger.Error("saving game", zap.String("slot", slot), zap.Error(err))
		return p.conn.WriteLine(p.h.render.Error(MsgSaveFailed))
	}
}

func (p *play) load(args []string) error {
	if len(args) == 0 {
		return p.conn.WriteLine(p.h.render.Error(MsgLoadUsage))
	}
	slot := strings.ToLower(args[0])

	data, err := p.h.store.Load(slot)
	switch {
	case errors.Is(err, savegame.ErrInvalidSlot):
		return p.conn.WriteLine(p.h.render.Error(MsgBadSlot))
	case errors.Is(err, savegame.ErrSlotNotFound):
		return p.conn.WriteLine(p.h.render.Error(fmt.Sprintf(noSaveFmt, slot)))
	case err != nil:
		p.logger.Error("loading game", zap.String("slot", slot), zap.Error(err))
		return p.conn.WriteLine(p.h.render.Error(MsgLoadFailed))
	}

	if err := p.in.Restore(data); err != nil {
		p.logger.Warn("restoring save", zap.String("slot", slot), zap.Error(err))
		return p.conn.WriteLine(p.h.render.Error(MsgDamagedSave))
	}
	p.moved()
	p.logger.Info("game loaded", zap.String("slot", slot))
	if err := p.conn.WriteLine(p.h.render.Notice(fmt.Sprintf(loadedFmt, slot))); err != nil {
		return err
	}
	return p.writeEngine(p.in.HandleCommand("look"))
}

func (p *play) listSaves() error {
	slots, err := p.h.store.List()
	if err != nil {
		p.logger.Error("listing saves", zap.Error(err))
		return p.conn.WriteLine(p.h.render.Error(MsgLoadFailed))
	}
	if len(slots) == 0 {
		return p.conn.WriteLine(p.h.render.Notice(MsgNoSaves))
	}
	lines := []string{p.h.render.Notice(MsgSavedGames)}
	for _, s := range slots {
		lines = append(lines, "- "+s)
	}
	return p.conn.WriteLines(lines)
}

func (p *play) who() error {
	here := len(p.h.players.PlayersAt(p.locationKey())) - 1
	msg := fmt.Sprintf(whoFmt, p.h.players.PlayerCount(), max(here, 0))
	return p.conn.WriteLine(p.h.render.Notice(msg))
}

// moved records the player's current location in the registry.
func (p *play) moved() {
	if _, err := p.h.players.MovePlayer(p.conn.ID(), p.locationKey()); err != nil {
		p.logger.Warn("tracking player location", zap.Error(err))
	}
}

func (p *play) locationKey() string {
	s := p.in.Session()
	return session.LocationKey(s.CurrentMap, s.CurrentLocation)
}

func (p *play) writeEngine(lines []string) error {
	if err := p.conn.WriteLines(p.h.render.RenderLines(lines)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func remoteAddr(conn *telnet.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
