// Package tui is a single-player terminal client: a scrolling transcript, an
// input line, and a side panel showing where you are and what you carry.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/game/engine"
	"github.com/cory-johannsen/focalpoint/internal/game/savegame"
)

// DefaultSlot is used by /save and /load when no slot is named.
const DefaultSlot = "quicksave"

const helpLine = "Commands: /save [slot], /load [slot], /saves, /restart, /quit. Anything else is played."

type entryKind int

const (
	entryEngine entryKind = iota
	entryInput
	entryNotice
	entryError
)

type entry struct {
	kind entryKind
	text string
}

var (
	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAFAF"))

	refusalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Model is the bubbletea model for one play-through.
type Model struct {
	in        *engine.Interpreter
	store     *savegame.Store
	logger    *zap.Logger
	textInput textinput.Model
	viewport  viewport.Model
	entries   []entry
	width     int
	height    int
}

// NewModel creates a model playing in, with saves kept in store. The
// introduction is already in the transcript.
//
// Precondition: in and store must be non-nil.
func NewModel(in *engine.Interpreter, store *savegame.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := Model{
		in:        in,
		store:     store,
		logger:    logger,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
	m.addEngine(in.Introduction())
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

type savedMsg struct {
	slot string
	err  error
}

type loadedMsg struct {
	slot string
	data []byte
	err  error
}

type listedMsg struct {
	slots []string
	err   error
}

// Update handles key presses, resizes, and save/load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			if line == "" {
				return m, nil
			}
			m.add(entryInput, "> "+line)
			cmd := m.submit(line)
			m.refresh()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-6, 1)
		m.textInput.Width = max(m.logWidth()-4, 10)
		m.refresh()

	case savedMsg:
		if msg.err != nil {
			m.add(entryError, saveError(msg.err))
		} else {
			m.add(entryNotice, fmt.Sprintf("Saved to slot %q.", msg.slot))
		}
		m.refresh()
		return m, nil

	case loadedMsg:
		m.applyLoad(msg)
		m.refresh()
		return m, nil

	case listedMsg:
		switch {
		case msg.err != nil:
			m.add(entryError, "Could not list saves.")
		case len(msg.slots) == 0:
			m.add(entryNotice, "No saved games.")
		default:
			m.add(entryNotice, "Saved games: "+strings.Join(msg.slots, ", "))
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit runs one line of input. Lines starting with "/" are client commands
// and never reach the engine.
func (m *Model) submit(line string) tea.Cmd {
	if !strings.HasPrefix(line, "/") {
		m.addEngine(m.in.HandleCommand(line))
		return nil
	}

	fields := strings.Fields(strings.ToLower(line))
	slot := DefaultSlot
	if len(fields) > 1 {
		slot = fields[1]
	}
	switch fields[0] {
	case "/quit":
		return tea.Quit
	case "/restart":
		m.in.Reset()
		m.add(entryNotice, "The story begins again.")
		m.addEngine(m.in.Introduction())
		return nil
	case "/save":
		return m.save(slot)
	case "/load":
		return m.load(slot)
	case "/saves":
		return m.list()
	case "/help":
		m.add(entryNotice, helpLine)
		return nil
	}
	m.add(entryError, fmt.Sprintf("Unknown client command %q. Try /help.", fields[0]))
	return nil
}

func (m *Model) save(slot string) tea.Cmd {
	data, err := m.in.Snapshot()
	if err != nil {
		m.logger.Error("encoding snapshot", zap.Error(err))
		m.add(entryError, "Saving failed.")
		return nil
	}
	store := m.store
	return func() tea.Msg {
		return savedMsg{slot: slot, err: store.Save(slot, data)}
	}
}

func (m *Model) load(slot string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		data, err := store.Load(slot)
		return loadedMsg{slot: slot, data: data, err: err}
	}
}

func (m *Model) list() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		slots, err := store.List()
		return listedMsg{slots: slots, err: err}
	}
}

func (m *Model) applyLoad(msg loadedMsg) {
	switch {
	case errors.Is(msg.err, savegame.ErrSlotNotFound):
		m.add(entryError, fmt.Sprintf("There is no save named %q.", msg.slot))
		return
	case errors.Is(msg.err, savegame.ErrInvalidSlot):
		m.add(entryError, "Slot names use a-z, 0-9, '-' and '_', at most 32 characters.")
		return
	case msg.err != nil:
		m.logger.Error("loading save", zap.String("slot", msg.slot), zap.Error(msg.err))
		m.add(entryError, "Loading failed.")
		return
	}
	if err := m.in.Restore(msg.data); err != nil {
		m.logger.Warn("restoring save", zap.String("slot", msg.slot), zap.Error(err))
		m.add(entryError, "That save is damaged and cannot be loaded.")
		return
	}
	m.add(entryNotice, fmt.Sprintf("Loaded slot %q.", msg.slot))
	m.addEngine(m.in.HandleCommand("look"))
}

func saveError(err error) string {
	switch {
	case errors.Is(err, savegame.ErrInvalidSlot):
		return "Slot names use a-z, 0-9, '-' and '_', at most 32 characters."
	case errors.Is(err, savegame.ErrSlotLimit):
		return "There are no free save slots. Save over an existing one."
	default:
		return "Saving failed."
	}
}

func (m *Model) add(kind entryKind, text string) {
	m.entries = append(m.entries, entry{kind: kind, text: text})
}

func (m *Model) addEngine(lines []string) {
	for _, l := range lines {
		m.add(entryEngine, l)
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.75)
}

// Transcript returns everything shown so far as plain text, one entry per line.
func (m Model) Transcript() string {
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		lines[i] = e.text
	}
	return strings.Join(lines, "\n")
}

// View draws the transcript beside the status panel, then the input line.
func (m Model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderPanel(),
	)
	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		main,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render(helpLine),
	) + "\n"
}

func (m Model) renderLog() string {
	width := m.logWidth()
	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		blocks = append(blocks, renderEntry(e, width))
	}
	return strings.Join(blocks, "\n")
}

func renderEntry(e entry, width int) string {
	switch e.kind {
	case entryInput:
		return "\n" + inputStyle.Width(width).Render(e.text)
	case entryNotice:
		return noticeStyle.Width(width).Render(e.text)
	case entryError:
		return errorStyle.Width(width).Render(e.text)
	}
	switch engine.Classify(e.text) {
	case engine.LineLocation:
		header, rest, _ := strings.Cut(e.text, "\n")
		return locationStyle.Render(header) + "\n" + textStyle.Width(width).Render(rest)
	case engine.LineHeading:
		return headingStyle.Render(e.text)
	case engine.LineRefusal:
		return refusalStyle.Width(width).Render(e.text)
	default:
		return textStyle.Width(width).Render(e.text)
	}
}

func (m Model) renderPanel() string {
	w := m.in.World()
	s := m.in.Session()

	where := "(nowhere)"
	if loc, ok := engine.CurrentLocation(w, s); ok {
		where = loc.Name
	}
	if mp, ok := w.Map(s.CurrentMap); ok {
		where = mp.Name + "\n" + where
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("LOCATION") + "\n" + where + "\n\n")
	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(s.Inventory) == 0 {
		b.WriteString("(empty)")
	}
	for _, id := range s.Inventory {
		b.WriteString("- " + w.ItemName(id) + "\n")
	}

	panelWidth := max(int(float64(m.width)*0.23), 20)
	return panelStyle.Width(panelWidth).Height(m.viewport.Height).Render(b.String())
}

// Run plays in until the player quits.
func Run(in *engine.Interpreter, store *savegame.Store, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(in, store, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
