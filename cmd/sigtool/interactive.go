package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/prooflab/sigil/engine"
	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/render"
	"github.com/prooflab/sigil/sig"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	blockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// toolStyles returns the render styles used for non-interactive output.
func toolStyles() render.Styles {
	return render.Styles{Block: blockStyle}
}

type interactiveModel struct {
	cfg        toolConfig
	pure       sig.Pure
	live       *sig.Live
	tracker    *engine.Tracker
	input      textinput.Model
	theoryText string
	errMsg     string
	width      int
}

func newInteractiveModel(cfg toolConfig, p sig.Pure) interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "Name/arity"
	ti.Prompt = "add unique_inst> "
	ti.Focus()

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return interactiveModel{
		cfg:     cfg,
		pure:    p,
		tracker: engine.NewTracker(),
		input:   ti,
		width:   width,
	}
}

func (m interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.shutdown()
			return m, tea.Quit
		case "ctrl+p":
			m.promote()
			return m, nil
		case "ctrl+d":
			m.demote()
			return m, nil
		case "enter":
			m.addTag(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) addTag(value string) {
	if value == "" {
		return
	}
	tag, err := fact.ParseTag(value)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.pure = m.pure.WithUniqueInst(tag)
	if m.live != nil {
		// The running engine was configured before this change; drop it.
		m.demote()
	}
}

func (m *interactiveModel) promote() {
	if m.live != nil {
		return
	}
	if m.cfg.EnginePath == "" {
		m.errMsg = "no engine path configured (-engine or config engine_path)"
		return
	}

	ctx := context.Background()
	eng := engine.NewWithConfig(&engine.Config{ExtraArgs: m.cfg.EngineArgs})
	live, err := sig.Promote(ctx, eng.Spawner(), m.cfg.EnginePath, m.pure)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if h, ok := live.Handle().(*engine.Handle); ok {
		m.tracker.Track(h)
	}

	text, err := live.Handle().TheoryText(ctx)
	if err != nil {
		m.errMsg = err.Error()
		live.Shutdown(ctx)
		return
	}

	m.errMsg = ""
	m.live = &live
	m.theoryText = text
}

func (m *interactiveModel) demote() {
	if m.live == nil {
		return
	}
	m.pure = m.live.Demote()
	m.shutdown()
}

func (m *interactiveModel) shutdown() {
	m.tracker.ShutdownAll(context.Background())
	m.tracker = engine.NewTracker()
	m.live = nil
	m.theoryText = ""
}

func (m interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sigtool"))
	b.WriteString("\n\n")

	doc := m.pure.Render()
	if doc.IsEmpty() {
		b.WriteString(helpStyle.Render("(empty signature)"))
		b.WriteString("\n")
	} else {
		b.WriteString(doc.Render(render.Styles{Block: blockStyle}))
		b.WriteString("\n")
	}

	if m.live != nil {
		b.WriteString("\n")
		b.WriteString(liveStyle.Render("live theory (" + m.live.Handle().Path() + "):"))
		b.WriteString("\n")
		b.WriteString(liveStyle.Render(m.theoryText))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: add tag • ctrl+p: promote • ctrl+d: demote • esc: quit"))
	b.WriteString("\n")

	out := b.String()
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func runInteractive(cfg toolConfig, p sig.Pure) error {
	model := newInteractiveModel(cfg, p)
	prog := tea.NewProgram(model)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("interactive mode: %w", err)
	}
	return nil
}
