// Package tui provides a Bubble Tea terminal user interface for scale-sheets.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/scale-sheets/internal/config"
	"github.com/handiism/scale-sheets/internal/generate"
	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/theory"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// scaleTypeSets are cycled with ctrl+t.
var scaleTypeSets = [][]string{
	{"major", "natural_minor"},
	{"major", "harmonic_minor"},
	{"major", "natural_minor", "harmonic_minor"},
	{"major"},
}

const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreparing
	StateRendering
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	scores    []string
	err       error

	// Render context
	ctx    context.Context
	cancel context.CancelFunc

	manager *generate.Manager
	events  chan generate.ProgressEvent

	doneJobs  int32
	totalJobs int32

	// Options
	typeSet   int
	octaves   int
	rasterize bool
	playlist  bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model starting from settings. Nil settings
// means config.DefaultSettings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "c g d f bb"
	ti.SetValue(strings.Join(settings.Keys, " "))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		typeSet:   typeSetIndex(settings.ScaleTypes),
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		octaves:   settings.Octaves,
		rasterize: settings.Rasterize,
		playlist:  settings.CreatePlaylist,
	}
}

// typeSetIndex returns the entry of scaleTypeSets matching names, or 0.
func typeSetIndex(names []string) int {
	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = theory.NormalizeScaleType(name)
	}
	for i, set := range scaleTypeSets {
		if slices.Equal(set, normalized) {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Event  generate.ProgressEvent
		events <-chan generate.ProgressEvent
	}

	// PrepareDoneMsg is sent when the scores are built. It is tied to the
	// event channel of the batch that sent it.
	PrepareDoneMsg struct {
		Scores  []string
		Manager *generate.Manager
		Err     error
		events  chan generate.ProgressEvent
	}

	// RenderDoneMsg is sent when the batch completes.
	RenderDoneMsg struct {
		Done   int32
		Total  int32
		Err    error
		events chan generate.ProgressEvent
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRendering || m.state == StatePreparing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && len(parseKeys(m.textInput.Value())) > 0 {
				m.state = StatePreparing
				m.events = make(chan generate.ProgressEvent, 64)
				return m, tea.Batch(m.prepare(), waitForEvent(m.events), m.spinner.Tick)
			}

		case "up":
			if m.state == StateInput && m.octaves < model.MaxOctaves {
				m.octaves++
			}

		case "down":
			if m.state == StateInput && m.octaves > model.MinOctaves {
				m.octaves--
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.typeSet = (m.typeSet + 1) % len(scaleTypeSets)
			}

		case "ctrl+r":
			if m.state == StateInput {
				m.rasterize = !m.rasterize
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another batch, keeping keys and options
				m.cancel()
				m.state = StateInput
				m.logs = nil
				m.scores = nil
				m.err = nil
				m.doneJobs = 0
				m.totalJobs = 0
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(msg.events))
		if msg.events != m.events {
			// Left over from an abandoned batch.
			break
		}
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == generate.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case PrepareDoneMsg:
		if m.state != StatePreparing || msg.events != m.events {
			// Cancelled or superseded by a newer batch; nothing will render.
			if msg.Err == nil {
				close(msg.events)
			}
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.scores = msg.Scores
			m.manager = msg.Manager
			m.state = StateRendering
			cmds = append(cmds, m.render(), m.tickProgress())
		}

	case RenderDoneMsg:
		if msg.events != m.events {
			break
		}
		m.doneJobs = msg.Done
		m.totalJobs = msg.Total
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRendering {
			m.doneJobs, m.totalJobs = m.manager.GetProgress()

			var percent float64
			if m.totalJobs > 0 {
				percent = float64(m.doneJobs) / float64(m.totalJobs)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func waitForEvent(events <-chan generate.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event, events: events}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Scale Sheets"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Typeset scale practice sheets with LilyPond"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePreparing:
		b.WriteString(m.viewPreparing())
	case StateRendering:
		b.WriteString(m.viewRendering())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Keys (major, space separated):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Scales:  %s (ctrl+t)\n", strings.Join(scaleTypeSets[m.typeSet], ", ")))
	b.WriteString(fmt.Sprintf("  Octaves: %d (↑/↓)\n", m.octaves))
	b.WriteString(fmt.Sprintf("  %s Rasterize and composite pages (ctrl+r)\n", check(m.rasterize)))
	b.WriteString(fmt.Sprintf("  %s Create preview playlist (ctrl+p)\n", check(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", check(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func check(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewPreparing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Building scales..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewRendering() string {
	var b strings.Builder

	if len(m.scores) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Rendering %d sheet(s):", len(m.scores))))
		b.WriteString("\n")
		for _, score := range m.scores {
			b.WriteString(scoreStyle.Render(fmt.Sprintf("  ♪ %s", score)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.doneJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Sheets: %d/%d", m.doneJobs, m.totalJobs)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Sheets Complete!\n\n"+
			"Sheets: %d\n"+
			"Output: %s",
		m.doneJobs,
		m.settings.OutputDir,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generate.LevelError:
			style = errorStyle
			prefix = "✗"
		case generate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generate.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ↑/↓: octaves • ctrl+t: scales • ctrl+r: rasterize • ctrl+p: playlist • ctrl+v: verbose • esc: quit"
	case StatePreparing, StateRendering:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// batchSettings copies the base settings with the options chosen in the UI.
func (m Model) batchSettings() *config.Settings {
	settings := *m.settings
	settings.Keys = parseKeys(m.textInput.Value())
	settings.ScaleTypes = scaleTypeSets[m.typeSet]
	settings.Octaves = m.octaves
	settings.Rasterize = m.rasterize
	settings.Composite = m.rasterize && len(settings.Keys) > 1
	settings.CreatePlaylist = m.playlist
	return &settings
}

// prepare validates the options, builds the scores and creates the manager.
func (m *Model) prepare() tea.Cmd {
	settings := m.batchSettings()
	events := m.events
	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			close(events)
			return PrepareDoneMsg{Err: err, events: events}
		}

		manager, err := generate.NewManager(settings, nil, func(event generate.ProgressEvent) {
			select {
			case events <- event:
			default:
				// Log pane is full; the event only matters for display.
			}
		})
		if err != nil {
			close(events)
			return PrepareDoneMsg{Err: err, events: events}
		}

		if err := manager.Initialize(settings.Keys); err != nil {
			close(events)
			return PrepareDoneMsg{Err: err, events: events}
		}

		return PrepareDoneMsg{
			Scores:  manager.GetScoreNames(),
			Manager: manager,
			events:  events,
		}
	}
}

// render runs the batch in background. The event channel is closed once
// the manager has returned.
func (m *Model) render() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	events := m.events
	return func() tea.Msg {
		defer close(events)
		if manager == nil {
			return RenderDoneMsg{Err: fmt.Errorf("no manager"), events: events}
		}

		err := manager.Run(ctx)
		done, total := manager.GetProgress()

		return RenderDoneMsg{Done: done, Total: total, Err: err, events: events}
	}
}

// parseKeys splits user input on spaces and commas.
func parseKeys(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, strings.ToLower(f))
	}
	return keys
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
