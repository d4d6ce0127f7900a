package cli

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/measure"
	"github.com/matzehuels/weeks/pkg/render/sink"
	"github.com/matzehuels/weeks/pkg/render/styles"
	"github.com/matzehuels/weeks/pkg/state"
)

// defaultTerminal is the viewport assumed until the terminal reports its
// size: 80 columns by 24 lines, in half-line units.
var defaultTerminal = grid.Box{Width: 80, Height: 48}

// chromeLines are the lines of the visualization view outside the grid.
const chromeLines = 7

const dateLength = len("2006-01-02")

// Styles
var (
	tuiKeyStyle  = lipgloss.NewStyle().Foreground(colorAmber).Bold(true)
	tuiHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Messages
// =============================================================================

type (
	tickMsg              time.Time
	containerMeasuredMsg grid.Box
	copyFinishedMsg      struct{ err error }
)

// =============================================================================
// WeeksModel - Interactive life grid
// =============================================================================

// WeeksModel is the bubbletea model of the interactive grid. All application
// state lives in a [state.State]; the model only translates terminal events
// into state events.
type WeeksModel struct {
	State state.State

	input    textinput.Model
	base     string
	cons     grid.Constraints
	style    styles.Style
	renderer *lipgloss.Renderer
	now      func() time.Time

	observer *measure.Observer
	measured chan grid.Box
	done     chan struct{}
	stop     func()
}

// newWeeksModel creates the model and subscribes it to container
// measurements. Call close when the program exits.
func (c *CLI) newWeeksModel(style styles.Style, renderer *lipgloss.Renderer) WeeksModel {
	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD"
	input.CharLimit = dateLength
	input.Width = dateLength + 1
	input.Focus()

	cons := c.terminalConstraints()
	m := WeeksModel{
		State:    state.New(c.Config.Share.Language, cons.TotalItems),
		input:    input,
		base:     c.Config.Share.BaseURL,
		cons:     cons,
		style:    style,
		renderer: renderer,
		now:      c.now,
		observer: measure.NewObserver(),
		measured: make(chan grid.Box, 1),
		done:     make(chan struct{}),
	}
	m.State = state.Reduce(m.State, state.ViewportResized{Box: defaultTerminal})

	// Only the latest measurement matters; older pending ones are dropped.
	measured := m.measured
	cancel := m.observer.Observe(func(b grid.Box) {
		for {
			select {
			case measured <- b:
				return
			default:
			}
			select {
			case <-measured:
			default:
			}
		}
	})
	var once sync.Once
	done := m.done
	m.stop = func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}
	return m
}

// load applies a shared link to the initial state.
func (m *WeeksModel) load(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse link")
	}
	m.State = state.Reduce(m.State, state.Loaded{Query: u.RawQuery, Now: m.now()})
	m.input.SetValue(m.State.BirthDate)
	return nil
}

func (m WeeksModel) close() { m.stop() }

func (m WeeksModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(), m.waitMeasure())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitMeasure delivers the next container measurement.
func (m WeeksModel) waitMeasure() tea.Cmd {
	measured, done := m.measured, m.done
	return func() tea.Msg {
		select {
		case b := <-measured:
			return containerMeasuredMsg(b)
		case <-done:
			return nil
		}
	}
}

func (m WeeksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := float64(msg.Width), float64(msg.Height)
		m.State = state.Reduce(m.State, state.ViewportResized{Box: grid.Box{Width: w, Height: 2 * h}})
		m.observer.Publish(grid.Box{Width: max(w-2, 0), Height: max(h-chromeLines, 0) * 2})
		return m, nil

	case containerMeasuredMsg:
		m.State = state.Reduce(m.State, state.ContainerMeasured{Box: grid.Box(msg)})
		return m, m.waitMeasure()

	case tickMsg:
		m.State = state.Reduce(m.State, state.Tick{Now: time.Time(msg)})
		return m, tick()

	case copyFinishedMsg:
		m.State = state.Reduce(m.State, state.CopyFinished{Err: msg.err, Now: m.now()})
		return m, nil

	case tea.KeyMsg:
		if m.State.View == state.Visualization {
			return m.updateVisualization(msg)
		}
		return m.updateIntake(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m WeeksModel) updateIntake(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.State = state.Reduce(m.State, state.LanguageToggled{})
		return m, nil
	case "enter":
		now := m.now()
		m.State = state.Reduce(m.State, state.DateEntered{Value: m.input.Value(), Now: now})
		m.State = state.Reduce(m.State, state.Visualize{Now: now})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Partial input clears the date instead of flagging an error.
	value := m.input.Value()
	if len(value) != dateLength {
		value = ""
	}
	m.State = state.Reduce(m.State, state.DateEntered{Value: value, Now: m.now()})
	return m, cmd
}

func (m WeeksModel) updateVisualization(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "l", "tab":
		m.State = state.Reduce(m.State, state.LanguageToggled{})
	case "b", "esc":
		m.State = state.Reduce(m.State, state.Back{})
	case "c":
		link, err := m.State.ShareURL(m.base)
		return m, func() tea.Msg {
			if err != nil {
				return copyFinishedMsg{err: err}
			}
			return copyFinishedMsg{err: copyToClipboard(link)}
		}
	}
	return m, nil
}

func (m WeeksModel) View() string {
	if m.State.View == state.Visualization {
		return m.viewVisualization()
	}
	return m.viewIntake()
}

func (m WeeksModel) viewIntake() string {
	msgs := m.State.Messages()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(msgs.Title))
	b.WriteString("\n\n")
	b.WriteString(StyleValue.Render(msgs.IntroHeading))
	b.WriteString("\n\n")
	b.WriteString(msgs.BirthDateLabel)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if text := m.State.ErrorText(); text != "" {
		b.WriteString(StyleError.Render(text))
	} else {
		b.WriteString(StyleDim.Render(msgs.Helper))
	}
	b.WriteString("\n\n")

	var keys []string
	if m.State.CanVisualize() {
		keys = append(keys, help("enter", msgs.VisualizeButton))
	}
	keys = append(keys, help("tab", msgs.LanguageToggle), help("esc", "quit"))
	b.WriteString(strings.Join(keys, "  "))
	return b.String()
}

func (m WeeksModel) viewVisualization() string {
	s := m.State
	msgs := s.Messages()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(msgs.YourLifeInWeeks))
	b.WriteString("\n")
	b.WriteString(stat(msgs.Born, i18n.FormatDate(s.BirthDate, s.Language)))
	b.WriteString("  ")
	b.WriteString(stat(msgs.WeeksLived, i18n.FormatNumber(s.Lived, s.Language)))
	b.WriteString("  ")
	b.WriteString(stat(msgs.WeeksRemaining, i18n.FormatNumber(s.Remaining(), s.Language)))
	b.WriteString("\n\n")

	layout := s.Layout(m.cons.TotalItems, m.cons)
	b.WriteString(sink.RenderText(layout, s.Lived,
		sink.WithTextItems(m.cons.TotalItems),
		sink.WithTextStyle(m.style),
		sink.WithRenderer(m.renderer)))
	b.WriteString("\n\n")

	if link, err := s.ShareURL(m.base); err == nil {
		b.WriteString(StyleDim.Render(msgs.ShareThisView+": ") + StyleLink.Render(link))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		help("c", s.CopyLabel()),
		help("l", msgs.LanguageToggle),
		help("b", msgs.Back),
		help("q", "quit"),
	}, "  "))
	return b.String()
}

func stat(label, value string) string {
	return StyleDim.Render(label+": ") + StyleNumber.Render(value)
}

func help(key, action string) string {
	return tuiKeyStyle.Render(key) + " " + tuiHelpStyle.Render(action)
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the interactive grid command.
func (c *CLI) tuiCommand() *cobra.Command {
	var styleName string

	cmd := &cobra.Command{
		Use:   "tui [link]",
		Short: "Explore your life in weeks interactively",
		Long: `Explore your life in weeks interactively.

Enter a birth date to see the grid. A shared link as argument opens the view
it describes. The grid follows the terminal size.`,
		Example: `  weeks tui
  weeks tui "https://weeks.example.com/?lang=de&date=MTk5MC0wNS0xNw"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, ok := styles.ByName(styleName)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "unknown style %q (want %s)", styleName, strings.Join(styles.Names(), ", "))
			}

			m := c.newWeeksModel(style, lipgloss.DefaultRenderer())
			defer m.close()
			if len(args) == 1 {
				if err := m.load(args[0]); err != nil {
					return err
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			if fm, ok := final.(WeeksModel); ok && fm.State.View == state.Visualization {
				if link, err := fm.State.ShareURL(c.Config.Share.BaseURL); err == nil {
					printKeyValue(fm.State.Messages().ShareThisView, link)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&styleName, "style", "simple", "visual style: "+strings.Join(styles.Names(), ", "))

	return cmd
}
