// Package status provides the status bar component for the chat interface.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/keymap"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/styles"
)

// State represents the current chat state for display.
type State string

const (
	StateIntro    State = "intro"
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateRating   State = "rating"
	StateError    State = "error"
)

// Bar displays the chat state, the last answer's relevance, and keybinding
// hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	relevance float64
	width     int
}

// NewBar builds a status bar. Nil styles or keymap fall back to the
// defaults so the bar can render standalone in tests.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init is a no-op; the bar schedules nothing.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update ignores all messages. The chat view drives the bar through the
// Set methods instead.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View lays out state on the left, key hints on the right, padded apart
// to the full width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateIntro:
		return s.styles.Normal.Render("Describe your equipment")
	case StateThinking:
		return s.styles.Muted.Render("Thinking...")
	case StateRating:
		return s.styles.Normal.Render("Rate the last answer")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
		if s.message != "" {
			return s.styles.Muted.Render(s.message)
		}
		if s.relevance > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("relevance %.1f", s.relevance))
		}
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight shows the bindings for whichever mode is active.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateRating {
		bindings = s.keymap.RatingHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState switches what the left side shows.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State reports the displayed state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage pins a custom message. It takes precedence over the
// relevance display.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message reports the pinned message.
func (s *Bar) Message() string {
	return s.message
}

// SetRelevance sets the relevance score of the last answer. Zero hides it.
func (s *Bar) SetRelevance(relevance float64) {
	s.relevance = relevance
}

// Relevance returns the displayed relevance score.
func (s *Bar) Relevance() float64 {
	return s.relevance
}

// SetWidth resizes the bar on terminal resize.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width reports the render width.
func (s *Bar) Width() int {
	return s.width
}

// Clear drops state, message and relevance back to Ready. Width is
// layout, not state, so it survives.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.relevance = 0
}
