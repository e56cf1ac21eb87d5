package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/keymap"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	t.Run("with collaborators", func(t *testing.T) {
		bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

		require.NotNil(t, bar)
		assert.Equal(t, StateReady, bar.State())
		assert.Empty(t, bar.Message())
		assert.Zero(t, bar.Relevance())
	})

	t.Run("nil arguments fall back to defaults", func(t *testing.T) {
		bar := NewBar(nil, nil)

		require.NotNil(t, bar)
		assert.NotNil(t, bar.styles)
		assert.NotNil(t, bar.keymap)
	})
}

// The bar never reacts to messages; the chat view drives it through the
// Set methods.
func TestBar_IsPassive(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains []string
	}{
		{"ready", func(*Bar) {}, []string{"Ready"}},
		{"intro asks for equipment", func(b *Bar) { b.SetState(StateIntro) }, []string{"equipment"}},
		{"thinking", func(b *Bar) { b.SetState(StateThinking) }, []string{"Thinking"}},
		{"error with message", func(b *Bar) { b.SetState(StateError); b.SetMessage("connection refused") }, []string{"Error: connection refused"}},
		{"error without message", func(b *Bar) { b.SetState(StateError) }, []string{"Error"}},
		{"relevance of the last answer", func(b *Bar) { b.SetRelevance(83.4) }, []string{"relevance 83.4"}},
		{"rating hints", func(b *Bar) { b.SetState(StateRating) }, []string{"Rate the last answer", "esc"}},
		{"chat hints", func(*Bar) {}, []string{"ctrl+r", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			tt.setup(bar)

			view := bar.View()

			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestBar_MessageBeatsRelevance(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetRelevance(83.4)
	bar.SetMessage("reply 1-3 or ask differently")

	view := bar.View()

	assert.Contains(t, view, "reply 1-3")
	assert.NotContains(t, view, "relevance")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetRelevance(50)
	bar.SetWidth(120)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.Relevance())
	// Width is layout, not state; it survives a Clear.
	assert.Equal(t, 120, bar.Width())
}
