package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/styles"
)

func TestNewChatInput(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		in := NewChatInput(styles.DefaultStyles())

		require.NotNil(t, in)
		assert.Empty(t, in.Value())
		assert.True(t, in.Focused())
		assert.Equal(t, "You", in.Label())
		assert.NotNil(t, in.Init(), "cursor blink must start")
	})

	t.Run("nil styles fall back to defaults", func(t *testing.T) {
		in := NewChatInput(nil)

		require.NotNil(t, in)
		assert.NotNil(t, in.styles)
	})
}

func TestChatInput_TypingAndReset(t *testing.T) {
	in := NewChatInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("how")})
	assert.Equal(t, "how", in.Value())

	in.SetValue("how do I reset the drive")
	assert.Equal(t, "how do I reset the drive", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestChatInput_View(t *testing.T) {
	view := NewChatInput(nil).View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "You")
}

// Correction mode relabels the same input instead of swapping components.
func TestChatInput_CorrectionRelabel(t *testing.T) {
	in := NewChatInput(nil)

	in.SetLabel("Correction")
	in.SetPlaceholder("Type the corrected answer...")

	assert.Equal(t, "Correction", in.Label())
	view := in.View()
	assert.Contains(t, view, "Correction")
	// The placeholder shows while the input is empty.
	assert.Contains(t, view, "Type the corrected answer...")
}

func TestChatInput_FocusBlur(t *testing.T) {
	in := NewChatInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestChatInput_SetWidth(t *testing.T) {
	in := NewChatInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())

	// A cramped terminal still leaves a readable field.
	in.SetWidth(10)
	assert.Equal(t, 10, in.Width())
	assert.Equal(t, 20, in.textinput.Width)
}
