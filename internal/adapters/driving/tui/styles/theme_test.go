package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_PaletteComplete(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"Primary":    theme.Primary,
		"Secondary":  theme.Secondary,
		"Background": theme.Background,
		"Foreground": theme.Foreground,
		"Muted":      theme.Muted,
		"Success":    theme.Success,
		"Warning":    theme.Warning,
		"Error":      theme.Error,
		"Border":     theme.Border,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_SpeakersAreDistinguishable(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Primary, theme.Secondary,
		"user and assistant sides must not share a colour")
	assert.NotEqual(t, theme.Error, theme.Foreground)
}

func TestNewStyles(t *testing.T) {
	t.Run("uses the given theme", func(t *testing.T) {
		theme := DefaultTheme()
		s := NewStyles(theme)

		require.NotNil(t, s)
		assert.Equal(t, theme, s.Theme())
	})

	t.Run("nil theme gets the default", func(t *testing.T) {
		s := NewStyles(nil)

		require.NotNil(t, s)
		assert.NotNil(t, s.Theme())
	})
}

func TestStyles_SpeakerLabelsUseThemeAccents(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyles(theme)

	assert.Equal(t, theme.Primary, s.UserLabel.GetForeground())
	assert.Equal(t, theme.Secondary, s.BotLabel.GetForeground())
	assert.True(t, s.SourceRef.GetItalic(), "citations render in italics")
}

func TestStyles_AllInitialised(t *testing.T) {
	s := DefaultStyles()

	zero := lipgloss.Style{}
	for name, style := range map[string]lipgloss.Style{
		"UserLabel":  s.UserLabel,
		"BotLabel":   s.BotLabel,
		"SourceRef":  s.SourceRef,
		"Normal":     s.Normal,
		"Muted":      s.Muted,
		"Error":      s.Error,
		"Title":      s.Title,
		"Selected":   s.Selected,
		"InputField": s.InputField,
		"StatusBar":  s.StatusBar,
		"Border":     s.Border,
	} {
		assert.NotEqual(t, zero, style, name)
		assert.NotEmpty(t, style.Render("x"), name)
	}
}
