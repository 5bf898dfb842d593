package tuitest

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nplain  \n\n"
	assert.Equal(t, "bold\nplain", StripANSI(in))
}

func TestKeyStrings(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
		want string
	}{
		{"rune", KeyPress('q'), "q"},
		{"ctrl", KeyCtrl('s'), "ctrl+s"},
		{"tab", KeyTab(), "tab"},
		{"shift tab", KeyShiftTab(), "shift+tab"},
		{"enter", KeyEnter(), "enter"},
		{"esc", KeyEsc(), "esc"},
		{"down", KeyDown(), "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.msg.(tea.KeyPressMsg)
			require.True(t, ok)
			assert.Equal(t, tt.want, key.String())
		})
	}
}

func TestType(t *testing.T) {
	msgs := Type("hé")
	require.Len(t, msgs, 2)
	assert.Equal(t, "é", msgs[1].(tea.KeyPressMsg).String())
}
