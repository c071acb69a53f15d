package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/SeamusWaldron/cubetwist"
)

// playKeys are the non-move bindings of the play screen. Move keys come
// from the translator's layout and are listed separately.
type playKeys struct {
	Scramble key.Binding
	Reset    key.Binding
	Size     key.Binding
	Orbit    key.Binding
	Tilt     key.Binding
	Spin     key.Binding
	Help     key.Binding
	Quit     key.Binding
	DebugWin key.Binding
}

func newPlayKeys() playKeys {
	return playKeys{
		Scramble: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "scramble")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Size:     key.NewBinding(key.WithKeys("2", "3", "4"), key.WithHelp("2-4", "size")),
		Orbit:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "orbit")),
		Tilt:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "tilt")),
		Spin:     key.NewBinding(key.WithKeys(",", "."), key.WithHelp(",/.", "spin")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		DebugWin: key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "debug win")),
	}
}

// ShortHelp implements help.KeyMap.
func (k playKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scramble, k.Reset, k.Size, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k playKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scramble, k.Reset, k.Size},
		{k.Orbit, k.Tilt, k.Spin},
		{k.DebugWin, k.Help, k.Quit},
	}
}

// layoutHelp describes the move keys, e.g. "cols q w e  rows a s d".
func layoutHelp(l cubetwist.KeyLayout) string {
	return "cols " + strings.Join(l.Columns, " ") + "  rows " + strings.Join(l.Rows, " ")
}
