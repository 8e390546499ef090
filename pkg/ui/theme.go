package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// A Theme maps style keys to styles. Components look their styles up in the
// Theme they were given and fall back to DefaultTheme, which lists every key.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"StatusBar":      tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"StatusBarError": tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon),
	"TextEdit":       tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
	"TextEditCursor": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
}
