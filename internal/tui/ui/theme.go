package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TableHeaderFg    tcell.Color
	TableCursorBg    tcell.Color
	TitleColor       tcell.Color
	MenuKeyColor     tcell.Color
	OnlineColor      tcell.Color
	UnreadColor      tcell.Color
	ToastInfoColor   tcell.Color
	ToastOkColor     tcell.Color
	ToastErrColor    tcell.Color
}

// DefaultTheme returns the dark default palette.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorCadetBlue,
		BorderColor:      tcell.ColorDodgerBlue,
		BorderFocusColor: tcell.ColorLightSkyBlue,
		TableHeaderFg:    tcell.ColorWhite,
		TableCursorBg:    tcell.ColorAqua,
		TitleColor:       tcell.ColorFuchsia,
		MenuKeyColor:     tcell.ColorDodgerBlue,
		OnlineColor:      tcell.ColorGreen,
		UnreadColor:      tcell.ColorOrange,
		ToastInfoColor:   tcell.ColorNavajoWhite,
		ToastOkColor:     tcell.ColorGreen,
		ToastErrColor:    tcell.ColorOrangeRed,
	}
}
