package tui

import "github.com/gdamore/tcell/v2"

// Color constants for the panel theme
var (
	ColorUserText      = tcell.NewRGBColor(255, 176, 0)   // Warm amber - for user messages
	ColorAssistantText = tcell.NewRGBColor(0, 255, 135)   // Mint green - for assistant messages
	ColorFunctionText  = tcell.NewRGBColor(255, 128, 255) // Soft magenta - for function-call notices
	ColorThinkingText  = tcell.NewRGBColor(169, 169, 169) // Dark gray - for the activity indicator
	ColorRevertText    = tcell.NewRGBColor(255, 99, 71)   // Tomato - for revert markers

	ColorBackground = tcell.ColorBlack
	ColorPrompt     = tcell.NewRGBColor(255, 192, 203) // Pink - for the input prompt
	ColorStatusText = tcell.NewRGBColor(175, 175, 175) // Light gray - status bar
)

// Style presets combining colors with text attributes
var (
	StyleUserText      = tcell.StyleDefault.Foreground(ColorUserText)
	StyleAssistantText = tcell.StyleDefault.Foreground(ColorAssistantText)
	StyleThinkingText  = tcell.StyleDefault.Foreground(ColorThinkingText).Dim(true)
)
