// Package display renders the assessment for a terminal.
//
// It draws the question prompt, the results screen and yellow re-prompt
// warnings. Every function writes to an io.Writer; colour is chosen by a
// Palette, normally built from IsTerminal so redirected output stays plain.
//
//	pal := display.NewPalette(display.IsTerminal(os.Stdout))
//	display.ShowQuestion(os.Stdout, session, pal)
//	display.WarnUnanswered().DisplayWith(os.Stdout, pal)
package display
