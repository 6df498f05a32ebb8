package logging

import "github.com/fatih/color"

var (
	headerColor = color.New(color.FgWhite)

	levelColors = map[Level]*color.Color{
		Error: color.New(color.FgRed, color.Bold),
		Warn:  color.New(color.FgRed),
		Info:  color.New(color.Reset),
		Debug: color.New(color.FgGreen),
	}

	traceColor = color.New(color.FgYellow)
)

func (l Level) color() *color.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return traceColor
}
