package present

import (
	"strings"
)

// Frame is one screen of output: a drawing, a histogram, a state dump.
type Frame struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Render draws a frame with a title inside a rounded border.
func (f Frame) Render() string {
	return frameStyle.Render(titleStyle.Render(f.Title) + "\n\n" + f.Body)
}

// RenderAll renders frames one after another, separated by a blank line.
func RenderAll(frames []Frame) string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.Render()
	}
	return strings.Join(out, "\n\n")
}
