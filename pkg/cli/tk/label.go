package tk

import (
	"calc.elv.sh/pkg/cli/term"
	"calc.elv.sh/pkg/ui"
)

// Label is a Widget that shows a styled text, like a status message.
type Label struct {
	Content ui.Text
}

// Render shows the content, wrapped to the width and cropped to the height.
func (l Label) Render(width, height int) *term.Buffer {
	b := l.render(width)
	b.TrimToLines(0, height)
	return b
}

// MaxHeight returns the number of lines of the wrapped content.
func (l Label) MaxHeight(width, height int) int {
	return len(l.render(width).Lines)
}

func (l Label) render(width int) *term.Buffer {
	return term.NewBufferBuilder(width).WriteStyled(l.Content).Buffer()
}

// Handle always returns false.
func (l Label) Handle(event term.Event) bool {
	return false
}
