package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/untoldecay/modelscore/internal/debug"
)

// RenderMarkdown renders Markdown for the terminal. Without a TTY, or
// when rendering fails, the source is returned unchanged.
func RenderMarkdown(md string) string {
	if !IsTerminal() {
		return md
	}
	return renderMarkdown(md, glamour.WithAutoStyle(), GetWidth())
}

// RenderMarkdownPlain renders Markdown with the colourless notty style.
func RenderMarkdownPlain(md string, width int) string {
	return renderMarkdown(md, glamour.WithStandardStyle("notty"), width)
}

func renderMarkdown(md string, style glamour.TermRendererOption, width int) string {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		debug.Logf("markdown renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		debug.Logf("markdown render: %v", err)
		return md
	}
	return out
}
