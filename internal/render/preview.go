package render

import (
	"github.com/charmbracelet/glamour"

	"github.com/robworks/opsdocs/internal/content"
)

// Preview renders a page body to ANSI for terminal inspection. Interactive
// fences stay visible as fenced YAML, which is what an author checking a
// page actually wants to see.
func Preview(page *content.Page, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(string(page.Body))
}
