package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/reportbox/internal/core/styles"
)

// markdownRenderer renders read-only report content as markdown. Renderers
// are built per wrap width and reused.
type markdownRenderer struct {
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns content rendered for width columns. On any renderer error
// the raw content is returned.
func (r *markdownRenderer) Render(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	tr, err := r.renderer(width)
	if err != nil {
		log.Debug().Err(err).Str("component", "markdown").Msg("create renderer")
		return content
	}

	out, err := tr.Render(content)
	if err != nil {
		log.Debug().Err(err).Str("component", "markdown").Msg("render content")
		return content
	}

	return strings.Trim(out, "\n")
}

func (r *markdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 10)),
	)
	if err != nil {
		return nil, err
	}

	r.renderers[width] = tr
	return tr, nil
}
