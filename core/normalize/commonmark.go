package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/notemark/core/markdown"
)

// CommonMarkNormalizer converts HTML using html-to-markdown with the
// CommonMark and table plugins. The editor's highlight, underline, strike and
// styled spans are rendered the same way the native engine renders them.
type CommonMarkNormalizer struct {
	conv *converter.Converter
	log  *zap.Logger
}

// NewCommonMark creates a CommonMarkNormalizer.
func NewCommonMark(log *zap.Logger) *CommonMarkNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	// PriorityEarly runs before the commonmark plugin renderers.
	conv.Register.RendererFor("mark", converter.TagTypeInline, wrapRenderer("==", "=="), converter.PriorityEarly)
	conv.Register.RendererFor("u", converter.TagTypeInline, wrapRenderer("<u>", "</u>"), converter.PriorityEarly)
	conv.Register.RendererFor("s", converter.TagTypeInline, wrapRenderer("~~", "~~"), converter.PriorityEarly)
	conv.Register.RendererFor("del", converter.TagTypeInline, wrapRenderer("~~", "~~"), converter.PriorityEarly)
	conv.Register.RendererFor("span", converter.TagTypeInline, renderStyledSpan, converter.PriorityEarly)

	return &CommonMarkNormalizer{conv: conv, log: log}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *CommonMarkNormalizer) Normalize(html string) (string, error) {
	md, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	n.log.Debug("Normalized", zap.String("engine", string(EngineCommonMark)), zap.Int("html", len(html)), zap.Int("markdown", len(md)))
	return md, nil
}

func wrapRenderer(prefix, suffix string) converter.HandleRenderFunc {
	return func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
		w.WriteString(prefix)
		ctx.RenderChildNodes(ctx, w, n)
		w.WriteString(suffix)
		return converter.RenderSuccess
	}
}

func renderStyledSpan(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	prefix, suffix, ok := markdown.ParseStyle(dom.GetAttributeOr(n, "style", "")).Markers()
	if !ok {
		return converter.RenderTryNext
	}
	w.WriteString(prefix)
	ctx.RenderChildNodes(ctx, w, n)
	w.WriteString(suffix)
	return converter.RenderSuccess
}
