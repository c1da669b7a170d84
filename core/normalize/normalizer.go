// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into Markdown, which serves as the
// canonical intermediate format for all downstream renderers.
package normalize

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core"
	"github.com/gaurav-prasanna/notemark/core/markdown"
)

// Engine names an HTML to Markdown implementation.
type Engine string

const (
	// EngineNative is the note editor's own tag table.
	EngineNative Engine = "native"
	// EngineCommonMark is html-to-markdown with the editor's extra tags.
	EngineCommonMark Engine = "commonmark"
)

// Engines lists the accepted engine names.
var Engines = []Engine{EngineNative, EngineCommonMark}

// ParseEngine accepts an engine name in any case; empty means native.
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineNative, nil
	case EngineNative, EngineCommonMark:
		return e, nil
	default:
		return "", fmt.Errorf("unknown engine %q (want one of %v)", name, Engines)
	}
}

// New returns the Normalizer for the engine.
func New(engine Engine, log *zap.Logger) (core.Normalizer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch engine {
	case EngineNative, "":
		return NewNative(log), nil
	case EngineCommonMark:
		return NewCommonMark(log), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// NativeNormalizer converts HTML with the package markdown tag table.
type NativeNormalizer struct {
	conv *markdown.Converter
	log  *zap.Logger
}

// NewNative creates a NativeNormalizer.
func NewNative(log *zap.Logger) *NativeNormalizer {
	return &NativeNormalizer{
		conv: markdown.New(markdown.WithLogger(log)),
		log:  log,
	}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *NativeNormalizer) Normalize(html string) (string, error) {
	md, err := n.conv.Convert(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	n.log.Debug("Normalized", zap.String("engine", string(EngineNative)), zap.Int("html", len(html)), zap.Int("markdown", len(md)))
	return md, nil
}
