package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core"
)

// Stdin is the source name that reads from standard input.
const Stdin = "-"

// FileFetcher reads saved HTML from disk or standard input.
type FileFetcher struct {
	stdin io.Reader
	log   *zap.Logger
}

// NewFile creates a FileFetcher. Options.Stdin defaults to os.Stdin.
func NewFile(opts Options) *FileFetcher {
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileFetcher{stdin: stdin, log: logger(opts.Log)}
}

// Fetch reads the file named by path; the context is checked before reading.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var r io.Reader
	if path == Stdin {
		r = f.stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}

	body, err := decode(r, "")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f.log.Debug("Read", zap.String("path", path), zap.Int("bytes", len(body)))
	return &core.FetchResult{Source: path, HTML: body}, nil
}
