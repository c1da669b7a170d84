package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core"
	"github.com/gaurav-prasanna/notemark/core/output"
	"github.com/gaurav-prasanna/notemark/core/render"
)

type renderCmdOptions struct {
	formats    formatFlags
	standalone bool
	outputDir  string
	stdout     bool
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderCmdOptions

	cmd := &cobra.Command{
		Use:   "render <file.md>...",
		Short: "Render Markdown notes to HTML, JSON or PDF",
		Long: `Render reads Markdown notes ("-" for standard input) and renders them with
tables, footnotes, strikethrough, task lists and ==highlights==. HTML is the
default output format.

Examples:
  notemark render plan.md --stdout
  notemark render plan.md --pdf --output_dir ./out`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, &opts)
		},
	}

	opts.formats.register(cmd)
	cmd.Flags().BoolVar(&opts.standalone, "standalone", false, "Emit a complete HTML document")
	cmd.Flags().StringVar(&opts.outputDir, "output_dir", "", "Output directory (default: current directory)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write results to standard output instead of files")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, files []string, opts *renderCmdOptions) error {
	format := render.FormatHTML
	if f := opts.formats; f.markdown || f.html || f.json || f.pdf {
		var err error
		if format, err = f.selected(); err != nil {
			return err
		}
	}

	renderOpts := a.renderOptions()
	renderOpts.Standalone = renderOpts.Standalone || opts.standalone
	renderer, err := render.For(format, renderOpts)
	if err != nil {
		return err
	}

	var writer *output.Writer
	if opts.stdout {
		writer = output.NewStream(cmd.OutOrStdout())
	} else {
		if writer, err = output.New(opts.outputDir); err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
		if err = writer.SetNameTemplate(a.cfg.Converter.OutputNameTemplate); err != nil {
			return err
		}
	}

	var errs error
	for _, file := range files {
		md, err := readMarkdown(cmd.InOrStdin(), file)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		meta := core.NoteMetadata{
			Source:      file,
			Title:       markdownTitle(md),
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		}
		data, err := renderer.Render(md, meta)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: render: %w", file, err))
			continue
		}

		path, err := writer.Write(file, meta.Title, data, renderer.Extension())
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		if path != "-" {
			a.log.Info("Written", zap.String("source", file), zap.String("path", path))
		}
	}
	return errs
}

func readMarkdown(stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(file))
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(data), nil
}

// markdownTitle is the text of the first heading, if any.
func markdownTitle(md string) string {
	outline, _, err := render.Outline(md, render.Options{})
	if err != nil || len(outline.Headings) == 0 {
		return ""
	}
	return strings.TrimSpace(outline.Headings[0].Text)
}
