// Convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → normalize → render → write.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core"
	"github.com/gaurav-prasanna/notemark/core/extract"
	"github.com/gaurav-prasanna/notemark/core/fetch"
	"github.com/gaurav-prasanna/notemark/core/normalize"
	"github.com/gaurav-prasanna/notemark/core/output"
	"github.com/gaurav-prasanna/notemark/core/render"
)

type convertOptions struct {
	formats     formatFlags
	engine      string
	noExtract   bool
	frontMatter bool
	standalone  bool
	outputDir   string
	stdout      bool
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <source>...",
		Short: "Convert HTML notes to Markdown or another output format",
		Long: `Convert reads each source (an http(s) URL, an HTML file, or "-" for standard
input), extracts the note body, normalizes it to Markdown and renders it in
the requested output format (Markdown by default, HTML, JSON or PDF).

Examples:
  notemark convert saved/plan.html
  notemark convert https://example.com/notes --json --output_dir ./out
  cat fragment.html | notemark convert - --stdout
  notemark convert a.html b.html --engine commonmark --pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, &opts)
		},
	}

	opts.formats.register(cmd)
	cmd.Flags().StringVar(&opts.engine, "engine", "", "HTML to Markdown engine: native or commonmark (default from configuration)")
	cmd.Flags().BoolVar(&opts.noExtract, "no_extract", false, "Convert the whole document instead of the extracted note body")
	cmd.Flags().BoolVar(&opts.frontMatter, "front_matter", false, "Prefix Markdown output with YAML front matter")
	cmd.Flags().BoolVar(&opts.standalone, "standalone", false, "Emit a complete HTML document")
	cmd.Flags().StringVar(&opts.outputDir, "output_dir", "", "Output directory (default: current directory)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write results to standard output instead of files")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, sources []string, opts *convertOptions) error {
	format, err := opts.formats.selected()
	if err != nil {
		return err
	}
	if opts.stdout && format == render.FormatPDF && len(sources) > 1 {
		return fmt.Errorf("--stdout with --pdf accepts a single source")
	}

	p, err := a.newPipeline(cmd, opts.engine, !opts.noExtract)
	if err != nil {
		return err
	}

	renderOpts := a.renderOptions()
	renderOpts.FrontMatter = renderOpts.FrontMatter || opts.frontMatter
	renderOpts.Standalone = renderOpts.Standalone || opts.standalone
	if p.renderer, err = render.For(format, renderOpts); err != nil {
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

	ctx := cmd.Context()
	var errs error
	for i, source := range sources {
		a.log.Debug("Processing", zap.Int("n", i+1), zap.Int("of", len(sources)), zap.String("source", source))

		data, meta, err := p.process(ctx, source)
		if err != nil {
			a.log.Error("Conversion failed", zap.String("source", source), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", source, err))
			continue
		}

		path, err := writer.Write(source, meta.Title, data, p.renderer.Extension())
		if err != nil {
			a.log.Error("Write failed", zap.String("source", source), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", source, err))
			continue
		}
		if path != "-" {
			a.log.Info("Written", zap.String("source", source), zap.String("path", path))
		}
	}

	if errs != nil {
		failed := len(multierr.Errors(errs))
		return fmt.Errorf("%d/%d sources failed: %w", failed, len(sources), errs)
	}
	return nil
}

// pipeline is one configured run of fetch → extract → normalize → render.
type pipeline struct {
	fetchOpts  fetch.Options
	extractor  core.Extractor
	normalizer core.Normalizer
	renderer   core.Renderer
	engine     normalize.Engine
}

func (a *app) newPipeline(cmd *cobra.Command, engineFlag string, doExtract bool) (*pipeline, error) {
	name := a.cfg.Converter.Engine
	if engineFlag != "" {
		name = engineFlag
	}
	engine, err := normalize.ParseEngine(name)
	if err != nil {
		return nil, err
	}
	normalizer, err := normalize.New(engine, a.log)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		fetchOpts: fetch.Options{
			Timeout:   a.cfg.Fetch.Timeout,
			UserAgent: a.cfg.Fetch.UserAgent,
			Stdin:     cmd.InOrStdin(),
			Log:       a.log,
		},
		normalizer: normalizer,
		engine:     engine,
	}
	if doExtract && a.cfg.Converter.Extract {
		p.extractor = extract.New(a.log)
	}
	return p, nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		Typographer: a.cfg.Render.Typographer,
		UnsafeHTML:  a.cfg.Render.UnsafeHTML,
		Standalone:  a.cfg.Render.Standalone,
		FrontMatter: a.cfg.Render.FrontMatter,
	}
}

// markdown runs a source through fetch, extract and normalize.
func (p *pipeline) markdown(ctx context.Context, source string) (string, core.NoteMetadata, error) {
	// 1. Fetch
	result, err := fetch.For(source, p.fetchOpts).Fetch(ctx, source)
	if err != nil {
		return "", core.NoteMetadata{}, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract the note body
	content := result.HTML
	if p.extractor != nil {
		if content, err = p.extractor.Extract(result.HTML); err != nil {
			return "", core.NoteMetadata{}, fmt.Errorf("extract: %w", err)
		}
	}

	// 3. Normalize to Markdown
	md, err := p.normalizer.Normalize(content)
	if err != nil {
		return "", core.NoteMetadata{}, fmt.Errorf("normalize: %w", err)
	}

	meta := core.NoteMetadata{
		Source:      source,
		Title:       extract.Title(result.HTML),
		Engine:      string(p.engine),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return md, meta, nil
}

// process runs a source through the full pipeline.
func (p *pipeline) process(ctx context.Context, source string) ([]byte, core.NoteMetadata, error) {
	md, meta, err := p.markdown(ctx, source)
	if err != nil {
		return nil, core.NoteMetadata{}, err
	}

	// 4. Render to output format
	data, err := p.renderer.Render(md, meta)
	if err != nil {
		return nil, core.NoteMetadata{}, fmt.Errorf("render: %w", err)
	}
	return data, meta, nil
}

// formatFlags are the mutually exclusive output format switches.
type formatFlags struct {
	markdown, html, json, pdf bool
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Output Markdown (default)")
	cmd.Flags().BoolVar(&f.html, "html", false, "Output HTML")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output structured JSON")
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Output PDF")
}

// selected checks that at most one output format is chosen.
func (f *formatFlags) selected() (render.Format, error) {
	var chosen []render.Format
	if f.markdown {
		chosen = append(chosen, render.FormatMarkdown)
	}
	if f.html {
		chosen = append(chosen, render.FormatHTML)
	}
	if f.json {
		chosen = append(chosen, render.FormatJSON)
	}
	if f.pdf {
		chosen = append(chosen, render.FormatPDF)
	}

	switch len(chosen) {
	case 0:
		return render.FormatMarkdown, nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(chosen))
	}
}
