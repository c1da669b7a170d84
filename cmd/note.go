package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core"
	"github.com/gaurav-prasanna/notemark/core/render"
	"github.com/gaurav-prasanna/notemark/core/trove"
)

func newNoteCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes stored in the trove directory",
	}
	cmd.PersistentFlags().StringVar(&dir, "trove", "", "Trove `DIR` (default from configuration)")

	open := func() (*trove.Trove, error) {
		if dir == "" {
			dir = a.cfg.Trove.Dir
		}
		return trove.Open(dir, a.log)
	}

	cmd.AddCommand(
		newNoteSaveCmd(a, open),
		newNoteOpenCmd(a, open),
		newNoteListCmd(open),
		newNoteDeleteCmd(a, open),
		newNotePruneCmd(a, open),
	)
	return cmd
}

type troveOpener func() (*trove.Trove, error)

func newNoteSaveCmd(a *app, open troveOpener) *cobra.Command {
	var (
		id, title, engine string
		noExtract         bool
	)

	cmd := &cobra.Command{
		Use:   "save <source>",
		Short: "Convert an HTML note and store it in the trove",
		Long: `Save converts the source (URL, HTML file or "-") to Markdown and stores it
under the given id, creating a new note when no id is given. Changing the
title of an existing note renames its file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := open()
			if err != nil {
				return err
			}
			p, err := a.newPipeline(cmd, engine, !noExtract)
			if err != nil {
				return err
			}

			md, meta, err := p.markdown(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if title == "" {
				title = meta.Title
			}

			e, err := tr.Save(id, title, md)
			if err != nil {
				return err
			}
			a.log.Info("Saved note", zap.String("id", e.ID), zap.String("title", e.Title), zap.String("path", tr.Path(e)))
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Note id to update (default: new note)")
	cmd.Flags().StringVar(&title, "title", "", "Note title (default: document title)")
	cmd.Flags().StringVar(&engine, "engine", "", "HTML to Markdown engine: native or commonmark")
	cmd.Flags().BoolVar(&noExtract, "no_extract", false, "Convert the whole document instead of the extracted note body")
	return cmd
}

func newNoteOpenCmd(a *app, open troveOpener) *cobra.Command {
	var (
		formats formatFlags
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "open <id|title>",
		Short: "Print a stored note, optionally rendered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formats.selected()
			if err != nil {
				return err
			}
			if format == render.FormatPDF && outFile == "" {
				return errors.New("--pdf needs --output")
			}

			tr, err := open()
			if err != nil {
				return err
			}
			e, md, err := tr.Load(args[0])
			if err != nil {
				return err
			}

			renderer, err := render.For(format, a.renderOptions())
			if err != nil {
				return err
			}
			data, err := renderer.Render(md, core.NoteMetadata{
				Source:      tr.Path(e),
				Title:       e.Title,
				ConvertedAt: e.Updated.Format(time.RFC3339),
			})
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", outFile, err)
				}
				a.log.Info("Written", zap.String("id", e.ID), zap.String("path", outFile))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	formats.register(cmd)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to `FILE` instead of standard output")
	return cmd
}

func newNoteListCmd(open troveOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored notes in title order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := open()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tFILE\tUPDATED")
			for _, e := range tr.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Title, e.File, e.Updated.Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newNoteDeleteCmd(a *app, open troveOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|title>",
		Short: "Delete a stored note and its file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := open()
			if err != nil {
				return err
			}
			e, err := tr.Delete(args[0])
			if err != nil {
				return err
			}
			a.log.Info("Deleted note", zap.String("id", e.ID), zap.String("title", e.Title))
			return nil
		},
	}
}

func newNotePruneCmd(a *app, open troveOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Forget notes whose files were removed outside notemark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := open()
			if err != nil {
				return err
			}
			stale, err := tr.Prune()
			if err != nil {
				return err
			}
			for _, e := range stale {
				fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			}
			a.log.Info("Pruned trove", zap.Int("removed", len(stale)))
			return nil
		},
	}
}
