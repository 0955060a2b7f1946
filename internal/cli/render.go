package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goodnews/pkg/config"
	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/export"
	"github.com/matzehuels/goodnews/pkg/pipeline"
	"github.com/matzehuels/goodnews/pkg/render"
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	textFile  string // read text from this file ("-" for stdin)
	category  string // good or bad
	align     string // left, center, right, justify
	size      string // point size
	font      string // font key
	outputDir string // directory for good-news.png
	copy      bool   // copy to clipboard instead of writing a file
	guides    bool   // outline the text-safe area
}

// renderCommand creates the render command for one-shot image export.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render text onto a template and export it as PNG",
		Long: `Render lays out the text over the good-news or bad-news template and writes
good-news.png to the output directory, or copies the image to the clipboard.

Lines are separated by newlines. Pass "-" as the text to read from stdin.`,
		Example: `  goodnews render $'Hello\nWorld'
  goodnews render --category bad --align justify "Bad news"
  echo "From stdin" | goodnews render -
  goodnews render --text-file caption.txt --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			raw, err := readText(cmd.InOrStdin(), args, opts.textFile, cfg.Defaults.Text)
			if err != nil {
				return err
			}
			st, err := applyStyleFlags(cmd, cfg.Style(), opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output-dir") {
				opts.outputDir = cfg.Export.OutputDir
			}
			return c.runRender(cmd.Context(), cfg, raw, st, opts)
		},
	}

	cmd.Flags().StringVar(&opts.textFile, "text-file", "", "read text from file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "template: good or bad")
	cmd.Flags().StringVarP(&opts.align, "align", "a", "", "alignment: left, center, right, justify")
	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "font size in points")
	cmd.Flags().StringVarP(&opts.font, "font", "f", "", "font: default, serif, sans, script")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory for "+export.FileName)
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the image to the clipboard instead of writing a file")
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "outline the text-safe area")
	registerStyleCompletions(cmd)

	return cmd
}

// runRender composes the image and hands it to the selected sink.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, raw string, st style.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	tpl, err := render.LoadTemplate(st.Category, cfg.TemplatePath(st.Category))
	if err != nil {
		return err
	}

	runner := c.newRunner(cfg, render.WithGuides(opts.guides))
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Text:     raw,
		Style:    st,
		Template: tpl,
		Frame:    cfg.LayoutFrame(0, 0),
		Logger:   logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered overlay")

	cb := &export.SystemClipboard{}
	exp := &export.Exporter{
		Capturer: export.CaptureFunc(func(context.Context) (image.Image, error) {
			return result.Image, nil
		}),
		Clipboard: cb,
		Notifier:  printNotifier{},
		Dir:       opts.outputDir,
		Logger:    logger,
	}

	if opts.copy {
		err = exp.Copy(ctx)
	} else {
		_, err = exp.Download(ctx)
	}
	if err != nil {
		return err
	}

	printDetail("%s · %s · %s · %gpt · %d lines",
		result.Resolved.Color, st.Category, result.Resolved.TextAlign, st.PointSize, result.Stats.Lines)
	if opts.copy {
		holdClipboard(ctx, cb)
	}
	return nil
}

// holdClipboard keeps the process alive while it still serves the
// clipboard, until another application takes over or ctx is cancelled.
func holdClipboard(ctx context.Context, cw export.ClipboardWriter) {
	h, ok := cw.(export.Holder)
	if !ok {
		return
	}
	released := h.Released()
	if released == nil {
		return
	}

	printInfo("Holding the clipboard until it is replaced, press Ctrl+C to release it")
	select {
	case <-released:
		loggerFromContext(ctx).Debug("clipboard taken over")
	case <-ctx.Done():
		loggerFromContext(ctx).Debug("clipboard released on interrupt")
	}
}

// readText picks the caption from the argument, a file, or stdin, falling
// back to the configured default.
func readText(stdin io.Reader, args []string, textFile, fallback string) (string, error) {
	var raw string
	switch {
	case len(args) == 1 && textFile != "":
		return "", errors.New(errors.ErrCodeInvalidInput, "pass text as an argument or with --text-file, not both")
	case len(args) == 1 && args[0] == "-", textFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
		// A trailing newline from echo or a heredoc is not a caption line.
		raw = trimFinalNewline(text.NormalizeNewlines(raw))
	case len(args) == 1:
		raw = text.NormalizeNewlines(args[0])
	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", textFile)
		}
		raw = trimFinalNewline(text.NormalizeNewlines(string(data)))
	default:
		raw = fallback
	}

	if err := errors.ValidateText(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func trimFinalNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

// applyStyleFlags overrides the configured style with explicitly set flags.
func applyStyleFlags(cmd *cobra.Command, st style.Config, opts renderOpts) (style.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("category") {
		cat, err := style.ParseCategory(opts.category)
		if err != nil {
			return st, err
		}
		st.Category = cat
	}
	if flags.Changed("align") {
		a, err := style.ParseAlignment(opts.align)
		if err != nil {
			return st, err
		}
		st.Alignment = a
	}
	if flags.Changed("size") {
		pt, ok := style.ParsePointSize(opts.size)
		if !ok {
			return st, errors.New(errors.ErrCodeInvalidSize, "invalid size %q (must be a positive number)", opts.size)
		}
		st.PointSize = pt
	}
	if flags.Changed("font") {
		k, ok := style.ParseFontKey(opts.font)
		if !ok {
			loggerFromContext(cmd.Context()).Warn("unknown font, using default", "font", opts.font)
		}
		st.FontKey = k
	}
	return st, nil
}
