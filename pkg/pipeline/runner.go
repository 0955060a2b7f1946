package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodnews/pkg/fonts"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/observability"
	"github.com/matzehuels/goodnews/pkg/render"
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// Runner encapsulates pipeline execution.
// Both the render command and the composer use it to avoid duplicating
// layout and compositing logic.
//
// The Runner is stateless except for the font registry and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Fonts      *fonts.Registry
	Compositor *render.Compositor
	Logger     *log.Logger
}

// NewRunner creates a runner drawing with faces from reg.
// If reg is nil, a registry with system font lookup is used.
func NewRunner(reg *fonts.Registry, logger *log.Logger, opts ...render.Option) *Runner {
	if reg == nil {
		reg = fonts.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fonts:      reg,
		Compositor: render.NewCompositor(reg, opts...),
		Logger:     logger,
	}
}

// Execute runs the complete resolve → split → layout → compose pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 4: Compose
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	category := string(opts.Style.Category)
	hooks.OnComposeStart(ctx, category, result.Stats.Lines)

	composeStart := time.Now()
	img, err := r.Compositor.Compose(opts.Template, result.Placement, result.Resolved)
	result.Stats.ComposeTime = time.Since(composeStart)
	hooks.OnComposeComplete(ctx, category, result.Stats.ComposeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Image = img

	r.Logger.Debug("composed overlay",
		"size", fmt.Sprintf("%dx%d", opts.Frame.Width, opts.Frame.Height),
		"duration", result.Stats.ComposeTime)

	return result, nil
}

// Layout runs the pipeline up to positioning without drawing anything.
func (r *Runner) Layout(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Resolve
	res := style.Resolve(opts.Style)
	if res.FontKey != opts.Style.FontKey {
		opts.Logger.Debug("unknown font key, using default", "font", opts.Style.FontKey)
	}

	// Stage 2: Split
	doc := text.SplitLines(opts.Text)

	// Stage 3: Layout
	layoutStart := time.Now()
	lines := layout.RenderLines(doc, res.TextAlign)
	m, err := r.Compositor.Measurer(res, opts.Frame)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	p := layout.Place(lines, res, opts.Frame, m)

	result := &Result{
		Resolved:  res,
		Lines:     lines,
		Placement: p,
		Stats: Stats{
			Lines:      len(lines),
			Rows:       len(p.Rows),
			Units:      layout.UnitCount(lines),
			LayoutTime: time.Since(layoutStart),
		},
	}
	observability.Pipeline().OnLayoutComplete(ctx, string(res.TextAlign), result.Stats.Rows, result.Stats.LayoutTime)

	if p.Overflows() {
		opts.Logger.Warn("text overflows the safe area and will be clipped",
			"rows", len(p.Rows), "content_height", int(p.ContentHeight()), "safe_height", int(p.Safe.Height()))
	}
	opts.Logger.Debug("computed layout",
		"lines", result.Stats.Lines,
		"rows", result.Stats.Rows,
		"units", result.Stats.Units,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Close releases resources held by the runner (primarily parsed fonts).
func (r *Runner) Close() error {
	if r.Fonts != nil {
		return r.Fonts.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
