// Package pipeline provides the compose pipeline for goodnews.
//
// This package implements the complete text → layout → raster pipeline used by
// both the render command and the terminal composer, so both produce the same
// image for the same input.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Resolve: Map the style configuration to concrete rendering attributes
//  2. Split: Break the raw text into lines
//  3. Layout: Turn lines into flow, distributed, or spacer units and position them
//  4. Compose: Draw the template and the positioned units into a raster
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(fonts.NewRegistry(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:     "Hello\n\nWorld",
//	    Style:    style.Default(),
//	    Template: render.Synthetic(style.CategoryGood),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := result.Image
//
// A [Surface] keeps the live state and loaded templates of an interactive
// session and captures artifacts for export on demand.
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/style"
)

// Options configures a pipeline run.
type Options struct {
	// Text is the raw multi-line input.
	Text string `json:"text"`

	// Style is the user-selected style.
	Style style.Config `json:"style"`

	// Template is the base image. Its intrinsic size defines the frame.
	Template image.Image `json:"-"`

	// Frame supplies padding and font scale. Width and height are taken
	// from the template. A zero Scale selects the default frame.
	Frame layout.Frame `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Resolved holds the concrete rendering attributes.
	Resolved style.Resolved

	// Lines are the rendered lines before positioning.
	Lines []layout.RenderedLine

	// Placement is the positioned overlay.
	Placement layout.Placement

	// Image is the composed raster.
	Image *image.RGBA

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Lines       int
	Rows        int
	Units       int
	LayoutTime  time.Duration
	ComposeTime time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Template == nil {
		return errors.New(errors.ErrCodeCaptureNotReady, "no template mounted")
	}
	if err := errors.ValidateText(o.Text); err != nil {
		return err
	}
	if err := errors.ValidatePointSize(o.Style.PointSize); err != nil {
		return err
	}

	b := o.Template.Bounds()
	if o.Frame.Scale == 0 {
		o.Frame = layout.NewFrame(b.Dx(), b.Dy())
	} else {
		o.Frame.Width, o.Frame.Height = b.Dx(), b.Dy()
	}
	if !o.Frame.Valid() {
		return errors.New(errors.ErrCodeTemplateLoad, "template has invalid size %dx%d", b.Dx(), b.Dy())
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
