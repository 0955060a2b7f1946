package pipeline

import (
	"context"
	"image"
	"sync"

	"github.com/matzehuels/goodnews/pkg/app"
	"github.com/matzehuels/goodnews/pkg/export"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/style"
)

// Surface is the live composition of an interactive session: the current
// state plus the templates loaded so far. It implements export.Capturer;
// capturing before the template of the current category is mounted returns
// export.ErrNotReady.
type Surface struct {
	runner *Runner

	mu        sync.Mutex
	state     app.State
	templates map[style.Category]image.Image
	frame     layout.Frame
}

// NewSurface creates an empty surface. frame supplies padding and font
// scale for every template.
func NewSurface(r *Runner, frame layout.Frame) *Surface {
	return &Surface{
		runner:    r,
		state:     app.Initial(),
		templates: make(map[style.Category]image.Image),
		frame:     frame,
	}
}

// Mount registers the template image of a category.
func (s *Surface) Mount(c style.Category, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[c] = img
}

// Mounted reports whether the current category has a template.
func (s *Surface) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templates[s.state.Style.Category] != nil
}

// Update replaces the state captured by the next export.
func (s *Surface) Update(st app.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func (s *Surface) options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Options{
		Text:     s.state.Text,
		Style:    s.state.Style,
		Template: s.templates[s.state.Style.Category],
		Frame:    s.frame,
	}
}

// Capture renders the current state into a fresh artifact.
func (s *Surface) Capture(ctx context.Context) (*export.Artifact, error) {
	opts := s.options()
	if opts.Template == nil {
		return nil, export.ErrNotReady
	}
	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return export.NewArtifact(res.Image), nil
}

// Layout positions the current state without drawing.
func (s *Surface) Layout(ctx context.Context) (*Result, error) {
	opts := s.options()
	if opts.Template == nil {
		return nil, export.ErrNotReady
	}
	return s.runner.Layout(ctx, opts)
}
