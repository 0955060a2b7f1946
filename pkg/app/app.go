// Package app holds the composer state and the pure transition function
// that updates it.
//
// Every change goes through [Reduce]. Side effects such as rendering,
// exporting, or notifying are run by the caller after the new state is
// known.
package app

import (
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// State is the live composer state.
type State struct {
	Style style.Config
	Text  string
}

// Initial returns the reset state.
func Initial() State {
	return State{Style: style.Default()}
}

// Document splits the current text into lines.
func (s State) Document() text.Document {
	return text.SplitLines(s.Text)
}

// Resolved returns the rendering attributes of the current style.
func (s State) Resolved() style.Resolved {
	return style.Resolve(s.Style)
}

// Action is a state transition request.
type Action interface {
	apply(State) State
}

// SetText replaces the text.
type SetText struct{ Text string }

// SetCategory selects the template and colour.
type SetCategory struct{ Category style.Category }

// SetAlignment selects the alignment.
type SetAlignment struct{ Alignment style.Alignment }

// SetPointSize applies raw point size input. Input that is not a positive
// number is rejected and the prior value kept.
type SetPointSize struct{ Input string }

// SetFont selects a font key. Unknown keys fall back to the default font.
type SetFont struct{ Key style.FontKey }

// CycleCategory, CycleAlignment and CycleFont advance to the next option.
type (
	CycleCategory  struct{}
	CycleAlignment struct{}
	CycleFont      struct{}
)

// Reset restores the default style and clears the text.
type Reset struct{}

func (a SetText) apply(s State) State {
	s.Text = a.Text
	return s
}

func (a SetCategory) apply(s State) State {
	if a.Category.Valid() {
		s.Style.Category = a.Category
	}
	return s
}

func (a SetAlignment) apply(s State) State {
	if a.Alignment.Valid() {
		s.Style.Alignment = a.Alignment
	}
	return s
}

func (a SetPointSize) apply(s State) State {
	if pt, ok := style.ParsePointSize(a.Input); ok {
		s.Style.PointSize = pt
	}
	return s
}

func (a SetFont) apply(s State) State {
	s.Style.FontKey, _ = style.ParseFontKey(string(a.Key))
	return s
}

func (CycleCategory) apply(s State) State {
	s.Style.Category = s.Style.Category.Next()
	return s
}

func (CycleAlignment) apply(s State) State {
	s.Style.Alignment = s.Style.Alignment.Next()
	return s
}

func (CycleFont) apply(s State) State {
	s.Style.FontKey = s.Style.FontKey.Next()
	return s
}

func (Reset) apply(State) State {
	return Initial()
}

// Reduce returns the state after applying a. It has no side effects.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}
