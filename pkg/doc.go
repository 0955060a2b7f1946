// Package pkg provides the core libraries for goodnews caption rendering.
//
// # Overview
//
// Goodnews lays multi-line text over a "good news" or "bad news" template
// and exports the composition as a PNG. The pkg directory is organized into
// three main areas:
//
//  1. Domain logic ([style], [text], [layout], [app])
//  2. Rendering ([fonts], [render], [pipeline])
//  3. Output ([export], [notify])
//
// # Architecture
//
// The typical data flow:
//
//	text + style.Config
//	         ↓
//	    [style] package (resolve font stack, colour, pixel size)
//	         ↓
//	    [layout] package (render lines, place units in the safe area)
//	         ↓
//	    [render] package (draw onto the template)
//	         ↓
//	    [export] package (good-news.png or clipboard)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/goodnews/pkg/fonts"
//	    "github.com/matzehuels/goodnews/pkg/pipeline"
//	    "github.com/matzehuels/goodnews/pkg/render"
//	    "github.com/matzehuels/goodnews/pkg/style"
//	)
//
//	runner := pipeline.NewRunner(fonts.NewRegistry(), nil)
//	defer runner.Close()
//
//	st := style.Default()
//	tmpl, _ := render.LoadTemplate(st.Category, "")
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Text:     "Hello\n\nWorld",
//	    Style:    st,
//	    Template: tmpl,
//	})
//
// # Main Packages
//
// [style] - Style keys, font stacks, category colours and the pure
// resolution from a style configuration to concrete attributes.
//
// [layout] - Line rendering modes (flow, distributed, spacer) and placement
// of units inside the text-safe area.
//
// [fonts] - Font registry resolving stacks to system files with embedded
// fallbacks.
//
// [pipeline] - Layout followed by compositing, plus the capture surface used
// by the interactive composer.
//
// [export] - Capture, PNG encoding, file and clipboard sinks.
//
// [notify] - Transient notifications with auto-dismiss timers.
//
// [style]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/style
// [text]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/text
// [layout]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/layout
// [app]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/app
// [fonts]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/pipeline
// [export]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/export
// [notify]: https://pkg.go.dev/github.com/matzehuels/goodnews/pkg/notify
package pkg
