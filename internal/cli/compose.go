package cli

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodnews/pkg/app"
	"github.com/matzehuels/goodnews/pkg/config"
	"github.com/matzehuels/goodnews/pkg/export"
	"github.com/matzehuels/goodnews/pkg/notify"
	"github.com/matzehuels/goodnews/pkg/pipeline"
	"github.com/matzehuels/goodnews/pkg/render"
	"github.com/matzehuels/goodnews/pkg/style"
)

// composeLogFile receives composer logs when --verbose is set, since the
// terminal is owned by the UI.
const composeLogFile = "goodnews-compose.log"

// composeCommand creates the interactive composer.
func (c *CLI) composeCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a caption interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Export.OutputDir = outputDir
			}
			return c.runCompose(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for "+export.FileName)
	return cmd
}

func (c *CLI) runCompose(ctx context.Context, cfg config.Config) error {
	logger, closeLog, logPath, err := c.composeLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	runner := c.newRunner(cfg)
	runner.Logger = logger
	defer runner.Close()

	changed := make(chan struct{}, 1)
	notes := notify.NewCenter(
		notify.WithDuration(cfg.ToastDuration()),
		notify.WithOnChange(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	defer notes.Close()

	surface := pipeline.NewSurface(runner, cfg.LayoutFrame(0, 0))
	exporter := &export.Exporter{
		Capturer:  surface,
		Clipboard: &export.SystemClipboard{},
		Notifier:  notes,
		Dir:       cfg.Export.OutputDir,
		Logger:    logger,
	}

	initial := app.State{Style: cfg.Style(), Text: cfg.Defaults.Text}
	m := newComposeModel(ctx, initial, cfg, surface, exporter, notes, changed)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if logPath != "" {
		printDetail("Log written to %s", logPath)
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// composeLogger returns a file logger when debug logging is on and a
// discarding logger otherwise.
func (c *CLI) composeLogger() (*log.Logger, func(), string, error) {
	if c.Logger.GetLevel() > log.DebugLevel {
		return newLogger(io.Discard, log.InfoLevel), func() {}, "", nil
	}
	path := filepath.Join(os.TempDir(), composeLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, "", err
	}
	return newLogger(f, log.DebugLevel), func() { f.Close() }, path, nil
}

// =============================================================================
// Messages
// =============================================================================

type templateLoadedMsg struct {
	category style.Category
	image    image.Image
	err      error
}

type exportDoneMsg struct {
	action string
	err    error
}

type notesChangedMsg struct{}

// loadTemplateCmd reads a template off the UI goroutine.
func loadTemplateCmd(cat style.Category, path string) tea.Cmd {
	return func() tea.Msg {
		img, err := render.LoadTemplate(cat, path)
		return templateLoadedMsg{category: cat, image: img, err: err}
	}
}

// waitForNotes blocks until the notification list changes.
func waitForNotes(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return notesChangedMsg{}
	}
}
