package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodnews/pkg/app"
	"github.com/matzehuels/goodnews/pkg/config"
	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/export"
	"github.com/matzehuels/goodnews/pkg/notify"
	"github.com/matzehuels/goodnews/pkg/pipeline"
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// Composer styles
var (
	composeLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	composeFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	composeBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	composeInfoStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	composeErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	composeHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	composeCursorStyle = lipgloss.NewStyle().Reverse(true)
)

const (
	defaultPreviewWidth = 48
	maxPreviewWidth     = 72
)

type composeFocus int

const (
	focusText composeFocus = iota
	focusSize
)

// composeModel is the bubbletea model of the composer. All state changes
// go through app.Reduce; exports run as commands.
type composeModel struct {
	ctx      context.Context
	state    app.State
	cfg      config.Config
	surface  *pipeline.Surface
	exporter *export.Exporter
	notes    *notify.Center
	changed  <-chan struct{}
	logger   *log.Logger

	focus     composeFocus
	sizeInput string
	overflow  bool
	width     int
}

func newComposeModel(ctx context.Context, initial app.State, cfg config.Config, s *pipeline.Surface,
	e *export.Exporter, n *notify.Center, changed <-chan struct{},
) composeModel {
	s.Update(initial)
	logger := e.Logger
	if logger == nil {
		logger = newLogger(io.Discard, log.InfoLevel)
	}
	return composeModel{
		logger:   logger,
		ctx:      ctx,
		state:    initial,
		cfg:      cfg,
		surface:  s,
		exporter: e,
		notes:    n,
		changed:  changed,
		width:    defaultPreviewWidth + 4,
	}
}

func (m composeModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForNotes(m.changed)}
	for _, cat := range style.Categories {
		cmds = append(cmds, loadTemplateCmd(cat, m.cfg.TemplatePath(cat)))
	}
	return tea.Batch(cmds...)
}

func (m composeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case templateLoadedMsg:
		if msg.err != nil {
			m.logger.Error("template failed to load", "category", msg.category, "err", msg.err)
			m.notes.Error(errors.UserMessage(msg.err))
			return m, nil
		}
		m.surface.Mount(msg.category, msg.image)
		m.overflow = m.overflows()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, errors.ErrCodeCaptureNotReady) {
			m.logger.Debug("export finished with error", "action", msg.action, "err", msg.err)
		}
		return m, nil

	case notesChangedMsg:
		return m, waitForNotes(m.changed)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m composeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.focus == focusSize {
			m.focus = focusText
			return m, nil
		}
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusSize {
			m = m.dispatch(app.SetPointSize{Input: m.sizeInput})
			m.focus = focusText
		} else {
			m.sizeInput = formatSize(m.state.Style.PointSize)
			m.focus = focusSize
		}
		return m, nil
	case "ctrl+t":
		return m.dispatch(app.CycleCategory{}), nil
	case "ctrl+l":
		return m.dispatch(app.CycleAlignment{}), nil
	case "ctrl+f":
		return m.dispatch(app.CycleFont{}), nil
	case "ctrl+r":
		m = m.dispatch(app.Reset{})
		m.focus = focusText
		return m, nil
	case "ctrl+x":
		m.notes.DismissNewest()
		return m, nil
	case "ctrl+s":
		return m, m.exportCmd("download", func(ctx context.Context) error {
			_, err := m.exporter.Download(ctx)
			return err
		})
	case "ctrl+y":
		return m, m.exportCmd("copy", m.exporter.Copy)
	}

	if m.focus == focusSize {
		return m.editSize(msg), nil
	}
	return m.editText(msg), nil
}

// dispatch applies an action and publishes the new state to the surface.
func (m composeModel) dispatch(a app.Action) composeModel {
	m.state = app.Reduce(m.state, a)
	m.surface.Update(m.state)
	m.overflow = m.overflows()
	m.logger.Debug("state changed", "style", m)
	return m
}

// overflows lays out the current state against the mounted template. It is
// false until the template is loaded.
func (m composeModel) overflows() bool {
	result, err := m.surface.Layout(m.ctx)
	if err != nil {
		return false
	}
	return result.Placement.Overflows()
}

func (m composeModel) exportCmd(action string, run func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return exportDoneMsg{action: action, err: run(ctx)}
	}
}

func (m composeModel) editText(msg tea.KeyMsg) composeModel {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		return m.dispatch(app.SetText{Text: m.state.Text + text.NormalizeNewlines(string(msg.Runes))})
	case tea.KeyEnter:
		return m.dispatch(app.SetText{Text: m.state.Text + "\n"})
	case tea.KeyBackspace:
		return m.dispatch(app.SetText{Text: dropLastGrapheme(m.state.Text)})
	}
	return m
}

func (m composeModel) editSize(msg tea.KeyMsg) composeModel {
	switch msg.Type {
	case tea.KeyRunes:
		m.sizeInput += string(msg.Runes)
	case tea.KeyBackspace:
		if n := len(m.sizeInput); n > 0 {
			m.sizeInput = m.sizeInput[:n-1]
		}
	case tea.KeyEnter:
		m = m.dispatch(app.SetPointSize{Input: m.sizeInput})
		m.sizeInput = formatSize(m.state.Style.PointSize)
		m.focus = focusText
	}
	return m
}

// dropLastGrapheme removes the last visual character, so a combining
// sequence or an emoji is deleted in one keystroke.
func dropLastGrapheme(s string) string {
	if s == "" {
		return s
	}
	doc := text.SplitLines(s)
	last := doc[len(doc)-1]
	if last == "" {
		return s[:len(s)-1]
	}
	g := text.Graphemes(last)
	return s[:len(s)-len(g[len(g)-1])]
}

func formatSize(pt float64) string {
	return strconv.FormatFloat(pt, 'f', -1, 64)
}

// =============================================================================
// View
// =============================================================================

func (m composeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("goodnews compose"))
	b.WriteString("\n\n")
	b.WriteString(m.settingsView())
	b.WriteString("\n")
	b.WriteString(m.previewView())
	b.WriteString("\n")
	if notes := m.notesView(); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n")
	}
	b.WriteString(composeHelpStyle.Render("type to edit · tab size · ^t template · ^l align · ^f font · ^r reset"))
	b.WriteString("\n")
	b.WriteString(composeHelpStyle.Render("^s save · ^y copy · ^x close note · esc quit"))
	return b.String()
}

func (m composeModel) settingsView() string {
	st := m.state.Style
	template := string(st.Category)
	if !m.surface.Mounted() {
		template += StyleDim.Render(" (loading)")
	}

	size := formatSize(st.PointSize) + "pt"
	sizeLabel := composeLabelStyle.Render("size")
	if m.focus == focusSize {
		size = composeFocusStyle.Render(m.sizeInput) + composeCursorStyle.Render(" ")
		sizeLabel = composeFocusStyle.Width(10).Render("size")
	}

	rows := []string{
		composeLabelStyle.Render("template") + " " + StyleValue.Render(template),
		composeLabelStyle.Render("align") + " " + StyleValue.Render(string(st.Alignment)),
		composeLabelStyle.Render("font") + " " + StyleValue.Render(style.FontLabels[st.FontKey]),
		sizeLabel + " " + StyleValue.Render(size),
	}
	if m.overflow {
		rows = append(rows, StyleWarning.Render(iconWarning+" text is taller than the template and will be clipped"))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m composeModel) previewView() string {
	width := m.width - 4
	if width > maxPreviewWidth {
		width = maxPreviewWidth
	}
	if width < 8 {
		width = 8
	}

	res := m.state.Resolved()
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(res.Color)).Bold(true)
	lines := previewLines(m.state.Document(), res.TextAlign, width)
	for i, l := range lines {
		lines[i] = textStyle.Render(l)
	}
	if m.focus == focusText {
		lines[len(lines)-1] += composeCursorStyle.Render(" ")
	}
	return composeBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m composeModel) notesView() string {
	list := m.notes.List()
	if len(list) == 0 {
		return ""
	}
	var rows []string
	for _, n := range list {
		if n.Severity == notify.SeverityError {
			rows = append(rows, composeErrorStyle.Render(iconError+" "+n.Message))
		} else {
			rows = append(rows, composeInfoStyle.Render(iconSuccess+" "+n.Message))
		}
	}
	return strings.Join(rows, "\n") + "\n"
}

// String summarises the style for log lines.
func (m composeModel) String() string {
	st := m.state.Style
	return fmt.Sprintf("%s/%s/%s/%g", st.Category, st.Alignment, st.FontKey, st.PointSize)
}
