package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cellscript/cellscript/cells"
	"github.com/cellscript/cellscript/sheet"
)

const (
	gridColWidth      = 12
	gridRowLabelWidth = 5
	// title, formula bar, column headers, status, footer.
	gridChromeLines = 5
)

var (
	gridAccentColor = lipgloss.Color("#3B82F6")
	gridErrorColor  = lipgloss.Color("#EF4444")
	gridMutedColor  = lipgloss.Color("#6B7280")
	gridKeyColor    = lipgloss.Color("#F59E0B")

	gridTitleStyle = lipgloss.NewStyle().
			Foreground(gridAccentColor).
			Bold(true)

	gridRefStyle = lipgloss.NewStyle().
			Foreground(gridAccentColor).
			Bold(true)

	gridLabelStyle = lipgloss.NewStyle().
			Foreground(gridMutedColor)

	gridCursorStyle = lipgloss.NewStyle().
			Reverse(true)

	gridErrCellStyle = lipgloss.NewStyle().
				Foreground(gridErrorColor)

	gridMutedStyle = lipgloss.NewStyle().
			Foreground(gridMutedColor)

	gridKeyStyle = lipgloss.NewStyle().
			Foreground(gridKeyColor)
)

type gridKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Edit      key.Binding
	Clear     key.Binding
	Save      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Cancel    key.Binding
}

var gridKeys = gridKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Clear: key.NewBinding(
		key.WithKeys("backspace", "delete"),
		key.WithHelp("del", "clear"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

type gridModel struct {
	path   string
	sheet  *sheet.Sheet
	engine *cells.Engine

	col    int
	row    int
	topRow int
	left   int

	editor  textinput.Model
	editing bool

	status    string
	statusErr bool

	width       int
	height      int
	dirty       bool
	quitting    bool
	initialized bool
}

func newGridCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grid [sheet]",
		Short: "Edit a sheet in a full-screen grid",
		Long: `Open a full-screen spreadsheet view. Move with the arrow keys or
hjkl; enter edits the current cell and typing starts a fresh entry.
Edits re-evaluate the visible cells immediately. With a sheet file
argument, ctrl+s writes the sheet back in the file's own format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runGrid(path)
		},
	}
}

func runGrid(path string) error {
	m, err := newGridModel(path)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newGridModel loads the sheet at path; a missing file starts empty
// and is created on the first save. No path means a scratch sheet.
func newGridModel(path string) (gridModel, error) {
	s := sheet.New()
	if path != "" {
		loaded, err := sheet.Load(path)
		switch {
		case err == nil:
			s = loaded
		case errors.Is(err, fs.ErrNotExist):
		default:
			return gridModel{}, err
		}
	}
	return gridModelFor(path, s), nil
}

func gridModelFor(path string, s *sheet.Sheet) gridModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""

	return gridModel{
		path:   path,
		sheet:  s,
		engine: cells.MustNewEngine(cells.Config{Grid: s}),
		editor: ti,
	}
}

func (m gridModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.Width = msg.Width - gridRowLabelWidth - 4
		m.initialized = true
		m = m.scrollCursorIntoView()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m gridModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusErr = false

	switch {
	case key.Matches(msg, gridKeys.Quit), key.Matches(msg, gridKeys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, gridKeys.Save):
		return m.save(), nil

	case key.Matches(msg, gridKeys.Up):
		if m.row > 0 {
			m.row--
		}
		return m.scrollCursorIntoView(), nil

	case key.Matches(msg, gridKeys.Down):
		m.row++
		return m.scrollCursorIntoView(), nil

	case key.Matches(msg, gridKeys.Left):
		if m.col > 0 {
			m.col--
		}
		return m.scrollCursorIntoView(), nil

	case key.Matches(msg, gridKeys.Right):
		m.col++
		return m.scrollCursorIntoView(), nil

	case key.Matches(msg, gridKeys.Edit):
		return m.startEdit(m.sheet.RawContent(m.cursorAddr())), textinput.Blink

	case key.Matches(msg, gridKeys.Clear):
		m.sheet.SetAddr(m.cursorAddr(), "")
		m.engine.InvalidateCache()
		m.dirty = true
		return m, nil
	}

	// Any other printable key starts a fresh entry, the way grid
	// editors behave: "=" begins a formula, a digit a number.
	if msg.Type == tea.KeyRunes {
		return m.startEdit(string(msg.Runes)), textinput.Blink
	}

	return m, nil
}

func (m gridModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, gridKeys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, gridKeys.Edit):
		return m.commitEdit(), nil

	case key.Matches(msg, gridKeys.Cancel):
		m.editor.Blur()
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m gridModel) startEdit(seed string) gridModel {
	m.editor.SetValue(seed)
	m.editor.CursorEnd()
	m.editor.Focus()
	m.editing = true
	m.status = ""
	m.statusErr = false
	return m
}

func (m gridModel) commitEdit() gridModel {
	m.sheet.SetAddr(m.cursorAddr(), strings.TrimSpace(m.editor.Value()))
	m.engine.InvalidateCache()
	m.editor.Blur()
	m.editing = false
	m.dirty = true
	return m
}

func (m gridModel) save() gridModel {
	if m.path == "" {
		m.status = "no sheet file; start as `cells grid <file>` to save"
		m.statusErr = true
		return m
	}
	if err := m.sheet.Save(m.path); err != nil {
		m.status = err.Error()
		m.statusErr = true
		return m
	}
	m.dirty = false
	m.status = "saved " + m.path
	return m
}

func (m gridModel) cursorAddr() cells.Address {
	return cells.Address{Col: m.col, Row: m.row}
}

// viewport reports how many rows and columns of cells fit the window.
func (m gridModel) viewport() (rows, cols int) {
	rows = m.height - gridChromeLines
	if rows < 1 {
		rows = 1
	}
	cols = (m.width - gridRowLabelWidth) / gridColWidth
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

func (m gridModel) scrollCursorIntoView() gridModel {
	rows, cols := m.viewport()
	if m.row < m.topRow {
		m.topRow = m.row
	}
	if m.row >= m.topRow+rows {
		m.topRow = m.row - rows + 1
	}
	if m.col < m.left {
		m.left = m.col
	}
	if m.col >= m.left+cols {
		m.left = m.col - cols + 1
	}
	return m
}

func (m gridModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := m.path
	if title == "" {
		title = "scratch sheet"
	}
	if m.dirty {
		title += " *"
	}
	b.WriteString(gridTitleStyle.Render("cells") + " " + gridMutedStyle.Render(title) + "\n")

	ref := gridRefStyle.Render(fmt.Sprintf("%-*s", gridRowLabelWidth, m.cursorAddr()))
	if m.editing {
		b.WriteString(ref + m.editor.View() + "\n")
	} else {
		b.WriteString(ref + m.sheet.RawContent(m.cursorAddr()) + "\n")
	}

	rows, cols := m.viewport()

	b.WriteString(strings.Repeat(" ", gridRowLabelWidth))
	for c := m.left; c < m.left+cols; c++ {
		b.WriteString(gridLabelStyle.Render(gridCell(cells.ColumnName(c))))
	}
	b.WriteString("\n")

	for r := m.topRow; r < m.topRow+rows; r++ {
		b.WriteString(gridLabelStyle.Render(fmt.Sprintf("%*d ", gridRowLabelWidth-1, r+1)))
		for c := m.left; c < m.left+cols; c++ {
			value := m.engine.Evaluate(cells.Address{Col: c, Row: r})
			text := gridCell(value.Display())
			switch {
			case r == m.row && c == m.col:
				b.WriteString(gridCursorStyle.Render(text))
			case value.IsError():
				b.WriteString(gridErrCellStyle.Render(text))
			default:
				b.WriteString(text)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m gridModel) statusLine() string {
	if m.status != "" {
		if m.statusErr {
			return gridErrCellStyle.Render(m.status)
		}
		return gridKeyStyle.Render(m.status)
	}
	addr := m.cursorAddr()
	return gridMutedStyle.Render(fmt.Sprintf("%s = %s", addr, m.engine.Evaluate(addr).Display()))
}

func (m gridModel) footer() string {
	if m.editing {
		return gridKeyStyle.Render("enter") + gridMutedStyle.Render(" commit  ") +
			gridKeyStyle.Render("esc") + gridMutedStyle.Render(" cancel")
	}
	return gridKeyStyle.Render("↑↓←→/hjkl") + gridMutedStyle.Render(" move  ") +
		gridKeyStyle.Render("enter") + gridMutedStyle.Render(" edit  ") +
		gridKeyStyle.Render("del") + gridMutedStyle.Render(" clear  ") +
		gridKeyStyle.Render("ctrl+s") + gridMutedStyle.Render(" save  ") +
		gridKeyStyle.Render("q") + gridMutedStyle.Render(" quit")
}

// gridCell truncates and pads text to the fixed column width.
func gridCell(text string) string {
	runes := []rune(text)
	if len(runes) > gridColWidth-1 {
		runes = append(runes[:gridColWidth-2], '…')
	}
	return fmt.Sprintf("%-*s", gridColWidth, string(runes))
}
