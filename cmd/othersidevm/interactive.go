package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/glslstd"
	"github.com/syoyo/otherside/vm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	pcStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// stepRecord is one dispatched instruction in the collected trace.
type stepRecord struct {
	fn   string
	pc   int
	text string
}

type debugModel struct {
	steps    []stepRecord
	result   string
	runErr   error
	view     viewport.Model
	selected int
	ready    bool
}

// runInteractive executes the program while collecting an instruction
// trace, then opens a browser over the executed steps.
func runInteractive(prog *bytecode.Program, bind func(m *vm.VM) error) error {
	var steps []stepRecord

	m := vm.New(prog,
		vm.WithProvider(glslstd.Provider{}),
		vm.WithTrace(func(fn *bytecode.Function, pc int, in bytecode.Instr) {
			name, ok := prog.Names[fn.Result]
			if !ok {
				name = fmt.Sprintf("%%%d", fn.Result)
			}
			steps = append(steps, stepRecord{fn: name, pc: pc, text: in.String()})
		}))

	if err := m.Setup(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := bind(m); err != nil {
		return fmt.Errorf("bind inputs: %w", err)
	}
	runErr := m.Run()

	result := "gl_FragColor was never written"
	if out, ok := m.ReadVariableName("gl_FragColor"); ok {
		result = fmt.Sprintf("gl_FragColor = %v", vm.F32Slice(out))
	}

	model := &debugModel{steps: steps, result: result, runErr: runErr}
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func (m *debugModel) Init() tea.Cmd {
	return nil
}

func (m *debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 3
		m.view = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.view.Height)
		case "pgdown":
			m.move(m.view.Height)
		case "g", "home":
			m.selected = 0
			m.refresh()
		case "G", "end":
			m.selected = len(m.steps) - 1
			m.refresh()
		}
	}
	return m, nil
}

func (m *debugModel) move(delta int) {
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.steps) {
		m.selected = len(m.steps) - 1
	}
	m.refresh()
}

func (m *debugModel) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, s := range m.steps {
		line := fmt.Sprintf("%s %s %s",
			fnStyle.Render(fmt.Sprintf("%-8s", s.fn)),
			pcStyle.Render(fmt.Sprintf("%4d", s.pc)),
			s.text)
		if i == m.selected {
			line = selectedStyle.Render(fmt.Sprintf("%-8s %4d %s", s.fn, s.pc, s.text))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	m.view.SetContent(b.String())

	// Keep the selection in view.
	if m.selected < m.view.YOffset {
		m.view.SetYOffset(m.selected)
	}
	if m.selected >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.selected - m.view.Height + 1)
	}
}

func (m *debugModel) View() string {
	if !m.ready {
		return "loading trace..."
	}

	title := titleStyle.Render(fmt.Sprintf("otherside step debugger: %d instructions", len(m.steps)))
	status := resultStyle.Render(m.result)
	if m.runErr != nil {
		status = errorStyle.Render(fmt.Sprintf("run failed: %v", m.runErr))
	}
	help := helpStyle.Render("up/down: step  pgup/pgdown: page  g/G: first/last  q: quit")

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", title, m.view.View(), status, help)
}
