// cmd/crayfish debugtui.go
package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crayfish/internal/bytecode"
	"crayfish/internal/driver"
	"crayfish/internal/examples"
	"crayfish/internal/host"
	"crayfish/internal/vm"
)

// Grounded on wippyai-wasm-runtime/cmd/run/interactive.go's Elm-architecture
// model (Init/Update/View, a style set built with lipgloss, tea.Cmd
// driving one async step at a time) — but stepping a Driver run through
// vm.DebugHook instead of calling a wasm export.

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))

	flagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// tuiHook is a vm.DebugHook that blocks each step behind a channel so the
// bubbletea model can pace execution one instruction at a time.
type tuiHook struct {
	step chan struct{}
	out  chan stepEvent
	quit chan struct{}
}

type stepEvent struct {
	kind       string // "instruction", "call", "return", "error", "done"
	function   string
	depth      int
	op         string
	stackDepth int
	comparison string
	errText    string
}

func newTUIHook() *tuiHook {
	return &tuiHook{
		step: make(chan struct{}),
		out:  make(chan stepEvent, 1),
		quit: make(chan struct{}),
	}
}

func (h *tuiHook) OnInstruction(instr bytecode.Instruction, flags vm.Flags, stackDepth int) bool {
	select {
	case <-h.quit:
		return false
	case <-h.step:
	}
	h.out <- stepEvent{kind: "instruction", op: instr.Op.String(), stackDepth: stackDepth, comparison: comparisonLabel(flags)}
	return true
}

func (h *tuiHook) OnCall(name string, depth int) {
	h.out <- stepEvent{kind: "call", function: name, depth: depth}
}

func (h *tuiHook) OnReturn(name string, depth int) {
	h.out <- stepEvent{kind: "return", function: name, depth: depth}
}

func (h *tuiHook) OnError(err error) {
	h.out <- stepEvent{kind: "error", errText: err.Error()}
}

func comparisonLabel(flags vm.Flags) string {
	if !flags.HasComparison {
		return "none"
	}
	switch flags.Comparison {
	case bytecode.CompareEqual:
		return "equal"
	case bytecode.CompareNotEqual:
		return "not-equal"
	case bytecode.CompareLessThan:
		return "less"
	case bytecode.CompareLessThanOrEqual:
		return "less-or-equal"
	case bytecode.CompareGreaterThan:
		return "greater"
	case bytecode.CompareGreaterThanOrEqual:
		return "greater-or-equal"
	default:
		return "none"
	}
}

type debugModel struct {
	program examples.Program
	hook    *tuiHook
	refs    *host.Refs
	events  []stepEvent
	done    bool
	runErr  error
}

func newDebugModel(p examples.Program) *debugModel {
	return &debugModel{
		program: p,
		hook:    newTUIHook(),
		refs:    host.NewRefs(),
	}
}

// waitForEvent reads the next stepEvent off the hook's out channel.
func (m *debugModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.hook.out
		if !ok {
			return stepEvent{kind: "done"}
		}
		return ev
	}
}

// runDriver launches the driver in its own goroutine, pacing itself
// against m.hook.step, and reports the final error on m.hook.out.
func (m *debugModel) runDriver() tea.Cmd {
	return func() tea.Msg {
		go func() {
			mod := m.program.Build()
			d := driver.New(mod, nil)
			d.Hook = m.hook
			d.Core.Refs = m.refs
			err := d.Run(m.program.Entry)
			if err != nil {
				m.hook.out <- stepEvent{kind: "error", errText: err.Error()}
			}
			close(m.hook.out)
		}()
		return nil
	}
}

func (m *debugModel) Init() tea.Cmd {
	return tea.Batch(m.runDriver(), m.waitForEvent())
}

func (m *debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			close(m.hook.quit)
			m.done = true
			return m, tea.Quit
		case "n", " ", "enter":
			if m.done {
				return m, nil
			}
			// default: drops the keypress if the run hasn't reached its
			// next OnInstruction wait yet — harmless, just press again.
			select {
			case m.hook.step <- struct{}{}:
			default:
			}
			return m, m.waitForEvent()
		}
		return m, nil

	case stepEvent:
		if msg.kind == "done" {
			m.done = true
			return m, nil
		}
		m.events = append(m.events, msg)
		if msg.kind == "error" {
			m.runErr = fmt.Errorf("%s", msg.errText)
			m.done = true
		}
		return m, nil
	}
	return m, nil
}

func (m *debugModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("crayfish debug — %s", m.program.Name)))
	b.WriteString("\n\n")

	start := 0
	if len(m.events) > 12 {
		start = len(m.events) - 12
	}
	for _, ev := range m.events[start:] {
		switch ev.kind {
		case "instruction":
			b.WriteString(fmt.Sprintf("  %s  stack=%d  cmp=%s\n",
				opStyle.Render(ev.op), ev.stackDepth, flagStyle.Render(ev.comparison)))
		case "call":
			b.WriteString(fmt.Sprintf("  -> call %s (depth %d)\n", ev.function, ev.depth))
		case "return":
			b.WriteString(fmt.Sprintf("  <- return %s (depth %d)\n", ev.function, ev.depth))
		case "error":
			b.WriteString(errStyle.Render(fmt.Sprintf("  fault: %s\n", ev.errText)))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(helpStyle.Render("run finished — press q to exit"))
	} else {
		b.WriteString(helpStyle.Render("n/space/enter: step    q: quit"))
	}
	return b.String()
}
