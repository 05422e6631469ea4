// Package tui is an interactive terminal form with one text field per
// feature.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/crimson-sun/airq/internal/i18n"
	"github.com/crimson-sun/airq/internal/model"
	"github.com/crimson-sun/airq/internal/output/terminal"
	"github.com/crimson-sun/airq/internal/pipeline"
)

const cardWidth = 60

var (
	labelStyle   = lipgloss.NewStyle().Width(32)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

type resultMsg struct {
	result model.Result
	err    error
}

// Model is the bubbletea model for the form.
type Model struct {
	pipeline *pipeline.Pipeline
	printer  *message.Printer
	names    []string
	inputs   []textinput.Model
	focus    int
	intro    string
	result   *model.Result
	err      error
}

// New builds the form for p's registry, pre-filled with defaults. A nil
// printer means English.
func New(p *pipeline.Pipeline, printer *message.Printer) Model {
	if printer == nil {
		printer = i18n.English()
	}
	reg := p.Collector().Registry()
	m := Model{
		pipeline: p,
		printer:  printer,
		names:    reg.Names(),
		intro:    renderIntro(printer),
	}
	values := p.Collector().Initial()
	for i, name := range m.names {
		ti := textinput.New()
		ti.Prompt = "│ "
		ti.CharLimit = 32
		ti.Width = 20
		ti.SetValue(values[name])
		if i == 0 {
			ti.Focus()
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

func renderIntro(p *message.Printer) string {
	md := fmt.Sprintf("# %s\n\n%s\n\n%s\n",
		p.Sprintf("Air Quality Predictive Model"),
		p.Sprintf("This application predicts air quality from a set of environmental measurements."),
		p.Sprintf("Enter the value of each variable, then press the prediction button to get the result."))
	return terminal.Markdown(md, 80)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current text of every field, keyed by feature name.
func (m Model) Values() map[string]string {
	raw := make(map[string]string, len(m.inputs))
	for i, in := range m.inputs {
		raw[m.names[i]] = in.Value()
	}
	return raw
}

// Result returns the last prediction, if any.
func (m Model) Result() *model.Result {
	return m.result
}

func (m Model) predict() tea.Cmd {
	raw := m.Values()
	return func() tea.Msg {
		r, err := m.pipeline.Evaluate(raw)
		return resultMsg{result: r, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.focus - 1)
		case tea.KeyEnter:
			if m.focus == len(m.inputs)-1 {
				return m, m.predict()
			}
			return m, m.setFocus(m.focus + 1)
		case tea.KeyCtrlS:
			return m, m.predict()
		}
	case resultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.result = nil
		} else {
			r := msg.result
			m.result = &r
			m.err = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves focus to field i, wrapping at both ends.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.intro)
	for i, in := range m.inputs {
		label := labelStyle.Render(m.names[i])
		if i == m.focus {
			label = focusedStyle.Inherit(labelStyle).Render(m.names[i])
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.printer.Sprintf("Press Enter on the last field to predict, Tab to move, Esc to quit.")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.printer.Sprintf("Prediction failed. See the server log for details.")))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.result != nil {
		b.WriteString(terminal.Card(*m.result, m.printer, cardWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
