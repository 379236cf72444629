package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dailymotion/tessera-gen/internal/errors"
)

// DashboardInfo describes a dashboard in the picker.
type DashboardInfo struct {
	ID       string
	Title    string
	Category string
	Tags     []string
}

// dashboardItem implements list.Item for the Bubbles list component.
type dashboardItem struct {
	dash DashboardInfo
}

func (i dashboardItem) Title() string {
	return i.dash.Title
}

func (i dashboardItem) Description() string {
	parts := []string{"#" + i.dash.ID}
	if i.dash.Category != "" {
		parts = append(parts, i.dash.Category)
	}
	if len(i.dash.Tags) > 0 {
		parts = append(parts, "["+strings.Join(i.dash.Tags, ", ")+"]")
	}
	return strings.Join(parts, " | ")
}

func (i dashboardItem) FilterValue() string {
	values := []string{i.dash.Title, i.dash.ID, i.dash.Category}
	values = append(values, i.dash.Tags...)
	return strings.Join(values, " ")
}

// DashboardPickerModel is a Bubble Tea model for choosing the dashboard
// to replace.
type DashboardPickerModel struct {
	list     list.Model
	selected *DashboardInfo
	quitting bool
}

type pickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var pickerKeys = pickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// NewDashboardPickerModel creates a picker over dashboards.
func NewDashboardPickerModel(dashboards []DashboardInfo) DashboardPickerModel {
	items := make([]list.Item, len(dashboards))
	for i, d := range dashboards {
		items[i] = dashboardItem{dash: d}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorAccent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted).
		BorderForeground(ColorAccent)

	l := list.New(items, delegate, 80, 20)
	l.Title = "Select the dashboard to replace"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Styles.HelpStyle = MutedStyle()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{pickerKeys.Enter}
	}

	return DashboardPickerModel{list: l}
}

// Init implements tea.Model.
func (m DashboardPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While filtering, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(dashboardItem); ok {
				m.selected = &item.dash
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m DashboardPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the chosen dashboard, or nil if cancelled.
func (m DashboardPickerModel) Selected() *DashboardInfo {
	return m.selected
}

// PickDashboard shows the picker on the terminal. It returns nil if the
// user cancels.
func PickDashboard(dashboards []DashboardInfo) (*DashboardInfo, error) {
	return PickDashboardWithIO(dashboards, os.Stderr, os.Stdin)
}

// PickDashboardWithIO shows the picker using custom I/O.
func PickDashboardWithIO(dashboards []DashboardInfo, output io.Writer, input io.Reader) (*DashboardInfo, error) {
	if len(dashboards) == 0 {
		return nil, errors.New(errors.ErrInput,
			"No dashboards to pick from",
			"Create one first with 'tessera-gen push --create'")
	}

	p := tea.NewProgram(
		NewDashboardPickerModel(dashboards),
		tea.WithOutput(output),
		tea.WithInput(input),
	)

	final, err := p.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInput,
			"Dashboard picker failed",
			"Pass the dashboard with --dashboard-id instead")
	}
	if m, ok := final.(DashboardPickerModel); ok {
		return m.Selected(), nil
	}
	return nil, fmt.Errorf("unexpected picker model %T", final)
}
