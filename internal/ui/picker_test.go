package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDashboards = []DashboardInfo{
	{ID: "3", Title: "Web frontends", Category: "Ops", Tags: []string{"web", "prod"}},
	{ID: "9", Title: "Databases"},
}

func TestDashboardItem(t *testing.T) {
	item := dashboardItem{dash: testDashboards[0]}

	assert.Equal(t, "Web frontends", item.Title())
	assert.Equal(t, "#3 | Ops | [web, prod]", item.Description())

	filter := item.FilterValue()
	for _, want := range []string{"Web frontends", "3", "Ops", "web", "prod"} {
		assert.Contains(t, filter, want)
	}

	bare := dashboardItem{dash: testDashboards[1]}
	assert.Equal(t, "#9", bare.Description())
}

func TestDashboardPickerSelect(t *testing.T) {
	m := NewDashboardPickerModel(testDashboards)
	assert.NotEmpty(t, m.View())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(DashboardPickerModel)
	_ = cmd

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(DashboardPickerModel)
	require.NotNil(t, cmd)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "9", m.Selected().ID)
	assert.Empty(t, m.View())
}

func TestDashboardPickerCancel(t *testing.T) {
	m := NewDashboardPickerModel(testDashboards)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(DashboardPickerModel)
	require.NotNil(t, cmd)
	assert.Nil(t, m.Selected())
}

func TestPickDashboardEmpty(t *testing.T) {
	_, err := PickDashboardWithIO(nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))
}
