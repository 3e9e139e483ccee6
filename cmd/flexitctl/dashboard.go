// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flexit/flexit-bacnet/device"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live terminal dashboard for one unit",
	RunE:  runDashboard,
}

var (
	dashboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dashboardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dashboardErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type dashboardTickMsg time.Time

type dashboardModel struct {
	device *device.FlexitDevice
	rows   []statusRow
	err    error
}

func newDashboardModel(d *device.FlexitDevice) dashboardModel {
	return dashboardModel{device: d}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.poll(), dashboardTick())
}

func dashboardTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return dashboardTickMsg(t) })
}

func (m dashboardModel) poll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
		defer cancel()
		if err := m.device.Update(ctx); err != nil {
			return dashboardErrMsg{err}
		}
		return dashboardRowsMsg(statusRows(m.device))
	}
}

type dashboardRowsMsg []statusRow
type dashboardErrMsg struct{ err error }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case dashboardTickMsg:
		return m, tea.Batch(m.poll(), dashboardTick())
	case dashboardRowsMsg:
		m.rows = msg
		m.err = nil
	case dashboardErrMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", dashboardTitleStyle.Render(fmt.Sprintf("flexitctl dashboard — %s (device %d)", host, deviceID)))

	if m.err != nil {
		fmt.Fprintln(&b, dashboardErrorStyle.Render(fmt.Sprintf("update failed: %v", m.err)))
	}
	for _, r := range m.rows {
		if r.err != nil {
			fmt.Fprintf(&b, "%s %s\n", dashboardLabelStyle.Render(r.name+":"), dashboardErrorStyle.Render("n/a"))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", dashboardLabelStyle.Render(r.name+":"), r.value)
	}
	fmt.Fprintln(&b, "\npress q to quit")
	return b.String()
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}
	d := newDevice()
	p := tea.NewProgram(newDashboardModel(d))
	_, err := p.Run()
	return err
}
