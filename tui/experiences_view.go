// ABOUTME: Local experiences catalog view
// ABOUTME: Read-only browse and delete over the on-disk catalog
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

type experiencesLoadedMsg struct {
	experiences []models.Experience
	err         error
}

func (m Model) enterExperiencesView() (tea.Model, tea.Cmd) {
	m.viewMode = ViewExperiences
	m.expRow = 0
	m.err = nil
	m.status = ""
	if m.catalog == nil {
		return m, nil
	}
	return m, m.loadExperiencesCmd()
}

func (m Model) loadExperiencesCmd() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		experiences, err := catalog.Load()
		return experiencesLoadedMsg{experiences: experiences, err: err}
	}
}

func (m Model) removeExperienceCmd(id uuid.UUID) tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		if err := catalog.Remove(id); err != nil {
			return experiencesLoadedMsg{err: err}
		}
		experiences, err := catalog.Load()
		return experiencesLoadedMsg{experiences: experiences, err: err}
	}
}

func (m Model) handleExperiencesLoaded(msg experiencesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.experiences = msg.experiences
	if m.expRow >= len(m.experiences) {
		m.expRow = max(0, len(m.experiences)-1)
	}
	return m, nil
}

func (m Model) handleExperiencesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
	case "up", "k":
		if m.expRow > 0 {
			m.expRow--
		}
	case "down", "j":
		if m.expRow < len(m.experiences)-1 {
			m.expRow++
		}
	case "r":
		if m.catalog != nil {
			return m, m.loadExperiencesCmd()
		}
	case "d":
		if m.catalog != nil && m.expRow < len(m.experiences) {
			return m, m.removeExperienceCmd(m.experiences[m.expRow].ID)
		}
	}
	return m, nil
}

func (m Model) renderExperiencesView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("EXPERIENCES"))
	s.WriteString("\n\n")

	if m.catalog == nil {
		s.WriteString("Local catalog unavailable.\n")
		s.WriteString(helpStyle.Render("esc: back"))
		return s.String()
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	if len(m.experiences) == 0 {
		s.WriteString("No experiences saved.\n")
	} else {
		columns := []table.Column{
			{Title: "Title", Width: 28},
			{Title: "Date", Width: 12},
			{Title: "Image", Width: 6},
			{Title: "Notes", Width: 30},
		}
		var rows []table.Row
		for _, exp := range m.experiences {
			hasImage := "-"
			if len(exp.Image) > 0 {
				hasImage = "yes"
			}
			rows = append(rows, table.Row{exp.Title, shortDate(exp.Date), hasImage, exp.Notes})
		}
		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(true),
			table.WithHeight(min(len(rows)+1, m.height-8)),
		)
		if m.expRow < len(rows) {
			t.SetCursor(m.expRow)
		}
		s.WriteString(t.View())
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑↓: navigate • d: delete • r: reload • esc: back • q: quit"))
	return s.String()
}
