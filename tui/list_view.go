// ABOUTME: List tab rendering and key handling
// ABOUTME: Tabs, filtered tables, sort keys, paging, and status actions
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TABLEVINE CONSOLE"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n")

	s.WriteString(m.renderListStatus())
	s.WriteString("\n")

	if m.filtering {
		s.WriteString(inputStyle.Render("Filter: ") + m.filterInput.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("enter: apply • esc: cancel"))
		return s.String()
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i := EntityType(0); i < entityCount; i++ {
		if i == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(entities[i].name))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(entities[i].name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderListStatus() string {
	ctrl := m.current()

	var parts []string
	parts = append(parts, fmt.Sprintf("Page %d/%d (%d records)", ctrl.Page(), ctrl.PageCount(), ctrl.FilteredCount()))
	if field, dir, ok := ctrl.Sort(); ok {
		arrow := "↑"
		if dir == controller.Descending {
			arrow = "↓"
		}
		parts = append(parts, fmt.Sprintf("Sort: %s%s", field, arrow))
	}
	meta := m.meta()
	if meta.statusKey != "" {
		if v := ctrl.Filter(meta.statusKey); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", meta.statusKey, v))
		}
	}
	if v := ctrl.Filter(meta.filterKey); v != "" {
		parts = append(parts, fmt.Sprintf("%s=%q", meta.filterKey, v))
	}
	if ctrl.Loading() {
		parts = append(parts, m.spin.View()+"loading")
	}

	line := statusStyle.Render(strings.Join(parts, "  •  "))
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	if m.err != nil {
		line += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return line
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"[/]: Page",
		"1-3: Sort",
		"/: Filter",
		"f: Cycle " + m.meta().statusKey,
		"r: Refresh",
	}
	switch m.entityType {
	case EntityReservations:
		help = append(help, "c: Confirm", "x: Cancel")
	case EntityRequests:
		help = append(help, "a: Approve", "x: Reject")
	default:
		help = append(help, "d: Delete")
	}
	help = append(help, "m: Messages", "e: Experiences", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityPartners:
		return m.buildTable(
			[]table.Column{{Title: "Name", Width: 24}, {Title: "City", Width: 14}, {Title: "Cuisine", Width: 12}, {Title: "Status", Width: 10}},
			partnerRows(m.partners.VisibleItems()))
	case EntityTours:
		return m.buildTable(
			[]table.Column{{Title: "Title", Width: 28}, {Title: "Date", Width: 12}, {Title: "Price", Width: 10}, {Title: "Status", Width: 10}},
			tourRows(m.tours.VisibleItems()))
	case EntityEvents:
		return m.buildTable(
			[]table.Column{{Title: "Title", Width: 28}, {Title: "Venue", Width: 18}, {Title: "Starts", Width: 12}, {Title: "Status", Width: 10}},
			eventRows(m.events.VisibleItems()))
	case EntityReservations:
		return m.buildTable(
			[]table.Column{{Title: "Guest", Width: 22}, {Title: "Party", Width: 6}, {Title: "Date", Width: 12}, {Title: "Status", Width: 10}},
			reservationRows(m.reservations.VisibleItems()))
	case EntityRequests:
		return m.buildTable(
			[]table.Column{{Title: "Subject", Width: 34}, {Title: "Created", Width: 12}, {Title: "Status", Width: 10}},
			requestRows(m.requests.VisibleItems()))
	case EntityFeedback:
		return m.buildTable(
			[]table.Column{{Title: "Author", Width: 18}, {Title: "Rating", Width: 7}, {Title: "Comment", Width: 34}},
			feedbackRows(m.feedback.VisibleItems()))
	}
	return ""
}

func (m Model) buildTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(controller.DefaultPageSize+1),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func partnerRows(items []models.Partner) []table.Row {
	var rows []table.Row
	for _, p := range items {
		rows = append(rows, table.Row{p.Name, p.City, p.Cuisine, p.Status})
	}
	return rows
}

func tourRows(items []models.Tour) []table.Row {
	var rows []table.Row
	for _, t := range items {
		price := fmt.Sprintf("%.2f %s", float64(t.Price)/100, t.Currency)
		rows = append(rows, table.Row{t.Title, shortDate(t.Date), price, t.Status})
	}
	return rows
}

func eventRows(items []models.Event) []table.Row {
	var rows []table.Row
	for _, e := range items {
		rows = append(rows, table.Row{e.Title, e.Venue, shortDate(e.StartsAt), e.Status})
	}
	return rows
}

func reservationRows(items []models.Reservation) []table.Row {
	var rows []table.Row
	for _, r := range items {
		rows = append(rows, table.Row{r.GuestName, strconv.Itoa(r.PartySize), shortDate(r.Date), r.Status})
	}
	return rows
}

func requestRows(items []models.Request) []table.Row {
	var rows []table.Row
	for _, r := range items {
		rows = append(rows, table.Row{r.Subject, shortDate(r.CreatedAt), r.Status})
	}
	return rows
}

func feedbackRows(items []models.Feedback) []table.Row {
	var rows []table.Row
	for _, f := range items {
		rows = append(rows, table.Row{f.Author, strings.Repeat("★", f.Rating), f.Comment})
	}
	return rows
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.current().SetFilter(m.meta().filterKey, strings.TrimSpace(m.filterInput.Value()))
			m.filtering = false
			m.filterInput.Blur()
			m.selectedRow = 0
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	m.status = ""
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.visibleCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
		m.err = nil
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(m.entityType))
	case "shift+tab":
		m.entityType = (m.entityType + entityCount - 1) % entityCount
		m.selectedRow = 0
		m.err = nil
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(m.entityType))
	case "[", "left":
		m.current().SetPage(m.current().Page() - 1)
		m.selectedRow = 0
	case "]", "right":
		m.current().SetPage(m.current().Page() + 1)
		m.selectedRow = 0
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		if fields := m.meta().sortFields; idx < len(fields) {
			m.current().SetSort(fields[idx])
		}
	case "0":
		m.current().ClearSort()
	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.current().Filter(m.meta().filterKey))
		m.filterInput.Focus()
		return m, nil
	case "f":
		m.cycleStatusFilter()
		m.selectedRow = 0
	case "r":
		return m, tea.Batch(m.spin.Tick, m.refreshCmd(m.entityType))
	case "d":
		if m.entityType == EntityReservations || m.entityType == EntityRequests {
			break // those tabs transition status instead of deleting
		}
		if id := m.selectedID(); id != "" {
			m.pendingDeleteID = id
			m.deleteMessage = fmt.Sprintf("Delete this %s?", strings.ToLower(strings.TrimSuffix(m.meta().name, "s")))
			m.viewMode = ViewConfirmDelete
		}
	case "c":
		if m.entityType == EntityReservations {
			return m, m.setReservationStatusCmd(models.ReservationConfirmed)
		}
	case "a":
		if m.entityType == EntityRequests {
			return m, m.setRequestStatusCmd(models.RequestApproved)
		}
	case "x":
		if m.entityType == EntityReservations {
			return m, m.setReservationStatusCmd(models.ReservationCancelled)
		}
		if m.entityType == EntityRequests {
			return m, m.setRequestStatusCmd(models.RequestRejected)
		}
	case "m":
		return m.enterMessagesView()
	case "e":
		return m.enterExperiencesView()
	}

	return m, nil
}

func (m Model) setReservationStatusCmd(status string) tea.Cmd {
	items := m.reservations.VisibleItems()
	if m.selectedRow >= len(items) {
		return nil
	}
	target := items[m.selectedRow]
	ctrl := m.reservations
	return func() tea.Msg {
		target.Status = status
		err := ctrl.Update(context.Background(), target.RecordID(), target)
		return actionDoneMsg{entity: EntityReservations, status: "Reservation " + status, err: err}
	}
}

func (m Model) setRequestStatusCmd(status string) tea.Cmd {
	items := m.requests.VisibleItems()
	if m.selectedRow >= len(items) {
		return nil
	}
	target := items[m.selectedRow]
	ctrl := m.requests
	return func() tea.Msg {
		target.Status = status
		err := ctrl.Update(context.Background(), target.RecordID(), target)
		return actionDoneMsg{entity: EntityRequests, status: "Request " + status, err: err}
	}
}
