// ABOUTME: Conversation view over the messaging sync layer
// ABOUTME: Roster with unread badges, day-grouped history, compose and send
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tablevine/tablevine/messaging"
)

type rosterLoadedMsg struct{ err error }
type conversationLoadedMsg struct{ err error }
type messageSentMsg struct{ err error }
type rosterTickMsg struct{}
type conversationTickMsg struct{}

func (m Model) enterMessagesView() (tea.Model, tea.Cmd) {
	m.viewMode = ViewMessages
	m.inConvo = false
	m.rosterRow = 0
	m.err = nil
	m.status = ""
	if m.sync == nil {
		return m, nil
	}
	m.rosterBusy = true
	return m, tea.Batch(m.spin.Tick, m.loadRosterCmd(), m.rosterTick())
}

func (m Model) loadRosterCmd() tea.Cmd {
	sync := m.sync
	return func() tea.Msg {
		return rosterLoadedMsg{err: sync.LoadRoster(context.Background())}
	}
}

func (m Model) selectConversationCmd(counterpartID uuid.UUID) tea.Cmd {
	sync := m.sync
	return func() tea.Msg {
		return conversationLoadedMsg{err: sync.Select(context.Background(), counterpartID)}
	}
}

func (m Model) reloadConversationCmd() tea.Cmd {
	sync := m.sync
	return func() tea.Msg {
		return conversationLoadedMsg{err: sync.LoadMessages(context.Background())}
	}
}

func (m Model) sendCmd(content string) tea.Cmd {
	sync := m.sync
	return func() tea.Msg {
		return messageSentMsg{err: sync.Send(context.Background(), content)}
	}
}

// The tick loops stop themselves: a tick that arrives after the view changed
// is not rescheduled.
func (m Model) rosterTick() tea.Cmd {
	every := m.cfg.RosterInterval()
	if every <= 0 {
		every = messaging.RosterInterval
	}
	return tea.Tick(every, func(time.Time) tea.Msg {
		return rosterTickMsg{}
	})
}

func (m Model) conversationTick() tea.Cmd {
	every := m.cfg.MessageInterval()
	if every <= 0 {
		every = messaging.MessageInterval
	}
	return tea.Tick(every, func(time.Time) tea.Msg {
		return conversationTickMsg{}
	})
}

func (m Model) handleRosterTick() (tea.Model, tea.Cmd) {
	if m.viewMode != ViewMessages || m.sync == nil {
		return m, nil
	}
	return m, tea.Batch(m.loadRosterCmd(), m.rosterTick())
}

func (m Model) handleConversationTick() (tea.Model, tea.Cmd) {
	if m.viewMode != ViewMessages || !m.inConvo || m.sync == nil {
		return m, nil
	}
	return m, tea.Batch(m.reloadConversationCmd(), m.conversationTick())
}

func (m Model) handleRosterLoaded(msg rosterLoadedMsg) (tea.Model, tea.Cmd) {
	m.rosterBusy = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	if count := len(m.sync.Roster()); m.rosterRow >= count {
		m.rosterRow = max(0, count-1)
	}
	return m, nil
}

func (m Model) handleConversationLoaded(msg conversationLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.updateViewportContent()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleMessageSent(msg messageSentMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.composer.Reset()
	m.composing = false
	m.updateViewportContent()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleMessagesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sync == nil {
		if msg.String() == "esc" {
			m.viewMode = ViewList
		}
		return m, nil
	}

	if m.composing {
		switch msg.String() {
		case "ctrl+s":
			content := strings.TrimSpace(m.composer.Value())
			if content == "" {
				return m, nil
			}
			m.sending = true
			m.composer.Blur()
			return m, tea.Batch(m.spin.Tick, m.sendCmd(content))
		case "esc":
			m.composing = false
			m.composer.Reset()
			m.composer.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			return m, cmd
		}
	}

	if m.inConvo {
		switch msg.String() {
		case "esc":
			m.inConvo = false
			return m, nil
		case "n":
			m.composing = true
			m.composer.Focus()
			return m, textarea.Blink
		case "r":
			return m, m.reloadConversationCmd()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	// Roster stage.
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		return m, nil
	case "up", "k":
		if m.rosterRow > 0 {
			m.rosterRow--
		}
	case "down", "j":
		if m.rosterRow < len(m.sync.Roster())-1 {
			m.rosterRow++
		}
	case "r":
		m.rosterBusy = true
		return m, tea.Batch(m.spin.Tick, m.loadRosterCmd())
	case "enter":
		roster := m.sync.Roster()
		if m.rosterRow < len(roster) {
			m.inConvo = true
			return m, tea.Batch(
				m.selectConversationCmd(roster[m.rosterRow].ID),
				m.conversationTick(),
			)
		}
	}
	return m, nil
}

// updateViewportContent rebuilds the conversation transcript with day
// separators, wrapping bodies to the viewport width.
func (m *Model) updateViewportContent() {
	if m.sync == nil {
		return
	}
	messages := m.sync.Messages()
	if len(messages) == 0 {
		m.viewport.SetContent("")
		return
	}

	wrapWidth := m.viewport.Width
	if wrapWidth <= 0 {
		wrapWidth = 80
	}

	selfID := m.sync.SelfID()
	var content strings.Builder
	for _, group := range messaging.GroupByDay(messages, time.Now(), time.Local) {
		content.WriteString(dayLabelStyle.Render("── "+group.Label+" ──") + "\n")
		for _, message := range group.Messages {
			timestamp := message.CreatedAt.Local().Format("15:04")
			if message.SenderID == selfID {
				content.WriteString(messageHeaderStyle.Render("You • "+timestamp) + "\n")
				content.WriteString(messageMineStyle.Render(wordwrap.String(message.Content, wrapWidth-10)) + "\n")
			} else {
				content.WriteString(messageHeaderStyle.Render(timestamp) + "\n")
				content.WriteString(messageTheirsStyle.Render(wordwrap.String(message.Content, wrapWidth-10)) + "\n")
			}
		}
	}
	m.viewport.SetContent(content.String())
}

func (m Model) renderMessagesView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("MESSAGES"))
	s.WriteString("\n\n")

	if m.sync == nil {
		s.WriteString("Sign in to use messaging.\n")
		s.WriteString(helpStyle.Render("esc: back"))
		return s.String()
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	if !m.inConvo {
		s.WriteString(m.renderRoster())
		help := "↑↓: navigate • enter: open • r: refresh • esc: back • q: quit"
		if m.rosterBusy {
			help = m.spin.View() + " refreshing • " + help
		}
		s.WriteString("\n" + helpStyle.Render(help))
		return s.String()
	}

	s.WriteString(m.renderConversationHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.composing {
		s.WriteString(inputStyle.Render("New Message:") + "\n")
		s.WriteString(m.composer.View() + "\n")
		s.WriteString(helpStyle.Render("ctrl+s: send • esc: cancel"))
	} else if m.sending {
		s.WriteString(fmt.Sprintf("%s Sending...\n", m.spin.View()))
	} else {
		s.WriteString(helpStyle.Render("↑↓/jk: scroll • n: new message • r: refresh • esc: roster • q: quit"))
	}
	return s.String()
}

func (m Model) renderRoster() string {
	roster := m.sync.Roster()
	if len(roster) == 0 {
		return "No conversations.\n"
	}

	var s strings.Builder
	for i, cp := range roster {
		line := cp.DisplayName
		if cp.UnreadCount > 0 {
			line += unreadStyle.Render(fmt.Sprintf(" (%d)", cp.UnreadCount))
		}
		if !cp.LastMessageAt.IsZero() {
			line += messageHeaderStyle.Render("  " + cp.LastMessageAt.Local().Format("Jan 2 15:04"))
		}
		if i == m.rosterRow {
			s.WriteString(selectedRowStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	return s.String()
}

func (m Model) renderConversationHeader() string {
	active := m.sync.Active()
	for _, cp := range m.sync.Roster() {
		if cp.ID == active {
			return titleStyle.Render("💬 " + cp.DisplayName)
		}
	}
	return titleStyle.Render("💬 Conversation")
}
