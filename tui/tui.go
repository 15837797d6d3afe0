// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen console for lists, conversations, and the local catalog
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/config"
	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/messaging"
	"github.com/tablevine/tablevine/models"
	"github.com/tablevine/tablevine/store"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewMessages
	ViewExperiences
	ViewConfirmDelete
)

// EntityType represents the list tab being viewed
type EntityType int

const (
	EntityPartners EntityType = iota
	EntityTours
	EntityEvents
	EntityReservations
	EntityRequests
	EntityFeedback

	entityCount
)

// Model is the main bubbletea model
type Model struct {
	cfg     *config.Config
	sync    *messaging.Sync
	catalog *store.Catalog

	partners     *controller.Controller[models.Partner]
	tours        *controller.Controller[models.Tour]
	events       *controller.Controller[models.Event]
	reservations *controller.Controller[models.Reservation]
	requests     *controller.Controller[models.Request]
	feedback     *controller.Controller[models.Feedback]

	viewMode   ViewMode
	entityType EntityType

	// List view state
	selectedRow int
	filterInput textinput.Model
	filtering   bool

	// Messages view state
	rosterRow  int
	inConvo    bool
	viewport   viewport.Model
	composer   textarea.Model
	composing  bool
	sending    bool
	rosterBusy bool

	// Experiences view state
	experiences []models.Experience
	expRow      int

	// Delete confirmation state
	pendingDeleteID string
	deleteMessage   string

	// UI state
	spin   spinner.Model
	width  int
	height int
	status string
	err    error
}

// NewModel creates the console model. sync and catalog may be nil when the
// messaging cache or local store could not be opened; the corresponding views
// degrade to an explanatory message.
func NewModel(client *api.Client, cfg *config.Config, sync *messaging.Sync, catalog *store.Catalog) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	fi := textinput.New()
	fi.Placeholder = "filter..."
	fi.CharLimit = 80

	vp := viewport.New(80, 20)

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	return Model{
		cfg:     cfg,
		sync:    sync,
		catalog: catalog,

		partners:     controller.New(api.NewCollection[models.Partner](client, "/partners"), controller.PartnerSchema(), controller.DefaultPageSize, func(p models.Partner) error { return models.Validate(p) }),
		tours:        controller.New(api.NewCollection[models.Tour](client, "/tours"), controller.TourSchema(), controller.DefaultPageSize, func(t models.Tour) error { return models.Validate(t) }),
		events:       controller.New(api.NewCollection[models.Event](client, "/events"), controller.EventSchema(), controller.DefaultPageSize, func(e models.Event) error { return models.Validate(e) }),
		reservations: controller.New(api.NewCollection[models.Reservation](client, "/reservations"), controller.ReservationSchema(), controller.DefaultPageSize, nil),
		requests:     controller.New(api.NewCollection[models.Request](client, "/requests"), controller.RequestSchema(), controller.DefaultPageSize, nil),
		feedback:     controller.New(api.NewCollection[models.Feedback](client, "/feedback"), controller.FeedbackSchema(), controller.DefaultPageSize, nil),

		viewMode:    ViewList,
		entityType:  EntityPartners,
		filterInput: fi,
		viewport:    vp,
		composer:    ta,
		spin:        sp,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd(m.entityType))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 12
		m.composer.SetWidth(msg.Width - 4)
		m.updateViewportContent()
		return m, nil

	case spinner.TickMsg:
		if m.anyLoading() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case listRefreshedMsg:
		return m.handleListRefreshed(msg)
	case actionDoneMsg:
		return m.handleActionDone(msg)

	case rosterLoadedMsg:
		return m.handleRosterLoaded(msg)
	case conversationLoadedMsg:
		return m.handleConversationLoaded(msg)
	case messageSentMsg:
		return m.handleMessageSent(msg)
	case rosterTickMsg:
		return m.handleRosterTick()
	case conversationTickMsg:
		return m.handleConversationTick()

	case experiencesLoadedMsg:
		return m.handleExperiencesLoaded(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewMessages:
		return m.renderMessagesView()
	case ViewExperiences:
		return m.renderExperiencesView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes consume everything except their own exits.
	if !m.filtering && !m.composing {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewMessages:
		return m.handleMessagesKeys(msg)
	case ViewExperiences:
		return m.handleExperiencesKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}
	return m, nil
}

func (m Model) anyLoading() bool {
	return m.sending || m.rosterBusy || m.current().Loading()
}

// refreshCmd fetches one entity's collection in the background.
func (m Model) refreshCmd(entity EntityType) tea.Cmd {
	ctrl := m.controllerFor(entity)
	return func() tea.Msg {
		err := ctrl.Refresh(context.Background())
		return listRefreshedMsg{entity: entity, err: err}
	}
}

type listRefreshedMsg struct {
	entity EntityType
	err    error
}

// actionDoneMsg reports a completed mutation (delete or status change); the
// list it touched is re-read from the controller on receipt.
type actionDoneMsg struct {
	entity EntityType
	status string
	err    error
}

func (m Model) handleListRefreshed(msg listRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	if msg.entity == m.entityType {
		m.err = nil
		m.clampSelection()
	}
	return m, nil
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.status = msg.status
	m.clampSelection()
	return m, nil
}
