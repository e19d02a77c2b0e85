package ui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"modgrip/internal/config"
	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/search"
	"modgrip/internal/ui/input"
	inputtypes "modgrip/internal/ui/input/types"
	"modgrip/internal/ui/views"
)

// statusTimeout is how long a status message stays visible
const statusTimeout = 3 * time.Second

// ModuleService performs the module actions beyond listing
type ModuleService interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	UpdateModule(ctx context.Context, id int, description string) (domain.Module, error)
	DeleteModule(ctx context.Context, id int) error
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	bus     eventbus.EventBus
	config  *config.Config
	logger  *zap.Logger
	search  *search.Controller
	service ModuleService

	width   int
	height  int
	help    help.Model
	spinner spinner.Model

	user           domain.User
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	statusMessage  string
	statusSeq      int
	preview        string // rendered markdown while previewing an edit

	renderer     *views.Renderer
	markdown     *views.MarkdownRenderer
	inputHandler *input.Handler
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(ctx context.Context, ctrl *search.Controller, service ModuleService, bus eventbus.EventBus, cfg *config.Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Model{
		ctx:            ctx,
		bus:            bus,
		config:         cfg,
		logger:         logger.Named("ui"),
		search:         ctrl,
		service:        service,
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewportHeight: 20, // Will be updated on first WindowSizeMsg
		renderer:       views.NewRenderer(cfg.UI.ShowTags),
		markdown:       views.NewMarkdownRenderer("auto"),
		inputHandler:   input.New(),
	}
}

// Init starts the initial listing and user requests
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.search.Load(),
		m.loadUser(),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		m.inputHandler.SetEditorSize(max(msg.Width-8, 20), max(msg.Height-14, 5))
		return m, nil

	case tea.KeyMsg:
		ctx := m.inputContext()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		if m.inputHandler.CurrentMode() != inputtypes.ModeEdit {
			m.preview = ""
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if cmd, handled := m.search.HandleMsg(msg); handled {
		m.clampSelection()
		return m, cmd
	}

	return m.handleNonKeyboardMsg(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	state := m.search.State()
	mode := m.inputHandler.CurrentMode()

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Modules:        m.search.Modules(),
		SelectedIndex:  m.selectedIndex,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight,
		Tags:           state.Tags,
		SearchInput:    m.inputHandler.TextInput().View(),
		Searching:      state.Searching,
		Spinner:        m.spinner.View(),
		Filter:         state.Filter,
		PageSize:       state.PageSize,
		Err:            state.Err,
		StatusMessage:  m.statusMessage,
		InputMode:      mode.String(),
		Username:       m.user.Username,
	}

	switch mode {
	case inputtypes.ModeFilterSelect:
		vs.FilterOptions = m.inputHandler.FilterMode().Options()
		vs.FilterCursor = m.inputHandler.FilterMode().Cursor()
	case inputtypes.ModeDeleteConfirm:
		vs.DeleteTarget = m.inputHandler.ConfirmMode().Target().Name
	case inputtypes.ModeEdit:
		vs.EditTarget = m.inputHandler.EditMode().Target().Name
		vs.Editor = m.inputHandler.TextArea().View()
		vs.Preview = m.preview
	case inputtypes.ModeSearch:
		vs.HelpView = m.renderer.Styles().Help.Render("enter/esc back to list • backspace on empty field removes last tag")
	}

	if mode == inputtypes.ModeNormal {
		bindings := inputtypes.Keys.ShortHelp()
		if m.user.Capabilities().IsPrivileged {
			bindings = inputtypes.Keys.PrivilegedHelp()
		}
		vs.HelpView = m.help.ShortHelpView(bindings)
	}
	return vs
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Modules:       m.search.Modules(),
		SelectedIndex: m.selectedIndex,
		Capabilities:  m.user.Capabilities(),
		Search:        m.search.State(),
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", zap.String("action", action.Type()))

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		cmd := m.search.TextChanged(a.Text)
		// Completed tag tokens move out of the field into chips
		if rest := search.StripTags(a.Text); rest != a.Text {
			m.inputHandler.SetSearchText(rest)
		}
		m.selectedIndex = 0
		m.viewportOffset = 0
		return cmd

	case inputtypes.BackspaceTagAction:
		if m.search.DeleteLastTag() {
			return m.search.TextChanged("")
		}

	case inputtypes.CancelTextAction:
		m.preview = ""

	case inputtypes.SelectFilterAction:
		if !a.Filter.Selectable() {
			return m.setStatus(fmt.Sprintf("%s is not available", a.Filter.Label()))
		}
		m.selectedIndex = 0
		m.viewportOffset = 0
		return m.search.FilterChanged(a.Filter)

	case inputtypes.CyclePageSizeAction:
		return m.cyclePageSize(a.Delta)

	case inputtypes.ReloadAction:
		return m.search.Load()

	case inputtypes.ViewModuleAction:
		return m.viewModule()

	case inputtypes.TogglePreviewAction:
		if m.preview != "" {
			m.preview = ""
			return nil
		}
		rendered, err := m.markdown.Render(m.inputHandler.TextArea().Value(), max(m.width-8, 20))
		if err != nil {
			return m.setStatus(fmt.Sprintf("Preview failed: %v", err))
		}
		if rendered == "" {
			rendered = m.renderer.Styles().Dim.Render("(empty description)")
		}
		m.preview = rendered

	case inputtypes.SaveEditAction:
		m.preview = ""
		m.statusMessage = "Saving..."
		return m.saveModule(a.ID, a.Description)

	case inputtypes.DeleteModuleAction:
		m.statusMessage = "Deleting..."
		return m.deleteModule(a.ID)

	case inputtypes.ShowHelpAction:
		return showInPager(renderHelpContent(m.user.Capabilities().IsPrivileged))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) navigate(direction string) {
	total := len(m.search.Modules())
	if total == 0 {
		return
	}

	switch direction {
	case "up":
		m.selectedIndex--
	case "down":
		m.selectedIndex++
	case "pageup":
		m.selectedIndex -= m.viewportHeight
	case "pagedown":
		m.selectedIndex += m.viewportHeight
	case "home":
		m.selectedIndex = 0
	case "end":
		m.selectedIndex = total - 1
	}
	m.clampSelection()
}

// clampSelection keeps the cursor on a visible row after the listing changed
func (m *Model) clampSelection() {
	total := len(m.search.Modules())
	m.selectedIndex = min(max(m.selectedIndex, 0), max(total-1, 0))
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	if m.selectedIndex < m.viewportOffset {
		m.viewportOffset = m.selectedIndex
	} else if m.selectedIndex >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.selectedIndex - m.viewportHeight + 1
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}

func (m *Model) updateViewportHeight() {
	// Title, search line, error line, padding, status and help
	m.viewportHeight = max(m.height-11, 3)
	m.ensureSelectedVisible()
}

func (m *Model) cyclePageSize(delta int) tea.Cmd {
	sizes := m.search.PageSizes()
	current := slices.Index(sizes, m.search.State().PageSize)
	if len(sizes) < 2 || current < 0 {
		return nil
	}

	next := (current + delta + len(sizes)) % len(sizes)
	cmd := m.search.PageSizeChanged(sizes[next])
	m.clampSelection()
	return tea.Batch(cmd, m.setStatus(fmt.Sprintf("Showing %d per page", sizes[next])))
}

func (m *Model) currentModule() (domain.Module, bool) {
	return m.inputContext().CurrentModule()
}

func (m *Model) viewModule() tea.Cmd {
	mod, ok := m.currentModule()
	if !ok {
		return nil
	}

	body, err := m.markdown.Render(mod.Description, max(m.width-4, 40))
	if err != nil {
		m.logger.Warn("markdown render failed", zap.Int("module", mod.ID), zap.Error(err))
		body = mod.Description
	}
	if body == "" {
		body = "(no description)"
	}

	header := m.renderer.Styles().Title.Render(mod.Name)
	return showInPager(header + "\n\n" + body + "\n")
}

func (m *Model) loadUser() tea.Cmd {
	if m.service == nil {
		return nil
	}
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		user, err := service.CurrentUser(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

func (m *Model) saveModule(id int, description string) tea.Cmd {
	if m.service == nil {
		return nil
	}
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		mod, err := service.UpdateModule(ctx, id, description)
		return moduleSavedMsg{module: mod, err: err}
	}
}

func (m *Model) deleteModule(id int) tea.Cmd {
	if m.service == nil {
		return nil
	}
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		err := service.DeleteModule(ctx, id)
		return moduleDeletedMsg{id: id, err: err}
	}
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// setStatus shows msg and schedules it to be cleared
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	m.statusMessage = msg
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load current user", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Could not load current user: %v", msg.err))
		}
		m.user = msg.user
		m.publish(eventbus.UserLoadedEvent{User: msg.user})
		return m, nil

	case moduleSavedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to save module", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Save failed: %v", msg.err))
		}
		m.publish(eventbus.ModuleUpdatedEvent{Module: msg.module})
		return m, tea.Batch(m.search.Load(), m.setStatus(fmt.Sprintf("Saved %s", msg.module.Name)))

	case moduleDeletedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to delete module", zap.Int("module", msg.id), zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Delete failed: %v", msg.err))
		}
		m.publish(eventbus.ModuleDeletedEvent{ID: msg.id})
		return m, tea.Batch(m.search.Load(), m.setStatus("Module deleted"))

	case pagerExitMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil
	}

	// Cursor blink and other widget messages
	return m, m.inputHandler.Update(msg)
}

// handleEvent reacts to bus events forwarded by the program
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		if e.Err != nil {
			return m.setStatus(fmt.Sprintf("%s: %v", e.Message, e.Err))
		}
		return m.setStatus(e.Message)
	case eventbus.ConfigSavedEvent:
		return m.setStatus(fmt.Sprintf("Config saved to %s", e.Path))
	}
	return nil
}
