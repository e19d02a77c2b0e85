package search

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"modgrip/internal/domain"
)

// Fetcher retrieves one page of modules from the remote catalog
type Fetcher interface {
	FetchModules(ctx context.Context, q domain.ModuleQuery) ([]domain.Module, error)
}

// Publisher receives listing notifications
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Options configures a Controller
type Options struct {
	Fetcher   Fetcher
	Scheduler Scheduler     // defaults to the wall clock
	Debounce  time.Duration // defaults to DefaultDebounce
	PageSizes []int         // allowed page sizes
	PageSize  int           // initial page size, must be in PageSizes
	Filter    domain.FilterMode
	Modules   []domain.Module // initial listing, e.g. from the cache
	Publisher Publisher
	Logger    *zap.Logger
}

// State is the read-only projection the view renders from
type State struct {
	Raw       string
	Tags      []string
	FreeText  string
	Filter    domain.FilterMode
	PageSize  int
	Searching bool // a fetch is scheduled or in flight
	Err       error
}

// debounceFiredMsg is delivered when the quiescence window elapses
type debounceFiredMsg struct {
	epoch uint64
}

// modulesFetchedMsg carries a completed listing request
type modulesFetchedMsg struct {
	epoch   uint64
	query   domain.ModuleQuery
	modules []domain.Module
	err     error
}

// Controller owns the search field, filter, page size and module listing.
// It is driven from a single bubbletea Update loop and needs no locking; the
// epoch counter decides which fetch result is allowed to become visible.
type Controller struct {
	ctx       context.Context
	fetcher   Fetcher
	debouncer *Debouncer
	publisher Publisher
	logger    *zap.Logger

	query     Query
	filter    domain.FilterMode
	pageSize  int
	pageSizes []int
	modules   []domain.Module

	epoch     uint64
	abandon   chan struct{} // closed when the pending debounce is superseded
	searching bool
	err       error
}

// NewController creates a controller with an empty query
func NewController(ctx context.Context, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	filter := opts.Filter
	if !filter.Selectable() {
		filter = domain.FilterAll
	}
	pageSizes := slices.Clone(opts.PageSizes)
	if len(pageSizes) == 0 {
		pageSizes = []int{opts.PageSize}
	}
	pageSize := opts.PageSize
	if !slices.Contains(pageSizes, pageSize) {
		pageSize = pageSizes[0]
	}

	return &Controller{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		debouncer: NewDebouncer(opts.Scheduler, debounce),
		publisher: opts.Publisher,
		logger:    logger.Named("search"),
		query:     ParseQuery(""),
		filter:    filter,
		pageSize:  pageSize,
		pageSizes: pageSizes,
		modules:   truncate(opts.Modules, pageSize),
	}
}

// State returns the current projection
func (c *Controller) State() State {
	return State{
		Raw:       c.query.Raw,
		Tags:      slices.Clone(c.query.Tags),
		FreeText:  c.query.FreeText,
		Filter:    c.filter,
		PageSize:  c.pageSize,
		Searching: c.searching,
		Err:       c.err,
	}
}

// Modules returns the visible listing
func (c *Controller) Modules() []domain.Module {
	return slices.Clone(c.modules)
}

// PageSizes returns the allowed page sizes
func (c *Controller) PageSizes() []int {
	return slices.Clone(c.pageSizes)
}

// Epoch returns the current search epoch
func (c *Controller) Epoch() uint64 {
	return c.epoch
}

// TextChanged merges new free text into the query and restarts the
// quiescence window. The returned command resolves when the window elapses.
func (c *Controller) TextChanged(freeText string) tea.Cmd {
	c.query = c.query.WithFreeText(freeText)
	c.epoch++
	c.searching = true

	c.logger.Debug("search text changed",
		zap.String("free_text", c.query.FreeText),
		zap.Strings("tags", c.query.Tags),
		zap.Uint64("epoch", c.epoch))

	return c.schedule(c.epoch)
}

// DeleteLastTag removes the last tag when the free text is empty. It never
// schedules a search by itself; the caller's text-change notification does.
func (c *Controller) DeleteLastTag() bool {
	if c.query.FreeText != "" || len(c.query.Tags) == 0 {
		return false
	}
	c.query = c.query.WithoutLastTag()
	return true
}

// PageSizeChanged shrinks the listing locally or refetches when it grows
func (c *Controller) PageSizeChanged(size int) tea.Cmd {
	if size == c.pageSize {
		return nil
	}
	if !slices.Contains(c.pageSizes, size) {
		c.logger.Warn("ignoring page size outside the allowed set", zap.Int("size", size))
		return nil
	}

	grow := size > c.pageSize
	c.pageSize = size
	if !grow {
		c.modules = truncate(c.modules, size)
		return nil
	}
	return c.fetchNow()
}

// FilterChanged switches the filter and refetches immediately
func (c *Controller) FilterChanged(filter domain.FilterMode) tea.Cmd {
	if filter == c.filter {
		return nil
	}
	if !filter.Selectable() {
		c.logger.Warn("ignoring unselectable filter", zap.String("filter", string(filter)))
		return nil
	}
	c.filter = filter
	return c.fetchNow()
}

// Load fetches the listing for the current query without debouncing
func (c *Controller) Load() tea.Cmd {
	return c.fetchNow()
}

// HandleMsg processes the controller's own messages. The second return value
// reports whether msg belonged to the controller.
func (c *Controller) HandleMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case debounceFiredMsg:
		if msg.epoch != c.epoch {
			return nil, true
		}
		c.abandon = nil
		return c.fetch(msg.epoch), true

	case modulesFetchedMsg:
		c.apply(msg)
		return nil, true
	}
	return nil, false
}

// Close abandons any pending debounce
func (c *Controller) Close() {
	c.cancelPending()
}

// schedule arms the debounce timer for epoch
func (c *Controller) schedule(epoch uint64) tea.Cmd {
	c.cancelPending()

	fired := make(chan struct{})
	abandon := make(chan struct{})
	c.abandon = abandon
	c.debouncer.Debounce(func() { close(fired) })

	ctx := c.ctx
	return func() tea.Msg {
		select {
		case <-fired:
			return debounceFiredMsg{epoch: epoch}
		case <-abandon:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Controller) cancelPending() {
	c.debouncer.Cancel()
	if c.abandon != nil {
		close(c.abandon)
		c.abandon = nil
	}
}

// fetchNow bypasses the debounce window
func (c *Controller) fetchNow() tea.Cmd {
	c.cancelPending()
	c.epoch++
	c.searching = true
	return c.fetch(c.epoch)
}

func (c *Controller) fetch(epoch uint64) tea.Cmd {
	q := c.request()
	if c.fetcher == nil {
		c.searching = false
		return nil
	}

	c.logger.Debug("fetching modules",
		zap.String("query", q.Key()),
		zap.Uint64("epoch", epoch))

	ctx, fetcher := c.ctx, c.fetcher
	return func() tea.Msg {
		modules, err := fetcher.FetchModules(ctx, q)
		return modulesFetchedMsg{epoch: epoch, query: q, modules: modules, err: err}
	}
}

func (c *Controller) apply(msg modulesFetchedMsg) {
	if msg.epoch != c.epoch {
		c.logger.Debug("discarding stale listing",
			zap.Uint64("epoch", msg.epoch),
			zap.Uint64("current", c.epoch))
		return
	}

	c.searching = false
	if msg.err != nil {
		c.err = msg.err
		c.logger.Warn("module search failed", zap.String("query", msg.query.Key()), zap.Error(msg.err))
		c.publish(domain.SearchFailedEvent{Query: msg.query, Err: msg.err})
		return
	}

	c.err = nil
	c.modules = truncate(msg.modules, c.pageSize)
	c.publish(domain.ModulesLoadedEvent{Query: msg.query, Modules: slices.Clone(c.modules)})
}

func (c *Controller) request() domain.ModuleQuery {
	return domain.ModuleQuery{
		FreeText: c.query.FreeText,
		Tags:     slices.Clone(c.query.Tags),
		Filter:   c.filter,
		PageSize: c.pageSize,
	}
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.publisher != nil {
		c.publisher.Publish(event)
	}
}

// truncate returns a new slice holding at most n modules
func truncate(modules []domain.Module, n int) []domain.Module {
	if len(modules) > n {
		modules = modules[:n]
	}
	return slices.Clone(modules)
}
