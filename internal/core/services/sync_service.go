package services

import (
	"sync"
	"time"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/events"
)

// syncService coalesces remote-change bursts into a single refresh of the
// query layer. A mode change bypasses the debounce window because the data
// under the caller just changed wholesale.
type syncService struct {
	BaseService
	window time.Duration

	mu      sync.Mutex
	refresh func()
	timer   *time.Timer
	closed  bool
}

// NewSyncService creates the coordinator and subscribes it to the bus.
// window is the debounce interval for remote-change events.
func NewSyncService(bus *events.Bus, window time.Duration) portssvc.SyncSvcFacade {
	s := &syncService{window: window}
	bus.Subscribe(s.onEvent)
	return s
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// RegisterRefresh sets the callback invoked when data should be re-read.
func (s *syncService) RegisterRefresh(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = fn
}

func (s *syncService) onEvent(evt events.Event) {
	switch evt.(type) {
	case events.RemoteChange:
		s.scheduleRefresh()
	case events.ModeChanged:
		s.refreshNow()
	}
}

// scheduleRefresh arms (or re-arms) the debounce timer. N notifications inside
// one window produce exactly one refresh, after the last of them.
func (s *syncService) scheduleRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fireRefresh)
}

// refreshNow cancels any pending debounced refresh and fires immediately.
func (s *syncService) refreshNow() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	fn := s.refresh
	closed := s.closed
	s.mu.Unlock()

	if fn != nil && !closed {
		fn()
	}
}

func (s *syncService) fireRefresh() {
	s.mu.Lock()
	s.timer = nil
	fn := s.refresh
	closed := s.closed
	s.mu.Unlock()

	if fn != nil && !closed {
		fn()
	}
}

// Close cancels any pending refresh. Signals arriving afterwards are dropped.
func (s *syncService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
