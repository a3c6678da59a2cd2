// Package app wires the study plan domain to storage, events and the
// outer adapters.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kilianp07/studyplan/core/events"
	"github.com/kilianp07/studyplan/core/model"
	coremon "github.com/kilianp07/studyplan/core/monitoring"
	"github.com/kilianp07/studyplan/core/scheduler"
	"github.com/kilianp07/studyplan/core/store"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/internal/eventbus"
)

// Service implements the study plan use cases on top of a store. Operations
// touching a user's plan are serialized per user.
type Service struct {
	store    store.Store
	sched    *scheduler.Scheduler
	defaults model.Settings
	bus      *eventbus.Bus[events.Event]
	log      logger.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is released from Service.locks once no caller holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// Option customizes a Service.
type Option func(*Service)

// WithScheduler replaces the default scheduler.
func WithScheduler(s *scheduler.Scheduler) Option { return func(svc *Service) { svc.sched = s } }

// WithDefaults sets the settings used when a generate request omits one.
func WithDefaults(s model.Settings) Option { return func(svc *Service) { svc.defaults = s } }

// WithBus publishes domain events on b.
func WithBus(b *eventbus.Bus[events.Event]) Option { return func(svc *Service) { svc.bus = b } }

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option { return func(svc *Service) { svc.log = l } }

// WithClock sets the source of "now", which also decides "today".
func WithClock(now func() time.Time) Option { return func(svc *Service) { svc.now = now } }

// NewService returns a Service backed by st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		sched:    scheduler.New(),
		defaults: model.DefaultSettings(),
		log:      logger.New("service"),
		now:      time.Now,
		locks:    make(map[string]*userLock),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Bus returns the event bus, nil when events are not published.
func (s *Service) Bus() *eventbus.Bus[events.Event] { return s.bus }

func (s *Service) lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}

func (s *Service) today() model.Date { return model.DateOf(s.now()) }

func (s *Service) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

// capture reports errors the caller could not have avoided.
func (s *Service) capture(op, userID string, err error) {
	if err == nil || IsClientError(err) {
		return
	}
	coremon.CaptureException(err, map[string]string{"op": op, "user": userID})
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	return errors.Is(err, scheduler.ErrUsage) ||
		errors.Is(err, model.ErrInvalid) ||
		errors.Is(err, store.ErrNotFound)
}

func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required: %w", model.ErrInvalid)
	}
	return nil
}

func newID() string { return ulid.Make().String() }
