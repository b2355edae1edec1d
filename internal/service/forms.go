package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/aiagenz/donate/internal/domain"
	"github.com/aiagenz/donate/internal/donation"
	"github.com/google/uuid"
)

const subscriberBuffer = 8

// FormStore keeps the mounted donation forms in memory. Each form is owned by
// one entry whose mutex serialises its events, so updates are applied in the
// order they arrive.
type FormStore struct {
	catalog *donation.Catalog
	initial donation.Selection
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]*formEntry
}

type formEntry struct {
	mu       sync.Mutex
	form     *donation.Form
	lastSeen time.Time
	subs     map[chan donation.View]struct{}
}

// NewFormStore creates a store that mounts forms with the given initial
// selection and forgets forms untouched for ttl.
func NewFormStore(catalog *donation.Catalog, initial donation.Selection, ttl time.Duration) *FormStore {
	return &FormStore{
		catalog: catalog,
		initial: initial,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*formEntry),
	}
}

// Catalog returns the catalog every form is built from.
func (s *FormStore) Catalog() *donation.Catalog {
	return s.catalog
}

// Initial returns the selection a freshly mounted form starts with.
func (s *FormStore) Initial() donation.Selection {
	return s.initial
}

// Open mounts a new form and returns its ID and first view.
func (s *FormStore) Open() (string, donation.View, error) {
	form, err := donation.NewForm(s.catalog, s.initial)
	if err != nil {
		return "", donation.View{}, domain.ErrInternal("failed to mount donation form", err)
	}

	id := uuid.New().String()
	e := &formEntry{
		form:     form,
		lastSeen: s.now(),
		subs:     make(map[chan donation.View]struct{}),
	}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()

	return id, form.View(), nil
}

func (s *FormStore) entry(id string) (*formEntry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound("donation form not found")
	}
	return e, nil
}

// View returns the current view of a form.
func (s *FormStore) View(id string) (donation.View, error) {
	e, err := s.entry(id)
	if err != nil {
		return donation.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	return e.form.View(), nil
}

// Update runs fn against the form while holding its lock, then publishes the
// resulting view to subscribers. Engine errors are mapped to AppErrors.
func (s *FormStore) Update(id string, fn func(f *donation.Form) error) (donation.View, error) {
	e, err := s.entry(id)
	if err != nil {
		return donation.View{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()

	if err := fn(e.form); err != nil {
		return e.form.View(), mapFormError(err)
	}

	v := e.form.View()
	for ch := range e.subs {
		publish(ch, v)
	}
	return v, nil
}

// Subscribe streams every view published for the form. The current view is
// delivered first. The returned cancel func must be called to release the
// subscription.
func (s *FormStore) Subscribe(id string) (<-chan donation.View, func(), error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan donation.View, subscriberBuffer)

	e.mu.Lock()
	e.subs[ch] = struct{}{}
	ch <- e.form.View()
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			if _, ok := e.subs[ch]; ok {
				delete(e.subs, ch)
				close(ch)
			}
			e.mu.Unlock()
		})
	}
	return ch, cancel, nil
}

// Close unmounts a form and ends its subscriptions.
func (s *FormStore) Close(id string) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound("donation form not found")
	}
	e.closeSubs()
	return nil
}

// Len returns the number of mounted forms.
func (s *FormStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep unmounts forms idle for longer than the TTL and returns how many
// were removed. Forms with live subscribers are kept.
func (s *FormStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var stale []*formEntry
	for id, e := range s.entries {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff) && len(e.subs) == 0
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
			stale = append(stale, e)
		}
	}
	s.mu.Unlock()

	for _, e := range stale {
		e.closeSubs()
	}
	return len(stale)
}

// StartSweeper runs Sweep periodically until ctx is done.
func (s *FormStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("[Forms] Swept %d idle donation forms", n)
				}
			}
		}
	}()
}

func (e *formEntry) closeSubs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subs {
		delete(e.subs, ch)
		close(ch)
	}
}

// publish delivers v without blocking. A slow subscriber loses its oldest
// pending view rather than holding up the form.
func publish(ch chan donation.View, v donation.View) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

func mapFormError(err error) error {
	if _, ok := domain.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, donation.ErrFormLocked):
		return domain.ErrConflict("donation is in progress; reset the form first", err)
	case errors.Is(err, donation.ErrUnknownDuration), errors.Is(err, donation.ErrAmountNotOffered):
		return domain.ErrValidation(err.Error())
	}
	return domain.ErrInternal("donation form update failed", err)
}
