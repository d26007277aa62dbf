// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package session runs one controller per browser tab.
//
// A Session serializes events through the controller, executes the effects it
// returns and turns render effects into DOM patches. Upstream calls run on
// their own goroutines and come back as events, so a session never blocks on
// the recommendation engine while holding its lock.
//
// Patches go to an attached Sink (the tab's WebSocket) or, while none is
// attached, into a bounded outbox that is drained on the next attach or REST
// dispatch.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommendapi"
	"github.com/tomtom215/cinematch/internal/view"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionClosed is returned when dispatching to a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// DefaultOutboxSize bounds patches buffered while no sink is attached.
const DefaultOutboxSize = 256

// Deps are the collaborators shared by every session.
type Deps struct {
	Controller *controller.Controller
	Renderer   *view.Renderer
	Client     recommendapi.Client
	Clock      Clock
	OutboxSize int
}

// Session is one tab's interaction state.
type Session struct {
	id   string
	deps Deps
	log  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	calls  sync.WaitGroup

	mu                sync.Mutex
	state             controller.State
	autocompleteTimer Timer
	sink              Sink
	outbox            []Patch
	lastActive        time.Time
	closed            bool
	// onChange runs under mu and must not block.
	onChange func(id string, s controller.State)
}

func newSession(id string, state controller.State, deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = RealClock{}
	}
	if deps.OutboxSize <= 0 {
		deps.OutboxSize = DefaultOutboxSize
	}

	ctx, cancel := context.WithCancel(logging.ContextWithSessionID(context.Background(), id))
	return &Session{
		id:         id,
		deps:       deps,
		log:        logging.WithComponent("session").With().Str("session_id", id).Logger(),
		ctx:        ctx,
		cancel:     cancel,
		state:      state,
		lastActive: deps.Clock.Now(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns a copy of the current state.
func (s *Session) State() controller.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastActive is when the session last handled an event.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Attached reports whether a sink is currently receiving patches.
func (s *Session) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink != nil
}

// Dispatch applies ev and delivers the resulting patches to the sink or the
// outbox.
func (s *Session) Dispatch(ev controller.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	patches, err := s.applyLocked(ev)
	if err != nil {
		return err
	}
	s.deliverLocked(patches)
	return nil
}

// DispatchCollect applies ev and returns everything pending for the caller:
// the outbox first, then the patches produced by ev. Used by the REST
// transport, which has no push channel.
func (s *Session) DispatchCollect(ev controller.Event) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patches, err := s.applyLocked(ev)
	if err != nil {
		return nil, err
	}
	out := s.outbox
	s.outbox = nil
	return append(out, patches...), nil
}

// Drain returns and clears the outbox.
func (s *Session) Drain() []Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.outbox
	s.outbox = nil
	return out
}

// Attach makes sink the receiver of future patches. Whatever was buffered
// meanwhile is sent to sink first, under the same lock as later patches, so
// the sink sees patches in the order they were produced. A previously
// attached sink is replaced.
func (s *Session) Attach(sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.sink = sink
	s.lastActive = s.deps.Clock.Now()
	s.deliverLocked(nil)
	return nil
}

// Detach removes sink if it is still the attached one.
func (s *Session) Detach(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink == sink {
		s.sink = nil
		s.lastActive = s.deps.Clock.Now()
	}
}

// RenderAll returns a patch for every region, for a client that needs a full
// repaint.
func (s *Session) RenderAll() []Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Patch
	for _, r := range controller.Regions {
		out = append(out, s.renderLocked(r)...)
	}
	return out
}

// Close stops timers, cancels in-flight calls and waits for them to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.sink = nil
	if s.autocompleteTimer != nil {
		s.autocompleteTimer.Stop()
		s.autocompleteTimer = nil
	}
	s.mu.Unlock()

	s.cancel()
	s.calls.Wait()
}

func (s *Session) applyLocked(ev controller.Event) ([]Patch, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	metrics.RecordUIEvent(ev.EventName())
	s.lastActive = s.deps.Clock.Now()

	var effects []controller.Effect
	s.state, effects = s.deps.Controller.Update(s.state, ev)

	var patches []Patch
	for _, fx := range effects {
		metrics.RecordUIEffect(fx.EffectName())
		patches = append(patches, s.executeLocked(fx)...)
	}

	if s.onChange != nil {
		s.onChange(s.id, s.state)
	}
	return patches, nil
}

func (s *Session) executeLocked(fx controller.Effect) []Patch {
	switch e := fx.(type) {
	case controller.Render:
		return s.renderLocked(e.Region)
	case controller.SetInput:
		return []Patch{{Op: OpValue, Target: TargetInput, Value: e.Value}}
	case controller.ScrollIntoView:
		return []Patch{{Op: OpScroll, Target: TargetResults}}
	case controller.LockScroll:
		return []Patch{{Op: OpScrollLock, On: e.Locked}}

	case controller.ScheduleAutocomplete:
		if s.autocompleteTimer != nil {
			s.autocompleteTimer.Stop()
		}
		due := controller.AutocompleteDue{Seq: e.Seq, Query: e.Query}
		s.autocompleteTimer = s.deps.Clock.AfterFunc(e.Delay, func() { s.dispatchAsync(due) })
	case controller.CancelAutocomplete:
		if s.autocompleteTimer != nil {
			s.autocompleteTimer.Stop()
			s.autocompleteTimer = nil
		}
	case controller.ScheduleDropdownHide:
		s.deps.Clock.AfterFunc(e.Delay, func() { s.dispatchAsync(controller.DropdownHideDue{}) })

	case controller.FetchRecommendations:
		s.goCall(func(ctx context.Context) controller.Event {
			resp, err := s.deps.Client.Recommend(ctx, e.Title, e.Count)
			return controller.RecommendationsLoaded{Title: e.Title, Response: resp, Err: err}
		})
	case controller.FetchSuggestions:
		s.goCall(func(ctx context.Context) controller.Event {
			resp, err := s.deps.Client.Autocomplete(ctx, e.Query, e.Limit)
			return controller.SuggestionsLoaded{Query: e.Query, Response: resp, Err: err}
		})
	case controller.FetchFiltered:
		s.goCall(func(ctx context.Context) controller.Event {
			resp, err := s.deps.Client.Filter(ctx, e.Filters)
			return controller.FilteredLoaded{Filters: e.Filters, Response: resp, Err: err}
		})
	case controller.FetchStats:
		s.goCall(func(ctx context.Context) controller.Event {
			resp, err := s.deps.Client.Stats(ctx)
			return controller.StatsLoaded{Response: resp, Err: err}
		})

	case controller.Log:
		return []Patch{s.logEffect(e)}
	}
	return nil
}

func (s *Session) renderLocked(region controller.Region) []Patch {
	html, err := s.deps.Renderer.Region(region, s.state)
	if err != nil {
		s.log.Error().Err(err).Str("region", string(region)).Msg("Failed to render region")
		return nil
	}
	patches := []Patch{{Op: OpHTML, Target: view.RegionID(region), HTML: html}}
	if region == controller.RegionPanel {
		patches = append(patches, Patch{Op: OpClass, Target: TargetSearchButton, Value: ClassSearchBusy, On: s.state.SearchBusy})
	}
	return patches
}

func (s *Session) logEffect(e controller.Log) Patch {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Level == controller.LogError {
		s.log.Warn().Err(e.Err).Msg(e.Message)
	} else {
		s.log.Info().Msg(e.Message)
	}
	return Patch{Op: OpConsole, Level: string(e.Level), Value: msg}
}

// goCall runs an upstream call off the lock and feeds its result back in.
func (s *Session) goCall(call func(ctx context.Context) controller.Event) {
	s.calls.Add(1)
	go func() {
		defer s.calls.Done()
		s.dispatchAsync(call(s.ctx))
	}()
}

func (s *Session) dispatchAsync(ev controller.Event) {
	if err := s.Dispatch(ev); err != nil && !errors.Is(err, ErrSessionClosed) {
		s.log.Error().Err(err).Str("event", ev.EventName()).Msg("Failed to dispatch event")
	}
}

// deliverLocked sends patches to the sink behind anything still buffered.
// Once one send fails, everything after it queues in the outbox until a send
// of the whole backlog succeeds.
func (s *Session) deliverLocked(patches []Patch) {
	if len(patches) == 0 && len(s.outbox) == 0 {
		return
	}
	if s.sink != nil {
		pending := patches
		if len(s.outbox) > 0 {
			pending = make([]Patch, 0, len(s.outbox)+len(patches))
			pending = append(append(pending, s.outbox...), patches...)
		}
		err := s.sink.Send(pending)
		if err == nil {
			s.outbox = nil
			return
		}
		s.log.Debug().Err(err).Int("buffered", len(s.outbox)).Msg("Sink rejected patches, buffering")
	}
	if len(patches) == 0 {
		return
	}

	s.outbox = append(s.outbox, patches...)
	if over := len(s.outbox) - s.deps.OutboxSize; over > 0 {
		metrics.PatchesDropped.Add(float64(over))
		s.outbox = append([]Patch(nil), s.outbox[over:]...)
	}
}
