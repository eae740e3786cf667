// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"sync"
	"sync/atomic"
)

// Store holds one Value and broadcasts it to any number of subscribers.
// It is safe for concurrent use.
//
// Writes are committed before the writing call returns, so Read observes them
// immediately. Notifications are queued in commit order and delivered by
// whichever writer finds the queue idle; a write made from inside a subscriber
// callback is delivered after that callback returns.
type Store struct {
	// mu protects every field below
	mu       sync.Mutex
	value    Value
	subs     []*subscription
	queue    []notification
	draining bool
}

type subscription struct {
	fn     func(Value)
	active atomic.Bool
}

// notification is one value bound to the subscribers registered when it was
// committed.
type notification struct {
	value Value
	subs  []*subscription
}

// NewStore creates a store holding DefaultValue.
func NewStore() *Store {
	return &Store{value: DefaultValue()}
}

// Read returns the current value.
func (s *Store) Read() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and calls it with the current value, then on every
// later transition until the returned function is called. When no delivery is
// in progress fn has been called once Subscribe returns.
func (s *Store) Subscribe(fn func(Value)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.queue = append(s.queue, notification{value: s.value, subs: []*subscription{sub}})
	s.mu.Unlock()
	s.drain()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			s.remove(sub)
		})
	}
}

func (s *Store) remove(target *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == target {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// publish replaces the state and notifies subscribers.
func (s *Store) publish(st State) {
	s.update(func(v *Value) { v.State = st })
}

// bindRefresh installs the controller's refresh action.
func (s *Store) bindRefresh(fn func()) {
	s.update(func(v *Value) { v.RefreshAuth = fn })
}

func (s *Store) update(mutate func(*Value)) {
	s.mu.Lock()
	mutate(&s.value)
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.queue = append(s.queue, notification{value: s.value, subs: subs})
	s.mu.Unlock()
	s.drain()
}

// drain delivers queued notifications unless another call is already doing so.
func (s *Store) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		n := s.queue[0]
		s.queue[0] = notification{}
		s.queue = s.queue[1:]
		s.mu.Unlock()
		for _, sub := range n.subs {
			if sub.active.Load() {
				sub.fn(n.value)
			}
		}
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}
