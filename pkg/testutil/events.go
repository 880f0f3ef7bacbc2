package testutil

import (
	"sync"

	"github.com/arthur-debert/srcexport/pkg/types"
)

// Event is one recorded event
type Event struct {
	Category types.Category
	Value    string
}

// RecordingSink keeps every event it receives
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Log implements types.EventSink
func (s *RecordingSink) Log(category types.Category, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Category: category, Value: value})
}

// Events returns a copy of all recorded events in order
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Values returns the values recorded for one category in order
func (s *RecordingSink) Values(category types.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		if e.Category == category {
			out = append(out, e.Value)
		}
	}
	return out
}

// Count returns how many events of one category were recorded
func (s *RecordingSink) Count(category types.Category) int {
	return len(s.Values(category))
}
