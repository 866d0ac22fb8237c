// Package views holds the dashboard's presentation state and the pure projections
// each presentation mode renders from a store snapshot.
package views

import (
	"errors"
	"fmt"
	"sync"
)

// Mode is one of the three mutually exclusive presentations
type Mode string

const (
	ModeMap        Mode = "map"
	ModeStatistics Mode = "statistics"
	ModeTable      Mode = "table"
)

var ErrUnknownMode = errors.New("unknown view mode")

// Modes lists the presentations in tab order
var Modes = []Mode{ModeMap, ModeStatistics, ModeTable}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Label is the tab caption
func (m Mode) Label() string {
	switch m {
	case ModeMap:
		return "Map"
	case ModeStatistics:
		return "Statistics"
	case ModeTable:
		return "Table"
	default:
		return string(m)
	}
}

// Selector tracks which presentation is active. It never touches the store.
type Selector struct {
	mu       sync.RWMutex
	current  Mode
	onChange func(Mode)
}

// NewSelector starts on the map view
func NewSelector() *Selector {
	return &Selector{current: ModeMap}
}

// OnChange registers a hook called when the active mode actually changes
func (s *Selector) OnChange(fn func(Mode)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Current returns the active mode
func (s *Selector) Current() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select activates mode. Selecting the active mode again changes nothing.
func (s *Selector) Select(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.current != mode
	s.current = mode
	hook := s.onChange
	s.mu.Unlock()

	if changed && hook != nil {
		hook(mode)
	}
	return nil
}
