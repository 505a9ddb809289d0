package utils

import "sync"

// ScriptedSource returns queued values in order, clamped into the requested
// range. When the queue is empty it returns min.
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
}

// NewScriptedSource creates a ScriptedSource from the given values
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Push appends more values to the queue
func (s *ScriptedSource) Push(values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values...)
}

// IntN returns the next scripted value clamped to [min, max]
func (s *ScriptedSource) IntN(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return min
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
