package network

import "sync"

// Override pins the reported connectivity. Forced returns ok == false when the
// device signal should be used.
type Override interface {
	Forced() (online bool, ok bool)
}

type pinned bool

func (p pinned) Forced() (bool, bool) { return bool(p), true }

// Pin returns an override that always reports online as given
func Pin(online bool) Override {
	return pinned(online)
}

// Switch is a mutable override, for tests and debug tooling. The zero value
// defers to the device.
type Switch struct {
	mu    sync.RWMutex
	value *bool
}

// Set pins the reported value; nil restores device-driven behaviour
func (s *Switch) Set(online *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if online == nil {
		s.value = nil
		return
	}
	v := *online
	s.value = &v
}

func (s *Switch) Forced() (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == nil {
		return false, false
	}
	return *s.value, true
}
