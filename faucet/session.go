package faucet

import "sync"

// Session holds the wallet address known to a Client.
type Session struct {
	mu      sync.RWMutex
	address string
}

// Address returns the connected address, if any
func (s *Session) Address() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address, s.address != ""
}

// Set stores address and reports whether the session changed.
func (s *Session) Set(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == address {
		return false
	}
	s.address = address
	return true
}

// Clear forgets the address and reports whether one was held.
func (s *Session) Clear() bool {
	return s.Set("")
}
