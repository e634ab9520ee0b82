package crypto

import "sync"

// SessionState is the lifecycle state of an encryption session.
type SessionState int

const (
	// StateUninitialized means no key material has been loaded yet.
	StateUninitialized SessionState = iota
	// StateInitializing means Initialize is parsing key material.
	StateInitializing
	// StateReady means key material is loaded and usable.
	StateReady
	// StateFailed means the last Initialize failed on a parse error.
	StateFailed
)

// String returns the state name for logs and errors.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session holds parsed key material for one transport instance. It is
// the only mutable state in the package: Initialize is the sole writer,
// and after the session reaches StateReady the material is read-only
// and safe to share across concurrent encrypt/decrypt calls.
type Session struct {
	mu        sync.RWMutex
	state     SessionState
	serverKey *PublicKeyMaterial
	clientKey *PrivateKeyMaterial
}

// NewSession returns an uninitialized session.
func NewSession() *Session {
	return &Session{state: StateUninitialized}
}

// Initialize parses the supplied PEM material and moves the session to
// StateReady, overwriting any prior material. clientPrivateKeyPEM may be
// empty; response decryption is then unavailable. On a parse error the
// session moves to StateFailed, any prior material is cleared, and the
// error is returned without retrying.
func (s *Session) Initialize(serverPublicKeyPEM, clientPrivateKeyPEM string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateInitializing

	serverKey, err := ParsePublicKey(serverPublicKeyPEM)
	if err != nil {
		s.fail()
		return err
	}

	var clientKey *PrivateKeyMaterial
	if clientPrivateKeyPEM != "" {
		clientKey, err = ParsePrivateKey(clientPrivateKeyPEM)
		if err != nil {
			s.fail()
			return err
		}
	}

	s.serverKey = serverKey
	s.clientKey = clientKey
	s.state = StateReady
	return nil
}

func (s *Session) fail() {
	s.state = StateFailed
	s.serverKey = nil
	s.clientKey = nil
}

// IsReady reports whether the session holds usable key material.
func (s *Session) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Keys returns the session's key material, or ErrSessionNotReady if the
// session is not in StateReady. The returned material is immutable.
func (s *Session) Keys() (*PublicKeyMaterial, *PrivateKeyMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, nil, ErrSessionNotReady
	}
	return s.serverKey, s.clientKey, nil
}

// HasClientKey reports whether a client private key is loaded, which is
// required to decrypt server responses.
func (s *Session) HasClientKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady && s.clientKey != nil
}
