package crypto

import "errors"

var (
	// ErrInvalidPEM is returned when input is not PEM armor or bare base64.
	ErrInvalidPEM = errors.New("invalid PEM data")

	// ErrMalformedDER is returned when DER bytes cannot be read as the
	// expected ASN.1 structure.
	ErrMalformedDER = errors.New("malformed DER structure")

	// ErrUnexpectedKeyFormat is returned when the DER parses but does not
	// have the expected element at an expected position.
	ErrUnexpectedKeyFormat = errors.New("unexpected key format")

	// ErrInvalidPublicKey is returned when encrypting against missing or
	// structurally invalid public key material.
	ErrInvalidPublicKey = errors.New("invalid public key material")

	// ErrRandomSource is returned when the system random source fails.
	ErrRandomSource = errors.New("random source failure")

	// ErrDecryptionFailed is returned when GCM tag verification or RSA
	// unwrapping fails. No partial plaintext is ever returned.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrClientKeyNotConfigured is returned when response decryption is
	// attempted without a client private key. The v1 handshake is
	// one-directional, so this requires out-of-band provisioning.
	ErrClientKeyNotConfigured = errors.New("client private key not configured")

	// ErrInvalidKeySize is returned when an AES key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when the IV does not decode to exactly
	// 12 bytes.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrInvalidEnvelope is returned when the envelope JSON or its base64
	// fields are malformed.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrUnsupportedVersion is returned when the envelope carries an
	// unrecognized version string.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrSessionNotReady is returned when encryption is requested before
	// the session has been initialized with server key material.
	ErrSessionNotReady = errors.New("encryption session not ready")
)
