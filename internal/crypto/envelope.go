package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Envelope is the decoded wire envelope: an RSA-wrapped one-time AES
// key, the AEAD ciphertext with its tag, and the GCM nonce. It is an
// immutable value object.
type Envelope struct {
	// EncryptedKey is the RSA-OAEP-wrapped AES key. It may be empty when
	// the symmetric key is known out-of-band.
	EncryptedKey []byte
	// EncryptedData is the AES-GCM ciphertext with the 16-byte tag appended.
	EncryptedData []byte
	// IV is the 12-byte GCM nonce.
	IV []byte
	// Version is the envelope format version.
	Version string
}

// wireEnvelope is the JSON form with standard-base64 fields.
type wireEnvelope struct {
	EncryptedKey  string `json:"encrypted_key"`
	EncryptedData string `json:"encrypted_data"`
	IV            string `json:"iv"`
	Version       string `json:"version"`
}

// EncodeEnvelope serializes an envelope to its JSON wire form.
func EncodeEnvelope(env *Envelope) ([]byte, error) {
	if env == nil {
		return nil, ErrInvalidEnvelope
	}
	version := env.Version
	if version == "" {
		version = EnvelopeVersion
	}
	return json.Marshal(&wireEnvelope{
		EncryptedKey:  base64.StdEncoding.EncodeToString(env.EncryptedKey),
		EncryptedData: base64.StdEncoding.EncodeToString(env.EncryptedData),
		IV:            base64.StdEncoding.EncodeToString(env.IV),
		Version:       version,
	})
}

// DecodeEnvelope parses and validates the JSON wire form. A missing
// encrypted_key defaults to empty and a missing version to "1.0", for
// compatibility with older senders. Unrecognized versions and IVs that
// are not exactly 12 bytes are rejected.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	if wire.Version == "" {
		wire.Version = EnvelopeVersion
	}
	if !SupportedVersion(wire.Version) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, wire.Version)
	}

	encryptedKey, err := base64.StdEncoding.DecodeString(wire.EncryptedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encrypted_key base64: %v", ErrInvalidEnvelope, err)
	}
	encryptedData, err := base64.StdEncoding.DecodeString(wire.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encrypted_data base64: %v", ErrInvalidEnvelope, err)
	}
	iv, err := base64.StdEncoding.DecodeString(wire.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: bad iv base64: %v", ErrInvalidEnvelope, err)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), IVSize)
	}

	return &Envelope{
		EncryptedKey:  encryptedKey,
		EncryptedData: encryptedData,
		IV:            iv,
		Version:       wire.Version,
	}, nil
}
