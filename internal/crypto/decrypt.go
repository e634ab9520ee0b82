package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// Decrypt recovers the plaintext from an envelope using the client's
// private key: RSA-OAEP-unwrap the AES key, then AES-GCM-decrypt with
// tag verification. Requires a non-empty encrypted_key and a configured
// private key; the v1 handshake never registers a client key with the
// server, so the key must be provisioned out-of-band.
func Decrypt(env *Envelope, priv *PrivateKeyMaterial) ([]byte, error) {
	if env == nil {
		return nil, ErrInvalidEnvelope
	}
	if priv == nil || len(env.EncryptedKey) == 0 {
		return nil, ErrClientKeyNotConfigured
	}

	// Wrapped keys are whole RSA blocks; check against the modulus size
	// before doing any expensive key validation.
	k := priv.Public().ModulusSize()
	if k == 0 || len(env.EncryptedKey)%k != 0 {
		return nil, fmt.Errorf("%w: wrapped key length %d is not a multiple of modulus size %d", ErrDecryptionFailed, len(env.EncryptedKey), k)
	}

	rsaPriv, err := priv.rsaKey()
	if err != nil {
		return nil, err
	}

	aesKey, err := unwrapKey(env.EncryptedKey, rsaPriv)
	if err != nil {
		return nil, err
	}
	if len(aesKey) != AESKeySize {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes", ErrInvalidKeySize, len(aesKey))
	}

	return openAESGCM(aesKey, env.IV, env.EncryptedData)
}

// DecryptWithKey decrypts an envelope with an already-known AES key,
// skipping the RSA unwrap. Used for session resumption where the
// symmetric key was obtained out-of-band. Failure semantics match
// Decrypt: tag mismatch yields ErrDecryptionFailed and no plaintext.
func DecryptWithKey(env *Envelope, aesKey []byte) ([]byte, error) {
	if env == nil {
		return nil, ErrInvalidEnvelope
	}
	return openAESGCM(aesKey, env.IV, env.EncryptedData)
}

// unwrapKey RSA-OAEP-decrypts the wrapped AES key, chunking the input
// into modulus-size ciphertext blocks. Callers have already checked the
// length is a whole number of blocks.
func unwrapKey(wrapped []byte, priv *rsa.PrivateKey) ([]byte, error) {
	return processBlocks(wrapped, priv.Size(), func(block []byte) ([]byte, error) {
		out, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, block, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: key unwrap: %v", ErrDecryptionFailed, err)
		}
		return out, nil
	})
}
