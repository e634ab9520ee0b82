package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
)

// Encrypt produces an encrypted envelope for plaintext under the given
// public key. A fresh AES-256 key and 12-byte IV are drawn from
// crypto/rand on every call; neither is ever reused or cached.
func Encrypt(plaintext []byte, pub *PublicKeyMaterial) (*Envelope, error) {
	rsaPub, err := pub.rsaKey()
	if err != nil {
		return nil, err
	}

	aesKey := make([]byte, AESKeySize)
	if _, err := io.ReadFull(rand.Reader, aesKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	encryptedData, err := sealAESGCM(aesKey, iv, plaintext)
	if err != nil {
		return nil, err
	}

	encryptedKey, err := wrapKey(aesKey, rsaPub)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		EncryptedKey:  encryptedKey,
		EncryptedData: encryptedData,
		IV:            iv,
		Version:       EnvelopeVersion,
	}, nil
}

// wrapKey RSA-OAEP-encrypts the AES key under pub, chunking through
// processBlocks. OAEP with SHA-256 caps each input block at
// k - 2*hLen - 2 bytes for a k-byte modulus.
func wrapKey(aesKey []byte, pub *rsa.PublicKey) ([]byte, error) {
	maxInput := pub.Size() - 2*sha256.Size - 2
	return processBlocks(aesKey, maxInput, func(block []byte) ([]byte, error) {
		wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, block, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		return wrapped, nil
	})
}
