package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// sealAESGCM encrypts plaintext with AES-256-GCM. The returned slice is
// ciphertext with the 16-byte authentication tag appended; the IV
// travels separately in the envelope.
func sealAESGCM(key, iv, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, iv, plaintext, nil), nil
}

// openAESGCM decrypts ciphertext||tag with AES-256-GCM, verifying the
// tag. On verification failure it returns ErrDecryptionFailed and no
// plaintext.
func openAESGCM(key, iv, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than tag", ErrDecryptionFailed)
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key, iv []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), IVSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
