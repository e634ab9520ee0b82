package crypto

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"math/big"
	"testing"
)

func testMaterials(t *testing.T) (*PublicKeyMaterial, *PrivateKeyMaterial) {
	t.Helper()
	key := testKey(t)

	pub, err := ParsePublicKey(publicKeyPEM(t, key))
	if err != nil {
		t.Fatal(err)
	}
	priv, err := ParsePrivateKey(privateKeyPKCS8PEM(t, key))
	if err != nil {
		t.Fatal(err)
	}
	return pub, priv
}

func TestEncrypt_Decrypt_RoundTrip(t *testing.T) {
	pub, priv := testMaterials(t)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello world")},
		{"json", []byte(`{"text": "Hij loop naar huis.", "language": "nl"}`)},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Encrypt(tt.plaintext, pub)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			if len(env.IV) != IVSize {
				t.Errorf("IV length = %d, want %d", len(env.IV), IVSize)
			}
			if len(env.EncryptedData) != len(tt.plaintext)+TagSize {
				t.Errorf("encrypted data length = %d, want %d", len(env.EncryptedData), len(tt.plaintext)+TagSize)
			}
			if env.Version != EnvelopeVersion {
				t.Errorf("version = %q, want %q", env.Version, EnvelopeVersion)
			}

			decrypted, err := Decrypt(env, priv)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Error("round trip changed plaintext")
			}
		})
	}
}

func TestEncrypt_Decrypt_WireScenario(t *testing.T) {
	pub, priv := testMaterials(t)
	plaintext := []byte(`{"text":"Ik heb de boek gelezen."}`)

	env, err := Encrypt(plaintext, pub)
	if err != nil {
		t.Fatal(err)
	}

	// Through the wire form and back.
	wire, err := EncodeEnvelope(env)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeEnvelope(wire)
	if err != nil {
		t.Fatal(err)
	}

	if len(decoded.IV) != 12 {
		t.Errorf("decoded IV length = %d, want 12", len(decoded.IV))
	}
	if len(decoded.EncryptedData) != len(plaintext)+16 {
		t.Errorf("encrypted data length = %d, want %d", len(decoded.EncryptedData), len(plaintext)+16)
	}

	recovered, err := Decrypt(decoded, priv)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("recovered = %q, want %q", recovered, plaintext)
	}
}

func TestEncrypt_FreshKeyAndIV(t *testing.T) {
	pub, _ := testMaterials(t)
	plaintext := []byte("identical input")

	seenIVs := make(map[string]bool)
	seenKeys := make(map[string]bool)

	for i := 0; i < 50; i++ {
		env, err := Encrypt(plaintext, pub)
		if err != nil {
			t.Fatal(err)
		}
		if seenIVs[string(env.IV)] {
			t.Fatal("IV repeated across encrypt calls")
		}
		if seenKeys[string(env.EncryptedKey)] {
			t.Fatal("encrypted key repeated across encrypt calls")
		}
		seenIVs[string(env.IV)] = true
		seenKeys[string(env.EncryptedKey)] = true
	}
}

func TestDecrypt_TamperDetection(t *testing.T) {
	pub, priv := testMaterials(t)
	plaintext := []byte(`{"text":"Zij is naar school gegaan gisteren."}`)

	env, err := Encrypt(plaintext, pub)
	if err != nil {
		t.Fatal(err)
	}

	// Flip one byte at several positions, including inside the tag.
	positions := []int{0, len(env.EncryptedData) / 2, len(env.EncryptedData) - 1}
	for _, pos := range positions {
		tampered := &Envelope{
			EncryptedKey:  env.EncryptedKey,
			EncryptedData: append([]byte(nil), env.EncryptedData...),
			IV:            env.IV,
			Version:       env.Version,
		}
		tampered.EncryptedData[pos] ^= 0x01

		if _, err := Decrypt(tampered, priv); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("flip at %d: error = %v, want ErrDecryptionFailed", pos, err)
		}
	}

	// Truncation must also fail closed.
	truncated := &Envelope{
		EncryptedKey:  env.EncryptedKey,
		EncryptedData: env.EncryptedData[:len(env.EncryptedData)-1],
		IV:            env.IV,
		Version:       env.Version,
	}
	if _, err := Decrypt(truncated, priv); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("truncated: error = %v, want ErrDecryptionFailed", err)
	}

	// A wrapped key that is not a whole number of RSA blocks is
	// rejected up front.
	if got := priv.Public().ModulusSize(); len(env.EncryptedKey) != got {
		t.Fatalf("wrapped key is %d bytes, want one %d-byte block", len(env.EncryptedKey), got)
	}
	shortKey := &Envelope{
		EncryptedKey:  env.EncryptedKey[:len(env.EncryptedKey)-1],
		EncryptedData: env.EncryptedData,
		IV:            env.IV,
		Version:       env.Version,
	}
	if _, err := Decrypt(shortKey, priv); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("short wrapped key: error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_RequiresClientKey(t *testing.T) {
	pub, _ := testMaterials(t)

	env, err := Encrypt([]byte("payload"), pub)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Decrypt(env, nil); !errors.Is(err, ErrClientKeyNotConfigured) {
		t.Errorf("nil key: error = %v, want ErrClientKeyNotConfigured", err)
	}

	_, priv := testMaterials(t)
	env.EncryptedKey = nil
	if _, err := Decrypt(env, priv); !errors.Is(err, ErrClientKeyNotConfigured) {
		t.Errorf("empty encrypted_key: error = %v, want ErrClientKeyNotConfigured", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	pub, _ := testMaterials(t)

	env, err := Encrypt([]byte("payload"), pub)
	if err != nil {
		t.Fatal(err)
	}

	other, err := generateOtherKey()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt(env, other); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("error = %v, want ErrDecryptionFailed", err)
	}
}

// generateOtherKey builds private key material unrelated to the shared
// test key.
func generateOtherKey() (*PrivateKeyMaterial, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return &PrivateKeyMaterial{
		Modulus:         key.N,
		PublicExponent:  big.NewInt(int64(key.E)),
		PrivateExponent: key.D,
		PrimeP:          key.Primes[0],
		PrimeQ:          key.Primes[1],
	}, nil
}

func TestDecryptWithKey(t *testing.T) {
	pub, _ := testMaterials(t)
	plaintext := []byte("resumed session payload")

	env, err := Encrypt(plaintext, pub)
	if err != nil {
		t.Fatal(err)
	}

	// Recover the AES key via the private path once, then use the
	// symmetric-only path as a resumption client would.
	_, priv := testMaterials(t)
	rsaPriv, err := priv.rsaKey()
	if err != nil {
		t.Fatal(err)
	}
	aesKey, err := unwrapKey(env.EncryptedKey, rsaPriv)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := DecryptWithKey(env, aesKey)
	if err != nil {
		t.Fatalf("DecryptWithKey() error = %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Error("symmetric-path round trip changed plaintext")
	}

	wrongKey := make([]byte, AESKeySize)
	if _, err := rand.Read(wrongKey); err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptWithKey(env, wrongKey); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("wrong key: error = %v, want ErrDecryptionFailed", err)
	}

	if _, err := DecryptWithKey(env, wrongKey[:16]); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("short key: error = %v, want ErrInvalidKeySize", err)
	}
}
