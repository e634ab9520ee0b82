package ileterate

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"sync"
	"testing"

	"github.com/ileterate/client-go/internal/api"
	"github.com/ileterate/client-go/internal/crypto"
)

var (
	testKeyOnce   sync.Once
	testServerKey *rsa.PrivateKey
	testClientKey *rsa.PrivateKey
)

// testKeys returns a shared server and client RSA key pair. Key
// generation is slow, so the keys are reused across tests.
func testKeys(t *testing.T) (server, client *rsa.PrivateKey) {
	t.Helper()
	testKeyOnce.Do(func() {
		var err error
		testServerKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testClientKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
	})
	return testServerKey, testClientKey
}

func publicPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func privatePEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der := x509.MarshalPKCS1PrivateKey(key)
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: der}))
}

// decryptEnvelope opens an envelope body the way the server would,
// using the given RSA private key.
func decryptEnvelope(t *testing.T, key *rsa.PrivateKey, body []byte) []byte {
	t.Helper()
	material, err := crypto.ParsePrivateKey(privatePEM(t, key))
	if err != nil {
		t.Fatalf("parse private key: %v", err)
	}
	env, err := crypto.DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	plaintext, err := crypto.Decrypt(env, material)
	if err != nil {
		t.Fatalf("decrypt envelope: %v", err)
	}
	return plaintext
}

// encryptFor builds an envelope body for the given public key, the way
// the server encrypts a response.
func encryptFor(t *testing.T, pub *rsa.PublicKey, plaintext []byte) []byte {
	t.Helper()
	material, err := crypto.ParsePublicKey(pemForPublic(t, pub))
	if err != nil {
		t.Fatalf("parse public key: %v", err)
	}
	env, err := crypto.Encrypt(plaintext, material)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	body, err := crypto.EncodeEnvelope(env)
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	return body
}

func pemForPublic(t *testing.T, pub *rsa.PublicKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatal(err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// serveKeyEndpoint writes the standard handshake response.
func serveKeyEndpoint(w http.ResponseWriter, publicKeyPEM string) {
	json.NewEncoder(w).Encode(map[string]string{
		"public_key":     publicKeyPEM,
		"algorithm":      "RSA-2048",
		"key_encryption": "RSA-OAEP-SHA256",
	})
}

// checkResponseFor echoes a minimal successful check response.
func checkResponseFor(req *api.CheckRequest) *api.CheckResponse {
	return &api.CheckResponse{
		OriginalText:     req.Text,
		CorrectedText:    req.Text,
		ValidationPassed: true,
		Language:         req.Language,
	}
}
