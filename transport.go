package ileterate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ileterate/client-go/internal/api"
	"github.com/ileterate/client-go/internal/crypto"
)

// handshakeLocked fetches the server's public key and initializes the
// encryption session. Callers must hold handshakeMu.
func (c *Client) handshakeLocked(ctx context.Context) error {
	if c.handshakeDone {
		return nil
	}

	info, err := c.apiClient.GetPublicKey(ctx)
	if err != nil {
		// Fetch failures leave the session untouched so a later
		// RefreshEncryptionKey can still succeed.
		c.handshakeDone = true
		return wrapError(err)
	}

	c.handshakeDone = true
	if err := c.session.Initialize(info.PublicKey, c.clientPrivateKey); err != nil {
		return &KeyParseError{Key: "server", Err: err}
	}
	return nil
}

// ensureSession runs the lazy handshake and returns the server key to
// encrypt with, or nil when the request should go out in plaintext.
// With RequireEncryption a missing session is an error instead.
func (c *Client) ensureSession(ctx context.Context) (*crypto.PublicKeyMaterial, error) {
	if !c.encryption {
		return nil, nil
	}

	c.handshakeMu.Lock()
	handshakeErr := c.handshakeLocked(ctx)
	c.handshakeMu.Unlock()

	serverKey, _, keysErr := c.session.Keys()
	if keysErr != nil {
		if c.requireEncryption {
			if handshakeErr != nil {
				return nil, &EncryptionError{Err: handshakeErr}
			}
			return nil, &EncryptionError{Err: keysErr}
		}
		// Plaintext fallback. A client private key without an
		// established session is useless, so the request does not
		// advertise encrypted responses either.
		return nil, nil
	}

	return serverKey, nil
}

// doCheck serializes and submits a check request, encrypting the body
// and decrypting the response when the session is established.
func (c *Client) doCheck(ctx context.Context, req *api.CheckRequest) (*api.CheckResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal check request: %w", err)
	}

	serverKey, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	contentType := api.ContentTypeJSON
	acceptEncrypted := false

	if serverKey != nil {
		env, err := crypto.Encrypt(body, serverKey)
		if err != nil {
			return nil, &EncryptionError{Err: err}
		}
		body, err = crypto.EncodeEnvelope(env)
		if err != nil {
			return nil, &EncryptionError{Err: err}
		}
		contentType = api.ContentTypeEncrypted
		// Only advertise encrypted responses when we hold a key that
		// can decrypt them.
		acceptEncrypted = c.session.HasClientKey()
	}

	resp, err := c.apiClient.SubmitCheck(ctx, contentType, acceptEncrypted, body)
	if err != nil {
		return nil, wrapError(err)
	}

	plaintext, err := c.decodeResponse(resp)
	if err != nil {
		return nil, err
	}

	var result api.CheckResponse
	if err := json.Unmarshal(plaintext, &result); err != nil {
		return nil, fmt.Errorf("decode check response: %w", err)
	}
	return &result, nil
}

// decodeResponse returns the plaintext response body, decrypting it
// when the Content-Type carries the encryption marker. The branch is
// driven by the header alone, never by inspecting the body.
func (c *Client) decodeResponse(resp *api.RawResponse) ([]byte, error) {
	if !api.IsEncryptedContentType(resp.ContentType) {
		return resp.Body, nil
	}

	env, err := crypto.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	_, clientKey, err := c.session.Keys()
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	plaintext, err := crypto.Decrypt(env, clientKey)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	return plaintext, nil
}
