// Package crypto implements the hybrid encryption scheme used by the
// ileterate Grammar API for end-to-end protection of request and
// response bodies, independent of TLS.
//
// # Scheme
//
// Each payload is encrypted with a one-time 256-bit AES key under
// AES-256-GCM, and the AES key is wrapped with RSA-OAEP (SHA-256 for
// both the hash and the MGF) under the recipient's public key. The
// result travels as a versioned JSON envelope:
//
//	{
//	  "encrypted_key":  "<base64 RSA-wrapped AES key>",
//	  "encrypted_data": "<base64 ciphertext || 16-byte GCM tag>",
//	  "iv":             "<base64 12-byte nonce>",
//	  "version":        "1.0"
//	}
//
// All binary fields use standard base64 with padding, matching the
// server's encoding.
//
// # Key material
//
// RSA keys arrive as PEM text. [ParsePublicKey] accepts
// SubjectPublicKeyInfo; [ParsePrivateKey] accepts both PKCS#1 and
// PKCS#8. Both return arbitrary-precision key material rather than
// opaque handles, so callers can inspect and re-export the numbers.
//
// # Critical security notes
//
// The AES key and IV are drawn fresh from crypto/rand on every
// [Encrypt] call and are never cached. Nonce reuse under the same key
// completely breaks AES-GCM, allowing attackers to recover the
// authentication key and forge messages; the API is shaped so that
// reuse cannot happen.
//
// Decryption fails closed: a GCM tag mismatch returns
// [ErrDecryptionFailed] and never partial plaintext.
//
// # Known v1 limitation
//
// The handshake is one-directional: the client fetches the server's
// public key but never registers its own. Decrypting server responses
// therefore requires a pre-provisioned client private key; without one,
// [Decrypt] fails with [ErrClientKeyNotConfigured]. This mirrors the
// deployed protocol and is not papered over here.
package crypto
