package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
)

// PublicKeyMaterial holds the numeric components of an RSA public key.
// Material is immutable once parsed and lives only as long as the
// session that holds it.
type PublicKeyMaterial struct {
	// Modulus is the RSA modulus n.
	Modulus *big.Int
	// Exponent is the public exponent e.
	Exponent *big.Int
}

// PrivateKeyMaterial holds the numeric components of an RSA private key.
// The public exponent is retained because crypto/rsa requires it to
// build a consistent key.
type PrivateKeyMaterial struct {
	// Modulus is the RSA modulus n.
	Modulus *big.Int
	// PublicExponent is the public exponent e.
	PublicExponent *big.Int
	// PrivateExponent is the private exponent d.
	PrivateExponent *big.Int
	// PrimeP is the first prime factor of n.
	PrimeP *big.Int
	// PrimeQ is the second prime factor of n.
	PrimeQ *big.Int
}

// rsaKey converts the material into a stdlib RSA public key.
func (m *PublicKeyMaterial) rsaKey() (*rsa.PublicKey, error) {
	if m == nil || m.Modulus == nil || m.Exponent == nil {
		return nil, ErrInvalidPublicKey
	}
	if !m.Exponent.IsInt64() || m.Exponent.Int64() < 3 {
		return nil, fmt.Errorf("%w: exponent out of range", ErrInvalidPublicKey)
	}
	return &rsa.PublicKey{N: m.Modulus, E: int(m.Exponent.Int64())}, nil
}

// ModulusSize returns the modulus size in bytes, the RSA output block
// size, or 0 when no modulus is present.
func (m *PublicKeyMaterial) ModulusSize() int {
	if m == nil || m.Modulus == nil {
		return 0
	}
	return (m.Modulus.BitLen() + 7) / 8
}

// MarshalPEM re-exports the material as a SubjectPublicKeyInfo PEM block.
// Parsing the result yields numerically identical components.
func (m *PublicKeyMaterial) MarshalPEM() (string, error) {
	pub, err := m.rsaKey()
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// rsaKey converts the material into a stdlib RSA private key, validating
// consistency of the components.
func (m *PrivateKeyMaterial) rsaKey() (*rsa.PrivateKey, error) {
	if m == nil || m.Modulus == nil || m.PrivateExponent == nil || m.PrimeP == nil || m.PrimeQ == nil {
		return nil, ErrUnexpectedKeyFormat
	}
	if m.PublicExponent == nil || !m.PublicExponent.IsInt64() {
		return nil, fmt.Errorf("%w: public exponent out of range", ErrUnexpectedKeyFormat)
	}
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: m.Modulus,
			E: int(m.PublicExponent.Int64()),
		},
		D:      m.PrivateExponent,
		Primes: []*big.Int{m.PrimeP, m.PrimeQ},
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedKeyFormat, err)
	}
	priv.Precompute()
	return priv, nil
}

// Public returns the public half of the private key material.
func (m *PrivateKeyMaterial) Public() *PublicKeyMaterial {
	return &PublicKeyMaterial{Modulus: m.Modulus, Exponent: m.PublicExponent}
}
