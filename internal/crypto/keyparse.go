package crypto

import (
	encasn1 "encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// ParsePublicKey parses a PEM-encoded SubjectPublicKeyInfo RSA public
// key into numeric key material.
func ParsePublicKey(pemText string) (*PublicKeyMaterial, error) {
	der, err := decodePEM(pemText)
	if err != nil {
		return nil, err
	}
	return parsePublicKeyDER(der)
}

// ParsePrivateKey parses a PEM-encoded RSA private key into numeric key
// material. Both PKCS#1 (RSAPrivateKey) and PKCS#8 (PrivateKeyInfo)
// encodings are accepted; they are distinguished by the element count of
// the outer sequence rather than by the PEM header.
func ParsePrivateKey(pemText string) (*PrivateKeyMaterial, error) {
	der, err := decodePEM(pemText)
	if err != nil {
		return nil, err
	}

	outer := cryptobyte.String(der)
	var seq cryptobyte.String
	if !outer.ReadASN1(&seq, asn1.SEQUENCE) || !outer.Empty() {
		return nil, fmt.Errorf("%w: private key is not a sequence", ErrMalformedDER)
	}

	// PKCS#8 PrivateKeyInfo has exactly three elements: version,
	// algorithm identifier, and the wrapped key as an OCTET STRING.
	// Anything else is treated as a bare PKCS#1 RSAPrivateKey.
	if countElements(seq) == 3 {
		var version, algorithm cryptobyte.String
		var tag asn1.Tag
		if !seq.ReadAnyASN1(&version, &tag) || !seq.ReadAnyASN1(&algorithm, &tag) {
			return nil, fmt.Errorf("%w: truncated PrivateKeyInfo", ErrMalformedDER)
		}
		var wrapped cryptobyte.String
		if !seq.ReadASN1(&wrapped, asn1.OCTET_STRING) {
			return nil, fmt.Errorf("%w: PrivateKeyInfo payload is not an octet string", ErrUnexpectedKeyFormat)
		}
		inner := cryptobyte.String(wrapped)
		var rsaSeq cryptobyte.String
		if !inner.ReadASN1(&rsaSeq, asn1.SEQUENCE) || !inner.Empty() {
			return nil, fmt.Errorf("%w: wrapped RSAPrivateKey is not a sequence", ErrMalformedDER)
		}
		return parseRSAPrivateKeyElements(rsaSeq)
	}

	return parseRSAPrivateKeyElements(seq)
}

// parsePublicKeyDER walks SubjectPublicKeyInfo down to the embedded
// RSAPublicKey sequence and reads modulus and exponent.
func parsePublicKeyDER(der []byte) (*PublicKeyMaterial, error) {
	input := cryptobyte.String(der)
	var spki cryptobyte.String
	if !input.ReadASN1(&spki, asn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("%w: not a SubjectPublicKeyInfo sequence", ErrMalformedDER)
	}

	var algorithm cryptobyte.String
	if !spki.ReadASN1(&algorithm, asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: missing algorithm identifier", ErrMalformedDER)
	}

	var bits encasn1.BitString
	if !spki.ReadASN1BitString(&bits) {
		return nil, fmt.Errorf("%w: missing subjectPublicKey bit string", ErrMalformedDER)
	}

	keyBytes := cryptobyte.String(bits.RightAlign())
	var rsaSeq cryptobyte.String
	if !keyBytes.ReadASN1(&rsaSeq, asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: embedded key is not an RSAPublicKey sequence", ErrMalformedDER)
	}

	modulus, exponent := new(big.Int), new(big.Int)
	if !rsaSeq.ReadASN1Integer(modulus) || !rsaSeq.ReadASN1Integer(exponent) {
		return nil, fmt.Errorf("%w: RSAPublicKey missing modulus or exponent", ErrUnexpectedKeyFormat)
	}
	if modulus.Sign() <= 0 || exponent.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive key component", ErrUnexpectedKeyFormat)
	}

	return &PublicKeyMaterial{Modulus: modulus, Exponent: exponent}, nil
}

// parseRSAPrivateKeyElements reads the RSAPrivateKey sequence by fixed
// element index: 0 version, 1 modulus, 2 public exponent, 3 private
// exponent, 4 prime1, 5 prime2. Later CRT elements are ignored.
func parseRSAPrivateKeyElements(seq cryptobyte.String) (*PrivateKeyMaterial, error) {
	elements := make([]*big.Int, 6)
	for i := range elements {
		elements[i] = new(big.Int)
		if !seq.ReadASN1Integer(elements[i]) {
			return nil, fmt.Errorf("%w: RSAPrivateKey element %d missing or not an integer", ErrUnexpectedKeyFormat, i)
		}
	}
	if elements[1].Sign() <= 0 || elements[3].Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive key component", ErrUnexpectedKeyFormat)
	}

	return &PrivateKeyMaterial{
		Modulus:         elements[1],
		PublicExponent:  elements[2],
		PrivateExponent: elements[3],
		PrimeP:          elements[4],
		PrimeQ:          elements[5],
	}, nil
}

// countElements counts the top-level elements of a sequence body.
// It operates on a copy, so the caller's position is unchanged.
func countElements(seq cryptobyte.String) int {
	n := 0
	for !seq.Empty() {
		var element cryptobyte.String
		var tag asn1.Tag
		if !seq.ReadAnyASN1Element(&element, &tag) {
			return -1
		}
		n++
	}
	return n
}

// decodePEM strips PEM armor and whitespace and base64-decodes the body
// to DER. Input without armor is treated as a bare base64 body, which
// some deployments return from the key endpoint.
func decodePEM(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPEM)
	}

	if strings.Contains(trimmed, "-----BEGIN") {
		block, _ := pem.Decode([]byte(trimmed))
		if block == nil {
			return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPEM)
		}
		return block.Bytes, nil
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)

	der, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPEM, err)
	}
	return der, nil
}
