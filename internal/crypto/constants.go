package crypto

const (
	// AESKeySize is the size of the one-time AES-256 key in bytes.
	AESKeySize = 32
	// IVSize is the size of an AES-GCM nonce in bytes.
	IVSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// EnvelopeVersion is the envelope version produced by this package.
	EnvelopeVersion = "1.0"
)

// supportedVersions is the set of envelope versions this package can
// decode. Unrecognized versions are rejected, not guessed at.
var supportedVersions = map[string]bool{
	"1.0": true,
}

// SupportedVersion reports whether v is a recognized envelope version.
func SupportedVersion(v string) bool {
	return supportedVersions[v]
}
