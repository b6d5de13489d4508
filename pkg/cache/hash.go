package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of a request.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the request that changes the
// bytes of an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeWidth float64 `json:"stroke_width"`
}

// ArtifactNamespace starts every key produced by [DefaultKeyer].
const ArtifactNamespace = "artifact"

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey(ArtifactNamespace, requestHash, opts)
}

// ArtifactPattern returns the glob matching every artifact key produced
// by a [ScopedKeyer] with the given scope, or by [DefaultKeyer] when scope
// is empty.
func ArtifactPattern(scope string) string {
	return scope + ArtifactNamespace + ":*"
}

// RequestHash hashes the JSON encoding of v. Values that cannot be encoded
// hash to the empty string, which never matches a stored key.
func RequestHash(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Hash(data)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
