package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SourceKey generates a key for a fetched tree source.
func (DefaultKeyer) SourceKey(url string) string {
	return digestKey("source", url)
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(textHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact", textHash, opts)
}

// digestKey hashes the JSON encoding of parts under kind. Every part is a
// string or a plain struct, so encoding cannot fail.
func digestKey(kind string, parts ...any) string {
	h := sha256.New()
	json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of a tree's notation. It identifies the
// tree in artifact keys and in pipeline results.
func Hash(text []byte) string {
	sum := sha256.Sum256(text)
	return hex.EncodeToString(sum[:])
}
