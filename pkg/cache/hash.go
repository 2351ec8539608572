package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key, "prefix:<sha256 of parts>".
// Parts are JSON-marshaled first so any mix of instants, coordinates
// and option structs hashes deterministically.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the lowercase hex SHA-256 of data. Chart hashes and
// layout input hashes both come from here, so an artifact's identity is
// stable across processes and cache backends.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
