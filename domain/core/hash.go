package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// FilterHash keys cached dashboard results.
type FilterHash Hash

func (h FilterHash) String() string { return Hash(h).String() }

// ComputeFilterHash hashes a snapshot together with its filter parameters.
// Parameter order does not matter; slice values are sorted before hashing.
func ComputeFilterHash(snapshot SnapshotID, params map[string]interface{}) FilterHash {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString(snapshot.String())
	for _, key := range keys {
		data.WriteString("|")
		data.WriteString(key)
		data.WriteString("=")
		switch v := params[key].(type) {
		case []string:
			sorted := append([]string(nil), v...)
			sort.Strings(sorted)
			data.WriteString(strings.Join(sorted, ","))
		default:
			data.WriteString(fmt.Sprintf("%v", v))
		}
	}

	return FilterHash(NewHash([]byte(data.String())))
}
