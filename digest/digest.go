// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"maps"
	"slices"
	"strconv"

	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/google/uuid"
)

var ErrInvalidDigest = errors.New("invalid digest")

// runNamespace scopes run IDs so they never collide with other SHA-1 UUIDs
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bloc-alignment/run"))

const (
	unitSep   = 0x1f
	recordSep = 0x1e
)

// Digest is a SHA-256 fingerprint of everything a run depends on
type Digest [sha256.Size]byte

// Inputs hashes the raw rows, the topic mapping and a canonical settings
// string. Row order matters; topic order does not.
func Inputs(rows []models.RawVoteRow, topics map[string]string, settings string) Digest {
	h := sha256.New()

	for _, row := range rows {
		writeFields(h, strconv.Itoa(row.Line), row.ResolutionID, row.Date, row.CountryName, row.VoteCode, row.Malformed)
	}
	h.Write([]byte{recordSep})

	for _, id := range slices.Sorted(maps.Keys(topics)) {
		writeFields(h, id, topics[id])
	}
	h.Write([]byte{recordSep})

	h.Write([]byte(settings))

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func writeFields(h hash.Hash, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			h.Write([]byte{unitSep})
		}
		h.Write([]byte(f))
	}
	h.Write([]byte{recordSep})
}

// Parse reads a digest back from its hex form
func Parse(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(d) {
		return d, ErrInvalidDigest
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Short returns a compact base62 tag of the first 8 bytes, used as an ETag
func (d Digest) Short() string {
	return base62Encode(d[:8])
}

// RunID derives a stable UUID from the digest, so identical inputs always
// produce the same run ID
func (d Digest) RunID() uuid.UUID {
	return uuid.NewSHA1(runNamespace, d[:])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
