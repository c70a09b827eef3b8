// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/ironsworn-content/internal/pkg/idgen Generator

const (
	// Alphabet is the base-62 digit set, in digit order
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DocumentPrefix starts every generated content identifier
	DocumentPrefix = "DF"

	// FileIDWidth is the padded width of the file index segment
	FileIDWidth = 2

	// ItemIDWidth is the padded width of the item index segment
	ItemIDWidth = 12

	// IDLength is the total length of a content identifier
	IDLength = len(DocumentPrefix) + FileIDWidth + ItemIDWidth
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Encode renders n in base 62. Zero encodes as "0".
func Encode(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%62]
		n /= 62
	}
	return string(buf[i:])
}

// Decode parses a base-62 string produced by Encode
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("idgen: empty base62 string")
	}

	var n uint64
	for _, r := range s {
		d := strings.IndexRune(Alphabet, r)
		if d < 0 {
			return 0, fmt.Errorf("idgen: invalid base62 digit %q in %q", r, s)
		}
		next := n*62 + uint64(d)
		if next/62 != n {
			return 0, fmt.Errorf("idgen: base62 value %q overflows", s)
		}
		n = next
	}
	return n, nil
}

// Pad left-pads s with '0' up to width. Longer strings are returned as is.
func Pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Sequence generates content identifiers for the items of one document.
// The first call to Generate returns item 1.
type Sequence struct {
	fileID  string
	counter uint64
}

// NewSequence creates a sequence for the document at the 1-based fileIndex
func NewSequence(fileIndex int) *Sequence {
	// nolint:gosec // file indexes are small and positive
	return &Sequence{fileID: Pad(Encode(uint64(fileIndex)), FileIDWidth)}
}

// Generate returns the identifier for the next item in the document
func (s *Sequence) Generate() string {
	s.counter++
	return DocumentPrefix + s.fileID + Pad(Encode(s.counter), ItemIDWidth)
}

// Count returns how many identifiers the sequence has issued
func (s *Sequence) Count() uint64 {
	return s.counter
}

// Parse splits a content identifier into its file and item indexes
func Parse(id string) (fileIndex, itemIndex uint64, err error) {
	if len(id) != IDLength || !strings.HasPrefix(id, DocumentPrefix) {
		return 0, 0, fmt.Errorf("idgen: %q is not a content identifier", id)
	}

	rest := id[len(DocumentPrefix):]
	fileIndex, err = Decode(rest[:FileIDWidth])
	if err != nil {
		return 0, 0, err
	}
	itemIndex, err = Decode(rest[FileIDWidth:])
	if err != nil {
		return 0, 0, err
	}
	return fileIndex, itemIndex, nil
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
