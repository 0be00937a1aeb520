package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceKind names where a resume text came from.
type SourceKind string

// Source kinds
const (
	SourceFile     SourceKind = "file"
	SourceURL      SourceKind = "url"
	SourceDatabase SourceKind = "db"
	SourceS3       SourceKind = "s3"
	SourceGCS      SourceKind = "gs"
)

// Document is a resolved resume with provenance.
type Document struct {
	Identifier string     `json:"identifier"`
	Kind       SourceKind `json:"kind"`
	Text       string     `json:"-"`
	Hash       string     `json:"hash"` // SHA256 hex of Text
	ResolvedAt time.Time  `json:"resolved_at"`
}

func newDocument(identifier string, kind SourceKind, text string) *Document {
	return &Document{
		Identifier: identifier,
		Kind:       kind,
		Text:       text,
		Hash:       ContentHash(text),
		ResolvedAt: time.Now().UTC(),
	}
}

// ContentHash returns the SHA256 hex digest of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
