// Package ingestion resolves resume identifiers (paths, URLs, stored ids and
// bucket objects) into cleaned plain text.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// DatabasePrefix marks identifiers of resumes stored in the database.
const DatabasePrefix = "db:"

// TextFetcher returns the readable text of a web page.
type TextFetcher interface {
	Text(ctx context.Context, url string) (string, error)
}

// ResumeStore looks up stored resume texts.
type ResumeStore interface {
	GetResumeText(ctx context.Context, id uuid.UUID) (string, error)
}

// Resolver turns identifiers into text. Safe for concurrent use.
type Resolver struct {
	fetcher TextFetcher
	store   ResumeStore
	objects map[SourceKind]ObjectReader
	logger  *zap.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithFetcher sets the web fetcher used for http(s) identifiers.
func WithFetcher(f TextFetcher) Option {
	return func(r *Resolver) { r.fetcher = f }
}

// WithStore enables db:<uuid> identifiers.
func WithStore(s ResumeStore) Option {
	return func(r *Resolver) { r.store = s }
}

// WithObjectReader enables s3:// or gs:// identifiers.
func WithObjectReader(kind SourceKind, reader ObjectReader) Option {
	return func(r *Resolver) { r.objects[kind] = reader }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver. Without WithFetcher a default static fetcher is used.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		objects: make(map[SourceKind]ObjectReader),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = fetch.New(fetch.DefaultOptions(), fetch.WithLogger(r.logger))
	}
	return r
}

// ResolveText returns the cleaned text for identifier.
func (r *Resolver) ResolveText(ctx context.Context, identifier string) (string, error) {
	doc, err := r.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// Resolve returns the cleaned text for identifier along with its provenance.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Document, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil, &UnsupportedSourceError{Identifier: identifier, Reason: "empty identifier"}
	}

	var (
		kind SourceKind
		raw  string
		err  error
	)
	switch {
	case strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://"):
		kind = SourceURL
		raw, err = r.fetcher.Text(ctx, id)
	case strings.HasPrefix(id, DatabasePrefix):
		kind = SourceDatabase
		raw, err = r.fromStore(ctx, id)
	case strings.HasPrefix(id, "s3://") || strings.HasPrefix(id, "gs://"):
		kind, raw, err = r.fromBucket(ctx, id)
	default:
		kind = SourceFile
		raw, err = readFile(id)
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("no text extracted from %s", id)
	}
	r.logger.Debug("resolved resume",
		zap.String("identifier", id),
		zap.String("kind", string(kind)),
		zap.Int("chars", utf8.RuneCountInString(text)),
	)
	return newDocument(id, kind, text), nil
}

func (r *Resolver) fromStore(ctx context.Context, id string) (string, error) {
	if r.store == nil {
		return "", &UnsupportedSourceError{Identifier: id, Reason: "no database configured"}
	}
	resumeID, err := uuid.Parse(strings.TrimPrefix(id, DatabasePrefix))
	if err != nil {
		return "", &UnsupportedSourceError{Identifier: id, Reason: "malformed resume id"}
	}
	return r.store.GetResumeText(ctx, resumeID)
}

func (r *Resolver) fromBucket(ctx context.Context, id string) (SourceKind, string, error) {
	kind, bucket, key, err := parseObjectURI(id)
	if err != nil {
		return "", "", &UnsupportedSourceError{Identifier: id, Reason: err.Error()}
	}
	reader, ok := r.objects[kind]
	if !ok {
		return "", "", &UnsupportedSourceError{Identifier: id, Reason: fmt.Sprintf("%s storage not configured", kind)}
	}
	data, err := reader.ReadObject(ctx, bucket, key)
	if err != nil {
		return "", "", err
	}
	text, err := decode(id, key, data)
	return kind, text, err
}

func readFile(path string) (string, error) {
	if err := checkFormat(path, path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return decode(path, path, data)
}

// decode interprets data by the extension of name.
func decode(identifier, name string, data []byte) (string, error) {
	if err := checkFormat(identifier, name); err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &UnsupportedSourceError{Identifier: identifier, Reason: "content is not UTF-8 text"}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	default:
		return string(data), nil
	}
}

// binaryFormats need document parsers this module does not carry.
var binaryFormats = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".odt": true, ".rtf": true,
}

func checkFormat(identifier, name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if binaryFormats[ext] {
		return &UnsupportedSourceError{Identifier: identifier, Reason: ext + " documents are not supported; convert to text first"}
	}
	return nil
}
