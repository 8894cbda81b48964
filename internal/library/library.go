// Package library manages the set of loaded scripture versions. Each
// version owns one independent parsed index; switching the current
// version is a pointer swap. Reading documents from disk (including
// xz-compressed ones) happens here, outside the parsing core.
package library

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	lecterrors "lectern/core/errors"
	"lectern/core/refs"
	"lectern/core/scripture"
	"lectern/internal/logging"
)

// Version is one loaded scripture version.
type Version struct {
	// ID is a stable unique identifier assigned when the version is added.
	ID string `json:"id"`

	// Name is the user-chosen version name (e.g. "kjv", "web").
	Name string `json:"name"`

	// Path is the source document path, if the version came from a file.
	Path string `json:"path,omitempty"`

	// Hash is the BLAKE3 hash of the source document text.
	Hash string `json:"hash"`

	// AddedAt records when the version was added.
	AddedAt time.Time `json:"added_at"`

	// Index is the parsed verse index. Never mutated after construction.
	Index *scripture.Index `json:"-"`

	document string
}

// Document returns the original document text the version was parsed from.
func (v *Version) Document() string {
	return v.document
}

// Resolver returns a reference resolver bound to this version's index.
func (v *Version) Resolver() *refs.Resolver {
	return refs.NewResolver(v.Index)
}

// Library holds loaded versions keyed by name.
type Library struct {
	mu       sync.RWMutex
	versions map[string]*Version
	current  string
	store    *Store
}

// New creates an empty Library. store may be nil for a purely
// in-memory library.
func New(store *Store) *Library {
	return &Library{
		versions: make(map[string]*Version),
		store:    store,
	}
}

// Open creates a Library backed by the store at dbPath and restores
// all persisted versions into memory.
func Open(dbPath string) (*Library, error) {
	store, err := OpenStore(dbPath)
	if err != nil {
		return nil, err
	}

	lib := New(store)
	records, err := store.ListVersions()
	if err != nil {
		store.Close()
		return nil, err
	}
	for _, rec := range records {
		doc, err := store.LoadDocument(rec.ID)
		if err != nil {
			store.Close()
			return nil, err
		}
		v := &Version{
			ID:       rec.ID,
			Name:     rec.Name,
			Path:     rec.Path,
			Hash:     rec.Hash,
			AddedAt:  rec.AddedAt,
			Index:    scripture.Parse(doc),
			document: doc,
		}
		lib.versions[v.Name] = v
	}

	current, err := store.CurrentName()
	if err != nil {
		store.Close()
		return nil, err
	}
	if _, ok := lib.versions[current]; ok {
		lib.current = current
	}
	return lib, nil
}

// Close releases the backing store, if any.
func (l *Library) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// ReadDocument reads a scripture document from disk. Files with an
// .xz suffix are decompressed transparently.
func ReadDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// HashDocument returns the hex BLAKE3 hash of a document's text.
func HashDocument(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Add reads, hashes, and parses the document at path and registers it
// under name. Re-adding a name whose document hash is unchanged returns
// the existing version; a changed document replaces it wholesale. The
// first version added becomes current.
func (l *Library) Add(name, path string) (*Version, error) {
	if name == "" {
		return nil, lecterrors.NewValidation("name", "version name must not be empty")
	}

	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return l.AddDocument(name, path, doc)
}

// AddDocument registers a document supplied as a string. See Add.
func (l *Library) AddDocument(name, path, doc string) (*Version, error) {
	hash := HashDocument(doc)

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.versions[name]; ok && existing.Hash == hash {
		logging.Debug("version unchanged", "name", name, "hash", hash)
		return existing, nil
	}

	v := &Version{
		ID:       uuid.New().String(),
		Name:     name,
		Path:     path,
		Hash:     hash,
		AddedAt:  time.Now().UTC(),
		Index:    scripture.Parse(doc),
		document: doc,
	}

	stats := v.Index.Stats()
	logging.ParseEvent(name, stats.Books, stats.Chapters, stats.Verses)

	if l.store != nil {
		if err := l.store.SaveVersion(v, v.document); err != nil {
			return nil, lecterrors.NewInternal("persist version "+name, err)
		}
	}

	l.versions[name] = v
	if l.current == "" {
		l.current = name
		if l.store != nil {
			if err := l.store.SetCurrent(name); err != nil {
				return nil, lecterrors.NewInternal("persist current version", err)
			}
		}
	}
	return v, nil
}

// Remove discards the named version. Removing the current version
// leaves no current version selected.
func (l *Library) Remove(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.versions[name]
	if !ok {
		return lecterrors.NewNotFound("version", name)
	}
	if l.store != nil {
		if err := l.store.DeleteVersion(v.ID); err != nil {
			return lecterrors.NewInternal("delete version "+name, err)
		}
	}
	delete(l.versions, name)
	if l.current == name {
		l.current = ""
		if l.store != nil {
			if err := l.store.SetCurrent(""); err != nil {
				return lecterrors.NewInternal("clear current version", err)
			}
		}
	}
	return nil
}

// Use selects the named version as current.
func (l *Library) Use(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.versions[name]; !ok {
		return lecterrors.NewNotFound("version", name)
	}
	l.current = name
	if l.store != nil {
		if err := l.store.SetCurrent(name); err != nil {
			return lecterrors.NewInternal("persist current version", err)
		}
	}
	return nil
}

// Current returns the current version.
func (l *Library) Current() (*Version, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	v, ok := l.versions[l.current]
	return v, ok
}

// Get returns the named version.
func (l *Library) Get(name string) (*Version, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	v, ok := l.versions[name]
	return v, ok
}

// List returns all versions sorted by name.
func (l *Library) List() []*Version {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Version, 0, len(l.versions))
	for _, v := range l.versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Search finds verses whose text contains the query string, across all
// persisted versions. Requires a backing store.
func (l *Library) Search(query string, limit int) ([]SearchResult, error) {
	if l.store == nil {
		return nil, lecterrors.NewValidation("store", "search requires a persistent library")
	}
	return l.store.SearchVerses(query, limit)
}
