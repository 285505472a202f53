package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"go.uber.org/zap"
)

var (
	ErrCorruptStore = errors.New("store file is corrupt")
	ErrPersist      = errors.New("persist store")
)

// Document is the whole persisted state. Both collections are keyed by id.
type Document struct {
	Members  map[string]*models.Member     `json:"members" yaml:"members"`
	Programs map[string]*models.GymProgram `json:"programs" yaml:"programs"`
}

func NewDocument() *Document {
	return &Document{
		Members:  make(map[string]*models.Member),
		Programs: make(map[string]*models.GymProgram),
	}
}

func (d *Document) clone() *Document {
	cp := &Document{
		Members:  make(map[string]*models.Member, len(d.Members)),
		Programs: make(map[string]*models.GymProgram, len(d.Programs)),
	}
	for id, member := range d.Members {
		m := *member
		m.GymPrograms = append([]string{}, member.GymPrograms...)
		cp.Members[id] = &m
	}
	for id, program := range d.Programs {
		p := *program
		cp.Programs[id] = &p
	}
	return cp
}

func (d *Document) normalize() {
	if d.Members == nil {
		d.Members = make(map[string]*models.Member)
	}
	if d.Programs == nil {
		d.Programs = make(map[string]*models.GymProgram)
	}
	for id, member := range d.Members {
		if member == nil {
			delete(d.Members, id)
			continue
		}
		if member.GymPrograms == nil {
			member.GymPrograms = []string{}
		}
	}
	for id, program := range d.Programs {
		if program == nil {
			delete(d.Programs, id)
		}
	}
}

// JSONDatabase keeps the document in memory and rewrites the backing file
// in full after every mutation. The write lock covers both the mutation and
// the file write, so snapshots never interleave.
type JSONDatabase struct {
	path   string
	logger *zap.Logger

	mu  sync.RWMutex
	doc *Document
}

// Open loads the document at path. A missing file yields an empty document
// that is written immediately; a file that cannot be read or decoded is an
// error wrapping ErrCorruptStore.
func Open(path string, logger *zap.Logger) (*JSONDatabase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db := &JSONDatabase{path: path, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		db.doc = NewDocument()
		if err := db.Persist(); err != nil {
			return nil, err
		}
		logger.Info("created empty store", zap.String("path", path))
		return db, nil
	case err != nil:
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptStore, path, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	db.doc = doc

	logger.Info("loaded store",
		zap.String("path", path),
		zap.Int("members", len(doc.Members)),
		zap.Int("programs", len(doc.Programs)),
	)
	return db, nil
}

func decodeDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty file")
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

func (db *JSONDatabase) Path() string {
	return db.path
}

// View runs fn with read access. fn must not retain or mutate the document.
func (db *JSONDatabase) View(fn func(doc *Document)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.doc)
}

// Update runs fn with write access and persists the document when fn
// succeeds. When fn fails or the write fails, the document is restored to
// its state before fn ran, so memory never holds what disk does not.
func (db *JSONDatabase) Update(fn func(doc *Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.doc.clone()
	if err := fn(db.doc); err != nil {
		db.doc = snapshot
		return err
	}
	if err := db.persistLocked(); err != nil {
		db.doc = snapshot
		return err
	}
	return nil
}

// Persist rewrites the backing file with the current document.
func (db *JSONDatabase) Persist() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.persistLocked()
}

func (db *JSONDatabase) persistLocked() error {
	data, err := json.MarshalIndent(db.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(db.path, data); err != nil {
		db.logger.Error("failed to persist store", zap.String("path", db.path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
