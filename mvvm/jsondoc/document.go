// Package jsondoc stores one or more session models in a single JSON document.
//
// Models are written in the order they were given to New, and loading
// requires the document to list the same model types in the same order.
// A document that doesn't match is rejected with mvvm.ErrRestore before any
// model is changed.
//
// Paths ending in ".gz" are gzip compressed and paths ending in ".zst" are
// zstd compressed.
package jsondoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Version of the document format written by Encode
const Version = 1

// DefaultIndent is the number of spaces used to indent saved documents
const DefaultIndent = 2

type documentRecord struct {
	Version int                `json:"version"`
	Models  []mvvm.ModelRecord `json:"models"`
}

// Document saves and loads a fixed list of models
type Document struct {
	models []*mvvm.SessionModel
	indent int
	log    *zap.Logger
}

func New(models ...*mvvm.SessionModel) *Document {
	return &Document{
		models: models,
		indent: DefaultIndent,
		log:    zap.NewNop(),
	}
}

func (d *Document) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.log = l
}

// SetIndent sets the indentation of encoded documents; 0 writes compact JSON
func (d *Document) SetIndent(spaces int) {
	if spaces < 0 {
		spaces = 0
	}
	d.indent = spaces
}

func (d *Document) Models() []*mvvm.SessionModel {
	return d.models
}

// Records returns the persisted form of every model
func (d *Document) Records() []mvvm.ModelRecord {
	records := make([]mvvm.ModelRecord, 0, len(d.models))
	for _, m := range d.models {
		records = append(records, m.Snapshot())
	}
	return records
}

// Encode writes all models to w
func (d *Document) Encode(w io.Writer) error {
	return WriteRecords(w, d.Records(), d.indent)
}

// Decode reads a document from r and restores every model from it. The
// models are only changed if the whole document can be restored.
func (d *Document) Decode(r io.Reader) error {
	records, err := ReadRecords(r)
	if err != nil {
		return err
	}
	return d.Restore(records)
}

// Restore replaces the content of every model with records, which must
// match the models in count and order.
func (d *Document) Restore(records []mvvm.ModelRecord) error {
	if len(records) != len(d.models) {
		return fmt.Errorf("%w: document has %d models, expected %d", mvvm.ErrRestore, len(records), len(d.models))
	}

	roots := make([]*mvvm.SessionItem, len(d.models))
	for i, m := range d.models {
		if records[i].Model != m.ModelType() {
			return fmt.Errorf("%w: document model %d is '%s', expected '%s'", mvvm.ErrRestore, i, records[i].Model, m.ModelType())
		}
		root, err := m.PrepareRestore(records[i])
		if err != nil {
			return err
		}
		roots[i] = root
	}

	for i, m := range d.models {
		if err := m.ResetRoot(roots[i]); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the document to path. The file is replaced only once the
// whole document has been written.
func (d *Document) Save(path string) error {
	if err := WriteFile(path, d.Records(), d.indent); err != nil {
		return err
	}
	d.log.Debug("saved document", zap.String("path", path), zap.Int("models", len(d.models)))
	return nil
}

// Load restores every model from the document at path
func (d *Document) Load(path string) error {
	records, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := d.Restore(records); err != nil {
		d.log.Warn("load rejected", zap.String("path", path), zap.Error(err))
		return err
	}
	d.log.Debug("loaded document", zap.String("path", path), zap.Int("models", len(d.models)))
	return nil
}

// ReadRecords decodes a document without restoring it
func ReadRecords(r io.Reader) ([]mvvm.ModelRecord, error) {
	var doc documentRecord
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid document: %w", mvvm.ErrRestore, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported document version %d", mvvm.ErrRestore, doc.Version)
	}
	return doc.Models, nil
}

// ReadFile decodes the document at path without restoring it
func ReadFile(path string) ([]mvvm.ModelRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, closeReader, err := decompressor(path, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mvvm.ErrRestore, path, err)
	}
	defer closeReader()
	return ReadRecords(r)
}

// WriteFile writes records as a document to path through a temporary file
// in the same directory.
func WriteFile(path string, records []mvvm.ModelRecord, indent int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := writeCompressed(tmp, path, records, indent); err != nil {
		tmp.Close()
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeCompressed(w io.Writer, path string, records []mvvm.ModelRecord, indent int) error {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz := gzip.NewWriter(w)
		if err := WriteRecords(gz, records, indent); err != nil {
			return err
		}
		return gz.Close()
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := WriteRecords(zw, records, indent); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		return WriteRecords(w, records, indent)
	}
}

func decompressor(path string, r io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// WriteRecords encodes records as a document to w
func WriteRecords(w io.Writer, records []mvvm.ModelRecord, indent int) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(documentRecord{Version: Version, Models: records})
}
