// Package snapshots keeps a versioned history of saved documents in a
// badger database. Every save appends a version; older versions stay
// available until the snapshot is deleted.
package snapshots

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for unknown snapshot names and versions
	ErrNotFound = errors.New("snapshot not found")
	// ErrInvalidName is returned for empty names and names containing '/'
	ErrInvalidName = errors.New("invalid snapshot name")
)

const (
	historyPrefix = "snapshot/"
	payloadPrefix = "payload/"
)

// timeNow returns current time (allows for mock in tests)
var timeNow = time.Now

// Version describes one saved version of a snapshot
type Version struct {
	Number  int       `json:"number"`
	Created time.Time `json:"created"`
	Note    string    `json:"note,omitempty"`
	Size    int       `json:"size"`
}

// Snapshot is a version together with its document
type Snapshot struct {
	Version
	Name     string
	Document []byte
}

type history struct {
	Name     string    `json:"name"`
	Versions []Version `json:"versions"`
}

// Store is a snapshot database
type Store struct {
	db  *badger.DB
	log *zap.Logger
}

// Open opens or creates the store in dir
func Open(dir string, log *zap.Logger) (*Store, error) {
	return open(badger.DefaultOptions(dir), log)
}

// OpenInMemory opens a store that is discarded on Close
func OpenInMemory(log *zap.Logger) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), log)
}

func open(opts badger.Options, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.
		WithLogger(badgerLogger{log.Named("badger").Sugar()}).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save appends doc as the next version of name
func (s *Store) Save(name string, doc []byte, note string) (Version, error) {
	if err := checkName(name); err != nil {
		return Version{}, err
	}
	payload, err := compress(doc)
	if err != nil {
		return Version{}, err
	}

	var version Version
	err = s.db.Update(func(txn *badger.Txn) error {
		h, err := getHistory(txn, name)
		if errors.Is(err, ErrNotFound) {
			h = &history{Name: name}
		} else if err != nil {
			return err
		}

		version = Version{
			Number:  len(h.Versions) + 1,
			Created: timeNow(),
			Note:    note,
			Size:    len(doc),
		}
		h.Versions = append(h.Versions, version)

		data, err := sonic.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		if err := txn.Set(payloadKey(name, version.Number), payload); err != nil {
			return err
		}
		return txn.Set(historyKey(name), data)
	})
	if err != nil {
		return Version{}, err
	}

	s.log.Debug("saved snapshot", zap.String("name", name), zap.Int("version", version.Number), zap.Int("size", version.Size))
	return version, nil
}

// Latest returns the newest version of name
func (s *Store) Latest(name string) (*Snapshot, error) {
	return s.get(name, 0)
}

// Get returns version number of name, counting from 1
func (s *Store) Get(name string, number int) (*Snapshot, error) {
	if number < 1 {
		return nil, fmt.Errorf("%w: version %d of %q", ErrNotFound, number, name)
	}
	return s.get(name, number)
}

func (s *Store) get(name string, number int) (*Snapshot, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var snapshot *Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		h, err := getHistory(txn, name)
		if err != nil {
			return err
		}
		if number == 0 {
			number = len(h.Versions)
		}
		if number > len(h.Versions) {
			return fmt.Errorf("%w: version %d of %q", ErrNotFound, number, name)
		}

		item, err := txn.Get(payloadKey(name, number))
		if err != nil {
			return fmt.Errorf("payload of %q version %d: %w", name, number, err)
		}
		payload, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		doc, err := decompress(payload)
		if err != nil {
			return fmt.Errorf("payload of %q version %d: %w", name, number, err)
		}
		snapshot = &Snapshot{Version: h.Versions[number-1], Name: name, Document: doc}
		return nil
	})
	return snapshot, err
}

// History returns every version of name, oldest first
func (s *Store) History(name string) ([]Version, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var versions []Version
	err := s.db.View(func(txn *badger.Txn) error {
		h, err := getHistory(txn, name)
		if err != nil {
			return err
		}
		versions = h.Versions
		return nil
	})
	return versions, err
}

// Names returns the names of all snapshots in order
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(historyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), historyPrefix))
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// Delete removes name and all of its versions
func (s *Store) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		h, err := getHistory(txn, name)
		if err != nil {
			return err
		}
		for _, v := range h.Versions {
			if err := txn.Delete(payloadKey(name, v.Number)); err != nil {
				return err
			}
		}
		return txn.Delete(historyKey(name))
	})
}

func getHistory(txn *badger.Txn, name string) (*history, error) {
	item, err := txn.Get(historyKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}

	h := &history{}
	if err := item.Value(func(val []byte) error {
		return sonic.Unmarshal(val, h)
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history of %q: %w", name, err)
	}
	return h, nil
}

func checkName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func historyKey(name string) []byte {
	return []byte(historyPrefix + name)
}

func payloadKey(name string, number int) []byte {
	return []byte(fmt.Sprintf("%s%s/%08d", payloadPrefix, name, number))
}

func compress(doc []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(doc); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(payload []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

// badgerLogger routes badger's log output to zap
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
