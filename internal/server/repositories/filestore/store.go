// Package filestore is the JSON file storage backend. The whole dataset is
// held in memory and mirrored to three files in the data directory:
// accounts.json, history.json and sessions.json.
//
// Every mutation runs against a copy of the in-memory state. The files it
// touched are rewritten atomically and only then does the copy replace the
// live state, so a failed write leaves both disk and memory unchanged.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/filex"
)

const (
	AccountsFile = "accounts.json"
	HistoryFile  = "history.json"
	SessionsFile = "sessions.json"
)

// persistOrder puts history and sessions before accounts, so an interrupted
// account deletion never leaves history behind a removed account.
var persistOrder = []string{HistoryFile, SessionsFile, AccountsFile}

// writeFile is a seam for tests.
var writeFile = filex.WriteFileAtomic

type accountRecord struct {
	Password  string    `json:"password"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type entryRecord struct {
	Time   string `json:"time"`
	From   string `json:"from"`
	To     string `json:"to"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

type sessionRecord struct {
	Username  string    `json:"username"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `json:"created_at"`
}

type state struct {
	accounts map[string]accountRecord
	history  map[string][]entryRecord // oldest first
	sessions map[string]sessionRecord
}

func (s *state) clone() *state {
	c := &state{
		accounts: make(map[string]accountRecord, len(s.accounts)),
		history:  make(map[string][]entryRecord, len(s.history)),
		sessions: make(map[string]sessionRecord, len(s.sessions)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.history {
		c.history[k] = append([]entryRecord(nil), v...)
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	return c
}

// executor runs reads and writes against some state. The Store locks and
// commits around each call; a txn runs everything against its own copy.
type executor interface {
	view(fn func(st *state) error) error
	update(fn func(t *txn) error) error
}

type txn struct {
	st    *state
	dirty map[string]bool
}

func (t *txn) view(fn func(*state) error) error { return fn(t.st) }

func (t *txn) update(fn func(*txn) error) error { return fn(t) }

func (t *txn) touch(file string) { t.dirty[file] = true }

// Store owns the data directory and the in-memory state.
type Store struct {
	mu  sync.Mutex
	dir string
	st  *state
}

// Open creates dir if needed and loads the three files. Missing or empty
// files start empty; unparsable files are an error. History of owners that
// have no account is dropped.
func Open(dir string) (*Store, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, errors.Join(common.ErrStorage, err)
	}

	st := &state{}
	if err := load(filepath.Join(abs, AccountsFile), &st.accounts); err != nil {
		return nil, err
	}
	if err := load(filepath.Join(abs, HistoryFile), &st.history); err != nil {
		return nil, err
	}
	if err := load(filepath.Join(abs, SessionsFile), &st.sessions); err != nil {
		return nil, err
	}
	if st.accounts == nil {
		st.accounts = map[string]accountRecord{}
	}
	if st.history == nil {
		st.history = map[string][]entryRecord{}
	}
	if st.sessions == nil {
		st.sessions = map[string]sessionRecord{}
	}
	for owner := range st.history {
		if _, ok := st.accounts[owner]; !ok {
			delete(st.history, owner)
		}
	}

	return &Store{dir: abs, st: st}, nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(data) == 0) {
		return nil
	}
	if err != nil {
		return errors.Join(common.ErrStorage, fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Join(common.ErrStorage, fmt.Errorf("parse %s: %w", filepath.Base(path), err))
	}
	return nil
}

// Dir returns the absolute data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) view(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) update(fn func(t *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(fn)
}

// commit must be called with s.mu held.
func (s *Store) commit(fn func(t *txn) error) error {
	t := &txn{st: s.st.clone(), dirty: map[string]bool{}}
	if err := fn(t); err != nil {
		return err
	}
	for _, name := range persistOrder {
		if !t.dirty[name] {
			continue
		}
		if err := s.persist(name, t.st); err != nil {
			return errors.Join(common.ErrStorage, err)
		}
	}
	s.st = t.st
	return nil
}

func (s *Store) persist(name string, st *state) error {
	var v any
	switch name {
	case AccountsFile:
		v = st.accounts
	case HistoryFile:
		v = st.history
	case SessionsFile:
		v = st.sessions
	default:
		return fmt.Errorf("unknown store file %q", name)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := writeFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Repositories groups the repositories bound to one executor.
type Repositories struct {
	Accounts      *AccountsRepository
	History       *HistoryRepository
	RefreshTokens *RefreshTokensRepository
}

func newRepositories(ex executor) *Repositories {
	return &Repositories{
		Accounts:      &AccountsRepository{ex: ex},
		History:       &HistoryRepository{ex: ex},
		RefreshTokens: &RefreshTokensRepository{ex: ex},
	}
}

// Repositories returns repositories whose every call commits on its own.
func (s *Store) Repositories() *Repositories {
	return newRepositories(s)
}

// Transaction runs fn with repositories bound to a private copy of the
// state. The copy is persisted and published only when fn returns nil.
// The store stays locked for the duration of fn.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func(t *txn) error {
		return fn(ctx, newRepositories(t))
	})
}
