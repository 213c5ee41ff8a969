package ledger

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store holds the active vocabulary behind a lock so the table can be
// hot-reloaded from its config file while requests are in flight. Requests
// take a snapshot via Current; the table itself is never mutated in place.
type Store struct {
	mu    sync.RWMutex
	vocab Vocabulary
}

func NewStore(v Vocabulary) *Store {
	return &Store{vocab: v}
}

func (s *Store) Current() Vocabulary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocab
}

// LoadFile replaces the active vocabulary with the contents of path. On any
// error the previous table stays active.
func (s *Store) LoadFile(path string) error {
	v, err := Load(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.vocab = v
	s.mu.Unlock()
	return nil
}

// Watch re-reads the vocabulary file whenever it changes. Events are debounced
// because editors produce bursts of writes. Returns a stop function.
func (s *Store) Watch(path string) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory, not the file: editors replace files on save
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		var pending time.Time
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					pending = time.Now()
				}
			case <-ticker.C:
				if pending.IsZero() || time.Since(pending) < 300*time.Millisecond {
					continue
				}
				pending = time.Time{}
				if err := s.LoadFile(path); err != nil {
					log.Printf("vocabulary reload failed, keeping previous table: %v", err)
				} else {
					log.Printf("vocabulary reloaded from %s (%d tokens)", path, len(s.Current()))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("vocabulary watch error: %v", err)
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		_ = w.Close()
	}, nil
}
