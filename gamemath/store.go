package gamemath

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store persists threshold ladders by model_id.
type Store struct {
	mu      sync.RWMutex
	ladders map[string]*Ladder
	dataDir string
}

func NewStore(dataDir string) *Store {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &Store{
		ladders: make(map[string]*Ladder),
		dataDir: dataDir,
	}
	s.load()
	return s
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, "ladders.json")
}

type storedEntry struct {
	ModelID string  `json:"model_id"`
	Ladder  *Ladder `json:"ladder"`
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if err != nil {
		return
	}
	var list []storedEntry
	if err := json.Unmarshal(data, &list); err != nil {
		return
	}
	for _, e := range list {
		if e.ModelID != "" && e.Ladder.Validate() == nil {
			s.ladders[e.ModelID] = e.Ladder
		}
	}
}

// saveLocked writes the store to disk. Caller must hold s.mu.
func (s *Store) saveLocked() error {
	list := make([]storedEntry, 0, len(s.ladders))
	for id, l := range s.ladders {
		list = append(list, storedEntry{ModelID: id, Ladder: l})
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0644)
}

// Register validates and stores a ladder by its model_id, overwriting any previous one.
func (s *Store) Register(l *Ladder) error {
	if l == nil || l.ModelID == "" {
		return nil
	}
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ladders[l.ModelID] = l.Clone()
	return s.saveLocked()
}

// Get returns a copy of the ladder for model_id, or nil.
func (s *Store) Get(modelID string) *Ladder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ladders[modelID]
	if !ok {
		return nil
	}
	return l.Clone()
}

// Resolve returns the named ladder, falling back to the stored default and then to Default().
func (s *Store) Resolve(modelID string) *Ladder {
	if modelID != "" {
		if l := s.Get(modelID); l != nil {
			return l
		}
	}
	if l := s.Get(DefaultModelID); l != nil {
		return l
	}
	return Default()
}
