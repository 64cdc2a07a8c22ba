package services

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// userStoreData is the JSON structure persisted in the users file
type userStoreData struct {
	UserIDs []int64 `json:"user_ids"`
}

// UserStore keeps the flat list of Telegram ids that have talked to the bot.
// It exists only for broadcast targeting; subscription truth lives in the
// panel. The file is read whole and rewritten whole on every append.
type UserStore struct {
	filename string
	data     *userStoreData
	mu       sync.RWMutex
	logger   *logrus.Logger
}

// NewUserStore creates a user store backed by the given file
func NewUserStore(filename string, logger *logrus.Logger) *UserStore {
	s := &UserStore{
		filename: filename,
		data:     &userStoreData{UserIDs: make([]int64, 0)},
		logger:   logger,
	}

	if err := s.load(); err != nil {
		logger.Warnf("Failed to load user store: %v", err)
	}

	return s
}

// load reads the full id list from disk
func (s *UserStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filename)
	if os.IsNotExist(err) {
		s.logger.Info("User store file does not exist, starting empty")
		return nil
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, s.data)
}

// Add registers a Telegram id, rewriting the file. It reports whether the id
// was new.
func (s *UserStore) Add(telegramID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.data.UserIDs {
		if id == telegramID {
			return false, nil
		}
	}

	s.data.UserIDs = append(s.data.UserIDs, telegramID)
	return true, s.save()
}

// All returns a copy of the stored ids
func (s *UserStore) All() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, len(s.data.UserIDs))
	copy(ids, s.data.UserIDs)
	return ids
}

// Count returns the number of stored ids
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.UserIDs)
}

// save writes the whole list atomically; callers hold the lock
func (s *UserStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := s.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, s.filename)
}
