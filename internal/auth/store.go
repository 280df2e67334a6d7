package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSessions = []byte("sessions")

// SessionStore persists sessions in a bbolt file so logins survive a
// restart.
type SessionStore struct {
	db *bolt.DB
}

// NewSessionStore opens (or creates) the session database
func NewSessionStore(path string) (*SessionStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions bucket: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// Put stores a session
func (s *SessionStore) Put(session *Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		return tx.Bucket(bucketSessions).Put([]byte(session.ID), data)
	})
}

// Get loads a session by ID. A missing session returns (nil, nil); a
// malformed stored session is discarded and also reported missing.
func (s *SessionStore) Get(id string) (*Session, error) {
	var session *Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			// Corrupt entry: drop it and treat as unauthenticated
			return bucket.Delete([]byte(id))
		}
		session = &sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session
func (s *SessionStore) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(id))
	})
}

// Close closes the underlying database
func (s *SessionStore) Close() error {
	return s.db.Close()
}
