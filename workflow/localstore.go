package workflow

import (
	"encoding/json"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Well-known keys for client-side durable state
const (
	keySessionID        = "appraisal_session_id"
	keyAppraiserSummary = "appraiser_summary"
	cameraKeyPrefix     = "preferred_camera::"
)

type storedItem struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// LocalStore is the client-side durable key/value store. It survives a
// restart of the kiosk process but is never shared across devices.
type LocalStore struct {
	db *gorm.DB
}

// OpenLocalStore opens (or creates) the durable store at path
func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&storedItem{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) put(key, value string) error {
	item := storedItem{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error
}

func (s *LocalStore) get(key string) (string, error) {
	var item storedItem
	err := s.db.Where("key = ?", key).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return item.Value, nil
}

func (s *LocalStore) delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&storedItem{}).Error
}

// AppraiserSummary is the minimal appraiser identity persisted alongside
// the session id for reuse by later workflow stages
type AppraiserSummary struct {
	AppraiserID string `json:"appraiser_id"`
	Name        string `json:"name"`
	Bank        string `json:"bank"`
	Branch      string `json:"branch"`
}

// SaveSession persists the session id and appraiser summary
func (s *LocalStore) SaveSession(sessionID string, summary AppraiserSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode appraiser summary: %w", err)
	}
	if err := s.put(keySessionID, sessionID); err != nil {
		return fmt.Errorf("save session id: %w", err)
	}
	if err := s.put(keyAppraiserSummary, string(payload)); err != nil {
		return fmt.Errorf("save appraiser summary: %w", err)
	}
	return nil
}

// LoadSession returns the persisted session id and appraiser summary, or an
// empty id when no session is stored
func (s *LocalStore) LoadSession() (string, *AppraiserSummary, error) {
	sessionID, err := s.get(keySessionID)
	if err != nil {
		return "", nil, fmt.Errorf("load session id: %w", err)
	}
	if sessionID == "" {
		return "", nil, nil
	}

	raw, err := s.get(keyAppraiserSummary)
	if err != nil {
		return "", nil, fmt.Errorf("load appraiser summary: %w", err)
	}
	if raw == "" {
		return sessionID, nil, nil
	}

	var summary AppraiserSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return "", nil, fmt.Errorf("decode appraiser summary: %w", err)
	}
	return sessionID, &summary, nil
}

// ClearSession drops the persisted session id and summary
func (s *LocalStore) ClearSession() error {
	if err := s.delete(keySessionID); err != nil {
		return err
	}
	return s.delete(keyAppraiserSummary)
}

// SetPreferredCamera remembers the camera device id for a workflow stage
func (s *LocalStore) SetPreferredCamera(stage, deviceID string) error {
	return s.put(cameraKeyPrefix+stage, deviceID)
}

// PreferredCamera returns the remembered camera device id for a workflow
// stage, empty if none was stored
func (s *LocalStore) PreferredCamera(stage string) (string, error) {
	return s.get(cameraKeyPrefix + stage)
}
