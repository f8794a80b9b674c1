package feedback

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/fieldpost/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("feedback not found")

// Service persists submission records and their meta side table.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("feedback")}
}

// Create stores one submission record and returns its id.
func (s *Service) Create(title string, status models.FeedbackStatus, parentID, body string) (string, error) {
	fb := models.FeedbackModel{
		Title:    title,
		Status:   status,
		ParentID: parentID,
		Text:     body,
	}
	if err := s.db.Create(&fb).Error; err != nil {
		return "", err
	}
	return fb.ID, nil
}

// SetMeta writes one meta row, JSON-encoding the value. Re-writing the same
// key replaces the previous value.
func (s *Service) SetMeta(feedbackID, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	meta := models.FeedbackMetaModel{
		FeedbackID: feedbackID,
		Name:       name,
		Value:      string(raw),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feedback_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// GetMeta reads one meta row into dest (JSON-decoded). Returns ErrNotFound
// when the key was never written.
func (s *Service) GetMeta(feedbackID, name string, dest interface{}) error {
	var meta models.FeedbackMetaModel
	err := s.db.Where("feedback_id = ? AND name = ?", feedbackID, name).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(meta.Value), dest)
}

// Get reads one record by id.
func (s *Service) Get(id string) (*models.FeedbackModel, error) {
	var fb models.FeedbackModel
	err := s.db.Where("id = ?", id).First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// SetStatus flips a record between spam and published.
func (s *Service) SetStatus(id string, status models.FeedbackStatus) error {
	res := s.db.Model(&models.FeedbackModel{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record and its meta rows.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", id).Delete(&models.FeedbackMetaModel{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id = ?", id).Delete(&models.FeedbackModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteSpamOlderThan removes spam records past the retention window. Runs as
// the recurring sweep job.
func (s *Service) DeleteSpamOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	var ids []string
	err := s.db.Model(&models.FeedbackModel{}).
		Where("status = ? AND created_at < ?", models.FeedbackSpam, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id IN ?", ids).Delete(&models.FeedbackMetaModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&models.FeedbackModel{}).Error
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("spam sweep removed records", zap.Int("count", len(ids)))
	return int64(len(ids)), nil
}

// Query returns the base query for listing, optionally filtered by status.
func (s *Service) Query(status string) *gorm.DB {
	q := s.db.Model(&models.FeedbackModel{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return q
}
