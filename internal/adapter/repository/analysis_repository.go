package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create stores an analysis record
func (r *analysisRepository) Create(ctx context.Context, record *entities.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves an analysis record by its ID
func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error) {
	var record entities.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByMeetingID retrieves every analysis of one meeting, newest first
func (r *analysisRepository) FindByMeetingID(ctx context.Context, meetingID string) ([]entities.AnalysisRecord, error) {
	var records []entities.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("analyzed_at DESC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListRecent retrieves the most recent analysis records
func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]entities.AnalysisRecord, error) {
	var records []entities.AnalysisRecord
	err := r.db.WithContext(ctx).
		Order("analyzed_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}
