package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingRepository persists meeting documents.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	Upsert(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	FindByExternalID(ctx context.Context, externalID string) (*entities.Meeting, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]entities.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalysisRepository persists analysis results.
type AnalysisRepository interface {
	Create(ctx context.Context, record *entities.AnalysisRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error)
	FindByMeetingID(ctx context.Context, meetingID string) ([]entities.AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]entities.AnalysisRecord, error)
}
