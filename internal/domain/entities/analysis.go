package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisStatus marks whether an analysis request produced a result or an
// error. Batch processing records one status per meeting.
type AnalysisStatus string

const (
	AnalysisStatusSuccess AnalysisStatus = "success"
	AnalysisStatusError   AnalysisStatus = "error"
)

// AnalysisResult is the outcome of one meeting analysis. It is immutable once
// produced; the core never mutates a returned result. TemplateVersion is nil
// when a fully custom prompt bypassed the registry.
type AnalysisResult struct {
	MeetingID        string             `json:"meeting_id"`
	MeetingTitle     string             `json:"meeting_title,omitempty"`
	Status           AnalysisStatus     `json:"status"`
	Analysis         string             `json:"analysis,omitempty"`
	ErrorMessage     string             `json:"error,omitempty"`
	ParticipantStats StatsByParticipant `json:"participant_stats"`
	TotalStatements  int                `json:"total_statements"`
	TemplateUsed     string             `json:"template_used"`
	TemplateVersion  *string            `json:"template_version"`
	ModelUsed        string             `json:"model_used"`
	Timestamp        time.Time          `json:"timestamp"`
}

// DateRange bounds the meetings covered by an aggregated analysis.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AggregatedParticipant is the cross-meeting summary line for one
// participant, including the share of all words spoken.
type AggregatedParticipant struct {
	Name       string  `json:"name"`
	SpeakCount int     `json:"speak_count"`
	WordCount  int     `json:"word_count"`
	Percentage float64 `json:"percentage"`
}

// AggregatedResult is the outcome of a cross-meeting analysis.
type AggregatedResult struct {
	Status          AnalysisStatus          `json:"status"`
	Analysis        string                  `json:"analysis,omitempty"`
	ErrorMessage    string                  `json:"error,omitempty"`
	MeetingCount    int                     `json:"meeting_count"`
	MeetingTitles   []string                `json:"meeting_titles"`
	DateRange       DateRange               `json:"date_range"`
	Participants    []AggregatedParticipant `json:"participants"`
	TemplateUsed    string                  `json:"template_used"`
	TemplateVersion *string                 `json:"template_version"`
	ModelUsed       string                  `json:"model_used"`
	Timestamp       time.Time               `json:"timestamp"`
}

// AnalysisRecord is the stored form of an AnalysisResult.
type AnalysisRecord struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID        string         `json:"meeting_id" gorm:"type:varchar(64);index"`
	Status           string         `json:"status" gorm:"type:varchar(20);not null"`
	Analysis         string         `json:"analysis,omitempty" gorm:"type:text"`
	ErrorMessage     string         `json:"error_message,omitempty" gorm:"type:text"`
	ParticipantStats datatypes.JSON `json:"participant_stats,omitempty" gorm:"type:jsonb"`
	TotalStatements  int            `json:"total_statements"`
	TemplateUsed     string         `json:"template_used" gorm:"type:varchar(100)"`
	TemplateVersion  *string        `json:"template_version,omitempty" gorm:"type:varchar(20)"`
	ModelUsed        string         `json:"model_used" gorm:"type:varchar(100)"`
	AnalyzedAt       time.Time      `json:"analyzed_at"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for AnalysisRecord
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// NewAnalysisRecord creates a stored record from an analysis result.
func NewAnalysisRecord(result AnalysisResult) *AnalysisRecord {
	rec := &AnalysisRecord{
		ID:              uuid.New(),
		MeetingID:       result.MeetingID,
		Status:          string(result.Status),
		Analysis:        result.Analysis,
		ErrorMessage:    result.ErrorMessage,
		TotalStatements: result.TotalStatements,
		TemplateUsed:    result.TemplateUsed,
		TemplateVersion: result.TemplateVersion,
		ModelUsed:       result.ModelUsed,
		AnalyzedAt:      result.Timestamp,
	}
	if stats, err := json.Marshal(result.ParticipantStats); err == nil {
		rec.ParticipantStats = stats
	}
	return rec
}
