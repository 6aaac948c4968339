package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingRecord is the canonical in-memory meeting shape consumed by the
// analysis pipeline. Ingestion adapters convert the various document schemas
// to this type before the core ever sees them.
type MeetingRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Participants []string  `json:"participants,omitempty"`
	Transcript   string    `json:"transcript"`
}

// Meeting is the stored meeting document.
type Meeting struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID   string         `json:"external_id" gorm:"type:varchar(64);uniqueIndex"`
	Title        string         `json:"title" gorm:"type:varchar(500);not null"`
	Date         time.Time      `json:"date" gorm:"index"`
	Participants datatypes.JSON `json:"participants,omitempty" gorm:"type:jsonb"`
	Transcript   string         `json:"transcript" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a stored Meeting from a canonical record.
func NewMeeting(rec MeetingRecord) *Meeting {
	m := &Meeting{
		ID:         uuid.New(),
		ExternalID: rec.ID,
		Title:      rec.Title,
		Date:       rec.Date,
		Transcript: rec.Transcript,
	}
	if len(rec.Participants) > 0 {
		if b, err := json.Marshal(rec.Participants); err == nil {
			m.Participants = b
		}
	}
	return m
}

// ToRecord converts a stored Meeting back to the canonical pipeline shape.
func (m *Meeting) ToRecord() MeetingRecord {
	rec := MeetingRecord{
		ID:         m.ExternalID,
		Title:      m.Title,
		Date:       m.Date,
		Transcript: m.Transcript,
	}
	if rec.ID == "" {
		rec.ID = m.ID.String()
	}
	if len(m.Participants) > 0 {
		var participants []string
		if err := json.Unmarshal(m.Participants, &participants); err == nil {
			rec.Participants = participants
		}
	}
	return rec
}
