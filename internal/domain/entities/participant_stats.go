package entities

import "sort"

// ParticipantStats holds raw speaking metrics for one canonical participant.
// Only raw counts live here; rate-style metrics are derived downstream so the
// arithmetic has a single source of truth.
type ParticipantStats struct {
	SpeakCount       int      `json:"speak_count"`
	TotalWords       int      `json:"total_words"`
	MeetingsAttended int      `json:"meetings_attended,omitempty"`
	Timestamps       []string `json:"timestamps"`
	Statements       []string `json:"statements"`
}

// StatsByParticipant maps canonical participant name to stats.
type StatsByParticipant map[string]*ParticipantStats

// TotalStatements returns the sum of SpeakCount over all participants. For a
// single meeting this equals the number of parsed statements.
func (s StatsByParticipant) TotalStatements() int {
	total := 0
	for _, ps := range s {
		total += ps.SpeakCount
	}
	return total
}

// Participants returns the canonical names in sorted order.
func (s StatsByParticipant) Participants() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParticipationRate returns speakCount as a percentage of totalStatements.
// A zero total reports 0, not an error.
func ParticipationRate(speakCount, totalStatements int) float64 {
	if totalStatements == 0 {
		return 0
	}
	return float64(speakCount) / float64(totalStatements) * 100
}
