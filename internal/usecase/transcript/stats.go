package transcript

import "github.com/johnquangdev/meeting-insights/internal/domain/entities"

// Aggregator computes per-participant speaking statistics from parsed
// statements. Speakers must already be canonical; the aggregator never
// normalizes. It exposes raw counts only, derived rates belong downstream.
type Aggregator struct{}

// NewAggregator creates a new Aggregator instance
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Collect builds per-participant statistics for a single meeting. The sum of
// SpeakCount over the result equals len(statements); timestamps and statement
// texts keep transcript order.
func (a *Aggregator) Collect(statements []entities.Statement) entities.StatsByParticipant {
	stats := entities.StatsByParticipant{}
	for _, stmt := range statements {
		ps, ok := stats[stmt.Speaker]
		if !ok {
			ps = &entities.ParticipantStats{}
			stats[stmt.Speaker] = ps
		}
		ps.SpeakCount++
		ps.TotalWords += stmt.WordCount()
		ps.Timestamps = append(ps.Timestamps, stmt.Timestamp)
		ps.Statements = append(ps.Statements, stmt.Text)
	}
	return stats
}

// Merge combines per-meeting statistics across meetings: counts are summed,
// timestamp and statement sequences concatenated in meeting order, and
// MeetingsAttended counts the meetings where the participant spoke at least
// once.
func (a *Aggregator) Merge(perMeeting []entities.StatsByParticipant) entities.StatsByParticipant {
	merged := entities.StatsByParticipant{}
	for _, meetingStats := range perMeeting {
		for name, ps := range meetingStats {
			target, ok := merged[name]
			if !ok {
				target = &entities.ParticipantStats{}
				merged[name] = target
			}
			target.SpeakCount += ps.SpeakCount
			target.TotalWords += ps.TotalWords
			target.Timestamps = append(target.Timestamps, ps.Timestamps...)
			target.Statements = append(target.Statements, ps.Statements...)
			if ps.SpeakCount > 0 {
				target.MeetingsAttended++
			}
		}
	}
	return merged
}
