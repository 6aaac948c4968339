package transcript

import (
	"reflect"
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestCollect_CountsAndConservation(t *testing.T) {
	statements := []entities.Statement{
		{Timestamp: "00:01:00", Speaker: "Kim", Text: "one two three"},
		{Timestamp: "00:01:10", Speaker: "Lee", Text: "four five"},
		{Timestamp: "00:01:20", Speaker: "Kim", Text: "six"},
	}

	stats := NewAggregator().Collect(statements)

	if stats["Kim"].SpeakCount != 2 || stats["Lee"].SpeakCount != 1 {
		t.Fatalf("unexpected speak counts: %+v", stats)
	}
	if stats["Kim"].TotalWords != 4 {
		t.Fatalf("expected 4 words for Kim, got %d", stats["Kim"].TotalWords)
	}
	if stats["Lee"].TotalWords != 2 {
		t.Fatalf("expected 2 words for Lee, got %d", stats["Lee"].TotalWords)
	}
	if got := stats.TotalStatements(); got != len(statements) {
		t.Fatalf("conservation violated: %d statements, counts sum to %d", len(statements), got)
	}
	if !reflect.DeepEqual(stats["Kim"].Timestamps, []string{"00:01:00", "00:01:20"}) {
		t.Fatalf("timestamps out of order: %v", stats["Kim"].Timestamps)
	}
	if !reflect.DeepEqual(stats["Kim"].Statements, []string{"one two three", "six"}) {
		t.Fatalf("statements out of order: %v", stats["Kim"].Statements)
	}
}

func TestCollect_Empty(t *testing.T) {
	stats := NewAggregator().Collect(nil)
	if len(stats) != 0 {
		t.Fatalf("expected empty stats, got %v", stats)
	}
	if stats.TotalStatements() != 0 {
		t.Fatalf("expected zero statements")
	}
}

func TestMerge_AcrossMeetings(t *testing.T) {
	agg := NewAggregator()
	first := agg.Collect([]entities.Statement{
		{Timestamp: "00:01:00", Speaker: "Kim", Text: "alpha beta"},
		{Timestamp: "00:02:00", Speaker: "Lee", Text: "gamma"},
	})
	second := agg.Collect([]entities.Statement{
		{Timestamp: "00:00:30", Speaker: "Kim", Text: "delta"},
	})

	merged := agg.Merge([]entities.StatsByParticipant{first, second})

	kim := merged["Kim"]
	if kim.SpeakCount != 2 || kim.TotalWords != 3 {
		t.Fatalf("unexpected merged counts for Kim: %+v", kim)
	}
	if kim.MeetingsAttended != 2 {
		t.Fatalf("Kim attended 2 meetings, got %d", kim.MeetingsAttended)
	}
	if merged["Lee"].MeetingsAttended != 1 {
		t.Fatalf("Lee attended 1 meeting, got %d", merged["Lee"].MeetingsAttended)
	}
	if !reflect.DeepEqual(kim.Timestamps, []string{"00:01:00", "00:00:30"}) {
		t.Fatalf("merged timestamps must keep meeting order: %v", kim.Timestamps)
	}
}

func TestParticipationRate_ZeroGuard(t *testing.T) {
	if got := entities.ParticipationRate(3, 0); got != 0 {
		t.Fatalf("expected 0 for empty meeting, got %v", got)
	}
	if got := entities.ParticipationRate(1, 4); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}
