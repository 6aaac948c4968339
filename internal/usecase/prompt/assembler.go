package prompt

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Request carries everything the assembler substitutes into a template.
// Date is the caller-supplied analysis anchor in YYYY-MM-DD form; the
// assembler never computes dates itself, it only substitutes what it is
// given. MeetingsData defaults to FormattedText when empty.
type Request struct {
	FormattedText      string
	Participants       []string
	CustomInstructions string
	Date               string
	MeetingsData       string
}

// Assembler builds final model prompts from a template and a Request.
// Placeholder substitution is plain string replacement: template authors own
// the placeholder vocabulary ({date}, {participants}, {meetings_data}) and
// the assembler treats the substituted values as opaque text.
type Assembler struct{}

// NewAssembler creates a new Assembler instance
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble renders the template against the request and wraps it with the
// transcript block and participant list.
func (a *Assembler) Assemble(template string, req Request) string {
	participants := strings.Join(req.Participants, ", ")

	date := req.Date
	if date == "" {
		date = "N/A"
	}
	meetingsData := req.MeetingsData
	if meetingsData == "" {
		meetingsData = req.FormattedText
	}

	template = strings.ReplaceAll(template, "{date}", date)
	template = strings.ReplaceAll(template, "{meetings_data}", meetingsData)
	template = strings.ReplaceAll(template, "{participants}", participants)

	var b strings.Builder
	b.WriteString("The following is a meeting transcript.\n\n")
	b.WriteString(req.FormattedText)
	b.WriteString("\n\nParticipants: ")
	b.WriteString(participants)
	b.WriteString("\n\n---\n\n")
	b.WriteString(template)
	b.WriteString("\n")

	if req.CustomInstructions != "" {
		b.WriteString("\n---\n**Additional instructions:**\n")
		b.WriteString(req.CustomInstructions)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatTranscript renders one meeting with its statistics block into the
// text form the analysis prompt embeds.
func (a *Assembler) FormatTranscript(meeting entities.MeetingRecord, parsed entities.ParsedTranscript, stats entities.StatsByParticipant) string {
	date := "N/A"
	if !meeting.Date.IsZero() {
		date = meeting.Date.Format("2006-01-02")
	}
	title := meeting.Title
	if title == "" {
		title = "N/A"
	}

	total := stats.TotalStatements()

	var b strings.Builder
	b.WriteString("=== Meeting Info ===\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(stats.Participants(), ", "))

	b.WriteString("\n=== Speaking Statistics ===\n")
	for _, name := range stats.Participants() {
		ps := stats[name]
		active := "N/A"
		if len(ps.Timestamps) > 0 && ps.Timestamps[0] != "" {
			active = fmt.Sprintf("%s ~ %s", ps.Timestamps[0], ps.Timestamps[len(ps.Timestamps)-1])
		}
		fmt.Fprintf(&b, "\n%s:\n", name)
		fmt.Fprintf(&b, "  - statements: %d\n", ps.SpeakCount)
		fmt.Fprintf(&b, "  - words: %d\n", ps.TotalWords)
		fmt.Fprintf(&b, "  - participation: %.1f%%\n", entities.ParticipationRate(ps.SpeakCount, total))
		fmt.Fprintf(&b, "  - active: %s\n", active)
	}

	b.WriteString("\n=== Conversation ===\n")
	for _, stmt := range parsed.Statements {
		if stmt.Timestamp != "" {
			fmt.Fprintf(&b, "[%s] %s: %s\n", stmt.Timestamp, stmt.Speaker, stmt.Text)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", stmt.Speaker, stmt.Text)
		}
	}

	return b.String()
}

// FormatAggregated concatenates several meetings into one document, each
// introduced by a "=== Meeting: title (date) ===" header so cross-meeting
// templates can cite the source meeting.
func (a *Assembler) FormatAggregated(meetings []entities.MeetingRecord) string {
	var b strings.Builder
	for _, m := range meetings {
		date := "Unknown Date"
		if !m.Date.IsZero() {
			date = m.Date.Format("2006-01-02")
		}
		title := m.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "\n\n=== Meeting: %s (%s) ===\n\n", title, date)
		b.WriteString(m.Transcript)
	}
	return b.String()
}
