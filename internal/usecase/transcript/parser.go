package transcript

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Statement markers recognized on a single line, tried in order.
var singleLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]\s*([^:]+):\s*(.+)$`), // [00:01:23] Kim: text
	regexp.MustCompile(`^\[(\d{2}:\d{2})\]\s*([^:]+):\s*(.+)$`),       // [01:23] Kim: text
	regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\s+([^:]+):\s*(.+)$`),     // 00:01:23 Kim: text
	regexp.MustCompile(`^(\d{2}:\d{2})\s+([^:]+):\s*(.+)$`),           // 01:23 Kim: text
}

var (
	bareTimestampPattern = regexp.MustCompile(`^(\d{2}:\d{2}(?::\d{2})?)$`)
	speakerLinePattern   = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
)

// Export tools leave boilerplate lines that look like speaker labels. A label
// matching any of these is not a participant and its statement is discarded.
var boilerplateSpeakerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Transcription\s+ended`),
	regexp.MustCompile(`(?i)^Session\s+ended`),
	regexp.MustCompile(`(?i)Meeting\s+ended\s+after`),
	regexp.MustCompile(`(?i)^This\s+editable\s+transcript`),
	regexp.MustCompile(`(?i)^You\s+should\s+review`),
	regexp.MustCompile(`(?i)^Please\s+provide\s+feedback`),
	regexp.MustCompile(`(?i)^Get\s+tips`),
	regexp.MustCompile(`(?i)^Attachments`),
	regexp.MustCompile(`(?i)'s\s+Presentation$`),
	regexp.MustCompile(`님의\s+발표$`),
	regexp.MustCompile(`^첨부파일`),
	regexp.MustCompile(`^초대됨`),
	regexp.MustCompile(`^Gemini가`),
	regexp.MustCompile(`^수정 가능한`),
	regexp.MustCompile(`^\d{4}년`),
	regexp.MustCompile(`^\*`),
	regexp.MustCompile(`^\d{2}:\d{2}(?::\d{2})?$`),
	regexp.MustCompile(`^\d+$`),
}

// validSpeaker reports whether a raw label names a real participant.
func validSpeaker(speaker string) bool {
	speaker = strings.TrimSpace(strings.TrimPrefix(speaker, "\uFEFF"))
	if speaker == "" {
		return false
	}
	for _, pattern := range boilerplateSpeakerPatterns {
		if pattern.MatchString(speaker) {
			return false
		}
	}
	return true
}

// Parser turns raw transcript text into an ordered statement sequence.
// Parsing is pure: the same input always yields the same output, and the
// parser holds no state between calls.
//
// Lines that match no marker are appended to the previous statement's text.
// Lines arriving before any statement are collected into the preamble bucket
// rather than dropped, so callers can inspect headers the export tool left in
// front of the conversation.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts statements from raw transcript text. Speaker labels are the
// raw transcript labels; normalization is a separate step.
//
// A timestamp on a line of its own applies to the next speaker line. A
// speaker line without any timestamp inherits the most recent one (empty when
// none has been seen); when it continues the immediately preceding speaker it
// is merged into that statement instead of starting a new one.
func (p *Parser) Parse(transcript string) entities.ParsedTranscript {
	result := entities.ParsedTranscript{}

	var pendingTimestamp string
	var lastTimestamp string

	appendContinuation := func(line string) {
		if len(result.Statements) == 0 {
			result.Preamble = append(result.Preamble, line)
			return
		}
		last := &result.Statements[len(result.Statements)-1]
		last.Text = last.Text + " " + line
	}

	for _, rawLine := range strings.Split(transcript, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		matched := false
		for _, pattern := range singleLinePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			// Boilerplate labels consume the line without producing a
			// statement.
			if speaker := strings.TrimSpace(m[2]); validSpeaker(speaker) {
				result.Statements = append(result.Statements, entities.Statement{
					Timestamp: m[1],
					Speaker:   speaker,
					Text:      strings.TrimSpace(m[3]),
				})
				lastTimestamp = m[1]
			}
			pendingTimestamp = ""
			matched = true
			break
		}
		if matched {
			continue
		}

		// Timestamp alone on its own line applies to the next speaker line.
		if m := bareTimestampPattern.FindStringSubmatch(line); m != nil {
			pendingTimestamp = m[1]
			continue
		}

		if m := speakerLinePattern.FindStringSubmatch(line); m != nil {
			speaker := strings.TrimSpace(m[1])
			text := strings.TrimSpace(m[2])

			// "00:01: still talking" is not a speaker label.
			if bareTimestampPattern.MatchString(speaker) {
				appendContinuation(text)
				continue
			}

			if !validSpeaker(speaker) {
				pendingTimestamp = ""
				continue
			}

			timestamp := pendingTimestamp
			if timestamp == "" {
				timestamp = lastTimestamp
			}

			// Same speaker continuing without a fresh timestamp keeps the
			// original statement boundary.
			if pendingTimestamp == "" && len(result.Statements) > 0 &&
				result.Statements[len(result.Statements)-1].Speaker == speaker {
				appendContinuation(text)
				continue
			}

			result.Statements = append(result.Statements, entities.Statement{
				Timestamp: timestamp,
				Speaker:   speaker,
				Text:      text,
			})
			lastTimestamp = timestamp
			pendingTimestamp = ""
			continue
		}

		appendContinuation(line)
	}

	return result
}
