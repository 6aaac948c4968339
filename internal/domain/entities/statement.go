package entities

import "strings"

// Statement is one attributed utterance extracted from a transcript.
// Timestamp is the raw transcript timestamp ("HH:MM:SS" or "MM:SS"); it is
// empty when no timestamp was seen before the statement.
type Statement struct {
	Timestamp string `json:"timestamp,omitempty"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// WordCount returns the number of whitespace-delimited tokens in the
// statement text.
func (s Statement) WordCount() int {
	return len(strings.Fields(s.Text))
}

// ParsedTranscript is the output of the statement parser. Statements keep
// transcript appearance order. Preamble collects lines that appeared before
// the first recognized statement marker; they carry no speaker and are
// excluded from statistics.
type ParsedTranscript struct {
	Statements []Statement `json:"statements"`
	Preamble   []string    `json:"preamble,omitempty"`
}
