package entity

import "time"

// JournalEntry is one dated record of a submitted photo plus the user's notes
// and the analysis text produced at creation time. Entries are append-only:
// the journal is prepended to and never edited or pruned.
type JournalEntry struct {
	Date       time.Time `json:"date"`
	Image      string    `json:"image"` // base64 data URL, self-contained
	Notes      string    `json:"notes"`
	AIAnalysis string    `json:"aiAnalysis"`
}

// PrependEntry returns the journal with e at the front. Prior entries keep
// their relative order.
func PrependEntry(journal []JournalEntry, e JournalEntry) []JournalEntry {
	out := make([]JournalEntry, 0, len(journal)+1)
	out = append(out, e)
	return append(out, journal...)
}
