package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependEntryNewestFirst(t *testing.T) {
	old := JournalEntry{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Notes: "first"}
	mid := JournalEntry{Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Notes: "second"}

	journal := PrependEntry(nil, old)
	journal = PrependEntry(journal, mid)

	require.Len(t, journal, 2)
	assert.Equal(t, "second", journal[0].Notes)
	assert.Equal(t, "first", journal[1].Notes)
}

func TestPrependEntryDoesNotMutateOriginal(t *testing.T) {
	base := []JournalEntry{{Notes: "kept"}}
	out := PrependEntry(base, JournalEntry{Notes: "new"})

	assert.Len(t, base, 1)
	assert.Equal(t, "kept", base[0].Notes)
	assert.Len(t, out, 2)
}
