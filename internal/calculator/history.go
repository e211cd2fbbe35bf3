package calculator

// Ledger is the ordered evaluation history of one session. Records are kept
// in insertion order; the only removal is a full Clear.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	records []Record
}

// Append adds rec to the end of the history. Duplicates are kept.
func (l *Ledger) Append(rec Record) {
	l.records = append(l.records, rec)
}

// Clear drops every record and returns how many were dropped.
func (l *Ledger) Clear() int {
	n := len(l.records)
	l.records = nil
	return n
}

// Snapshot returns a copy of the history in chronological order. The copy
// is never nil so it encodes as an empty JSON array.
func (l *Ledger) Snapshot() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records currently held.
func (l *Ledger) Len() int {
	return len(l.records)
}
