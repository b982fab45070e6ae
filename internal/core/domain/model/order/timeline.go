package order

import (
	"time"
)

// TimelineEntry is one record of the order's append-only audit trail:
// the status the order entered, when, by whom, and an optional note.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	note      string
	createdBy string
}

// NewTimelineEntry creates a timeline entry. Note and createdBy may be empty.
func NewTimelineEntry(status Status, timestamp time.Time, note, createdBy string) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}

	return TimelineEntry{
		status:    status,
		timestamp: timestamp,
		note:      note,
		createdBy: createdBy,
	}, nil
}

// Status returns the status the order entered with this entry.
func (e TimelineEntry) Status() Status {
	return e.status
}

// Timestamp returns when the transition was recorded.
func (e TimelineEntry) Timestamp() time.Time {
	return e.timestamp
}

// Note returns the optional operator note, possibly empty.
func (e TimelineEntry) Note() string {
	return e.note
}

// CreatedBy returns the acting user id, possibly empty for system transitions.
func (e TimelineEntry) CreatedBy() string {
	return e.createdBy
}
