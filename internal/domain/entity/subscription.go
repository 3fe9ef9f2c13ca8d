package entity

import "time"

// Subscription links a reader to either a publisher or a journalist,
// never both. The pair (reader, target) is unique.
type Subscription struct {
	ID           int64
	ReaderID     int64
	PublisherID  *int64
	JournalistID *int64
	CreatedAt    time.Time
}

// Validate checks the mutual-exclusion invariant of the subscription target.
func (s *Subscription) Validate() error {
	if s.ReaderID <= 0 {
		return &ValidationError{Field: "reader_id", Message: "must be positive"}
	}
	if s.PublisherID == nil && s.JournalistID == nil {
		return &ValidationError{Field: "target", Message: "either publisher or journalist is required"}
	}
	if s.PublisherID != nil && s.JournalistID != nil {
		return &ValidationError{Field: "target", Message: "cannot subscribe to both a publisher and a journalist"}
	}
	return nil
}
