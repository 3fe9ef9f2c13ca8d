package entity

import "time"

// Publisher represents a publication that journalists and editors are
// affiliated with. Affiliation itself lives on the User record.
type Publisher struct {
	ID          int64
	Name        string
	Description string
	Website     string
	CreatedAt   time.Time
}

// Validate checks the Publisher fields.
func (p *Publisher) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(p.Name) > 100 {
		return &ValidationError{Field: "name", Message: "must not exceed 100 characters"}
	}
	if p.Website != "" {
		if err := ValidateURL(p.Website); err != nil {
			return err
		}
	}
	return nil
}

// Category classifies articles. Flat, no hierarchy.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Validate checks the Category fields.
func (c *Category) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(c.Name) > 50 {
		return &ValidationError{Field: "name", Message: "must not exceed 50 characters"}
	}
	return nil
}
