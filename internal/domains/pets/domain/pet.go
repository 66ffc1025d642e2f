package domain

import (
	"errors"
	"slices"
	"strings"
)

// Size classifies a pet by adult body size.
type Size string

const (
	SizeNormal Size = "NORMAL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

// ParseSize maps the exact symbolic name to a Size. Anything else, including
// differently cased input, yields the zero Size.
func ParseSize(value string) Size {
	switch s := Size(value); s {
	case SizeNormal, SizeMedium, SizeLarge:
		return s
	default:
		return ""
	}
}

// ErrEmptyName is returned when a pet is saved without a name.
var ErrEmptyName = errors.New("pet name cannot be empty")

// Pet represents an animal listed for adoption.
type Pet struct {
	ID          int64
	Name        string
	Age         *int64
	Gender      string
	Breed       string
	Size        Size
	Castrated   bool
	Dewormed    bool
	Vaccinated  bool
	Description string
	ImageURL    string
	Version     int64
	// SponsorIDs is the inverse of a user's sponsored pets. Stores derive it on
	// read and ignore it on write.
	SponsorIDs []int64
}

// Validate checks the invariants required before persisting.
func (p *Pet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Equal reports identity equality: both pets are persisted and share an id.
func (p *Pet) Equal(other *Pet) bool {
	if p == nil || other == nil || p.ID == 0 {
		return false
	}
	return p.ID == other.ID
}

// Clone returns a deep copy.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Age != nil {
		age := *p.Age
		clone.Age = &age
	}
	clone.SponsorIDs = slices.Clone(p.SponsorIDs)
	return &clone
}
