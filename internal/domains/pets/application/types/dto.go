package types

// PetDTO is the transport representation of a pet. Sponsors are carried as
// user identifiers.
type PetDTO struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Age         *int64  `json:"age,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Breed       string  `json:"breed,omitempty"`
	Size        string  `json:"size,omitempty"`
	Castrated   bool    `json:"castrated"`
	Dewormed    bool    `json:"dewormed"`
	Vaccinated  bool    `json:"vaccinated"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Version     int64   `json:"version"`
	SponsorIDs  []int64 `json:"sponsorIds"`
}
