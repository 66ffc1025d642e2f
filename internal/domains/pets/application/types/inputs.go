package types

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID int64
}

// CreatePetInput carries a new pet and the optional client idempotency key.
type CreatePetInput struct {
	Pet            PetDTO
	IdempotencyKey string
}

// UpdatePetInput replaces the state of the pet identified by Pet.ID.
type UpdatePetInput struct {
	Pet PetDTO
}

// SearchPetsInput holds optional filters; nil fields are ignored.
type SearchPetsInput struct {
	Name        *string
	Breed       *string
	Age         *int64
	Gender      *string
	Size        *string
	Castrated   *bool
	Dewormed    *bool
	Vaccinated  *bool
	Description *string
}
