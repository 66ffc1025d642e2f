package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	pettypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
)

type normalizedCreatePet struct {
	Name        string  `json:"name"`
	Age         *int64  `json:"age"`
	Gender      string  `json:"gender"`
	Breed       string  `json:"breed"`
	Size        string  `json:"size"`
	Castrated   bool    `json:"castrated"`
	Dewormed    bool    `json:"dewormed"`
	Vaccinated  bool    `json:"vaccinated"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	SponsorIDs  []int64 `json:"sponsorIds"`
}

// FingerprintCreatePet builds a deterministic hash of a create request. The
// caller-supplied id and version are ignored on create and so are excluded,
// and sponsor order does not matter.
func FingerprintCreatePet(dto pettypes.PetDTO) (string, error) {
	payload, err := json.Marshal(normalizedCreatePet{
		Name:        strings.TrimSpace(dto.Name),
		Age:         dto.Age,
		Gender:      dto.Gender,
		Breed:       dto.Breed,
		Size:        dto.Size,
		Castrated:   dto.Castrated,
		Dewormed:    dto.Dewormed,
		Vaccinated:  dto.Vaccinated,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		SponsorIDs:  relations.Normalize(dto.SponsorIDs),
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
