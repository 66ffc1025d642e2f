package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSearchInput(t *testing.T) {
	city := "Berlin"
	empty := ""
	active := false

	input := ToSearchInput(SearchQuery{City: &city, Role: &empty, Active: &active})
	assert.Equal(t, "Berlin", *input.City)
	assert.Nil(t, input.Role)
	assert.False(t, *input.Active)
	assert.Nil(t, input.Email)
}
