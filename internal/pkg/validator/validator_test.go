package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // v7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // v7 uppercase
		"123e4567-e89b-12d3-a456-426614174000", // v1
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",              // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",          // invalid hex
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000", // urn form
		"-1",
		"",
	}
	for _, id := range valid {
		assert.True(t, IsValidUUID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidUUID(id), id)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2024-03", "1999-12"}
	invalid := []string{"2024-13", "2024-3", "2024-03-01", "03-2024", ""}
	for _, s := range valid {
		_, ok := IsValidMonth(s)
		assert.True(t, ok, s)
	}
	for _, s := range invalid {
		_, ok := IsValidMonth(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(-23.55))
	assert.True(t, IsValidLatitude(90))
	assert.False(t, IsValidLatitude(91))

	assert.True(t, IsValidLongitude(-46.63))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(-180.5))
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}

	assert.True(t, IsInSlice("a", slice))
	assert.False(t, IsInSlice("d", slice))
	assert.False(t, IsInSlice("a", nil))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "employee_id", Message: "required"},
	}

	assert.Equal(t, "month: invalid; employee_id: required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "employee_id", Message: "required"},
	}

	assert.Equal(t, map[string]string{"month": "invalid", "employee_id": "required"}, errs.ToMap())
}
