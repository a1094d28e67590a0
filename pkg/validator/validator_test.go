package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string    `validate:"required"`
	Ref  uuid.UUID `validate:"uuid_required"`
}

func TestValidateStructOK(t *testing.T) {
	errs := ValidateStruct(sample{Name: "ok", Ref: uuid.New()})
	assert.Empty(t, errs)
}

func TestValidateStructMissingFields(t *testing.T) {
	errs := ValidateStruct(sample{})
	assert.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "sample.Name")
	assert.Contains(t, fields, "sample.Ref")
}

func TestUUIDRequiredRejectsNil(t *testing.T) {
	errs := ValidateStruct(sample{Name: "ok", Ref: uuid.Nil})
	assert.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}
