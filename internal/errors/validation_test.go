package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmtable/sheet-api/internal/errors"
)

func TestValidationBuilderEmpty(t *testing.T) {
	vb := errors.NewValidationBuilder()
	assert.NoError(t, vb.Build())
}

func TestValidationBuilderCollectsFields(t *testing.T) {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")
	vb.Fieldf("level", "must be at least %d", 1)

	err := vb.Build()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	var verr *errors.Error
	require.True(t, errors.As(err, &verr))
	fields, ok := verr.Meta["validation_errors"].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fields["name"], "is required")
	assert.Contains(t, fields["level"], "must be at least 1")
}

func TestValidateRequired(t *testing.T) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "   ", vb)
	errors.ValidateRequired("race", "elf", vb)

	err := vb.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.NotContains(t, err.Error(), "race")
}

func TestValidateEnum(t *testing.T) {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("slot", "head", []string{"head", "armor"}, vb)
	assert.NoError(t, vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateEnum("slot", "tail", []string{"head", "armor"}, vb)
	assert.Error(t, vb.Build())
}

func TestValidateMin(t *testing.T) {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("count", 0, 1, vb)
	assert.Error(t, vb.Build())
}
