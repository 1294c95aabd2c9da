package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{Email: "a@example.com"}))

	err := v.Validate(sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.EqualError(t, err, "email is required")

	neg := -1.0
	err = v.Validate(sample{Email: "a@example.com", Price: &neg})
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "gte", de.Details["price"])
}
