package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitError(t *testing.T) {
	err := newFitError("sarima", ErrConstantSeries)
	assert.Equal(t, "sarima fit failed, constant training segment", err.Error())
	assert.ErrorIs(t, err, ErrConstantSeries)

	var fitErr *FitError
	assert.True(t, errors.As(err, &fitErr))
	assert.Equal(t, "sarima", fitErr.Model)
}
