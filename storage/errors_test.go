package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("upsert user", nil))

	cause := errors.New("connection reset")
	err := Wrap("upsert user", cause)

	var se *StoreError
	if assert.ErrorAs(t, err, &se) {
		assert.Equal(t, "upsert user", se.Op)
	}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage: upsert user: connection reset", err.Error())
}

func TestWrap_NotFoundSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("lookup: %w", Wrap("get user", ErrNotFound))
	assert.ErrorIs(t, err, ErrNotFound)
}
