package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"validación", Invalid("items", "vacío"), KindValidation},
		{"no encontrado envuelto", fmt.Errorf("producto p1: %w", ErrNotFound), KindReferential},
		{"stock", ErrInsufficientStock, KindPolicy},
		{"duplicado", ErrDuplicate, KindConflict},
		{"commit", fmt.Errorf("%w: %w", ErrStorage, ErrCommit), KindStorage},
		{"desconocido", errors.New("boom"), KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := Invalid("quantity", "debe ser mayor a 0")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "quantity: debe ser mayor a 0", err.Error())
}

func TestStorageError_RespetaClase(t *testing.T) {
	assert.ErrorIs(t, StorageError(ErrInsufficientStock), ErrInsufficientStock)
	assert.NotErrorIs(t, StorageError(ErrInsufficientStock), ErrStorage)

	err := StorageError(errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrCommit)

	assert.Nil(t, StorageError(nil))
}

func TestCommitError(t *testing.T) {
	err := CommitError(errors.New("timeout"))
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrCommit)
	assert.Equal(t, KindStorage, KindOf(err))
}
