package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	now := time.Now().UTC()

	a, err := NewAccount(12345678900, now)
	require.NoError(t, err)
	assert.Equal(t, int64(12345678900), a.DocumentNumber)
	assert.Zero(t, a.ID)
	assert.Equal(t, now, a.CreatedAt)

	_, err = NewAccount(0, now)
	require.ErrorIs(t, err, ErrInvalidDocumentNumber)

	_, err = NewAccount(-5, now)
	require.ErrorIs(t, err, ErrInvalidDocumentNumber)
}

func TestAccount_Validate(t *testing.T) {
	require.NoError(t, Account{ID: 1, DocumentNumber: 10}.Validate())
	require.ErrorIs(t, Account{ID: -1, DocumentNumber: 10}.Validate(), ErrInvalidAccountID)
	require.ErrorIs(t, Account{ID: 1}.Validate(), ErrInvalidDocumentNumber)
}
