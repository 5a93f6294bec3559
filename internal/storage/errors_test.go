package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NotFoundf(CollectionCards, "c1")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "cards c1: not found", err.Error())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, CollectionCards, nf.Collection)
	require.Equal(t, "c1", nf.ID)

	// Matching survives wrapping.
	wrapped := fmt.Errorf("loading card: %w", err)
	require.ErrorIs(t, wrapped, ErrNotFound)
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("disk full")
	err := Unavailable("open database", cause)
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "storage unavailable: open database: disk full", err.Error())

	bare := Unavailable("not initialized", nil)
	require.Equal(t, "storage unavailable: not initialized", bare.Error())
}
