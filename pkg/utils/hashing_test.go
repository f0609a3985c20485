package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("saigon")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "saigon"))
	require.False(t, CheckPassword(hash, "hanoi"))

	_, err = HashPassword("")
	require.ErrorIs(t, err, ErrInvalidInput)
}
