package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := Identity{UserID: "u-1", Username: "ana", Role: "vendedor"}
	token, err := Generate("secreto", id, "ventas-api", 5)
	require.NoError(t, err)

	got, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", Identity{UserID: "u-1"}, "ventas-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secreto", Identity{UserID: "u-1"}, "ventas-api", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", Identity{UserID: "u-1"}, "ventas-api", 5)
	assert.Error(t, err)
}
