package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

func TestGenerateParse_DevuelveActor(t *testing.T) {
	token, err := jwt.Generate("secreto", "cajero-1", "inventario-ledger", time.Minute)
	require.NoError(t, err)

	actor, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "cajero-1", actor)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "cajero-1", "inventario-ledger", time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "cajero-1", "inventario-ledger", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "cajero-1", "x", time.Minute)
	assert.Error(t, err)
}
