package postgres

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert order: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("otro")))
}

func TestIsConnNotOpen(t *testing.T) {
	assert.True(t, isConnNotOpen(fmt.Errorf("begin transaction: %w", net.ErrClosed)))
	assert.True(t, isConnNotOpen(errors.New("conn closed")))
	assert.False(t, isConnNotOpen(nil))
	assert.False(t, isConnNotOpen(&pgconn.PgError{Code: "40001"}))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", fromNull(nullString("x")))
	assert.Equal(t, "", fromNull(nil))
}
