package queries_test

import (
	"testing"

	"shipping/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderBoardQuery_Valid(t *testing.T) {
	query := queries.NewGetOrderBoardQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetOrderBoardQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderBoardQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderBoardQueryIsNotConstructed)
}
