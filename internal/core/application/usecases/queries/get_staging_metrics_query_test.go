package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStagingMetricsQuery_Valid(t *testing.T) {
	query := queries.NewGetStagingMetricsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetStagingMetricsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetStagingMetricsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStagingMetricsQueryIsNotConstructed)
}
