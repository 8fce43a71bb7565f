package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("slots").
		Set("status", "booked").
		Where(squirrel.Eq{"id": int64(7), "status": "available"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE slots SET status = $1 WHERE id = $2 AND status = $3", query)
	assert.Equal(t, []interface{}{"booked", int64(7), "available"}, args)
}
