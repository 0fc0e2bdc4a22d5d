package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure.GO/core/testdb"
)

func TestLookup(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedParts(t, db, testdb.Part("P100", 10, "2.50"))

	res, err := Lookup(context.Background(), db, " P100 ")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 2.5, res.UnitPrice)
	assert.Equal(t, 10, res.MOQ)
	assert.Equal(t, "ACME", res.Supplier)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":true,"part_number":"P100","supplier":"ACME","description":"Part P100","unit_price":2.5,"moq":10,"unit":"pcs"}`, string(b))
}

func TestLookup_Unknown(t *testing.T) {
	db := testdb.Open(t)

	res, err := Lookup(context.Background(), db, "p100")
	require.NoError(t, err)
	assert.False(t, res.Found)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false}`, string(b))
}
