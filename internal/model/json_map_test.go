package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValueAndScan(t *testing.T) {
	original := JSONMap{
		"hostname": "web-01",
		"cpu":      float64(8),
		"active":   true,
	}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded JSONMap
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, original, decoded)
}

func TestJSONMapValueNil(t *testing.T) {
	var m JSONMap
	value, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}

func TestJSONMapScanNilAndEmpty(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m)
	assert.Empty(t, m)

	require.NoError(t, m.Scan([]byte{}))
	assert.Empty(t, m)
}

func TestJSONMapScanString(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(`{"status":"Active"}`))
	assert.Equal(t, "Active", m["status"])
}

func TestJSONMapScanUnsupportedType(t *testing.T) {
	var m JSONMap
	assert.Error(t, m.Scan(123))
}
