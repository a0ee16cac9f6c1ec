package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndParseWorkbook(t *testing.T) {
	headers := []string{"Hostname", "IP Address", "Status"}
	rows := [][]string{
		{"web-01", "10.0.0.1", "Active"},
		{"db-01", "10.0.0.2", "Decommissioned"},
	}

	data, err := BuildWorkbook(headers, rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	parsedHeaders, parsedRows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, headers, parsedHeaders)
	assert.Equal(t, rows, parsedRows)
}

func TestBuildWorkbookHeadersOnly(t *testing.T) {
	data, err := BuildWorkbook([]string{"Username", "Email"}, nil)
	require.NoError(t, err)

	parsedHeaders, parsedRows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Username", "Email"}, parsedHeaders)
	assert.Empty(t, parsedRows)
}

func TestParseWorkbookPadsShortRows(t *testing.T) {
	// 行尾为空的单元格在 xlsx 中可能整体缺失，解析时需要按表头补齐
	data, err := BuildWorkbook([]string{"A", "B", "C"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, rows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "", ""}, rows[0])
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, _, err := ParseWorkbook(bytes.NewReader([]byte("this is not an xlsx file")))
	assert.Error(t, err)
}
