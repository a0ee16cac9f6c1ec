// Package excel 封装了 xlsx 表格的生成与解析，供各资源的导入导出使用。
package excel

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType 是 xlsx 文件的标准 MIME 类型。
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// BuildWorkbook 生成一个单 Sheet 的 xlsx 文件。
// 第一行写入表头，后续每行写入一条记录，返回文件的字节内容。
func BuildWorkbook(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(defaultSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(defaultSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWorkbook 解析上传的 xlsx 文件的第一个 Sheet。
// 返回表头（第一行）和数据行；数据行按表头长度补齐，超出表头的单元格被丢弃。
func ParseWorkbook(r io.Reader) (headers []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.New("文件中没有可用的工作表")
	}

	allRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(allRows) == 0 {
		return nil, nil, errors.New("工作表为空，缺少表头行")
	}

	headers = allRows[0]
	for _, raw := range allRows[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(raw) {
				row[i] = raw[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
