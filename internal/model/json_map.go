package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap 是一个可直接映射到 JSON 列的键值对象。
// 值为任意标量（string | number | boolean | null），服务端不对键做模式校验。
type JSONMap map[string]interface{}

// Value 实现 driver.Valuer 接口，序列化为 JSON 文本写入数据库。
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan 实现 sql.Scanner 接口，从数据库中的 JSON 文本反序列化。
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("无法将数据库值扫描为 JSONMap")
	}

	if len(bytes) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}
