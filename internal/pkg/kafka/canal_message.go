package kafka

import "strconv"

// CanalMessage canal flat message，只保留失效路由用到的字段
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	TS       int64    `json:"ts"`

	Data []map[string]interface{} `json:"data"`
	Old  []map[string]interface{} `json:"old"`
}

// UserIDs 取出变更行里某一列的用户 ID，去重并保持顺序
func (m *CanalMessage) UserIDs(column string) []uint64 {
	out := make([]uint64, 0, len(m.Data))
	seen := make(map[uint64]struct{}, len(m.Data))
	for _, row := range m.Data {
		id, ok := columnUint64(row, column)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// columnUint64 flat message 中数值列为字符串
func columnUint64(row map[string]interface{}, column string) (uint64, bool) {
	switch v := row[column].(type) {
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		return id, err == nil && id > 0
	case float64:
		return uint64(v), v > 0
	default:
		return 0, false
	}
}
