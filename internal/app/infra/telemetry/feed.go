package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoReading 上游没有可用读数
	ErrNoReading = errors.New("telemetry: no reading available")
	// ErrUpstream 上游请求失败或返回内容无法解析
	ErrUpstream = errors.New("telemetry: upstream failure")
	// ErrFieldMissing 字段不存在或为 null
	ErrFieldMissing = errors.New("telemetry: field missing")
)

// Source 遥测数据源
type Source interface {
	LatestEntry(ctx context.Context) (*FeedEntry, error)
	Name() string
}

// FeedEntry ThingSpeak feed 条目，字段值保持原始 JSON
type FeedEntry struct {
	ChannelID string
	EntryID   int64
	CreatedAt time.Time
	Fields    map[string]json.RawMessage
}

// UnmarshalJSON 解析 feed 条目，field1..field8 等其余键原样保留
// 只有整体不是 JSON 对象时才报错；entry_id / created_at / channel_id 无法解析时按缺失处理
func (e *FeedEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.EntryID = 0
	if v, ok := raw["entry_id"]; ok && !isNull(v) {
		if id, err := rawNumber(v); err == nil {
			e.EntryID = int64(id)
		}
	}

	e.CreatedAt = time.Time{}
	if v, ok := raw["created_at"]; ok && !isNull(v) {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				e.CreatedAt = t
			}
		}
	}

	e.ChannelID = ""
	if v, ok := raw["channel_id"]; ok && !isNull(v) {
		if id, err := rawString(v); err == nil {
			e.ChannelID = id
		}
	}

	e.Fields = raw
	return nil
}

// Number 读取字段数值，字符串和数字两种形式都接受
func (e *FeedEntry) Number(field string) (float64, error) {
	v, ok := e.Fields[field]
	if !ok || isNull(v) {
		return 0, fmt.Errorf("%w: %s", ErrFieldMissing, field)
	}
	return rawNumber(v)
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func rawString(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", fmt.Errorf("not a string or number: %s", string(v))
	}
	return n.String(), nil
}

func rawNumber(v json.RawMessage) (float64, error) {
	s, err := rawString(v)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return f, nil
}
