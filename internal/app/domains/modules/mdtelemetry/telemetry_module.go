package mdtelemetry

import (
	"context"
	"errors"
	"fmt"
	"math"

	"ban/healthsense/internal/app/domains/entity/etreading"
	"ban/healthsense/internal/app/infra/telemetry"
)

// ErrInvalidField 映射字段缺失或不是数值
var ErrInvalidField = errors.New("invalid telemetry field")

var errNotFinite = errors.New("value is not finite")

// FieldError 某个特征对应的 feed 字段无效
type FieldError struct {
	Feature string // 特征名，如 heart_rate
	Field   string // feed 字段名，如 field5
	Err     error
}

// Error 实现 error 接口
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrInvalidField, e.Feature, e.Field, e.Err)
}

// Unwrap 保留原始错误
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrInvalidField) 成立
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// FieldMapping feed 字段到特征的映射
type FieldMapping struct {
	HeartRate string
	BodyTemp  string
	AccelX    string
	AccelY    string
	AccelZ    string
}

// DefaultFieldMapping ThingSpeak 频道默认映射
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		HeartRate: "field5",
		BodyTemp:  "field4",
		AccelX:    "field1",
		AccelY:    "field2",
		AccelZ:    "field3",
	}
}

// TelemetryModule 遥测模块
// 职责：从数据源取最新条目，按映射规则转换为领域对象
type TelemetryModule struct {
	source  telemetry.Source
	mapping FieldMapping
}

// NewTelemetryModule 创建遥测模块
func NewTelemetryModule(source telemetry.Source, mapping FieldMapping) *TelemetryModule {
	return &TelemetryModule{source: source, mapping: mapping}
}

// Latest 获取最新读数
func (m *TelemetryModule) Latest(ctx context.Context) (*etreading.Reading, error) {
	entry, err := m.source.LatestEntry(ctx)
	if err != nil {
		return nil, err
	}
	return m.ToReading(entry, m.source.Name())
}

// ToReading 转换 feed 条目
// 加速度在设备端是整数，取数值后向零截断
func (m *TelemetryModule) ToReading(entry *telemetry.FeedEntry, source string) (*etreading.Reading, error) {
	heartRate, err := m.number(entry, "heart_rate", m.mapping.HeartRate)
	if err != nil {
		return nil, err
	}
	bodyTemp, err := m.number(entry, "body_temp", m.mapping.BodyTemp)
	if err != nil {
		return nil, err
	}
	accelX, err := m.number(entry, "accelerometer_x", m.mapping.AccelX)
	if err != nil {
		return nil, err
	}
	accelY, err := m.number(entry, "accelerometer_y", m.mapping.AccelY)
	if err != nil {
		return nil, err
	}
	accelZ, err := m.number(entry, "accelerometer_z", m.mapping.AccelZ)
	if err != nil {
		return nil, err
	}

	return &etreading.Reading{
		ChannelID:      entry.ChannelID,
		EntryID:        entry.EntryID,
		Source:         source,
		CreatedAt:      entry.CreatedAt,
		HeartRate:      heartRate,
		BodyTemp:       bodyTemp,
		AccelerometerX: math.Trunc(accelX),
		AccelerometerY: math.Trunc(accelY),
		AccelerometerZ: math.Trunc(accelZ),
	}, nil
}

func (m *TelemetryModule) number(entry *telemetry.FeedEntry, feature, field string) (float64, error) {
	v, err := entry.Number(field)
	if err != nil {
		return 0, &FieldError{Feature: feature, Field: field, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Feature: feature, Field: field, Err: errNotFinite}
	}
	return v, nil
}
