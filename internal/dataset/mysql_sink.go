package dataset

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultBatchSize 默认批量插入大小
const DefaultBatchSize = 200

// HealthSample 数据集表实体
type HealthSample struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	HeartRate      int       `gorm:"column:heart_rate;not null"`
	BodyTemp       float64   `gorm:"column:body_temp;not null"`
	AccelerometerX float64   `gorm:"column:accelerometer_x;not null"`
	AccelerometerY float64   `gorm:"column:accelerometer_y;not null"`
	AccelerometerZ float64   `gorm:"column:accelerometer_z;not null"`
	Target         int       `gorm:"column:target;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName 表名
func (HealthSample) TableName() string {
	return "health_samples"
}

// OpenMySQL 打开 MySQL 连接
func OpenMySQL(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	return db, nil
}

// MySQLSink 批量写入 health_samples 表
type MySQLSink struct {
	db        *gorm.DB
	batchSize int
}

// NewMySQLSink 创建 MySQL 输出
func NewMySQLSink(db *gorm.DB, batchSize int) *MySQLSink {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &MySQLSink{db: db, batchSize: batchSize}
}

// Location 输出位置
func (s *MySQLSink) Location() string {
	return "mysql table " + HealthSample{}.TableName()
}

// Migrate 建表
func (s *MySQLSink) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&HealthSample{}); err != nil {
		return fmt.Errorf("migrate health_samples failed: %w", err)
	}
	return nil
}

// Write 按批次插入
func (s *MySQLSink) Write(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	rows := make([]HealthSample, len(samples))
	for i, sample := range samples {
		rows[i] = HealthSample{
			HeartRate:      sample.HeartRate,
			BodyTemp:       sample.BodyTemp,
			AccelerometerX: sample.AccelerometerX,
			AccelerometerY: sample.AccelerometerY,
			AccelerometerZ: sample.AccelerometerZ,
			Target:         sample.Target,
		}
	}

	if err := s.db.WithContext(ctx).CreateInBatches(rows, s.batchSize).Error; err != nil {
		return fmt.Errorf("insert health_samples failed: %w", err)
	}
	return nil
}
