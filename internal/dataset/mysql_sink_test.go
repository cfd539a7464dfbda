package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db, mock
}

func TestMySQLSinkWritesInBatches(t *testing.T) {
	db, mock := newMockDB(t)
	samples := NewGenerator(GeneratorConfig{Seed: DefaultSeed}).Generate(5)

	mock.ExpectExec("INSERT INTO `health_samples`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO `health_samples`").WillReturnResult(sqlmock.NewResult(3, 2))
	mock.ExpectExec("INSERT INTO `health_samples`").WillReturnResult(sqlmock.NewResult(5, 1))

	sink := NewMySQLSink(db, 2)
	if err := sink.Write(context.Background(), samples); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLSinkPropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `health_samples`").WillReturnError(errors.New("table locked"))

	sink := NewMySQLSink(db, 0)
	err := sink.Write(context.Background(), []Sample{{HeartRate: 120, Target: 1}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestMySQLSinkEmptyIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	if err := NewMySQLSink(db, 10).Write(context.Background(), nil); err != nil {
		t.Fatalf("Write(nil) error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestOpenMySQLRequiresDSN(t *testing.T) {
	if _, err := OpenMySQL(""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
