package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// StdoutPath 输出到标准输出
const StdoutPath = "-"

// Sink 数据集输出
type Sink interface {
	Write(ctx context.Context, samples []Sample) error
	Location() string
}

// CSVSink 写 CSV 文件
type CSVSink struct {
	path   string
	stdout io.Writer
}

// NewCSVSink 创建 CSV 输出，path 为 "-" 时写标准输出
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path, stdout: os.Stdout}
}

// Location 输出位置
func (s *CSVSink) Location() string {
	return s.path
}

// Write 写入表头和所有行
func (s *CSVSink) Write(ctx context.Context, samples []Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.path == StdoutPath {
		return WriteCSV(s.stdout, samples)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", s.path, err)
	}
	if err := WriteCSV(f, samples); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s failed: %w", s.path, err)
	}
	return nil
}

// WriteCSV 以 CSV 格式写出样本
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header failed: %w", err)
	}

	record := make([]string, len(Columns))
	for _, s := range samples {
		record[0] = strconv.Itoa(s.HeartRate)
		record[1] = formatFloat(s.BodyTemp)
		record[2] = formatFloat(s.AccelerometerX)
		record[3] = formatFloat(s.AccelerometerY)
		record[4] = formatFloat(s.AccelerometerZ)
		record[5] = strconv.Itoa(s.Target)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row failed: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv failed: %w", err)
	}
	return nil
}

// formatFloat 最短往返表示，不使用科学计数法
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
