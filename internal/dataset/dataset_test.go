package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

func TestLabel(t *testing.T) {
	th := DefaultThresholds()
	base := Sample{HeartRate: 100, BodyTemp: 36.6, AccelerometerX: 0, AccelerometerY: 0, AccelerometerZ: 0}

	tests := []struct {
		name   string
		mutate func(*Sample)
		want   int
	}{
		{name: "all normal", mutate: func(*Sample) {}, want: 0},
		{name: "heart rate at threshold", mutate: func(s *Sample) { s.HeartRate = 116 }, want: 0},
		{name: "heart rate above", mutate: func(s *Sample) { s.HeartRate = 117 }, want: 1},
		{name: "temp at threshold", mutate: func(s *Sample) { s.BodyTemp = 38.0 }, want: 0},
		{name: "temp above", mutate: func(s *Sample) { s.BodyTemp = 38.01 }, want: 1},
		{name: "accel x above", mutate: func(s *Sample) { s.AccelerometerX = 18000.5 }, want: 1},
		{name: "accel y at threshold", mutate: func(s *Sample) { s.AccelerometerY = 18000 }, want: 0},
		{name: "accel z above", mutate: func(s *Sample) { s.AccelerometerZ = 20999 }, want: 1},
		{name: "negative accel", mutate: func(s *Sample) { s.AccelerometerX = -15999 }, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			if got := Label(s, th); got != tt.want {
				t.Fatalf("Label(%+v) = %d, want %d", s, got, tt.want)
			}
		})
	}
}

func TestLabelCustomThresholds(t *testing.T) {
	th := Thresholds{HeartRate: 200, BodyTemp: 100, Accelerometer: 1e9}
	if got := Label(Sample{HeartRate: 139, BodyTemp: 40.9, AccelerometerX: 20999}, th); got != 0 {
		t.Fatalf("Label() = %d, want 0 under relaxed thresholds", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(GeneratorConfig{Seed: DefaultSeed}).Generate(DefaultSamples)
	b := NewGenerator(GeneratorConfig{Seed: DefaultSeed}).Generate(DefaultSamples)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different samples")
	}

	c := NewGenerator(GeneratorConfig{Seed: 7}).Generate(DefaultSamples)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical samples")
	}
}

func TestGenerateRangesAndLabels(t *testing.T) {
	th := DefaultThresholds()
	samples := NewGenerator(GeneratorConfig{Seed: DefaultSeed}).Generate(DefaultSamples)
	if len(samples) != DefaultSamples {
		t.Fatalf("len = %d, want %d", len(samples), DefaultSamples)
	}

	for i, s := range samples {
		if s.HeartRate < 100 || s.HeartRate >= 140 {
			t.Fatalf("row %d heart_rate out of range: %d", i, s.HeartRate)
		}
		if s.BodyTemp < 11 || s.BodyTemp >= 41 {
			t.Fatalf("row %d body_temp out of range: %v", i, s.BodyTemp)
		}
		for _, a := range []float64{s.AccelerometerX, s.AccelerometerY, s.AccelerometerZ} {
			if a < -16000 || a >= 21000 {
				t.Fatalf("row %d accelerometer out of range: %v", i, a)
			}
		}
		if s.Target != Label(s, th) {
			t.Fatalf("row %d target %d disagrees with Label", i, s.Target)
		}
	}

	sum := Summarize(samples)
	if sum.Rows != DefaultSamples || sum.Positives == 0 || sum.Positives == sum.Rows {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestGenerateEmpty(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 1})
	if got := g.Generate(0); len(got) != 0 {
		t.Fatalf("Generate(0) len = %d", len(got))
	}
	if got := g.Generate(-3); len(got) != 0 {
		t.Fatalf("Generate(-3) len = %d", len(got))
	}
}

func TestWriteCSV(t *testing.T) {
	samples := []Sample{
		{HeartRate: 120, BodyTemp: 36.5, AccelerometerX: -15000.25, AccelerometerY: 0, AccelerometerZ: 20000, Target: 1},
		{HeartRate: 101, BodyTemp: 12, AccelerometerX: 1, AccelerometerY: 2, AccelerometerZ: 3, Target: 0},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if !reflect.DeepEqual(records[0], Columns) {
		t.Fatalf("header = %v", records[0])
	}
	want := []string{"120", "36.5", "-15000.25", "0", "20000", "1"}
	if !reflect.DeepEqual(records[1], want) {
		t.Fatalf("row = %v, want %v", records[1], want)
	}
}

func TestCSVSinkRoundTripsFloats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_data.csv")
	samples := NewGenerator(GeneratorConfig{Seed: DefaultSeed}).Generate(20)

	sink := NewCSVSink(path)
	if err := sink.Write(context.Background(), samples); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if sink.Location() != path {
		t.Fatalf("Location() = %q", sink.Location())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != len(samples)+1 {
		t.Fatalf("records = %d", len(records))
	}
	for i, s := range samples {
		got, err := strconv.ParseFloat(records[i+1][1], 64)
		if err != nil || got != s.BodyTemp {
			t.Fatalf("row %d body_temp = %q, want %v", i, records[i+1][1], s.BodyTemp)
		}
	}
}

func TestCSVSinkStdout(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(StdoutPath)
	sink.stdout = &buf

	if err := sink.Write(context.Background(), []Sample{{HeartRate: 110}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("heart_rate,body_temp")) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestCSVSinkBadPath(t *testing.T) {
	sink := NewCSVSink(filepath.Join(t.TempDir(), "missing", "out.csv"))
	if err := sink.Write(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewGeneratorThresholdDefaults(t *testing.T) {
	s := Sample{HeartRate: 120}
	if got := NewGenerator(GeneratorConfig{Seed: 1}).thresholds; got != DefaultThresholds() {
		t.Fatalf("zero thresholds = %+v, want defaults", got)
	}
	custom := Thresholds{HeartRate: 130}
	g := NewGenerator(GeneratorConfig{Seed: 1, Thresholds: custom})
	if g.thresholds != custom {
		t.Fatalf("thresholds = %+v, want %+v", g.thresholds, custom)
	}
	if Label(s, g.thresholds) != 0 {
		t.Fatal("heart rate 120 should not exceed a 130 threshold")
	}
}
