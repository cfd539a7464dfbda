package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleYAML = `
app:
  name: healthsense
  log_level: debug
server:
  port: "9090"
telemetry:
  source: thingspeak
  channel_id: "2574220"
  api_key: secret
  timeout: 3s
model:
  path: config/model.json
alert:
  enabled: true
  queue: health_alert
lmstfy:
  host: 127.0.0.1
redis:
  addr: 127.0.0.1:6379
workers:
  - name: alert-worker
    queue_name: health_alert
    subscriber:
      threads: 2
      rate: 100ms
      timeout: 3s
      ttr: 30s
      error_backoff: 1s
    processor:
      threads: 4
      buffer_size: 16
      timeout: 10s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("server.port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("app.log_level = %q, want debug", cfg.App.LogLevel)
	}
	if cfg.Telemetry.Timeout != 3*time.Second {
		t.Errorf("telemetry.timeout = %v, want 3s", cfg.Telemetry.Timeout)
	}
	if cfg.Telemetry.BaseURL != "https://api.thingspeak.com" {
		t.Errorf("telemetry.base_url default = %q", cfg.Telemetry.BaseURL)
	}
	if cfg.Telemetry.Fields.HeartRate != "field5" || cfg.Telemetry.Fields.AccelZ != "field3" {
		t.Errorf("default field mapping not applied: %+v", cfg.Telemetry.Fields)
	}
	if len(cfg.Workers) != 1 {
		t.Fatalf("workers = %d, want 1", len(cfg.Workers))
	}
	w := cfg.Workers[0]
	if w.Subscriber.Rate != 100*time.Millisecond || w.Processor.BufferSize != 16 {
		t.Errorf("worker config not decoded: %+v", w)
	}
	if cfg.Dataset.Seed != 42 || cfg.Dataset.Samples != 1000 {
		t.Errorf("dataset defaults = %+v", cfg.Dataset)
	}
	if cfg.Dataset.Thresholds.HeartRate != 116 || cfg.Dataset.Thresholds.Accelerometer != 18000 {
		t.Errorf("threshold defaults = %+v", cfg.Dataset.Thresholds)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		t.Errorf("ValidateWorker() error = %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HEALTHSENSE_TELEMETRY_API_KEY", "from-env")
	t.Setenv("HEALTHSENSE_SERVER_PORT", "7070")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telemetry.APIKey != "from-env" {
		t.Errorf("api_key = %q, want from-env", cfg.Telemetry.APIKey)
	}
	if cfg.GetServerPort() != "7070" {
		t.Errorf("port = %q, want 7070", cfg.GetServerPort())
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Dataset.Output != "health_data.csv" {
		t.Errorf("dataset.output = %q", cfg.Dataset.Output)
	}
	if err := cfg.ValidateDataset(); err != nil {
		t.Errorf("ValidateDataset() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing channel",
			mutate:  func(c *Config) { c.Telemetry.ChannelID = "" },
			wantErr: "telemetry.channel_id",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Telemetry.Source = "carrier-pigeon" },
			wantErr: "unknown telemetry.source",
		},
		{
			name: "mqtt without topic",
			mutate: func(c *Config) {
				c.Telemetry.Source = SourceMQTT
				c.Telemetry.MQTT.Topic = ""
			},
			wantErr: "telemetry.mqtt.topic",
		},
		{
			name:    "empty field mapping",
			mutate:  func(c *Config) { c.Telemetry.Fields.BodyTemp = "" },
			wantErr: "telemetry.fields.body_temp",
		},
		{
			name:    "alert without lmstfy",
			mutate:  func(c *Config) { c.Lmstfy.Host = "" },
			wantErr: "lmstfy.host",
		},
		{
			name:    "alert disabled without lmstfy",
			mutate:  func(c *Config) { c.Lmstfy.Host = ""; c.Alert.Enabled = false },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkerRequiresWorkers(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.Workers = nil
	if err := cfg.ValidateWorker(); err == nil {
		t.Fatal("expected error without workers")
	}
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		t.Errorf("ValidateWorker() error = %v", err)
	}
	if err := cfg.ValidateDataset(); err != nil {
		t.Errorf("ValidateDataset() error = %v", err)
	}
	if cfg.Workers[0].QueueName != cfg.Alert.Queue {
		t.Errorf("worker queue %q does not match alert.queue %q", cfg.Workers[0].QueueName, cfg.Alert.Queue)
	}
}
