package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"ban/healthsense/internal/app/domains/modules/mdalert"
	"ban/healthsense/internal/app/domains/modules/mdtelemetry"
	"ban/healthsense/internal/app/domains/services/svprediction"
	"ban/healthsense/internal/app/infra/telemetry"
	"ban/healthsense/internal/app/infra/telemetry/mqtt"
	"ban/healthsense/internal/app/infra/telemetry/thingspeak"
	"ban/healthsense/internal/app/server/handlers/prediction"
	"ban/healthsense/internal/app/server/routers"
	"ban/healthsense/internal/model"
	"ban/healthsense/pkg/config"
	"ban/healthsense/pkg/lmstfy"
	"ban/healthsense/pkg/logger"
)

// App 应用依赖
type App struct {
	Engine *gin.Engine
}

// InitializeApp 组装依赖，返回的 cleanup 负责释放连接
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	cleanups := make([]func(), 0, 1)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// 1. 模型
	predictor, err := model.Load(cfg.Model.Path, cfg.Model.SHA256)
	if err != nil {
		return nil, cleanup, fmt.Errorf("load model failed: %w", err)
	}
	log.Infof(ctx, "Model loaded: id=%s, path=%s", predictor.ID(), cfg.Model.Path)

	// 2. 遥测数据源
	var source telemetry.Source
	switch cfg.Telemetry.Source {
	case config.SourceMQTT:
		mqttSource := mqtt.NewSource(mqtt.Options{
			Broker:    cfg.Telemetry.MQTT.Broker,
			Topic:     cfg.Telemetry.MQTT.Topic,
			ClientID:  cfg.Telemetry.MQTT.ClientID,
			Username:  cfg.Telemetry.MQTT.Username,
			Password:  cfg.Telemetry.MQTT.Password,
			ChannelID: cfg.Telemetry.ChannelID,
		}, log)
		if err := mqttSource.Start(ctx); err != nil {
			return nil, cleanup, fmt.Errorf("start mqtt source failed: %w", err)
		}
		cleanups = append(cleanups, mqttSource.Close)
		source = mqttSource
	default:
		source = thingspeak.NewClient(cfg.Telemetry.BaseURL, cfg.Telemetry.ChannelID, cfg.Telemetry.APIKey, cfg.Telemetry.Timeout)
	}
	log.Infof(ctx, "Telemetry source: %s, channel=%s", source.Name(), cfg.Telemetry.ChannelID)

	fields := cfg.Telemetry.Fields
	telemetryModule := mdtelemetry.NewTelemetryModule(source, mdtelemetry.FieldMapping{
		HeartRate: fields.HeartRate,
		BodyTemp:  fields.BodyTemp,
		AccelX:    fields.AccelX,
		AccelY:    fields.AccelY,
		AccelZ:    fields.AccelZ,
	})

	// 3. 告警（可选），未启用时必须传 nil 接口
	var alerts svprediction.AlertPublisher
	if cfg.Alert.Enabled {
		lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		if err != nil {
			return nil, cleanup, fmt.Errorf("create lmstfy client failed: %w", err)
		}
		alerts = mdalert.NewAlertModule(lmstfyClient, cfg.Alert.Queue, cfg.Alert.TTL, cfg.Alert.Tries)
		log.Infof(ctx, "Alerting enabled: queue=%s", cfg.Alert.Queue)
	}

	// 4. 服务与路由
	predictionService := svprediction.NewPredictionService(telemetryModule, predictor, alerts, log)
	predictionHandler := prediction.NewPredictionHandler(predictionService)

	return &App{Engine: routers.SetupRoutes(predictionHandler, log)}, cleanup, nil
}
