package svprediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ban/healthsense/internal/app/domains/entity/etprediction"
	"ban/healthsense/internal/app/domains/entity/etreading"
	"ban/healthsense/internal/app/domains/modules/mdtelemetry"
	"ban/healthsense/internal/app/infra/telemetry"
	"ban/healthsense/internal/app/pkg/errorx"
	"ban/healthsense/internal/model"
	"ban/healthsense/pkg/logger"
)

// SourceRequest 请求体直接提供特征时的来源标识
const SourceRequest = "request"

// ReadingProvider 最新读数来源（mdtelemetry.TelemetryModule）
type ReadingProvider interface {
	Latest(ctx context.Context) (*etreading.Reading, error)
}

// AlertPublisher 告警发布（mdalert.AlertModule），未启用告警时为 nil
type AlertPublisher interface {
	PublishAlert(ctx context.Context, p *etprediction.Prediction) (string, error)
}

// PredictionService 预测服务，负责 读数 → 特征 → 模型 → 告警 的编排
type PredictionService struct {
	readings  ReadingProvider
	predictor model.Predictor
	alerts    AlertPublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewPredictionService 创建预测服务
func NewPredictionService(readings ReadingProvider, predictor model.Predictor, alerts AlertPublisher, log logger.Logger) *PredictionService {
	return &PredictionService{
		readings:  readings,
		predictor: predictor,
		alerts:    alerts,
		logger:    log,
		now:       time.Now,
	}
}

// ModelID 当前模型标识
func (s *PredictionService) ModelID() string {
	return s.predictor.ID()
}

// PredictLatest 拉取最新读数并预测
func (s *PredictionService) PredictLatest(ctx context.Context) (*etprediction.Prediction, error) {
	reading, err := s.readings.Latest(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return s.predict(ctx, reading)
}

// PredictFeatures 使用调用方提供的读数预测
func (s *PredictionService) PredictFeatures(ctx context.Context, reading *etreading.Reading) (*etprediction.Prediction, error) {
	if reading == nil {
		return nil, fmt.Errorf("%w: reading is required", errorx.ErrInvalidInput)
	}
	if reading.Source == "" {
		reading.Source = SourceRequest
	}
	return s.predict(ctx, reading)
}

func (s *PredictionService) predict(ctx context.Context, reading *etreading.Reading) (*etprediction.Prediction, error) {
	res, err := s.predictor.Predict(reading.Features())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errorx.ErrPrediction, err)
	}

	p := &etprediction.Prediction{
		Class:       res.Class,
		Probability: res.Probability,
		ModelID:     s.predictor.ID(),
		Reading:     reading,
		PredictedAt: s.now().UTC(),
	}

	s.logger.Infof(ctx, "[PredictionService] Predicted: class=%d, model=%s, source=%s, entry_id=%d",
		p.Class, p.ModelID, reading.Source, reading.EntryID)

	if p.IsAlert() && s.alerts != nil {
		// 发布失败只记录日志，不影响预测结果返回
		jobID, err := s.alerts.PublishAlert(ctx, p)
		if err != nil {
			s.logger.Warnf(ctx, "[PredictionService] publish alert failed: entry_id=%d, error=%v", reading.EntryID, err)
		} else {
			s.logger.Infof(ctx, "[PredictionService] Alert published: job_id=%s", jobID)
		}
	}

	return p, nil
}

// classify 将遥测层错误转换为 errorx 错误，保留原始错误链
func classify(err error) error {
	switch {
	case errors.Is(err, telemetry.ErrNoReading):
		return fmt.Errorf("%w: %w", errorx.ErrNoReading, err)
	case errors.Is(err, mdtelemetry.ErrInvalidField):
		var fieldErr *mdtelemetry.FieldError
		if errors.As(err, &fieldErr) {
			info := fmt.Sprintf("feed field %s: %v", fieldErr.Field, fieldErr.Err)
			return errorx.NewInvalidFieldError(fieldErr.Feature, info, err)
		}
		return fmt.Errorf("%w: %w", errorx.ErrInvalidField, err)
	case errors.Is(err, telemetry.ErrUpstream),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", errorx.ErrUpstream, err)
	default:
		return err
	}
}
