package alertworker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"ban/healthsense/internal/alertworker/domains"
	"ban/healthsense/internal/alertworker/domains/common"
	"ban/healthsense/internal/framework"
	"ban/healthsense/pkg/config"
	"ban/healthsense/pkg/logger"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager 实例
type ManagerInstance struct {
	ctx        context.Context
	cfg        *config.Config
	source     framework.MessageSource
	deps       *common.Deps
	workers    []Worker
	started    chan struct{}
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
func NewManagerInstance(cfg *config.Config, source framework.MessageSource, notifier common.Notifier, log logger.Logger) (Manager, error) {
	if source == nil {
		return nil, fmt.Errorf("message source is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if len(cfg.Workers) == 0 {
		return nil, fmt.Errorf("at least one worker is required")
	}

	return &ManagerInstance{
		ctx:    context.Background(),
		cfg:    cfg,
		source: source,
		deps: &common.Deps{
			Notifier:      notifier,
			ChannelPrefix: cfg.Alert.Channel,
			Logger:        log,
		},
		workers:    make([]Worker, 0, len(cfg.Workers)),
		started:    make(chan struct{}),
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}, nil
}

// Start 启动所有 Worker，阻塞直到 Shutdown
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	m.loadWorkers()
	m.logger.Infof(m.ctx, "[Manager] All workers loaded, count: %d", len(m.workers))

	for _, worker := range m.workers {
		w := worker
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}
	close(m.started)

	m.logger.Infof(m.ctx, "[Manager] Start success")

	<-m.shutdownCh
	return nil
}

// Shutdown 优雅退出，可重复调用
func (m *ManagerInstance) Shutdown() {
	if !m.closing.CAS(false, true) {
		return
	}
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	// Start 尚未完成加载时等待，避免漏关 Worker
	<-m.started

	for _, worker := range m.workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", worker.GetName())
		worker.Shutdown()
	}
	m.wg.Wait()

	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

// loadWorkers 按配置创建 Worker
func (m *ManagerInstance) loadWorkers() {
	proc := domains.GetProcess(m.logger, m.deps)

	for _, workerCfg := range m.cfg.Workers {
		subCfg := &framework.SubscriberConfig{
			QueueName:    workerCfg.QueueName,
			Concurrency:  workerCfg.Subscriber.Threads,
			Rate:         workerCfg.Subscriber.Rate,
			Timeout:      workerCfg.Subscriber.Timeout,
			TTR:          workerCfg.Subscriber.TTR,
			ErrorBackoff: workerCfg.Subscriber.ErrorBackoff,
		}
		procCfg := &framework.ProcessorConfig{
			Concurrency: workerCfg.Processor.Threads,
			BufferSize:  workerCfg.Processor.BufferSize,
			Timeout:     workerCfg.Processor.Timeout,
		}

		m.workers = append(m.workers, NewWorkerInstance(m.ctx, workerCfg.Name, subCfg, procCfg, m.source, proc, m.logger))
	}
}
