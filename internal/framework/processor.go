package framework

import (
	"context"
	"sync"
	"time"

	"ban/healthsense/pkg/logger"
)

// Processor 处理器：接收消息，调用业务处理函数，根据结果 ACK
type Processor struct {
	cfg        *ProcessorConfig
	proc       Proc
	source     MessageSource
	logger     Logger
	shutdownCh chan struct{} // 专门的退出信号通道
	wg         sync.WaitGroup
}

// NewProcessor 创建处理器
func NewProcessor(cfg *ProcessorConfig, proc Proc, source MessageSource, logger Logger) *Processor {
	return &Processor{
		cfg:        cfg,
		proc:       proc,
		source:     source,
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}
}

// Start 启动处理协程
func (p *Processor) Start(ctx context.Context, inputChan <-chan *Message) {
	p.logger.Infof(ctx, "[Processor] Starting with %d workers", p.cfg.Concurrency)

	for i := 0; i < p.cfg.Concurrency; i++ {
		workerID := i
		p.wg.Add(1)
		go p.loop(ctx, workerID, inputChan)
	}
}

// SignalShutdown 通知 Processor 准备退出（进入 Drain 模式）
func (p *Processor) SignalShutdown() {
	p.logger.Infof(context.Background(), "[Processor] Shutdown signal received")
	close(p.shutdownCh)
}

// Wait 等待所有处理协程退出
func (p *Processor) Wait() {
	p.wg.Wait()
	p.logger.Infof(context.Background(), "[Processor] All workers exited")
}

// loop 处理循环（单个 Worker）
func (p *Processor) loop(ctx context.Context, workerID int, inputChan <-chan *Message) {
	defer p.wg.Done()
	p.logger.Infof(ctx, "[Processor-%d] Started", workerID)

	for {
		select {
		case msg := <-inputChan:
			p.process(ctx, msg, workerID)

		// Drain 模式：处理完剩余消息再退出
		case <-p.shutdownCh:
			p.logger.Infof(ctx, "[Processor-%d] Entering DRAIN mode", workerID)
			count := 0
			for {
				select {
				case msg := <-inputChan:
					p.process(ctx, msg, workerID)
					count++
				default:
					p.logger.Infof(ctx, "[Processor-%d] Drained %d messages, exiting", workerID, count)
					return
				}
			}
		}
	}
}

// process 处理单个消息
func (p *Processor) process(ctx context.Context, msg *Message, workerID int) {
	if msg == nil {
		return
	}

	startTime := time.Now()

	procCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		procCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}
	procCtx = logger.WithWorkerID(procCtx, workerID)

	p.logger.Infof(procCtx, "[Processor-%d] Processing message: %s", workerID, msg.ID)

	resp := p.proc(procCtx, msg)
	if resp == nil {
		resp = &JobResp{Action: JobRespStatusBury}
	}

	switch resp.Action {
	case JobRespStatusSuccess, JobRespStatusBury:
		if err := p.source.Ack(msg.Queue, msg.ID); err != nil {
			p.logger.Errorf(procCtx, "[Processor-%d] Ack failed: %s, error: %v", workerID, msg.ID, err)
		}
	case JobRespStatusRelease:
		// 不 ACK，TTR 到期后 lmstfy 重新投递
		p.logger.Warnf(procCtx, "[Processor-%d] Message released for retry: %s", workerID, msg.ID)
	}

	p.logger.Infof(procCtx, "[Processor-%d] Message processed: %s, action: %s, duration: %v",
		workerID, msg.ID, resp.Action, time.Since(startTime))
}
