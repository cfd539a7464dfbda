package domains

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ban/healthsense/internal/alertworker/domains/common"
	"ban/healthsense/internal/framework"
	"ban/healthsense/pkg/errorutil"
	"ban/healthsense/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(log logger.Logger, deps *common.Deps) framework.Proc {
	return getProcess(log, deps, HandlerMap)
}

func getProcess(log logger.Logger, deps *common.Deps, handlers map[string]common.HandlerServProc) framework.Proc {
	return func(ctx context.Context, msg *framework.Message) *framework.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		meta, payload, err := framework.ParseJob(msg.Data)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: job=%s, error=%v", msg.ID, err)
			return &framework.JobResp{Action: framework.JobRespStatusBury}
		}

		// RequestID 为空则生成一个
		if meta.RequestID == "" {
			meta.RequestID = uuid.New().String()
		}

		// 2. 注入 TraceID 到 Context
		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		// 3. 从 HandlerMap 获取 Handler
		factory, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return &framework.JobResp{Action: framework.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		resp := runHandler(ctx, log, factory, meta, payload, deps)

		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		return resp
	}
}

func runHandler(
	ctx context.Context,
	log logger.Logger,
	factory common.HandlerServProc,
	meta *framework.JobMeta,
	payload []byte,
	deps *common.Deps,
) (resp *framework.JobResp) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = &framework.JobResp{Action: framework.JobRespStatusBury}
		}
	}()

	handler, err := factory(meta, payload, deps)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
		return &framework.JobResp{Action: framework.JobRespStatusBury}
	}

	return doJobReport(ctx, log, handler.Process(ctx))
}

// doJobReport 根据错误类型决定 ACK/Bury/Release
func doJobReport(ctx context.Context, log logger.Logger, err error) *framework.JobResp {
	if err == nil {
		return &framework.JobResp{Action: framework.JobRespStatusSuccess}
	}

	e := errorutil.Wrap(err)
	if e.Retryable {
		log.Warnf(ctx, "[doJobReport] retryable error: %v", err)
		return &framework.JobResp{Action: framework.JobRespStatusRelease, Data: []byte(e.Message)}
	}

	log.Errorf(ctx, "[doJobReport] non-retryable error: %v", err)
	return &framework.JobResp{
		Action: framework.JobRespStatusBury,
		Data:   []byte(fmt.Sprintf("%d: %s", e.Code, e.Message)),
	}
}
