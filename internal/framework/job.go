package framework

import (
	"encoding/json"
	"fmt"
)

// Job 标准 Job 结构
type Job struct {
	Payload *JobPayload `json:"payload"`
}

type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

type JobPayloadData struct {
	RequestID  string          `json:"request_id"`
	ActionType string          `json:"action_type"`
	OrgID      string          `json:"org_id"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// JobMeta Job 元信息
type JobMeta struct {
	RequestID  string
	ActionType string
	OrgID      string
	ID         string
}

// ParseJob 解析标准 Job 结构，返回元信息和业务数据
func ParseJob(raw []byte) (*JobMeta, json.RawMessage, error) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, nil, fmt.Errorf("unmarshal job failed: %w", err)
	}

	if job.Payload == nil || job.Payload.Data == nil {
		return nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := job.Payload.Data
	if data.ActionType == "" {
		return nil, nil, fmt.Errorf("invalid job structure: action_type is empty")
	}

	meta := &JobMeta{
		RequestID:  data.RequestID,
		ActionType: data.ActionType,
		OrgID:      data.OrgID,
		ID:         data.ID,
	}
	return meta, data.Data, nil
}
