package errorutil

import (
	"errors"
	"fmt"
)

// Error 错误结构（包含可重试标记）
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
	cause      error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Retriable 创建可重试错误（网络错误、临时故障等）
func Retriable(message string) *Error {
	return &Error{
		Code:      500,
		Message:   message,
		Retryable: true,
	}
}

// RetriableWithCause 创建可重试错误并保留原始错误
func RetriableWithCause(message string, cause error) *Error {
	e := Retriable(message)
	if cause != nil {
		e.cause = cause
		e.DevDetails = cause.Error()
	}
	return e
}

// NonRetriable 创建不可重试错误（参数错误、业务规则错误等）
func NonRetriable(message string) *Error {
	return &Error{
		Code:      400,
		Message:   message,
		Retryable: false,
	}
}

// NonRetriableWithCause 创建不可重试错误并保留原始错误
func NonRetriableWithCause(message string, cause error) *Error {
	e := NonRetriable(message)
	if cause != nil {
		e.cause = cause
		e.DevDetails = cause.Error()
	}
	return e
}

// Wrap 包装错误，未标记的错误默认不可重试
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:       500,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
		cause:      err,
	}
}

// IsRetryable 判断错误链中是否有可重试标记
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}
