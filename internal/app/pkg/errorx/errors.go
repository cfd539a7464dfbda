package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// 业务错误
var (
	ErrNoReading    = errors.New("no telemetry reading available")
	ErrUpstream     = errors.New("telemetry upstream unavailable")
	ErrInvalidField = errors.New("telemetry reading has an invalid field")
	ErrInvalidInput = errors.New("invalid input")
	ErrPrediction   = errors.New("prediction failed")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As 访问原始错误
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// NewInvalidFieldError 读数字段无效（422），Details 指明出错的特征
func NewInvalidFieldError(path, info string, cause error) *BusinessError {
	return &BusinessError{
		Code:    http.StatusUnprocessableEntity,
		Message: ErrInvalidField.Error(),
		Details: []ErrorDetail{{Path: path, Info: info}},
		cause:   fmt.Errorf("%w: %w", ErrInvalidField, cause),
	}
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// FromError 将错误映射为 HTTP 状态码和对外消息，未知错误按 500 处理
func FromError(err error) *BusinessError {
	var be *BusinessError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, ErrNoReading):
		return NewBusinessError(http.StatusNotFound, ErrNoReading.Error())
	case errors.Is(err, ErrUpstream):
		return NewBusinessError(http.StatusBadGateway, ErrUpstream.Error())
	case errors.Is(err, ErrInvalidField):
		return NewBusinessError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return NewBusinessError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPrediction):
		return NewBusinessError(http.StatusInternalServerError, ErrPrediction.Error())
	default:
		return NewBusinessError(http.StatusInternalServerError, "internal server error")
	}
}
