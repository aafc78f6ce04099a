// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
)

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Created 返回创建成功响应 (201)
func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, Response[T]{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// NoContent 返回无内容响应 (204)
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 将任意错误映射为错误响应
//
// AppError 使用其错误码对应的 HTTP 状态；其他错误一律 500，原始信息只写日志。
func Fail(c *gin.Context, err error) {
	c.JSON(status(c, err))
}

// Abort 终止后续处理并返回错误响应（用于中间件）
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(status(c, err))
}

func status(c *gin.Context, err error) (int, ErrorResponse) {
	appErr := apperrors.AsAppError(err)

	message := appErr.Message
	if appErr.HTTPStatus >= http.StatusInternalServerError && appErr.Code != apperrors.CodeServiceUnavailable {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
		)
		if appErr.Code == apperrors.CodeUnknown {
			message = "internal server error"
		}
	}

	details := appErr.Detail
	if details == "" && appErr.Code == apperrors.CodeGenerationFailed && appErr.Err != nil {
		details = appErr.Err.Error()
	}

	return appErr.HTTPStatus, ErrorResponse{
		Code:    appErr.HTTPStatus,
		Message: message,
		Error: &ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   details,
		},
		TraceID: c.GetString("trace_id"),
	}
}
