package resputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope returned by every endpoint.
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

func wrapResponse(c *gin.Context, httpCode int, msg string, data any, code ErrorCode) {
	c.JSON(httpCode, gin.H{
		"code": code,
		"data": data,
		"msg":  msg,
	})
}

func Success(c *gin.Context, data any) {
	wrapResponse(c, http.StatusOK, "", data, OK)
}

// Created is Success with a 201 status, used by the create endpoints.
func Created(c *gin.Context, data any) {
	wrapResponse(c, http.StatusCreated, "", data, OK)
}

// NoContent reports a successful delete.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error reports an internal failure with a 500 status.
func Error(c *gin.Context, msg string, code ErrorCode) {
	wrapResponse(c, http.StatusInternalServerError, msg, nil, code)
}

// HTTPError reports a failure with an explicit HTTP status.
func HTTPError(c *gin.Context, httpCode int, msg string, code ErrorCode) {
	wrapResponse(c, httpCode, msg, nil, code)
}

func BadRequestError(c *gin.Context, msg string) {
	wrapResponse(c, http.StatusBadRequest, msg, nil, InvalidRequest)
}
