package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified envelope every endpoint returns.
type Response struct {
	Code int         `json:"code"` // 0 on success, -1 on error
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Response{
		Code: -1,
		Msg:  msg,
		Data: nil,
	})
}
