package util

import (
	"net/http"

	"talentbridge_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with. Code mirrors the HTTP
// status so clients that only read the body still see it.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func write(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, "created", data)
}

func Error(c *gin.Context, code int, message string) {
	write(c, code, message, nil)
}

// ErrorWithData is Error plus a payload, used when the client needs to know where to go next.
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, message, data)
}

// Abort writes the error envelope and stops the handler chain. Middleware uses
// it so a rejected request never reaches the controller.
func Abort(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, message, data)
	c.Abort()
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// LogInternalError hides err from the client; the log keeps it with the route.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	Error(c, http.StatusInternalServerError, "Internal server error")
}
