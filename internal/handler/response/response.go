package response

import (
	"errors"
	"fmt"
	"net/http"

	"evtc/pkg/chain/types"
	"evtc/pkg/errno"

	"github.com/gin-gonic/gin"
)

// APIError 节点/钱包返回给客户端的结构化错误
type APIError struct {
	Status  int
	Code    int
	Name    string
	What    string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return e.What + ": " + e.Details[0]
	}
	return e.What
}

// Errorf 以 detail 作为第一条细节返回一个新的 APIError
func (e APIError) Errorf(format string, args ...interface{}) *APIError {
	e.Details = append([]string{fmt.Sprintf(format, args...)}, e.Details...)
	return &e
}

// Success 直接返回结果，不做包装
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, data)
}

// Error 写出 ErrorResponse；非 APIError 的错误按 errno 编码为 500
func Error(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		code, msg := errno.Decode(err)
		apiErr = &APIError{Status: http.StatusInternalServerError, Code: code, Name: "internal_error", What: msg}
	}

	status := apiErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	details := make([]types.ErrorMessage, 0, len(apiErr.Details))
	for _, d := range apiErr.Details {
		details = append(details, types.ErrorMessage{Message: d, Method: c.FullPath()})
	}

	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Code:    status,
		Message: http.StatusText(status),
		Err: types.ErrorDetail{
			Code:    apiErr.Code,
			Name:    apiErr.Name,
			What:    apiErr.What,
			Details: details,
		},
	})
}
