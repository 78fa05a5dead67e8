package errno

import (
	"errors"
	"fmt"
	"strings"
)

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Wrap 以当前错误码包装一个底层错误并附加上下文说明
func (e Errno) Wrap(cause error, detailFormat string, args ...interface{}) *Err {
	return &Err{Errno: e, Detail: fmt.Sprintf(detailFormat, args...), Cause: cause}
}

// New 生成一个不带底层错误的 *Err
func (e Errno) New(detailFormat string, args ...interface{}) *Err {
	return e.Wrap(nil, detailFormat, args...)
}

// Err 携带错误码、上下文和原始错误
type Err struct {
	Errno
	Detail string
	Cause  error
	// Hint 面向用户的一行提示，例如连接失败时提示服务是否启动
	Hint string
	// Remote 远端服务返回的结构化错误 (verbose 模式下输出)
	Remote interface{}
}

func (e *Err) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Err) Unwrap() error {
	return e.Cause
}

// Is 按错误码匹配，使 errors.Is(err, errno.ErrConnection) 可以穿透包装
func (e *Err) Is(target error) bool {
	switch t := target.(type) {
	case Errno:
		return e.Code == t.Code
	case *Errno:
		return e.Code == t.Code
	case *Err:
		return e.Code == t.Code
	}
	return false
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var wrapped *Err
	if errors.As(err, &wrapped) {
		return wrapped.Code, wrapped.Error()
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Hint 返回错误链上第一个面向用户的提示
func Hint(err error) string {
	var wrapped *Err
	if errors.As(err, &wrapped) {
		return wrapped.Hint
	}
	return ""
}

// Remote 返回远端服务的结构化错误详情
func Remote(err error) interface{} {
	var wrapped *Err
	if errors.As(err, &wrapped) {
		return wrapped.Remote
	}
	return nil
}

// ExitCode 进程退出码：成功为 0，任何错误为 1
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Client Errors (30000+)
var (
	ErrConnection = Errno{Code: 30001, Message: "Connection error"}

	ErrParse             = Errno{Code: 30101, Message: "Parse error"}
	ErrPermissionFormat  = Errno{Code: 30102, Message: "Invalid permission format"}
	ErrGroupFormat       = Errno{Code: 30103, Message: "Invalid group format"}
	ErrTransactionFormat = Errno{Code: 30104, Message: "Invalid transaction format"}
	ErrInvalidKey        = Errno{Code: 30105, Message: "Invalid key"}
	ErrInvalidName       = Errno{Code: 30106, Message: "Invalid name"}
	ErrInvalidAsset      = Errno{Code: 30107, Message: "Invalid asset"}
	ErrInvalidGroup      = Errno{Code: 30108, Message: "Invalid group"}

	ErrMissingIdentifier = Errno{Code: 30201, Message: "Missing identifier"}

	ErrInvalidRefBlock = Errno{Code: 30301, Message: "Invalid reference block num or id"}

	ErrRemoteRejection = Errno{Code: 30401, Message: "Request rejected"}
	ErrStaleKeys       = Errno{Code: 30402, Message: "Signatures do not match the required key set"}
)
