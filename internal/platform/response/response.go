// Package response defines the envelope every endpoint returns:
// {code, message, data}. A code of 200 means success; anything else is an
// application failure code, independent of the HTTP status line.
package response

import (
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
)

const (
	CodeSuccess        = 200
	CodeFailed         = 500
	CodeValidateFailed = 404
	CodeUnauthorized   = 401
	CodeForbidden      = 403
)

type Message struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(data interface{}) Message {
	return Message{Code: CodeSuccess, Message: "操作成功", Data: data}
}

func SuccessMsg(data interface{}, message string) Message {
	return Message{Code: CodeSuccess, Message: message, Data: data}
}

func Failed(message string) Message {
	return Message{Code: CodeFailed, Message: message, Data: nil}
}

func ValidateFailed(message string) Message {
	return Message{Code: CodeValidateFailed, Message: message, Data: nil}
}

func Unauthorized(message string) Message {
	if message == "" {
		message = "暂未登录或token已经过期"
	}
	return Message{Code: CodeUnauthorized, Message: message, Data: nil}
}

func Forbidden(message string) Message {
	if message == "" {
		message = "没有相关权限"
	}
	return Message{Code: CodeForbidden, Message: message, Data: nil}
}

// FromError maps a business error to its failure envelope. Auth and
// conflict failures share the generic failure code; only input validation
// gets its own code.
func FromError(err error) Message {
	if apperr.IsKind(err, apperr.KindValidation) {
		return ValidateFailed(err.Error())
	}
	return Failed(err.Error())
}
