package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeOK               = http.StatusOK
	CodeCreated          = http.StatusCreated
	CodeBadRequest       = http.StatusBadRequest
	CodeUnauthorized     = http.StatusUnauthorized
	CodeForbidden        = http.StatusForbidden
	CodeNotFound         = http.StatusNotFound
	CodeConflict         = http.StatusConflict
	CodeTooLarge         = http.StatusRequestEntityTooLarge
	CodeUnsupportedMedia = http.StatusUnsupportedMediaType
	CodeTooManyRequests  = http.StatusTooManyRequests
	CodeServerError      = http.StatusInternalServerError
	CodeUnavailable      = http.StatusServiceUnavailable
	CodeTimeout          = http.StatusGatewayTimeout
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:               "OK",
	CodeCreated:          "Created",
	CodeBadRequest:       "Bad Request",
	CodeUnauthorized:     "Authentication required",
	CodeForbidden:        "Forbidden",
	CodeNotFound:         "Not Found",
	CodeConflict:         "Conflict",
	CodeTooLarge:         "Request body too large",
	CodeUnsupportedMedia: "Malformed request",
	CodeTooManyRequests:  "Too many requests",
	CodeServerError:      "Internal Server Error",
	CodeUnavailable:      "Server busy",
	CodeTimeout:          "Timeout",
}
