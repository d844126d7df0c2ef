package response

// Msg 所有错误响应以及无数据的成功响应都是 {"message": "..."}
type Msg struct {
	Message string `json:"message"`
}

func Message(msg string) Msg { return Msg{Message: msg} }

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Msg {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if msg == "" {
		msg = "error"
	}
	return Msg{Message: msg}
}
