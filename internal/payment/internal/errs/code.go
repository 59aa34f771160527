package errs

var (
	SystemError     = ErrorCode{Code: 505001, Msg: "系统错误"}
	ValidationError = ErrorCode{Code: 505002, Msg: "回调参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
