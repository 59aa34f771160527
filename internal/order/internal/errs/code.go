package errs

var (
	SystemError     = ErrorCode{Code: 507001, Msg: "系统错误"}
	ValidationError = ErrorCode{Code: 507002, Msg: "请求参数或状态非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
