package errs

var (
	SystemError     = ErrorCode{Code: 504001, Msg: "系统错误"}
	ValidationError = ErrorCode{Code: 504002, Msg: "参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
