package errs

var (
	SystemError     = ErrorCode{Code: 503001, Msg: "系统错误"}
	ValidationError = ErrorCode{Code: 503002, Msg: "优惠券参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
