package errx

// 这里只定义跨模块统一的系统类错误码。
// 业务域错误码（例如 GAME_FULL）由各业务自行定义，不允许在 kit 里集中。

const (
	// CodeInternal 表示服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（DB/下游服务/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeNotFound 表示资源不存在。
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized 表示未认证或凭证无效。
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeReqParamError 表示请求参数错误。
	CodeReqParamError Code = "REQ_PARAM_ERROR"
)

var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrNotFound     = NewBiz(CodeNotFound, "资源不存在")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "未认证")
	ErrReqParam     = NewBiz(CodeReqParamError, "请求参数错误")
)
