package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

const (
	// OK 表示成功。
	OK = 0
	// InvalidParam 表示请求参数/路由错误（业务拒绝段）。
	InvalidParam = 400
	// Unauthorized 表示未认证。
	Unauthorized = 401
	// NotFoundCode 表示资源不存在。
	NotFoundCode = 404
	// SystemError 表示系统错误（技术故障段，>=500）。
	SystemError = 500
)
