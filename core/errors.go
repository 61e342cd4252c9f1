package core

// DomainError 是领域层的统一错误类型。
//
// 错误策略（与降级策略的分界）：
//   - 未知用户/物品、信号为空等冷启动情形一律走降级路径，不产生 error
//   - 只有真正的前置条件违反（空数据集、未拟合的模型、非法配置）才返回 error
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "NOT_FITTED"）
	Message string // 错误消息
	Module  string // 模块名称（如 "svd", "hybrid", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeNotFitted     = "NOT_FITTED"     // 模型未拟合即被调用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效（空数据集、非法权重等）
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误（如分解失败）
)

// 模块名称常量
const (
	ModuleSVD      = "svd"
	ModuleHybrid   = "hybrid"
	ModuleCatalog  = "catalog"
	ModuleStore    = "store"
	ModulePipeline = "pipeline"
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotFitted 检查错误是否为 NOT_FITTED（前置条件违反，调用方错误）。
func IsNotFitted(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFitted
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
