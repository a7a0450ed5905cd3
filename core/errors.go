package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND
//   - Matrix 错误：NOT_BUILT, REBUILD_IN_PROGRESS
//   - Feature 错误：EXTRACTION_FAILED
//   - Service 错误：INVALID_QUERY
type DomainError struct {
	Code    string // 错误代码（如 "NOT_BUILT", "INVALID_QUERY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "matrix", "feature"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"           // 资源不存在
	ErrorCodeNotBuilt          = "NOT_BUILT"           // 特征矩阵尚未构建
	ErrorCodeRebuildInProgress = "REBUILD_IN_PROGRESS" // 已有重建在执行
	ErrorCodeExtractionFailed  = "EXTRACTION_FAILED"   // 实体特征抽取失败
	ErrorCodeInvalidQuery      = "INVALID_QUERY"       // 查询参数无效
	ErrorCodeNotSupported      = "NOT_SUPPORTED"       // 操作不支持
	ErrorCodeInternalError     = "INTERNAL_ERROR"      // 内部错误
)

// 模块名称常量
const (
	ModuleStore      = "store"      // 实体存储模块
	ModuleFeature    = "feature"    // 特征抽取/向量化模块
	ModuleMatrix     = "matrix"     // 特征矩阵缓存模块
	ModuleRank       = "rank"       // 相似度与排序模块
	ModuleService    = "service"    // 对外服务模块
	ModuleAnnotation = "annotation" // 外部注记（风控透传）模块
)

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotBuilt 检查错误是否为 NOT_BUILT（从未成功重建过特征矩阵）
func IsNotBuilt(err error) bool {
	return hasCode(err, ErrorCodeNotBuilt)
}

// IsRebuildInProgress 检查错误是否为 REBUILD_IN_PROGRESS（调用方可稍后重试）
func IsRebuildInProgress(err error) bool {
	return hasCode(err, ErrorCodeRebuildInProgress)
}

// IsExtractionFailed 检查错误是否为 EXTRACTION_FAILED
func IsExtractionFailed(err error) bool {
	return hasCode(err, ErrorCodeExtractionFailed)
}

// IsInvalidQuery 检查错误是否为 INVALID_QUERY
func IsInvalidQuery(err error) bool {
	return hasCode(err, ErrorCodeInvalidQuery)
}
