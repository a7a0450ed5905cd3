package core

import "context"

// EntityStore 是实体存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 实体数据由外部协作方（机构入驻、课程申报流程）独立写入；
// 本核心在重建特征矩阵时通过 Snapshot 一次性读取，重建期间
// 将该快照视为一致视图，不感知后续变更。
//
// 实现：
//   - store.MemoryEntityStore 实现此接口（测试/开发/原型）
//   - store.RedisEntityStore 实现此接口（生产常用）
type EntityStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// GetCentre 读取单个机构；不存在时返回 NOT_FOUND
	GetCentre(ctx context.Context, id string) (*Centre, error)

	// GetCourse 读取单门课程；不存在时返回 NOT_FOUND
	GetCourse(ctx context.Context, id string) (*Course, error)

	// PutCentre 写入/覆盖机构记录
	PutCentre(ctx context.Context, centre *Centre) error

	// PutCourse 写入/覆盖课程记录
	PutCourse(ctx context.Context, course *Course) error

	// Snapshot 返回当前全部实体的一致快照（重建特征矩阵的唯一数据入口）。
	// 返回的切片按实体 ID 升序排列，保证词表拟合的输入顺序可复现。
	Snapshot(ctx context.Context) (*EntitySnapshot, error)

	// Close 关闭连接/释放资源
	Close() error
}

// EntitySnapshot 是一次重建所依据的实体全集。
//
// Centres / Courses 均按 ID 升序排列；快照一经返回即不可变，
// 重建过程中存储侧的并发写入不会反映到该快照中。
type EntitySnapshot struct {
	Centres []*Centre
	Courses []*Course
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示实体不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: entity not found")
)
