package matrix

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// Matrix 错误定义（使用统一的 DomainError）
var (
	// ErrNotBuilt 表示从未成功重建过，查询方不能对着空矩阵打分
	ErrNotBuilt = core.NewDomainError(core.ModuleMatrix, core.ErrorCodeNotBuilt,
		"matrix: feature matrices not built yet")

	// ErrRebuildInProgress 表示已有一次重建在执行，调用方可稍后重试
	ErrRebuildInProgress = core.NewDomainError(core.ModuleMatrix, core.ErrorCodeRebuildInProgress,
		"matrix: rebuild already in progress")
)

// Cache 持有当前特征矩阵代次，按需整体重建。
//
// 并发模型（单写多读）：
//   - 读路径通过 atomic.Pointer 取当前代次的不可变快照，无锁
//   - 重建在旁路构建新代次，成功后一次指针交换发布；
//     重建中的读方看到的要么是旧代次、要么是新代次，绝不会混用
//   - 同一时刻最多一次重建（CAS 闸门），并发触发返回 REBUILD_IN_PROGRESS
//   - 重建失败时旧代次保持发布，调用方继续得到过期但一致的结果
//
// 旧代次不做增量修补，整体丢弃：增量更新可能让两侧词表悄悄错位。
type Cache struct {
	store   core.EntityStore
	scaling feature.Scaling

	cur        atomic.Pointer[Generation]
	rebuilding atomic.Bool
	seq        atomic.Uint64
}

// CacheOption 缓存配置选项
type CacheOption func(*Cache)

// WithCacheScaling 设置重建时机构特征的缩放方式（默认不缩放）。
func WithCacheScaling(mode feature.Scaling) CacheOption {
	return func(c *Cache) {
		c.scaling = mode
	}
}

// NewCache 创建特征矩阵缓存；在第一次成功 Rebuild 之前所有读取都返回 NOT_BUILT。
func NewCache(store core.EntityStore, opts ...CacheOption) *Cache {
	c := &Cache{
		store:   store,
		scaling: feature.ScalingNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RebuildStats 是一次成功重建的统计信息。
type RebuildStats struct {
	// Centres / Courses 本次处理的实体数
	Centres int `json:"centres"`
	Courses int `json:"courses"`

	// Generation 新发布的代次序号
	Generation uint64 `json:"generation"`

	// Dimensions 词表长度（向量维数）
	Dimensions int `json:"dimensions"`

	// Took 重建耗时
	Took time.Duration `json:"took"`
}

// Rebuild 拉取实体快照，整体重建并原子发布一个新代次。
//
// 失败时（快照失败、抽取失败）不发布任何内容，旧代次原样保留。
func (c *Cache) Rebuild(ctx context.Context) (*RebuildStats, error) {
	if !c.rebuilding.CompareAndSwap(false, true) {
		return nil, ErrRebuildInProgress
	}
	defer c.rebuilding.Store(false)

	start := time.Now()

	// 快照是重建期间唯一的外部依赖，之后的全部计算都在该一致视图上进行
	snap, err := c.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := Build(ctx, snap, feature.NewVectorizer(feature.WithScaling(c.scaling)))
	if err != nil {
		return nil, err
	}

	gen.seq = c.seq.Add(1)
	c.cur.Store(gen)

	return &RebuildStats{
		Centres:    gen.CentreCount(),
		Courses:    gen.CourseCount(),
		Generation: gen.seq,
		Dimensions: gen.Vocabulary().Len(),
		Took:       time.Since(start),
	}, nil
}

// Current 返回最近发布的代次；从未成功重建时返回 NOT_BUILT。
func (c *Cache) Current() (*Generation, error) {
	gen := c.cur.Load()
	if gen == nil {
		return nil, ErrNotBuilt
	}
	return gen, nil
}

// CentreVector 在最近发布的代次中查找机构向量。
// 返回的代次与向量来自同一次 Load，调用方在整个查询期间应复用该代次。
func (c *Cache) CentreVector(id string) ([]float64, *Generation, error) {
	gen, err := c.Current()
	if err != nil {
		return nil, nil, err
	}
	vec, ok := gen.CentreVector(id)
	if !ok {
		return nil, nil, core.NewDomainError(core.ModuleMatrix, core.ErrorCodeNotFound,
			"matrix: centre not found: "+id)
	}
	return vec, gen, nil
}
