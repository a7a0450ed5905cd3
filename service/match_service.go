package service

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/filter"
	"github.com/rushteam/matchkit/matrix"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/rank"
	"github.com/rushteam/matchkit/recall"
	"github.com/rushteam/matchkit/rerank"
)

// MatchService 是本核心对外的边界，只暴露两个操作：
//   - Rebuild：整体重建特征矩阵并原子发布新代次
//   - Recommend：对单个机构做全量课程匹配，返回过滤+排序后的推荐列表
//
// Web 层（路由、认证等）不在此库范围内，由上层围绕这两个操作搭建。
type MatchService struct {
	cache       *matrix.Cache
	annotations core.AnnotationService
	ruleFilters []filter.Filter
}

// Option 服务配置选项
type Option func(*MatchService)

// WithAnnotationService 设置外部注记服务（风控评分/合作伙伴等级）。
// 不设置时直接透传机构记录上携带的注记字段。
func WithAnnotationService(svc core.AnnotationService) Option {
	return func(s *MatchService) {
		s.annotations = svc
	}
}

// WithRuleFilters 追加运营侧配置的规则过滤器（CEL 表达式等），
// 排在内置硬过滤器之后执行。
func WithRuleFilters(filters ...filter.Filter) Option {
	return func(s *MatchService) {
		s.ruleFilters = append(s.ruleFilters, filters...)
	}
}

// NewMatchService 创建匹配服务。
func NewMatchService(store core.EntityStore, opts ...Option) *MatchService {
	return NewMatchServiceWithCache(matrix.NewCache(store), opts...)
}

// NewMatchServiceWithCache 用外部构建好的缓存创建匹配服务
// （需要自定义缩放方式等缓存选项时使用）。
func NewMatchServiceWithCache(cache *matrix.Cache, opts ...Option) *MatchService {
	s := &MatchService{cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rebuild 触发一次特征矩阵整体重建。
//
// 成功时返回处理的机构/课程计数；失败时旧代次保持发布，
// 查询方继续得到过期但一致的结果。已有重建在执行时返回
// REBUILD_IN_PROGRESS，调用方可稍后重试。
func (s *MatchService) Rebuild(ctx context.Context) (*matrix.RebuildStats, error) {
	return s.cache.Rebuild(ctx)
}

// Response 是一次推荐查询的完整响应。
type Response struct {
	// Centre 机构画像（含风控透传字段），下游能力雷达图可直接渲染
	Centre core.CentreProfile `json:"centre"`

	// Recommendations 推荐列表：相似度降序，同分按课程 ID 升序
	Recommendations []core.Recommendation `json:"recommendations"`

	// Generation 本次查询所用的矩阵代次序号
	Generation uint64 `json:"generation"`
}

// Recommend 对单个机构执行全量课程匹配。
//
// 错误语义：
//   - 从未成功重建 → NOT_BUILT
//   - 机构不在当前代次 → NOT_FOUND
//   - 参数非法（top_n、未知交付方式）→ INVALID_QUERY
//
// 查询期错误只影响本次请求，不触碰缓存。
func (s *MatchService) Recommend(ctx context.Context, q *Query) (*Response, error) {
	if q == nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidQuery,
			"service: query is required")
	}

	topN, modes, err := q.validate()
	if err != nil {
		return nil, err
	}

	// 向量与代次来自同一次加载，整个查询期间复用该代次，
	// 并发重建不会让本次查询看到混合状态
	vec, gen, err := s.cache.CentreVector(q.CentreID)
	if err != nil {
		return nil, err
	}
	centre, _ := gen.Centre(q.CentreID)

	mctx := &core.MatchContext{
		CentreID: q.CentreID,
		Centre:   centre,
		Vector:   vec,
		Modes:    modes,
		MinScore: q.MinScore,
		Params:   q.Params,
	}

	filters := []filter.Filter{
		&filter.LabRequirementFilter{},
		&filter.SkillRequirementFilter{},
		&filter.DeliveryModeFilter{},
		&filter.MinScoreFilter{},
	}
	filters = append(filters, s.ruleFilters...)

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.CatalogueNode{Gen: gen},
			&rank.CosineNode{Gen: gen},
			&filter.FilterNode{Filters: filters},
			&rerank.SortNode{},
			&rerank.TopNNode{N: topN},
		},
	}

	items, err := p.Run(ctx, mctx, nil)
	if err != nil {
		return nil, err
	}

	profile := s.centreProfile(ctx, centre)
	return &Response{
		Centre:          profile,
		Recommendations: assemble(items),
		Generation:      gen.Seq(),
	}, nil
}

// centreProfile 组装机构画像；配置了注记服务时用外部注记覆盖
// 机构记录上的透传字段，取不到时回退到记录值（注记是旁路信息，
// 不应让一次推荐查询失败）。
func (s *MatchService) centreProfile(ctx context.Context, centre *core.Centre) core.CentreProfile {
	profile := core.CentreProfile{
		ID:          centre.ID,
		Name:        centre.Name,
		Labs:        centre.Labs,
		Skills:      centre.Skills,
		RiskScore:   centre.RiskScore,
		PartnerTier: centre.PartnerTier,
	}
	for _, mode := range core.AllDeliveryModes() {
		if centre.Modes[mode] {
			profile.Modes = append(profile.Modes, mode)
		}
	}

	if s.annotations != nil {
		if ann, err := s.annotations.GetCentreAnnotations(ctx, centre.ID); err == nil && ann != nil {
			profile.RiskScore = ann.RiskScore
			profile.PartnerTier = ann.PartnerTier
		}
	}
	return profile
}
