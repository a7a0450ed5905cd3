package core

import "context"

// AnnotationService 是外部注记服务的领域接口。
//
// 机构的风控评分与合作伙伴等级由外部风控流程计算，本核心只透传，
// 从不参与匹配评分。注记可以随实体一起存入 EntityStore，也可以在
// 查询时通过此接口从外部特征库（如 Feast）实时获取。
//
// 实现：
//   - feast.AnnotationService 实现此接口（在线特征库）
//   - 留空（nil）则直接使用 Centre 记录上携带的透传字段
type AnnotationService interface {
	// Name 返回注记服务名称（用于日志/监控）
	Name() string

	// GetCentreAnnotations 获取单个机构的外部注记
	GetCentreAnnotations(ctx context.Context, centreID string) (*CentreAnnotations, error)

	// Close 关闭服务，释放资源
	Close() error
}

// CentreAnnotations 是外部注入的机构注记（对本核心不透明）。
type CentreAnnotations struct {
	// RiskScore 外部风控评分（0-10）
	RiskScore float64

	// PartnerTier 合作伙伴等级
	PartnerTier string
}
