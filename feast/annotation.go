package feast

import (
	"context"
	"fmt"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pkg/conv"
)

// 风控流水线物化进 Feast 的注记特征名（默认值，可通过选项覆盖）。
const (
	DefaultRiskScoreFeature   = "centre_risk:risk_score"
	DefaultPartnerTierFeature = "centre_risk:partner_tier"
	DefaultEntityKey          = "centre_id"
)

// AnnotationService 是基于 Feast 在线特征的 core.AnnotationService 实现。
//
// 机构的风控评分与合作伙伴等级由外部风控流水线计算并物化到 Feast；
// matchkit 在查询时按机构 ID 取回并透传，不参与匹配评分。
type AnnotationService struct {
	client Client

	riskFeature string
	tierFeature string
	entityKey   string
}

// AnnotationOption 注记服务配置选项
type AnnotationOption func(*AnnotationService)

// WithRiskScoreFeature 设置风控评分的特征名
func WithRiskScoreFeature(name string) AnnotationOption {
	return func(s *AnnotationService) {
		s.riskFeature = name
	}
}

// WithPartnerTierFeature 设置合作伙伴等级的特征名
func WithPartnerTierFeature(name string) AnnotationOption {
	return func(s *AnnotationService) {
		s.tierFeature = name
	}
}

// WithEntityKey 设置实体行中的机构 ID key
func WithEntityKey(key string) AnnotationOption {
	return func(s *AnnotationService) {
		s.entityKey = key
	}
}

// NewAnnotationService 用一个 Feast 客户端创建注记服务。
func NewAnnotationService(client Client, opts ...AnnotationOption) *AnnotationService {
	s := &AnnotationService{
		client:      client,
		riskFeature: DefaultRiskScoreFeature,
		tierFeature: DefaultPartnerTierFeature,
		entityKey:   DefaultEntityKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AnnotationService) Name() string { return "feast" }

// GetCentreAnnotations 获取单个机构的外部注记（实现 core.AnnotationService 接口）
func (s *AnnotationService) GetCentreAnnotations(ctx context.Context, centreID string) (*core.CentreAnnotations, error) {
	if centreID == "" {
		return nil, core.NewDomainError(core.ModuleAnnotation, core.ErrorCodeInvalidQuery,
			"feast: centre id is required")
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{s.riskFeature, s.tierFeature},
		EntityRows: []map[string]interface{}{{s.entityKey: centreID}},
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleAnnotation, core.ErrorCodeInternalError,
			fmt.Sprintf("feast: fetch annotations for %s: %v", centreID, err))
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, core.NewDomainError(core.ModuleAnnotation, core.ErrorCodeNotFound,
			"feast: no annotations for centre: "+centreID)
	}

	values := resp.FeatureVectors[0].Values
	ann := &core.CentreAnnotations{}
	if v, ok := conv.ToFloat64(values[s.riskFeature]); ok {
		ann.RiskScore = v
	}
	if tier, ok := values[s.tierFeature].(string); ok {
		ann.PartnerTier = tier
	}
	return ann, nil
}

// Close 关闭底层客户端（实现 core.AnnotationService 接口）
func (s *AnnotationService) Close() error {
	return s.client.Close()
}

// 确保 AnnotationService 实现了 core.AnnotationService 接口
var _ core.AnnotationService = (*AnnotationService)(nil)
