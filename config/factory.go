package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feast"
	"github.com/rushteam/matchkit/feature"
	"github.com/rushteam/matchkit/filter"
	"github.com/rushteam/matchkit/matrix"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/conv"
	"github.com/rushteam/matchkit/rerank"
	"github.com/rushteam/matchkit/service"
	"github.com/rushteam/matchkit/store"
)

// BuildService 根据配置装配完整的 MatchService：
// 实体存储 → 特征矩阵缓存 → 规则过滤器 → 注记服务。
//
// 返回的 EntityStore 由调用方持有并负责 Close（通常还要向其写入实体）。
func BuildService(cfg *Config) (*service.MatchService, core.EntityStore, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config is nil")
	}

	es, err := buildStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	scaling, err := parseScaling(cfg.Matching.Scaling)
	if err != nil {
		es.Close()
		return nil, nil, err
	}
	cache := matrix.NewCache(es, matrix.WithCacheScaling(scaling))

	var opts []service.Option
	for _, expr := range cfg.Rules {
		if expr == "" {
			continue
		}
		opts = append(opts, service.WithRuleFilters(filter.NewRuleFilter(expr)))
	}

	if cfg.Feast.Endpoint != "" {
		ann, err := buildAnnotations(cfg.Feast)
		if err != nil {
			es.Close()
			return nil, nil, err
		}
		opts = append(opts, service.WithAnnotationService(ann))
	}

	return service.NewMatchServiceWithCache(cache, opts...), es, nil
}

func buildStore(cfg StoreConfig) (core.EntityStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryEntityStore(), nil
	case "redis":
		if cfg.Addr == "" {
			return nil, fmt.Errorf("store: redis backend requires addr")
		}
		return store.NewRedisEntityStore(cfg.Addr, cfg.DB)
	default:
		return nil, fmt.Errorf("store: unknown backend: %s", cfg.Backend)
	}
}

func parseScaling(s string) (feature.Scaling, error) {
	switch feature.Scaling(s) {
	case "", feature.ScalingNone:
		return feature.ScalingNone, nil
	case feature.ScalingMinMax:
		return feature.ScalingMinMax, nil
	case feature.ScalingStandard:
		return feature.ScalingStandard, nil
	default:
		return "", fmt.Errorf("matching: unknown scaling mode: %s", s)
	}
}

func buildAnnotations(cfg FeastConfig) (core.AnnotationService, error) {
	host, port, err := splitEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := feast.NewGrpcClient(host, port, cfg.Project)
	if err != nil {
		return nil, err
	}

	var opts []feast.AnnotationOption
	if cfg.RiskFeature != "" {
		opts = append(opts, feast.WithRiskScoreFeature(cfg.RiskFeature))
	}
	if cfg.TierFeature != "" {
		opts = append(opts, feast.WithPartnerTierFeature(cfg.TierFeature))
	}
	if cfg.EntityKey != "" {
		opts = append(opts, feast.WithEntityKey(cfg.EntityKey))
	}
	return feast.NewAnnotationService(client, opts...), nil
}

// splitEndpoint 解析 "host:port" 端点，缺省端口 6565。
func splitEndpoint(endpoint string) (string, int, error) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")
	if !strings.Contains(endpoint, ":") {
		return endpoint, 6565, nil
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", 0, fmt.Errorf("feast: invalid endpoint %q: %w", endpoint, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("feast: invalid port in endpoint %q", endpoint)
	}
	return host, port, nil
}

// DefaultFactory 返回一个注册了内置无状态 Node 的工厂，
// 供 pipeline.Config.BuildPipeline 从 YAML 组装自定义链路。
//
// 注意：recall.catalogue 与 rank.cosine 依赖查询时的矩阵代次，
// 无法从静态配置构建，应在查询路径上手工插入。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("filter", buildFilterNode)
	factory.Register("filter.rule", buildRuleFilterNode)
	factory.Register("rerank.sort", buildSortNode)
	factory.Register("rerank.topn", buildTopNNode)

	return factory
}

func buildFilterNode(config map[string]any) (pipeline.Node, error) {
	names := conv.SliceAnyToString(config["filters"])
	filters := make([]filter.Filter, 0, len(names))
	for _, name := range names {
		switch name {
		case "lab_requirement":
			filters = append(filters, &filter.LabRequirementFilter{})
		case "skill_requirement":
			filters = append(filters, &filter.SkillRequirementFilter{})
		case "delivery_mode":
			filters = append(filters, &filter.DeliveryModeFilter{})
		case "min_score":
			filters = append(filters, &filter.MinScoreFilter{
				Threshold: conv.ConfigGetFloat64(config, "min_score", 0),
			})
		default:
			return nil, fmt.Errorf("unknown filter: %s", name)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildRuleFilterNode(config map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("rule filter requires expr")
	}
	return &filter.FilterNode{Filters: []filter.Filter{filter.NewRuleFilter(expr)}}, nil
}

func buildSortNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.SortNode{}, nil
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(config, "n", 0))
	return &rerank.TopNNode{N: n}, nil
}
