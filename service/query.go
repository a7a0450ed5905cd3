package service

import (
	"github.com/rushteam/matchkit/core"
)

// DefaultTopN 是 top_n 缺省时的固定上限。
const DefaultTopN = 20

// Query 是一次推荐查询的参数。
//
// top_n 语义：
//   - 未设置（零值 Query 或只填 CentreID）→ 使用 DefaultTopN
//   - 通过 SetTopN 显式设置 → 必须为正整数，0/负数在校验时
//     返回 INVALID_QUERY，不做静默纠正
type Query struct {
	// CentreID 查询机构 ID（必填）
	CentreID string

	// Modes 交付方式过滤集合（{online, onsite, hybrid} 的子集）；
	// 为空表示不过滤
	Modes []string

	// MinScore 最低相似度阈值（默认 0.0）
	MinScore float64

	// Params 请求级上下文参数，供规则过滤器读取
	Params map[string]any

	topN    int
	topNSet bool
}

// SetTopN 显式设置 top_n。合法性在 validate 时检查。
func (q *Query) SetTopN(n int) *Query {
	q.topN = n
	q.topNSet = true
	return q
}

// validate 在边界处校验查询参数，返回归一化后的 (topN, 过滤集合)。
func (q *Query) validate() (int, map[core.DeliveryMode]bool, error) {
	if q.CentreID == "" {
		return 0, nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidQuery,
			"service: centre id is required")
	}

	topN := DefaultTopN
	if q.topNSet {
		if q.topN <= 0 {
			return 0, nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidQuery,
				"service: top_n must be a positive integer")
		}
		topN = q.topN
	}

	var modes map[core.DeliveryMode]bool
	if len(q.Modes) > 0 {
		modes = make(map[core.DeliveryMode]bool, len(q.Modes))
		for _, raw := range q.Modes {
			mode, err := core.ParseDeliveryMode(raw)
			if err != nil {
				return 0, nil, err
			}
			modes[mode] = true
		}
	}

	return topN, modes, nil
}
