package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器：表达式求值为 true 的候选被剔除。
//
// 用于运营侧配置化的准入规则，无需改代码即可上线，例如：
//   - `course.delivery_mode == "online" && centre.risk_score < 3.0`
//     → 风控评分不足的机构不推荐纯线上课程
//   - `item.score < 0.2 && !("priority" in course.tags)`
//
// 可用变量见 pkg/dsl 文档：item / course / centre / label。
type RuleFilter struct {
	// Expr CEL 表达式；为空时不剔除任何候选
	Expr string
}

// NewRuleFilter 创建规则过滤器。
func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, mctx).Evaluate(f.Expr)
}
