package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// DeliveryModeFilter 剔除交付方式不在查询过滤集合内的课程。
// 过滤集合为空表示不过滤（默认：三种方式都允许）。
type DeliveryModeFilter struct{}

func (f *DeliveryModeFilter) Name() string {
	return "filter.delivery_mode"
}

func (f *DeliveryModeFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Course == nil {
		return true, nil
	}
	if mctx == nil {
		return false, nil
	}
	return !mctx.ModeAllowed(item.Course.DeliveryMode), nil
}

// MinScoreFilter 剔除相似度低于阈值的课程。
// 必须排在打分节点之后。
//
// 生效阈值取运营侧配置的 Threshold 与查询参数 MinScore 中的较大者；
// 两者均为 0 时对非负得分不产生剔除。
type MinScoreFilter struct {
	// Threshold 运营侧配置的固定下限（可选，默认 0）
	Threshold float64
}

func (f *MinScoreFilter) Name() string {
	return "filter.min_score"
}

func (f *MinScoreFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	min := f.Threshold
	if mctx != nil && mctx.MinScore > min {
		min = mctx.MinScore
	}
	if min <= 0 {
		return false, nil
	}
	return item.Score < min, nil
}
