package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选课程是否应该被剔除。
// 返回 true 表示应该剔除，false 表示保留。
//
// 硬过滤是"剔除"语义而不是"打分后隐藏"：被剔除的候选完全退出
// 排序与截断，Top-N 永远只包含合规课程。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被剔除
	ShouldFilter(ctx context.Context, mctx *core.MatchContext, item *core.Item) (bool, error)
}
