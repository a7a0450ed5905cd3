package pipeline

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：从当前特征矩阵代次生成候选集
	KindRank        Kind = "rank"        // 打分阶段：计算机构-课程余弦相似度
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不满足硬性约束的候选
	KindReRank      Kind = "rerank"      // 重排阶段：确定性排序与 Top-N 截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元数据或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便召回生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		mctx *core.MatchContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
