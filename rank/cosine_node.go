package rank

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/matrix"
	"github.com/rushteam/matchkit/pipeline"
)

// CosineNode 是余弦打分节点：把每个候选课程的需求向量
// 与查询机构向量做余弦相似度，写入 item.Score。
//
// 打分针对全量候选（目录召回不做近似截断），硬过滤在打分之后、
// 排序截断之前执行，保证 Top-N 只包含合规课程。
type CosineNode struct {
	// Gen 本次查询所在的矩阵代次；整条链路必须复用同一个代次
	Gen *matrix.Generation
}

func (n *CosineNode) Name() string {
	return "rank.cosine"
}

func (n *CosineNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *CosineNode) Process(
	_ context.Context,
	mctx *core.MatchContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Gen == nil {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInternalError,
			"rank: cosine node missing matrix generation")
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		item.Score = Cosine(mctx.Vector, n.Gen.CourseVector(item.Row))
	}
	return items, nil
}
