package pipeline

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// Pipeline 是 Matchkit 的核心抽象：把匹配逻辑拆成可组合的 Node 链。
//
// 标准链路：Recall（课程目录候选）→ Rank（余弦打分）→ Filter（硬过滤）
// → ReRank（排序 + Top-N）。任一 Node 出错则整条链路失败，
// 不返回部分结果。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	mctx *core.MatchContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, mctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
