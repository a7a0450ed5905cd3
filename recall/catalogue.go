package recall

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/matrix"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/utils"
)

// CatalogueNode 是课程目录召回节点：为当前矩阵代次中的每一行课程
// 生成一个候选 Item。
//
// 匹配是逐查询的全量最近匹配计算，不是全局指派求解，
// 因此候选集恒为整个目录；剔除交给后续过滤阶段。
type CatalogueNode struct {
	// Gen 本次查询所在的矩阵代次
	Gen *matrix.Generation
}

func (n *CatalogueNode) Name() string {
	return "recall.catalogue"
}

func (n *CatalogueNode) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (n *CatalogueNode) Process(
	_ context.Context,
	_ *core.MatchContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Gen == nil {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInternalError,
			"recall: catalogue node missing matrix generation")
	}

	courses := n.Gen.Courses()
	out := make([]*core.Item, 0, len(courses))
	for row, course := range courses {
		it := core.NewItem(course.ID)
		it.Course = course
		it.Row = row
		it.PutLabel("recall_source", utils.Label{Value: "catalogue", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
