package core

import "github.com/rushteam/matchkit/pkg/utils"

// Item 是匹配链路中的统一承载结构：候选课程的分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	// ID 课程 ID
	ID string

	// Score 余弦相似度得分，非负特征空间下落在 [0, 1]
	Score float64

	// Course 候选对应的课程记录（由召回阶段填充，供过滤/装配使用）
	Course *Course

	// Row 课程在当前特征矩阵中的行号
	Row int

	// Meta 附加元信息
	Meta map[string]any

	// Labels 解释性标签（匹配来源、过滤原因等）
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
