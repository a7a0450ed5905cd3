package core

// MatchContext 承载一次推荐查询的机构/过滤条件信息，贯穿整个 Pipeline 透传。
type MatchContext struct {
	// CentreID 查询机构 ID
	CentreID string

	// Centre 机构实体（硬过滤需要读取其实训室/技能等级）
	Centre *Centre

	// Vector 机构在当前特征矩阵代次下的特征向量
	Vector []float64

	// Modes 交付方式过滤集合：课程交付方式不在集合内则被剔除。
	// 为空表示不过滤。
	Modes map[DeliveryMode]bool

	// MinScore 最低相似度阈值（默认 0.0，即不过滤）
	MinScore float64

	// Params 请求级上下文参数，供自定义过滤规则（CEL 表达式等）读取
	Params map[string]any
}

// ModeAllowed 判断交付方式是否通过过滤集合。
func (mctx *MatchContext) ModeAllowed(mode DeliveryMode) bool {
	if len(mctx.Modes) == 0 {
		return true
	}
	return mctx.Modes[mode]
}
