package core

// Recommendation 是推荐结果中的一条课程记录。
//
// RequiredLabs / RequiredSkills 随结果返回，下游的能力雷达图
// 可以直接渲染，无需二次查询课程详情。
type Recommendation struct {
	CourseID     string       `json:"course_id"`
	Title        string       `json:"title"`
	DeliveryMode DeliveryMode `json:"delivery_mode"`

	// Score 余弦相似度，非负特征空间下落在 [0, 1]
	Score float64 `json:"score"`

	RequiredLabs   []string `json:"required_labs"`
	RequiredSkills []string `json:"required_skills"`
	Tags           []string `json:"tags,omitempty"`
}

// CentreProfile 是查询响应中回显的机构画像。
type CentreProfile struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Labs   map[string]float64 `json:"lab_capabilities"`
	Skills map[string]float64 `json:"skill_levels"`
	Modes  []DeliveryMode     `json:"delivery_modes"`

	// RiskScore / PartnerTier 外部风控透传字段
	RiskScore   float64 `json:"risk_score"`
	PartnerTier string  `json:"partner_tier"`
}
