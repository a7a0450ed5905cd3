package core

// DeliveryMode 是课程的交付方式。
type DeliveryMode string

const (
	DeliveryOnline DeliveryMode = "online"
	DeliveryOnsite DeliveryMode = "onsite"
	DeliveryHybrid DeliveryMode = "hybrid"
)

// ParseDeliveryMode 解析交付方式字符串。
// 未知值返回 INVALID_QUERY 错误，不做静默兜底。
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch DeliveryMode(s) {
	case DeliveryOnline, DeliveryOnsite, DeliveryHybrid:
		return DeliveryMode(s), nil
	default:
		return "", NewDomainError(ModuleService, ErrorCodeInvalidQuery,
			"unknown delivery mode: "+s)
	}
}

// AllDeliveryModes 返回全部交付方式（用于查询默认值：不过滤）。
func AllDeliveryModes() []DeliveryMode {
	return []DeliveryMode{DeliveryOnline, DeliveryOnsite, DeliveryHybrid}
}

// Centre 是培训交付机构（供给侧实体）。
//
// Labs / Skills 的 value 是能力等级（非负；负值在特征抽取时钳到 0，
// 因为机构数据来自外部世界，本核心不拥有其质量）。
//
// RiskScore / PartnerTier 由外部风控流程计算并注入，本核心只透传，
// 从不参与评分。
type Centre struct {
	ID   string
	Name string

	// Labs 实训室名 -> 设备能力等级
	Labs map[string]float64

	// Skills 技能名 -> 师资熟练度等级
	Skills map[string]float64

	// Modes 机构具备的交付能力（online/onsite/hybrid -> 是否支持）
	Modes map[DeliveryMode]bool

	// RiskScore 外部风控评分（0-10，透传字段）
	RiskScore float64

	// PartnerTier 外部合作伙伴等级（透传字段，见 PartnerTier* 常量）
	PartnerTier string
}

// 合作伙伴等级的取值空间（由外部风控流程产出，此处仅作为透传字段的词表）。
const (
	PartnerTierDeveloping  = "Developing Partner"
	PartnerTierEstablished = "Established Partner"
	PartnerTierSector      = "Sector Partner"
	PartnerTierStrategic   = "Strategic Partner"
)

// Course 是课程目录中的一门课程（需求侧实体）。
type Course struct {
	ID    string
	Title string

	// DeliveryMode 交付方式，三选一
	DeliveryMode DeliveryMode

	// RequiredLabs 开课所需实训室（集合语义，重复项无意义）
	RequiredLabs []string

	// RequiredSkills 开课所需师资技能（集合语义）
	RequiredSkills []string

	// Tags 课程标签（仅元数据，不参与特征空间）
	Tags []string
}
