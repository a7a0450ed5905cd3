package feature

import (
	"github.com/rushteam/matchkit/core"
)

// Extractor 把机构/课程实体转换为稀疏特征字典（AttributeMap）。
//
// 抽取策略：
//   - 机构：lab:<name> -> 设备能力等级、skill:<name> -> 师资熟练度等级，
//     只写入非零值；负值钳到 0（即不写入），因为机构数据来自外部世界，
//     脏数据不应导致整次重建失败
//   - 课程：对每个必需实训室/技能写入 1（二元需求，不加权；重复项按集合语义去重）
//
// 确定性：相同实体状态总是产出相同的字典。
//
// 仅在实体缺失标识字段（ID 为空）时返回 EXTRACTION_FAILED：
// 这类引用意味着上游数据已经损坏，继续重建只会发布错误的矩阵。
type Extractor struct{}

// NewExtractor 创建特征抽取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractCentre 抽取机构特征字典。
func (e *Extractor) ExtractCentre(centre *core.Centre) (core.AttributeMap, error) {
	if centre == nil || centre.ID == "" {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeExtractionFailed,
			"feature: centre reference missing identifier")
	}

	attrs := make(core.AttributeMap, len(centre.Labs)+len(centre.Skills))
	for name, level := range centre.Labs {
		if name == "" || level <= 0 {
			continue
		}
		attrs[core.LabKey(name)] = level
	}
	for name, level := range centre.Skills {
		if name == "" || level <= 0 {
			continue
		}
		attrs[core.SkillKey(name)] = level
	}
	return attrs, nil
}

// ExtractCourse 抽取课程特征字典（需求侧，取值恒为 1）。
func (e *Extractor) ExtractCourse(course *core.Course) (core.AttributeMap, error) {
	if course == nil || course.ID == "" {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeExtractionFailed,
			"feature: course reference missing identifier")
	}

	attrs := make(core.AttributeMap, len(course.RequiredLabs)+len(course.RequiredSkills))
	for _, name := range course.RequiredLabs {
		if name == "" {
			continue
		}
		attrs[core.LabKey(name)] = 1
	}
	for _, name := range course.RequiredSkills {
		if name == "" {
			continue
		}
		attrs[core.SkillKey(name)] = 1
	}
	return attrs, nil
}
