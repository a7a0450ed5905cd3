package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// LabRequirementFilter 剔除任一必需实训室在机构侧能力为 0 的课程。
//
// 边界行为：机构没有任何实训室记录时，所有带实训室需求的课程
// 都会被剔除，这是正确行为，不是错误。
type LabRequirementFilter struct{}

func (f *LabRequirementFilter) Name() string {
	return "filter.lab_requirement"
}

func (f *LabRequirementFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Course == nil {
		return true, nil
	}
	if mctx == nil || mctx.Centre == nil {
		return true, nil
	}

	for _, lab := range item.Course.RequiredLabs {
		if mctx.Centre.Labs[lab] <= 0 {
			return true, nil
		}
	}
	return false, nil
}

// SkillRequirementFilter 剔除任一必需技能在机构侧熟练度为 0 的课程。
type SkillRequirementFilter struct{}

func (f *SkillRequirementFilter) Name() string {
	return "filter.skill_requirement"
}

func (f *SkillRequirementFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Course == nil {
		return true, nil
	}
	if mctx == nil || mctx.Centre == nil {
		return true, nil
	}

	for _, skill := range item.Course.RequiredSkills {
		if mctx.Centre.Skills[skill] <= 0 {
			return true, nil
		}
	}
	return false, nil
}
