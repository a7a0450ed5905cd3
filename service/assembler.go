package service

import (
	"github.com/rushteam/matchkit/core"
)

// assemble 把排序后的候选装配为响应结构。
// 必需实训室/技能随结果返回，下游能力雷达图无需二次查询。
func assemble(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, item := range items {
		if item == nil || item.Course == nil {
			continue
		}
		course := item.Course
		out = append(out, core.Recommendation{
			CourseID:       course.ID,
			Title:          course.Title,
			DeliveryMode:   course.DeliveryMode,
			Score:          item.Score,
			RequiredLabs:   append([]string(nil), course.RequiredLabs...),
			RequiredSkills: append([]string(nil), course.RequiredSkills...),
			Tags:           append([]string(nil), course.Tags...),
		})
	}
	return out
}
