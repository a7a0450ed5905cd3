// Package matchkit 是一个机构-课程资源匹配工具包（Matching Kit）。
//
// 回答的问题是"这家培训机构能不能开这门课"：把机构的实训室/师资
// 与课程的资源需求投影到同一特征空间，按余弦相似度给全量课程打分，
// 经硬过滤（必需实训室/技能、交付方式）后输出确定性排序的推荐列表。
//
// 设计要点：
//   - Pipeline-first: 匹配逻辑通过 Node 串联（Recall → Rank → Filter → ReRank）
//   - Generation-first: (词表, 机构矩阵, 课程矩阵) 作为整体构建、整体原子发布，
//     读方永远看到一致的代次
//   - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package matchkit

import "github.com/rushteam/matchkit/pipeline"

// 轻量 facade：便于用户直接 import "matchkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindRank        = pipeline.KindRank
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
