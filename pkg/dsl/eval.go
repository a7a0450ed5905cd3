package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/matchkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("item", cel.DynType),
		cel.Variable("course", cel.DynType),
		cel.Variable("centre", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是匹配规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 课程字段：course.delivery_mode == "online" / "python" in course.tags
//   - 机构字段：centre.risk_score >= 3.0
//   - 逻辑：course.delivery_mode == "online" && item.score > 0.8
//   - 标签：label.recall_source != null
//
// 示例（规则过滤器的典型表达式，返回 true 表示候选被剔除）：
//   - `course.delivery_mode == "online" && centre.risk_score < 3.0`
//     → 风控评分不足的机构不推荐纯线上课程
//   - `item.score < 0.2 && !("priority" in course.tags)`
type Eval struct {
	item *core.Item
	mctx *core.MatchContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, mctx *core.MatchContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		mctx: mctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式恒为 false：规则语义是"命中即剔除"，没有规则就不命中任何候选。
//
// 注意：has(label.key) 可以用 label.key != null 替代
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return false, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 应使用 label.key != null 来检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	input := map[string]any{
		"item":   map[string]any{},
		"course": map[string]any{},
		"centre": map[string]any{},
		"label":  map[string]any{},
	}

	if e.item != nil {
		input["item"] = map[string]any{
			"id":    e.item.ID,
			"score": e.item.Score,
		}

		labels := make(map[string]any, len(e.item.Labels))
		for k, v := range e.item.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
		}
		input["label"] = labels

		if c := e.item.Course; c != nil {
			input["course"] = map[string]any{
				"id":              c.ID,
				"title":           c.Title,
				"delivery_mode":   string(c.DeliveryMode),
				"required_labs":   c.RequiredLabs,
				"required_skills": c.RequiredSkills,
				"tags":            c.Tags,
			}
		}
	}

	if e.mctx != nil && e.mctx.Centre != nil {
		centre := e.mctx.Centre
		input["centre"] = map[string]any{
			"id":           centre.ID,
			"name":         centre.Name,
			"risk_score":   centre.RiskScore,
			"partner_tier": centre.PartnerTier,
		}
	}

	return input
}
