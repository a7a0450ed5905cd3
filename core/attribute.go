package core

import "fmt"

// AttributeKind 表示特征属性的类别。
//
// Matchkit 的特征空间只有两类维度：实训室（Lab）与师资技能（Skill）。
// 使用强类型枚举而不是 "lab:xxx" 字符串前缀解析，
// 编译期即可保证对两种属性类别的穷尽处理。
type AttributeKind uint8

const (
	// AttrLab 实训室属性（如化学实验室、IT 机房）
	AttrLab AttributeKind = iota
	// AttrSkill 师资技能属性（如焊接、数据分析）
	AttrSkill
)

// String 返回属性类别的字符串形式（用于日志/序列化）。
func (k AttributeKind) String() string {
	switch k {
	case AttrLab:
		return "lab"
	case AttrSkill:
		return "skill"
	default:
		return "unknown"
	}
}

// AttributeKey 是特征空间中的一个维度标识：类别 + 资源名。
//
// AttributeKey 是可比较的值类型，可以直接作为 map key 与词表元素使用。
type AttributeKey struct {
	Kind AttributeKind
	Name string
}

// LabKey 构造实训室维度 key。
func LabKey(name string) AttributeKey {
	return AttributeKey{Kind: AttrLab, Name: name}
}

// SkillKey 构造技能维度 key。
func SkillKey(name string) AttributeKey {
	return AttributeKey{Kind: AttrSkill, Name: name}
}

// String 返回 "lab:<name>" / "skill:<name>" 形式（仅用于展示与存储编码）。
func (k AttributeKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Name)
}

// AttributeMap 是一个实体的稀疏特征字典：维度 key -> 数值。
//
// 约定：
//   - 抽取器只写入非零值；未出现的 key 在向量化时视为 0
//   - 每次抽取都重新构建，不做持久化
type AttributeMap map[AttributeKey]float64

// Keys 按稳定顺序返回所有 key：先 lab 后 skill，同类内按名字升序。
//
// AttributeMap 本身是无序的；需要可复现迭代顺序的调用方（如词表拟合的
// 测试）应使用此方法而不是直接 range。
func (m AttributeMap) Keys() []AttributeKey {
	keys := make([]AttributeKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortAttributeKeys(keys)
	return keys
}

func sortAttributeKeys(keys []AttributeKey) {
	// 简单插入排序即可：单个实体的属性数通常很小
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && attributeKeyLess(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func attributeKeyLess(a, b AttributeKey) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Name < b.Name
}
