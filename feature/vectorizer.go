package feature

import (
	"github.com/rushteam/matchkit/core"
)

// Vocabulary 是一个矩阵代次的维度词表：有序、去重的属性 key 序列。
//
// 不变量：同一代次的机构向量与课程向量共用同一个词表（相同顺序），
// 第 i 维在两侧表示同一个属性。词表只能通过 Vectorizer.Fit 产生。
type Vocabulary struct {
	keys  []core.AttributeKey
	index map[core.AttributeKey]int
}

// Len 返回词表长度（即向量维数）。
func (v *Vocabulary) Len() int {
	return len(v.keys)
}

// Keys 返回词表 key 的副本（按词表顺序）。
func (v *Vocabulary) Keys() []core.AttributeKey {
	out := make([]core.AttributeKey, len(v.keys))
	copy(out, v.keys)
	return out
}

// Index 返回 key 在词表中的下标。
func (v *Vocabulary) Index(key core.AttributeKey) (int, bool) {
	i, ok := v.index[key]
	return i, ok
}

// Vectorizer 把属性字典投影为定长数值向量。
//
// 设计规则：每次重建只 Fit 一次，输入为机构与课程两侧属性字典的并集，
// 保证两侧共享一个词表；缩放统计量只来自机构总体（供给侧），
// 课程需求向量保持 0/1。
//
// Fit 的词表顺序为首次出现顺序，可复现性依赖调用方提供稳定的输入
// 顺序（单个字典内部按 AttributeMap.Keys 的确定性顺序展开）。
type Vectorizer struct {
	scaling Scaling

	vocab *Vocabulary
	stats []dimStats // 与词表同序，仅机构侧使用
}

// VectorizerOption 向量化器配置选项
type VectorizerOption func(*Vectorizer)

// WithScaling 设置机构特征的缩放方式（默认不缩放）。
func WithScaling(mode Scaling) VectorizerOption {
	return func(v *Vectorizer) {
		v.scaling = mode
	}
}

// NewVectorizer 创建向量化器
func NewVectorizer(opts ...VectorizerOption) *Vectorizer {
	v := &Vectorizer{scaling: ScalingNone}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fit 在机构+课程两侧属性字典的并集上拟合词表与缩放统计量。
//
// 词表按首次出现顺序收集：先遍历机构字典，再遍历课程字典，
// 单个字典内部按确定性顺序展开。重复 Fit 会整体替换旧状态。
func (v *Vectorizer) Fit(centreMaps, courseMaps []core.AttributeMap) (*Vocabulary, error) {
	vocab := &Vocabulary{
		index: make(map[core.AttributeKey]int),
	}

	collect := func(maps []core.AttributeMap) {
		for _, m := range maps {
			for _, k := range m.Keys() {
				if _, ok := vocab.index[k]; ok {
					continue
				}
				vocab.index[k] = len(vocab.keys)
				vocab.keys = append(vocab.keys, k)
			}
		}
	}
	collect(centreMaps)
	collect(courseMaps)

	// 缩放统计量只从机构总体计算；缺失属性按显式 0 参与
	stats := make([]dimStats, len(vocab.keys))
	if v.scaling != ScalingNone {
		values := make([]float64, len(centreMaps))
		for dim, key := range vocab.keys {
			for i, m := range centreMaps {
				values[i] = m[key]
			}
			stats[dim] = fitDimStats(values)
		}
	}

	v.vocab = vocab
	v.stats = stats
	return vocab, nil
}

// Vocabulary 返回最近一次 Fit 产出的词表（未拟合时为 nil）。
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// TransformCentre 把机构属性字典投影为向量（按配置缩放）。
func (v *Vectorizer) TransformCentre(attrs core.AttributeMap) ([]float64, error) {
	if v.vocab == nil {
		return nil, errNotFitted()
	}

	vec := make([]float64, len(v.vocab.keys))
	for i, key := range v.vocab.keys {
		raw := attrs[key] // 缺失即 0
		if v.scaling == ScalingNone {
			vec[i] = raw
			continue
		}
		vec[i] = v.stats[i].apply(v.scaling, raw)
	}
	return vec, nil
}

// TransformCourse 把课程属性字典投影为 0/1 需求向量（不缩放）。
func (v *Vectorizer) TransformCourse(attrs core.AttributeMap) ([]float64, error) {
	if v.vocab == nil {
		return nil, errNotFitted()
	}

	vec := make([]float64, len(v.vocab.keys))
	for i, key := range v.vocab.keys {
		if attrs[key] != 0 {
			vec[i] = 1
		}
	}
	return vec, nil
}

func errNotFitted() error {
	return core.NewDomainError(core.ModuleFeature, core.ErrorCodeInternalError,
		"feature: vectorizer used before fit")
}
