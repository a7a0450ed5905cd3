package feature

import "math"

// Scaling 是机构特征的数值缩放方式。
//
// 缩放统计量只在 Fit 时从机构总体计算一次；课程需求向量保持 0/1，
// 表达"是否需要"而非强度，缩放对其无意义。
type Scaling string

const (
	// ScalingNone 不缩放（默认）。等级特征本身量纲一致，
	// 且不缩放才能保证"单维度共线匹配得分 1.0"的性质。
	ScalingNone Scaling = "none"

	// ScalingMinMax 逐维 (x-min)/(max-min)，值域 [0,1]，保持非负
	ScalingMinMax Scaling = "minmax"

	// ScalingStandard 逐维标准分 (x-mean)/std。
	// 注意：会产生负值，余弦得分不再保证落在 [0,1]。
	ScalingStandard Scaling = "standard"
)

// dimStats 是单个维度在机构总体上的统计量。
// 缺失属性按显式 0 参与统计（与向量化时的补零语义一致）。
type dimStats struct {
	min  float64
	max  float64
	mean float64
	std  float64
}

// fitDimStats 计算某一维度的统计量；values 必须已含补零后的全量样本。
func fitDimStats(values []float64) dimStats {
	if len(values) == 0 {
		return dimStats{}
	}

	st := dimStats{min: values[0], max: values[0]}
	var sum float64
	for _, v := range values {
		if v < st.min {
			st.min = v
		}
		if v > st.max {
			st.max = v
		}
		sum += v
	}
	st.mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - st.mean
		sq += d * d
	}
	st.std = math.Sqrt(sq / float64(len(values)))
	return st
}

// apply 按缩放方式变换单个值。
// 退化维度（max==min 或 std==0）统一映射为 0，保证输出永远有限。
func (st dimStats) apply(mode Scaling, v float64) float64 {
	switch mode {
	case ScalingMinMax:
		span := st.max - st.min
		if span == 0 {
			return 0
		}
		return (v - st.min) / span
	case ScalingStandard:
		if st.std == 0 {
			return 0
		}
		return (v - st.mean) / st.std
	default:
		return v
	}
}
