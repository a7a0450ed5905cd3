package rank

import "math"

// Cosine 计算两个向量的余弦相似度 dot(a,b) / (‖a‖·‖b‖)。
//
// 约定：
//   - 任一向量范数为 0 时相似度定义为 0（没有共同属性，不是错误）
//   - 两侧均非负时结果落在 [0, 1]（本特征空间恒成立）
//   - 长度不一致时按较短长度计算；同一代次内两侧宽度相同，
//     该分支只在调用方误用时出现
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
