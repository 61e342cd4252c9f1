package core

// Method 标记一次评分预测走的解析路径。
// 冷启动与缺失信号都通过降级路径解决而不是报错（见 errors.go），
// 调用方和测试可以断言 Method 来确认来源，而不必去匹配日志字符串。
type Method string

const (
	// MethodCollaborative 已知用户，读 SVD 重建矩阵
	MethodCollaborative Method = "collaborative_filtering"
	// MethodContentBased 冷启动用户，画像 × 内容特征相似度
	MethodContentBased Method = "content_based"
	// MethodItemAverage 物品观测均值（用户未知、物品已知）
	MethodItemAverage Method = "movie_average"
	// MethodUserAverage 用户重建行均值（用户已知、物品未知）
	MethodUserAverage Method = "user_average"
	// MethodFallbackMean 全局均值或评分中位值兜底
	MethodFallbackMean Method = "fallback_mean"
	// MethodPopularity 热门兜底（仅出现在排序结果）
	MethodPopularity Method = "popularity"
)

// Prediction 是带置信度与来源标记的评分预测结果。
// Rating 由混合层裁剪到 [1,5]；Confidence ∈ [0,1]；
// Similarity 仅在 content_based 路径有意义。
type Prediction struct {
	Rating     float64
	Confidence float64
	Similarity float64
	Method     Method
}

// SimilarItem 是相似物品查询的结果项，Similarity ∈ [-1,1]。
type SimilarItem struct {
	ItemID     int64
	Similarity float64
}
