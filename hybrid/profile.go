package hybrid

import (
	"gonum.org/v1/gonum/floats"

	"github.com/rushteam/cinerec/catalog"
	"github.com/rushteam/cinerec/core"
)

// BuildUserProfile 在目录词表上构建用户画像向量，融合两路独立信号：
//
//  1. 评分历史：已评分物品的类型向量按评分加权求和，再除以评分之和
//     （除以权重之和而不是条数，高分物品贡献更大）
//  2. 显式偏好：声明过的类型置 1 的二值向量
//
// 两路都非平凡时按 ratingWeight/genreWeight 线性组合并按权重和归一；
// 只有一路时单独使用；两路都为空时返回零向量，
// 调用方必须把零向量当作"无画像"并走自己的兜底路径。
func BuildUserProfile(cat *catalog.Catalog, ratings []core.RatedItem, preferredGenres []string, genreWeight, ratingWeight float64) []float64 {
	dim := len(cat.Vocabulary())
	fromRatings := make([]float64, dim)
	fromGenres := make([]float64, dim)

	if len(ratings) > 0 {
		var totalWeight float64
		for _, r := range ratings {
			vec, ok := cat.Vector(r.ItemID)
			if !ok {
				continue // 目录外的物品不贡献任何信号
			}
			floats.AddScaled(fromRatings, r.Rating, vec)
			totalWeight += r.Rating
		}
		if totalWeight > 0 {
			floats.Scale(1/totalWeight, fromRatings)
		}
	}

	for _, g := range preferredGenres {
		if i, ok := cat.GenreIndex(g); ok {
			fromGenres[i] = 1
		}
	}

	hasRatings := anyPositive(fromRatings)
	hasGenres := anyPositive(fromGenres)

	switch {
	case hasRatings && hasGenres:
		combined := make([]float64, dim)
		floats.AddScaled(combined, ratingWeight, fromRatings)
		floats.AddScaled(combined, genreWeight, fromGenres)
		floats.Scale(1/(ratingWeight+genreWeight), combined)
		return combined
	case hasRatings:
		return fromRatings
	case hasGenres:
		return fromGenres
	default:
		return make([]float64, dim) // 零向量 = 无画像
	}
}

// ApplyDiversityPenalty 对相似度打多样性折扣：
// 画像归一得到各类型的支配度，物品与支配度的点积是重合度 overlap，
// 惩罚后相似度 = 相似度 × (1 − penaltyFactor × overlap)。
// 重合度越高（即越集中在用户本已偏重的类型），折扣越大；
// penaltyFactor ∈ [0,1] 时惩罚后分数永不高于原分数。
func ApplyDiversityPenalty(similarity float64, itemVec, profile []float64, penaltyFactor float64) float64 {
	total := floats.Sum(profile)
	if total <= 0 {
		return similarity
	}
	var overlap float64
	for i, v := range itemVec {
		overlap += v * profile[i] / total
	}
	return similarity * (1 - penaltyFactor*overlap)
}

// Cosine 计算余弦相似度；任一向量为零向量时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

func anyPositive(v []float64) bool {
	for _, x := range v {
		if x > 0 {
			return true
		}
	}
	return false
}

// IsZeroProfile 报告画像是否是零向量（无任何信号）。
func IsZeroProfile(profile []float64) bool {
	return !anyPositive(profile)
}
