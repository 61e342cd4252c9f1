// Package metrics 提供训练/验证阶段的离线评估指标：评分误差（RMSE）
// 与排序质量（Precision@K / Recall@K / MAP）。全部是无状态纯函数，
// 由训练与验证流程消费，不进入在线服务路径。
package metrics

import "math"

// RMSE 计算预测评分与真实评分之间的均方根误差。
// 两个切片长度不一致或为空时返回 0。
func RMSE(predicted, actual []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return 0
	}
	var sum float64
	for i := range predicted {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predicted)))
}

// Precision 计算 precision = |推荐 ∩ 相关| / |推荐|。
// 推荐列表为空时返回 0。
func Precision(recommended, relevant []int64) float64 {
	if len(recommended) == 0 {
		return 0
	}
	return float64(hitCount(recommended, relevant)) / float64(len(recommended))
}

// Recall 计算 recall = |推荐 ∩ 相关| / |相关|。
// 相关集合为空时返回 0。
func Recall(recommended, relevant []int64) float64 {
	if len(relevant) == 0 {
		return 0
	}
	return float64(hitCount(recommended, relevant)) / float64(len(relevant))
}

// AveragePrecision 计算标准的位置敏感平均准确率：
// 只在命中位置累积"截至该位置的命中数 / 位置序号"，
// 再除以 min(|相关|, |推荐|) 归一。
func AveragePrecision(recommended, relevant []int64) float64 {
	if len(relevant) == 0 || len(recommended) == 0 {
		return 0
	}

	rel := toSet(relevant)
	var hits int
	var sum float64
	for pos, itemID := range recommended {
		if _, ok := rel[itemID]; ok {
			hits++
			sum += float64(hits) / float64(pos+1)
		}
	}

	denom := len(relevant)
	if len(recommended) < denom {
		denom = len(recommended)
	}
	return sum / float64(denom)
}

func hitCount(recommended, relevant []int64) int {
	rel := toSet(relevant)
	var hits int
	for _, itemID := range recommended {
		if _, ok := rel[itemID]; ok {
			hits++
		}
	}
	return hits
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
