package hybrid

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/cinerec/core"
)

// popularEntry 是热门榜的一行：物品、均值、评分数与收缩后的得分。
type popularEntry struct {
	itemID   int64
	mean     float64
	count    int
	bayesian float64
}

// RecommendPopular 是没有任何画像信号时的兜底：全局热门榜。
//
// 只统计评分数达到 minPopularCount 的物品，得分做贝叶斯收缩：
// 以入榜物品的平均评分数 C 和平均均值 m 为先验，
// score = count/(count+C)·mean + C/(count+C)·m，
// 评分量小的物品被拉向先验，避免小样本高分霸榜。返回前 n 个物品 ID。
func (r *Recommender) RecommendPopular(n int) []int64 {
	entries := r.popularEntries()
	if len(entries) > n && n > 0 {
		entries = entries[:n]
	}
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.itemID)
	}
	return out
}

func (r *Recommender) popularEntries() []popularEntry {
	var entries []popularEntry
	for _, itemID := range r.model.Items() {
		count := r.model.ItemRatingCount(itemID)
		if count < r.minPopularCount {
			continue
		}
		mean, ok := r.model.ItemMean(itemID)
		if !ok {
			continue
		}
		entries = append(entries, popularEntry{itemID: itemID, mean: mean, count: count})
	}
	if len(entries) == 0 {
		return nil
	}

	// 先验取入榜物品的平均评分数与平均均值
	var sumCount, sumMean float64
	for _, e := range entries {
		sumCount += float64(e.count)
		sumMean += e.mean
	}
	c := sumCount / float64(len(entries))
	m := sumMean / float64(len(entries))

	for i := range entries {
		cnt := float64(entries[i].count)
		entries[i].bayesian = cnt/(cnt+c)*entries[i].mean + c/(cnt+c)*m
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].bayesian > entries[j].bayesian
	})
	return entries
}

// PublishPopular 把贝叶斯热门榜写入有序集合，供 recall.Hot 在线读取。
// member 为物品 ID 的十进制字符串，score 为收缩后的热门分。
func (r *Recommender) PublishPopular(ctx context.Context, kv core.KeyValueStore, key string, n int) error {
	entries := r.popularEntries()
	if len(entries) > n && n > 0 {
		entries = entries[:n]
	}
	for _, e := range entries {
		if err := kv.ZAdd(ctx, key, e.bayesian, strconv.FormatInt(e.itemID, 10)); err != nil {
			return err
		}
	}
	return nil
}
