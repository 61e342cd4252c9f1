// Package rerank 在召回/过滤之后调整候选顺序：多样性折扣与 Top-N 截断。
package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/cinerec/catalog"
	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/hybrid"
	"github.com/rushteam/cinerec/pipeline"
)

// Diversity 是多样性重排 Node：根据请求携带的画像信号计算各内容类型的
// 支配度，对与支配类型重合度高的物品打分数折扣后重新排序。
// 折扣只降不升（penaltyFactor ∈ [0,1] 时）；没有画像信号时原样透传。
type Diversity struct {
	Catalog *catalog.Catalog

	// PenaltyFactor 惩罚系数，<=0 时取 hybrid.DefaultDiversityPenalty
	PenaltyFactor float64

	// GenreWeight / RatingWeight 画像组合权重，都为 0 时取 hybrid 默认
	GenreWeight  float64
	RatingWeight float64
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || rctx == nil || len(items) == 0 {
		return items, nil
	}

	gw, rw := n.GenreWeight, n.RatingWeight
	if gw == 0 && rw == 0 {
		gw, rw = hybrid.DefaultGenreWeight, hybrid.DefaultRatingWeight
	}
	factor := n.PenaltyFactor
	if factor <= 0 {
		factor = hybrid.DefaultDiversityPenalty
	}

	profile := hybrid.BuildUserProfile(n.Catalog, rctx.Ratings, rctx.PreferredGenres, gw, rw)
	if hybrid.IsZeroProfile(profile) {
		return items, nil
	}

	out := make([]*core.Item, len(items))
	copy(out, items)
	for _, it := range out {
		vec, ok := n.Catalog.Vector(it.ID)
		if !ok {
			continue // 目录外的物品不打折
		}
		it.Score = hybrid.ApplyDiversityPenalty(it.Score, vec, profile, factor)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
