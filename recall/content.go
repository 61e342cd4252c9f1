package recall

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/hybrid"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/utils"
)

// ContentRecall 是内容画像召回源，服务冷启动用户：
// 用请求携带的部分评分历史与显式偏好构建画像，
// 按画像与目录物品的余弦相似度取 Top-K。
// 画像为空时混合层内部落到热门兜底，因此本源总能给出候选。
type ContentRecall struct {
	Recommender *hybrid.Recommender

	// TopK 返回 TopK 个物品，<=0 时取 20
	TopK int

	// ExcludeRated 排除请求历史中已评分的物品
	ExcludeRated bool

	// DiversityBoost 启用多样性惩罚
	DiversityBoost bool
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *ContentRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Recommender == nil || rctx == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	items := r.Recommender.RecommendForNewUser(hybrid.NewUserRequest{
		Ratings:         rctx.Ratings,
		PreferredGenres: rctx.PreferredGenres,
		N:               topK,
		ExcludeRated:    r.ExcludeRated,
		DiversityBoost:  r.DiversityBoost,
	})
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
	}
	return items, nil
}
