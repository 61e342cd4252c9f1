package recall

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/utils"
	"github.com/rushteam/cinerec/svd"
)

// CFRecall 是因子分解协同过滤召回源：对训练集内的用户，
// 直接读 svd.Model 的重建评分取 Top-K。
// 训练集外的用户返回空结果，冷启动交给 content/hot 路径。
// 同时实现 Source 与 Node 接口，可直接进 Pipeline。
type CFRecall struct {
	Model *svd.Model

	// TopK 返回 TopK 个物品，<=0 时取 20
	TopK int
}

func (r *CFRecall) Name() string        { return "recall.cf" }
func (r *CFRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *CFRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *CFRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil || rctx == nil || rctx.UserID == 0 {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	ids := r.Model.RecommendTopN(rctx.UserID, topK)
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		// 已知用户 + 训练集物品，分数就是重建矩阵单元
		it.Score = r.Model.PredictScore(rctx.UserID, id)
		it.PutLabel("recall_source", utils.Label{Value: "cf", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
