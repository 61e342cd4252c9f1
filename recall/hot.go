package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/hybrid"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/utils"
)

// Hot 是热门召回源，读取顺序：
//   - Store 的有序集合（hybrid.PublishPopular 离线写入的贝叶斯热门榜）
//   - Recommender 现算的热门榜
//   - 内存中的 IDs 列表
//
// 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store core.KeyValueStore
	Key   string // 有序集合 key，例如 "hot:movies"

	Recommender *hybrid.Recommender

	// TopK 返回 TopK 个物品，<=0 时取 20
	TopK int

	// IDs 内存兜底列表
	IDs []int64
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	var ids []int64

	if r.Store != nil && r.Key != "" {
		members, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
		if err == nil && len(members) > 0 {
			ids = make([]int64, 0, len(members))
			for _, m := range members {
				if id, err := strconv.ParseInt(m, 10, 64); err == nil {
					ids = append(ids, id)
				}
			}
		}
	}

	if len(ids) == 0 && r.Recommender != nil {
		ids = r.Recommender.RecommendPopular(topK)
	}

	if len(ids) == 0 {
		ids = r.IDs
		if len(ids) > topK {
			ids = ids[:topK]
		}
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
