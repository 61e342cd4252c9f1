package filter

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/svd"
)

// RatedFilter 剔除用户已经评过分的物品：
//   - 请求历史（rctx.Ratings）中出现过的物品
//   - 可选：训练集中该用户评过分的物品（Model 非空时）
//
// svd 引擎的 Top-N 自身已排除训练集物品，这里兜住 fanout 场景下
// 其他召回源（hot/content）带回的已看内容。
type RatedFilter struct {
	Model *svd.Model
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx != nil {
		for _, r := range rctx.Ratings {
			if r.ItemID == item.ID {
				return true, nil
			}
		}
		if f.Model != nil && rctx.UserID != 0 {
			if _, rated := f.Model.RatedItems(rctx.UserID)[item.ID]; rated {
				return true, nil
			}
		}
	}
	return false, nil
}
