package core

import "github.com/rushteam/cinerec/pkg/utils"

// RecommendContext 承载一次推荐请求的用户侧信息，贯穿整个 Pipeline 透传。
//
// 已知用户只需要 UserID；冷启动用户通过 Ratings（部分评分历史）与
// PreferredGenres（显式声明的偏好类型）提供信号，两者都可以为空，
// 此时由热门兜底路径接管。
type RecommendContext struct {
	// UserID 为 0 表示匿名用户
	UserID int64

	// Ratings 冷启动用户的部分评分历史（可选）
	Ratings []RatedItem

	// PreferredGenres 显式声明的偏好类型（可选），取值限定在目录词表内
	PreferredGenres []string

	// Labels 用户级标签，可驱动 Pipeline 行为（新用户、重度用户等）
	Labels map[string]utils.Label

	// Params 请求级上下文参数
	Params map[string]any
}

// RatedSet 返回请求历史中出现过的物品 ID 集合，过滤已评分物品时使用。
func (rctx *RecommendContext) RatedSet() map[int64]struct{} {
	if len(rctx.Ratings) == 0 {
		return nil
	}
	set := make(map[int64]struct{}, len(rctx.Ratings))
	for _, r := range rctx.Ratings {
		set[r.ItemID] = struct{}{}
	}
	return set
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
