// Package filter 提供候选集过滤：已评分物品剔除与 CEL 规则过滤。
package filter

import (
	"context"

	"github.com/rushteam/cinerec/core"
)

// Filter 判断一个 Item 是否应该被过滤掉。
// 返回 true 表示移除，false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
