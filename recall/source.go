// Package recall 提供候选集召回源：因子分解（已知用户）、内容画像（冷启动）、
// 热门兜底，以及把多路召回并发 fan-out 的组合 Node。
package recall

import (
	"context"

	"github.com/rushteam/cinerec/core"
)

// Source 表示一个可复用的召回源（cf/content/hot/...）。
// 可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
