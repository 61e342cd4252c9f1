package pipeline

import (
	"context"

	"github.com/rushteam/cinerec/core"
)

// Kind 标记 Node 所处的阶段，方便观测与编排。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindReRank      Kind = "rerank"      // 重排阶段：多样性/截断等调优
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元信息或最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态：召回 Node 生成，
// 过滤 Node 剔除，重排 Node 调整顺序。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node，配置驱动时使用。
type NodeBuilder func(config map[string]any) (Node, error)
