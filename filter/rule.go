package filter

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器：表达式求值为 true 的物品被剔除。
// 典型用法：按内容类型做场景屏蔽，例如儿童场景剔除恐怖片：
//
//	f, _ := filter.NewRuleFilter(`"Horror" in item.genres`)
type RuleFilter struct {
	program *dsl.Program
}

// NewRuleFilter 编译表达式并构建过滤器；表达式非法时返回错误。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{program: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.program.Evaluate(item, rctx)
}
