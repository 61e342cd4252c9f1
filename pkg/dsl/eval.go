// Package dsl 是基于 CEL (Common Expression Language) 的规则解释器，
// 用于在过滤/策略环节对候选物品做表达式判定。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/cinerec/core"
)

var (
	// celEnv 是全局 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则，可被任意并发调用复用。
//
// 表达式语法（CEL 标准语法）示例：
//   - `item.score > 0.7`
//   - `"Horror" in item.genres`
//   - `label.recall_source == "hot"`
//   - `"Action" in rctx.preferred_genres && item.score >= 0.5`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。规则在 Node 构建期编译一次，
// 服务期只做求值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Evaluate 对一个物品求值，返回布尔结果。
// 表达式结果不是布尔、或访问了不存在的 key 时返回错误。
func (p *Program) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 求值的输入数据。
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	genres := []string{}
	itemMap := map[string]any{}

	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			// label.recall_source 直接取 value，兼容简写
			labelAccessor[k] = v.Value
		}
		if item.Genres != nil {
			genres = item.Genres
		}
		itemMap = map[string]any{
			"id":     item.ID,
			"score":  item.Score,
			"genres": genres,
			"labels": labels,
		}
	}

	rctxMap := map[string]any{}
	if rctx != nil {
		preferred := []string{}
		if rctx.PreferredGenres != nil {
			preferred = rctx.PreferredGenres
		}
		rctxMap = map[string]any{
			"user_id":          rctx.UserID,
			"preferred_genres": preferred,
			"params":           rctx.Params,
		}
	}

	return map[string]any{
		"item":  itemMap,
		"label": labelAccessor,
		"rctx":  rctxMap,
	}
}
