package config

import (
	"fmt"
	"time"

	"github.com/rushteam/cinerec/catalog"
	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/filter"
	"github.com/rushteam/cinerec/hybrid"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/conv"
	"github.com/rushteam/cinerec/recall"
	"github.com/rushteam/cinerec/rerank"
	"github.com/rushteam/cinerec/svd"
)

// Runtime 是 Node 构建器需要的运行期依赖：拟合好的模型、目录与存储。
// 这些对象无法从纯配置构建，由入口处注入。
type Runtime struct {
	Model       *svd.Model
	Catalog     *catalog.Catalog
	Recommender *hybrid.Recommender
	Store       core.KeyValueStore
}

// NewFactory 返回绑定了运行期依赖的 NodeFactory，
// 内置全部 Node 类型，另加通过 Register 注册的扩展类型。
func NewFactory(rt *Runtime) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.cf", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.CFRecall{
			Model: rt.Model,
			TopK:  conv.ConfigGetInt(cfg, "top_k", 0),
		}, nil
	})

	f.Register("recall.content", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.ContentRecall{
			Recommender:    rt.Recommender,
			TopK:           conv.ConfigGetInt(cfg, "top_k", 0),
			ExcludeRated:   conv.ConfigGet(cfg, "exclude_rated", true),
			DiversityBoost: conv.ConfigGet(cfg, "diversity_boost", false),
		}, nil
	})

	f.Register("recall.hot", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Hot{
			Store:       rt.Store,
			Key:         conv.ConfigGet(cfg, "key", ""),
			Recommender: rt.Recommender,
			TopK:        conv.ConfigGetInt(cfg, "top_k", 0),
			IDs:         conv.SliceToInt64(cfg["ids"]),
		}, nil
	})

	f.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFanout(rt, cfg)
	})

	f.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFilter(rt, cfg)
	})

	f.Register("rerank.diversity", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.Diversity{
			Catalog:       rt.Catalog,
			PenaltyFactor: conv.ConfigGetFloat64(cfg, "penalty_factor", 0),
			GenreWeight:   conv.ConfigGetFloat64(cfg, "genre_weight", 0),
			RatingWeight:  conv.ConfigGetFloat64(cfg, "rating_weight", 0),
		}, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
	})

	registryMu.RLock()
	for typeName, builder := range registry {
		f.Register(typeName, builder)
	}
	registryMu.RUnlock()

	return f
}

func buildFanout(rt *Runtime, cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
		case "cf":
			sources = append(sources, &recall.CFRecall{
				Model: rt.Model,
				TopK:  conv.ConfigGetInt(sourceMap, "top_k", 0),
			})
		case "content":
			sources = append(sources, &recall.ContentRecall{
				Recommender:    rt.Recommender,
				TopK:           conv.ConfigGetInt(sourceMap, "top_k", 0),
				ExcludeRated:   conv.ConfigGet(sourceMap, "exclude_rated", true),
				DiversityBoost: conv.ConfigGet(sourceMap, "diversity_boost", false),
			})
		case "hot":
			sources = append(sources, &recall.Hot{
				Store:       rt.Store,
				Key:         conv.ConfigGet(sourceMap, "key", ""),
				Recommender: rt.Recommender,
				TopK:        conv.ConfigGetInt(sourceMap, "top_k", 0),
				IDs:         conv.SliceToInt64(sourceMap["ids"]),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = n
	}
	return fanout, nil
}

func buildFilter(rt *Runtime, cfg map[string]any) (pipeline.Node, error) {
	node := &filter.Node{}

	if conv.ConfigGet(cfg, "exclude_rated", false) {
		node.Filters = append(node.Filters, &filter.RatedFilter{Model: rt.Model})
	}
	for _, expr := range conv.SliceToString(cfg["rules"]) {
		rule, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", expr, err)
		}
		node.Filters = append(node.Filters, rule)
	}
	return node, nil
}
