package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/cinerec/pipeline"
)

// 扩展 Node 的注册表：业务自定义 Node 在 init 中调用 Register，
// 即可被 NewFactory 纳入配置驱动。内置类型见 factory.go。

var (
	registry   = make(map[string]pipeline.NodeBuilder)
	registryMu sync.RWMutex
)

// Register 注册一种扩展 Node 的构建逻辑。
func Register(typeName string, builder pipeline.NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typeName] = builder
}

// builtinTypes 是 NewFactory 内置的 Node 类型。
var builtinTypes = []string{
	"recall.cf", "recall.content", "recall.hot", "recall.fanout",
	"filter", "rerank.diversity", "rerank.topn",
}

// SupportedTypes 返回全部可用的 Node 类型（内置 + 已注册扩展），排序返回。
func SupportedTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(builtinTypes)+len(registry))
	types = append(types, builtinTypes...)
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidatePipelineConfig 校验配置中所有 Node 类型均可构建；
// 有未支持类型时返回包含支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	supported := make(map[string]struct{})
	for _, t := range SupportedTypes() {
		supported[t] = struct{}{}
	}
	for _, nc := range cfg.Pipeline.Nodes {
		if _, ok := supported[nc.Type]; !ok {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, SupportedTypes())
		}
	}
	return nil
}
