package utils

// Label 是推荐结果的可解释标记：记录一个结论（Value）以及是谁给出的（Source）。
// Value 与 Source 的语义由业务自定义；cinerec 只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rerank / filter / hybrid ...
}

// MergeLabel 合并同名 Label，默认策略是保留历史、可追踪：
// - Value 以 '|' 累积
// - Source 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
