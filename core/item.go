package core

import "github.com/rushteam/cinerec/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、内容类型、可解释标签。
// Score 的语义由产出它的 Node 决定（重建评分、余弦相似度、热门分），
// Labels 记录来源链路，用于 explain 与策略驱动。
type Item struct {
	ID     int64
	Score  float64
	Genres []string
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；同名 key 按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
