// Package catalog 维护物品的内容特征：在一个封闭的类型词表上，
// 给每个物品一条定长的 0/1 特征向量。目录在构建后只读，
// 供混合推荐层做画像相似度计算。
package catalog

import "sort"

// DefaultGenres 是默认词表（MovieLens 的 19 个类型标签）。
var DefaultGenres = []string{
	"unknown", "Action", "Adventure", "Animation", "Children",
	"Comedy", "Crime", "Documentary", "Drama", "Fantasy",
	"Film-Noir", "Horror", "Musical", "Mystery", "Romance",
	"Sci-Fi", "Thriller", "War", "Western",
}

// Entry 是目录的一行：物品 ID 与其类型标签集合。
type Entry struct {
	ItemID int64
	Genres []string
}

// Catalog 是物品内容特征目录。
// 词表固定后每个物品对应一条 len(vocab) 维的二值向量；
// 词表之外的标签在装载时被丢弃（封闭词表）。
type Catalog struct {
	vocab    []string
	vocabIdx map[string]int
	vectors  map[int64][]float64
	order    []int64 // 升序物品 ID，保证遍历顺序确定
}

// New 构建一个空目录。genres 为空时使用 DefaultGenres。
func New(genres []string) *Catalog {
	if len(genres) == 0 {
		genres = DefaultGenres
	}
	vocab := make([]string, len(genres))
	copy(vocab, genres)

	idx := make(map[string]int, len(vocab))
	for i, g := range vocab {
		idx[g] = i
	}
	return &Catalog{
		vocab:    vocab,
		vocabIdx: idx,
		vectors:  make(map[int64][]float64),
	}
}

// FromEntries 从目录行构建 Catalog。
func FromEntries(genres []string, entries []Entry) *Catalog {
	c := New(genres)
	for _, e := range entries {
		c.Add(e.ItemID, e.Genres)
	}
	return c
}

// Add 加入或覆盖一个物品的类型标签。词表外的标签被忽略。
func (c *Catalog) Add(itemID int64, genres []string) {
	vec := make([]float64, len(c.vocab))
	for _, g := range genres {
		if i, ok := c.vocabIdx[g]; ok {
			vec[i] = 1
		}
	}
	if _, exists := c.vectors[itemID]; !exists {
		pos := sort.Search(len(c.order), func(i int) bool { return c.order[i] >= itemID })
		c.order = append(c.order, 0)
		copy(c.order[pos+1:], c.order[pos:])
		c.order[pos] = itemID
	}
	c.vectors[itemID] = vec
}

// Vector 返回物品的类型特征向量。未收录的物品返回 (nil, false)。
// 返回的切片为内部存储，调用方不得修改。
func (c *Catalog) Vector(itemID int64) ([]float64, bool) {
	vec, ok := c.vectors[itemID]
	return vec, ok
}

// Genres 返回物品的类型标签列表；未收录的物品返回 nil。
func (c *Catalog) Genres(itemID int64) []string {
	vec, ok := c.vectors[itemID]
	if !ok {
		return nil
	}
	var out []string
	for i, v := range vec {
		if v == 1 {
			out = append(out, c.vocab[i])
		}
	}
	return out
}

// Items 返回所有物品 ID（升序）。返回内部切片，调用方不得修改。
func (c *Catalog) Items() []int64 {
	return c.order
}

// Vocabulary 返回词表（按向量维度顺序）。
func (c *Catalog) Vocabulary() []string {
	return c.vocab
}

// GenreIndex 返回类型标签在向量中的维度下标。
func (c *Catalog) GenreIndex(genre string) (int, bool) {
	i, ok := c.vocabIdx[genre]
	return i, ok
}

// Len 返回目录中的物品数。
func (c *Catalog) Len() int {
	return len(c.vectors)
}
