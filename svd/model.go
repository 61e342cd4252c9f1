// Package svd 实现基于截断奇异值分解的协同过滤引擎。
//
// 训练（Fit）是一次性的全量批处理：构建用户×物品评分矩阵，按物品均值中心化，
// 做秩-k 截断 SVD，并把重建后的稠密评分矩阵整块保留在内存中。
// 拟合产出的 Model 是不可变值对象：重训练 = 生成新 Model + 调用方原子替换引用，
// 已拟合实例对任意并发读安全。
package svd

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/cinerec/core"
)

// DefaultNumComponents 是默认保留的隐因子数。
const DefaultNumComponents = 10

// Config 是拟合配置。
type Config struct {
	// NumComponents 保留的隐因子数 k；<=0 时使用 DefaultNumComponents。
	// k 超过矩阵可用秩时静默退化到可用秩（不报错），是否校验 k 是调用方的责任。
	NumComponents int
}

// 拟合前置条件错误
var (
	ErrEmptyDataset = core.NewDomainError(core.ModuleSVD, core.ErrorCodeInvalidInput, "svd: empty training dataset")
	ErrFactorize    = core.NewDomainError(core.ModuleSVD, core.ErrorCodeInternalError, "svd: factorization did not converge")
)

// Model 是拟合完成的因子分解引擎。所有字段在 Fit 返回后只读。
type Model struct {
	userIndex map[int64]int // user_id -> 行下标
	userIDs   []int64       // 行下标 -> user_id（升序）
	itemIndex map[int64]int // item_id -> 列下标
	itemIDs   []int64       // 列下标 -> item_id（升序）

	// scores 是重建评分矩阵 (U·√Σ)·(√Σ·Vᵗ) + 物品均值，users×items
	scores *mat.Dense

	// itemFactors 是物品隐向量矩阵 items×k（Vᵗ 的列），相似物品查询用
	itemFactors *mat.Dense

	itemMeans  []float64 // 每个物品在观测项上的均值（缺失不计为 0）
	itemCounts []int     // 每个物品的观测评分数
	globalMean float64   // 全体观测评分的均值

	rated map[int64]map[int64]struct{} // 训练集中每个用户评过分的物品

	numComponents int // 请求的 k
	effectiveK    int // 实际保留的 k（可能被秩截断）
}

// Fit 在评分数据集上拟合一个新 Model。
// 数据集为空时返回 ErrEmptyDataset；同一 (user, item) 的重复评分按均值聚合。
// Fit 不修改任何既有 Model，重训练时应整体替换引用。
func Fit(ratings []core.Rating, cfg Config) (*Model, error) {
	if len(ratings) == 0 {
		return nil, ErrEmptyDataset
	}

	k := cfg.NumComponents
	if k <= 0 {
		k = DefaultNumComponents
	}

	m := &Model{
		userIndex:     make(map[int64]int),
		itemIndex:     make(map[int64]int),
		rated:         make(map[int64]map[int64]struct{}),
		numComponents: k,
	}

	// ID -> 下标双射，行列都按 ID 升序，保证拟合结果确定
	for _, r := range ratings {
		if _, ok := m.userIndex[r.UserID]; !ok {
			m.userIndex[r.UserID] = 0
			m.userIDs = append(m.userIDs, r.UserID)
		}
		if _, ok := m.itemIndex[r.ItemID]; !ok {
			m.itemIndex[r.ItemID] = 0
			m.itemIDs = append(m.itemIDs, r.ItemID)
		}
	}
	sort.Slice(m.userIDs, func(i, j int) bool { return m.userIDs[i] < m.userIDs[j] })
	sort.Slice(m.itemIDs, func(i, j int) bool { return m.itemIDs[i] < m.itemIDs[j] })
	for i, id := range m.userIDs {
		m.userIndex[id] = i
	}
	for j, id := range m.itemIDs {
		m.itemIndex[id] = j
	}

	rows, cols := len(m.userIDs), len(m.itemIDs)

	// 观测值累加：重复评分取均值
	sums := make([]float64, rows*cols)
	counts := make([]int, rows*cols)
	var globalSum float64
	var globalCount int
	for _, r := range ratings {
		ui := m.userIndex[r.UserID]
		ii := m.itemIndex[r.ItemID]
		sums[ui*cols+ii] += r.Rating
		counts[ui*cols+ii]++
		globalSum += r.Rating
		globalCount++

		set, ok := m.rated[r.UserID]
		if !ok {
			set = make(map[int64]struct{})
			m.rated[r.UserID] = set
		}
		set[r.ItemID] = struct{}{}
	}
	m.globalMean = globalSum / float64(globalCount)

	// 物品均值只在观测项上计算，缺失不是 0
	m.itemMeans = make([]float64, cols)
	m.itemCounts = make([]int, cols)
	colSums := make([]float64, cols)
	for ui := 0; ui < rows; ui++ {
		for ii := 0; ii < cols; ii++ {
			if counts[ui*cols+ii] > 0 {
				colSums[ii] += sums[ui*cols+ii] / float64(counts[ui*cols+ii])
				m.itemCounts[ii]++
			}
		}
	}
	for ii := 0; ii < cols; ii++ {
		if m.itemCounts[ii] > 0 {
			m.itemMeans[ii] = colSums[ii] / float64(m.itemCounts[ii])
		}
	}

	// 中心化矩阵：观测项减去物品均值，缺失项为 0（逐列零均值）
	centered := mat.NewDense(rows, cols, nil)
	for ui := 0; ui < rows; ui++ {
		for ii := 0; ii < cols; ii++ {
			if c := counts[ui*cols+ii]; c > 0 {
				centered.Set(ui, ii, sums[ui*cols+ii]/float64(c)-m.itemMeans[ii])
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, ErrFactorize
	}

	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u) // rows×min(rows,cols)
	svd.VTo(&v) // cols×min(rows,cols)

	// k 超过可用奇异值个数时静默截断
	if k > len(s) {
		k = len(s)
	}
	m.effectiveK = k

	// 重建：US = U·√Σ，SV = √Σ·Vᵗ，scores = US·SV + 物品均值
	us := mat.NewDense(rows, k, nil)
	sv := mat.NewDense(k, cols, nil)
	m.itemFactors = mat.NewDense(cols, k, nil)
	for j := 0; j < k; j++ {
		root := math.Sqrt(s[j])
		for i := 0; i < rows; i++ {
			us.Set(i, j, u.At(i, j)*root)
		}
		for c := 0; c < cols; c++ {
			sv.Set(j, c, root*v.At(c, j))
			m.itemFactors.Set(c, j, v.At(c, j))
		}
	}

	m.scores = mat.NewDense(rows, cols, nil)
	m.scores.Mul(us, sv)
	for ui := 0; ui < rows; ui++ {
		for ii := 0; ii < cols; ii++ {
			m.scores.Set(ui, ii, m.scores.At(ui, ii)+m.itemMeans[ii])
		}
	}

	return m, nil
}

// PredictScore 预测用户对物品的评分，按优先级走四路降级，永不报错：
//  1. 用户、物品都已知   -> 重建矩阵对应单元
//  2. 物品已知、用户未知 -> 物品观测均值（无观测时全局均值）
//  3. 用户已知、物品未知 -> 该用户重建行的均值（行为空时全局均值）
//  4. 都未知             -> 全局均值
func (m *Model) PredictScore(userID, itemID int64) float64 {
	return m.Predict(userID, itemID).Rating
}

// Predict 与 PredictScore 相同的降级策略，额外携带解析路径标记，
// 便于调用方与测试断言走了哪一路。
func (m *Model) Predict(userID, itemID int64) core.Prediction {
	ui, userKnown := m.userIndex[userID]
	ii, itemKnown := m.itemIndex[itemID]

	switch {
	case userKnown && itemKnown:
		return core.Prediction{
			Rating: m.scores.At(ui, ii),
			Method: core.MethodCollaborative,
		}
	case itemKnown:
		if m.itemCounts[ii] > 0 {
			return core.Prediction{
				Rating: m.itemMeans[ii],
				Method: core.MethodItemAverage,
			}
		}
		return core.Prediction{Rating: m.globalMean, Method: core.MethodFallbackMean}
	case userKnown:
		row := m.scores.RawRowView(ui)
		if len(row) > 0 {
			return core.Prediction{
				Rating: floats.Sum(row) / float64(len(row)),
				Method: core.MethodUserAverage,
			}
		}
		return core.Prediction{Rating: m.globalMean, Method: core.MethodFallbackMean}
	default:
		return core.Prediction{Rating: m.globalMean, Method: core.MethodFallbackMean}
	}
}

// RecommendTopN 返回用户的 Top-N 推荐物品 ID。
// 未知用户返回 nil（冷启动由 hybrid 层接管）；
// 严格排除该用户训练集中评过分的物品；按重建分降序，
// 分数相同的按原始列下标顺序稳定排列。
func (m *Model) RecommendTopN(userID int64, n int) []int64 {
	ui, ok := m.userIndex[userID]
	if !ok || n <= 0 {
		return nil
	}

	seen := m.rated[userID]
	type scoredItem struct {
		itemID int64
		score  float64
	}
	candidates := make([]scoredItem, 0, len(m.itemIDs)-len(seen))
	for ii, itemID := range m.itemIDs {
		if _, rated := seen[itemID]; rated {
			continue
		}
		candidates = append(candidates, scoredItem{itemID: itemID, score: m.scores.At(ui, ii)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.itemID)
	}
	return out
}

// RecommendSimilarItems 基于物品隐向量的余弦相似度返回最相似的 n 个物品。
// 未知物品返回 nil；查询物品自身被排除；结果按相似度降序，取值 [-1,1]。
func (m *Model) RecommendSimilarItems(itemID int64, n int) []core.SimilarItem {
	qi, ok := m.itemIndex[itemID]
	if !ok || n <= 0 {
		return nil
	}

	query := m.itemFactors.RawRowView(qi)
	out := make([]core.SimilarItem, 0, len(m.itemIDs)-1)
	for ii, candID := range m.itemIDs {
		if ii == qi {
			continue
		}
		out = append(out, core.SimilarItem{
			ItemID:     candID,
			Similarity: cosine(query, m.itemFactors.RawRowView(ii)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// KnownUser 报告用户是否出现在训练集中。
func (m *Model) KnownUser(userID int64) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// KnownItem 报告物品是否出现在训练集中。
func (m *Model) KnownItem(itemID int64) bool {
	_, ok := m.itemIndex[itemID]
	return ok
}

// UserRatingCount 返回用户在训练集中的评分条数（未知用户为 0）。
func (m *Model) UserRatingCount(userID int64) int {
	return len(m.rated[userID])
}

// RatedItems 返回用户训练集中评过分的物品集合；调用方不得修改。
func (m *Model) RatedItems(userID int64) map[int64]struct{} {
	return m.rated[userID]
}

// ItemMean 返回物品的观测均值评分。未知物品返回 (0, false)。
func (m *Model) ItemMean(itemID int64) (float64, bool) {
	ii, ok := m.itemIndex[itemID]
	if !ok || m.itemCounts[ii] == 0 {
		return 0, false
	}
	return m.itemMeans[ii], true
}

// ItemRatingCount 返回物品在训练集中的评分条数（未知物品为 0）。
func (m *Model) ItemRatingCount(itemID int64) int {
	ii, ok := m.itemIndex[itemID]
	if !ok {
		return 0
	}
	return m.itemCounts[ii]
}

// GlobalMean 返回全体观测评分的均值。
func (m *Model) GlobalMean() float64 {
	return m.globalMean
}

// Users 返回训练集中的用户 ID（升序）。调用方不得修改。
func (m *Model) Users() []int64 { return m.userIDs }

// Items 返回训练集中的物品 ID（升序）。调用方不得修改。
func (m *Model) Items() []int64 { return m.itemIDs }

// NumComponents 返回请求的隐因子数。
func (m *Model) NumComponents() int { return m.numComponents }

// EffectiveComponents 返回实际保留的隐因子数（k 超秩时小于请求值）。
func (m *Model) EffectiveComponents() int { return m.effectiveK }

// cosine 计算余弦相似度；任一向量为零向量时返回 0。
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
