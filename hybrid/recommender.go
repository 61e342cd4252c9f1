// Package hybrid 是混合推荐层：包装拟合好的 svd.Model 与物品目录，
// 已知用户直接走因子分解引擎，训练集外的冷启动用户走内容画像路径，
// 画像信号也为空时落到热门兜底。所有降级都在本层内完成，不抛给调用方。
package hybrid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/cinerec/catalog"
	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pkg/utils"
	"github.com/rushteam/cinerec/svd"
)

// 观测到的默认常量；可通过 Option 调整，默认值保持冻结。
const (
	DefaultGenreWeight      = 0.3 // 显式偏好信号权重
	DefaultRatingWeight     = 0.7 // 评分历史信号权重
	DefaultContentAlpha     = 0.3 // 内容预测中物品均值的正则权重
	DefaultDiversityPenalty = 0.1 // 多样性惩罚系数
	DefaultMinPopularCount  = 50  // 进入热门榜的最低评分数
	DefaultLikeThreshold    = 3.5 // will-like 判定阈值

	// 置信度标尺：已知用户 100 条评分封顶 1.0；
	// 冷启动用户 20 条评分封顶 0.8，只报偏好不给评分时固定 0.2
	cfConfidenceCap      = 100.0
	contentConfidenceCap = 20.0
	contentMaxConfidence = 0.8
	genreOnlyConfidence  = 0.2
	itemAvgConfidence    = 0.1
)

// ErrNotConstructed 是前置条件错误：Recommender 必须由 New 用非空的
// 模型与目录构建，这一点与"未知用户"不同，没有可降级的合法状态。
var ErrNotConstructed = core.NewDomainError(core.ModuleHybrid, core.ErrorCodeNotFitted, "hybrid: recommender requires a fitted model and a catalog")

// Recommender 是混合推荐器。构建完成后只读，对并发读安全。
type Recommender struct {
	model *svd.Model
	cat   *catalog.Catalog

	genreWeight      float64
	ratingWeight     float64
	contentAlpha     float64
	diversityPenalty float64
	minPopularCount  int
	likeThreshold    float64
}

// Option 调整 Recommender 的固定常量。
type Option func(*Recommender)

// WithProfileWeights 设置画像两路信号的组合权重。
func WithProfileWeights(genreWeight, ratingWeight float64) Option {
	return func(r *Recommender) {
		r.genreWeight = genreWeight
		r.ratingWeight = ratingWeight
	}
}

// WithContentAlpha 设置内容预测中物品均值的正则权重。
func WithContentAlpha(alpha float64) Option {
	return func(r *Recommender) { r.contentAlpha = alpha }
}

// WithDiversityPenalty 设置多样性惩罚系数。
func WithDiversityPenalty(factor float64) Option {
	return func(r *Recommender) { r.diversityPenalty = factor }
}

// WithMinPopularCount 设置进入热门榜的最低评分数。
func WithMinPopularCount(n int) Option {
	return func(r *Recommender) { r.minPopularCount = n }
}

// WithLikeThreshold 设置 WillUserLike 的判定阈值。
func WithLikeThreshold(t float64) Option {
	return func(r *Recommender) { r.likeThreshold = t }
}

// New 构建混合推荐器。model 或 cat 为 nil 属于调用方错误，立即失败。
func New(model *svd.Model, cat *catalog.Catalog, opts ...Option) (*Recommender, error) {
	if model == nil || cat == nil {
		return nil, ErrNotConstructed
	}
	r := &Recommender{
		model:            model,
		cat:              cat,
		genreWeight:      DefaultGenreWeight,
		ratingWeight:     DefaultRatingWeight,
		contentAlpha:     DefaultContentAlpha,
		diversityPenalty: DefaultDiversityPenalty,
		minPopularCount:  DefaultMinPopularCount,
		likeThreshold:    DefaultLikeThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Model 返回底层的因子分解引擎。
func (r *Recommender) Model() *svd.Model { return r.model }

// Catalog 返回物品目录。
func (r *Recommender) Catalog() *catalog.Catalog { return r.cat }

// PredictRating 预测用户对物品的评分。
//
// 已知用户：委托 svd 引擎，裁剪到 [1,5]，置信度按训练评分数线性放大
// （100 条封顶 1.0），Method 标记 collaborative_filtering。
// 未知用户：走内容画像路径（见 predictContentBased）。
func (r *Recommender) PredictRating(userID, itemID int64, ratings []core.RatedItem, preferredGenres []string) core.Prediction {
	if r.model.KnownUser(userID) {
		confidence := float64(r.model.UserRatingCount(userID)) / cfConfidenceCap
		if confidence > 1 {
			confidence = 1
		}
		return core.Prediction{
			Rating:     core.ClampRating(r.model.PredictScore(userID, itemID)),
			Confidence: confidence,
			Method:     core.MethodCollaborative,
		}
	}
	return r.predictContentBased(itemID, ratings, preferredGenres)
}

// predictContentBased 冷启动评分预测：
//   - 物品不在目录中     -> 评分中位值，置信度 0，fallback_mean
//   - 画像零向量         -> 物品观测均值（无观测取全局均值），低置信度，movie_average
//   - 其余               -> 画像×物品余弦相似度线性映射到 [1,5]，
//     与物品均值按 (1-α)/α 混合后裁剪，content_based
func (r *Recommender) predictContentBased(itemID int64, ratings []core.RatedItem, preferredGenres []string) core.Prediction {
	itemVec, ok := r.cat.Vector(itemID)
	if !ok {
		return core.Prediction{
			Rating: core.RatingMid,
			Method: core.MethodFallbackMean,
		}
	}

	profile := BuildUserProfile(r.cat, ratings, preferredGenres, r.genreWeight, r.ratingWeight)
	if IsZeroProfile(profile) {
		return core.Prediction{
			Rating:     r.itemAverage(itemID),
			Confidence: itemAvgConfidence,
			Method:     core.MethodItemAverage,
		}
	}

	similarity := Cosine(profile, itemVec)

	// 相似度 0 -> 评分 1，相似度 1 -> 评分 5
	predicted := core.RatingMin + similarity*(core.RatingMax-core.RatingMin)
	predicted = (1-r.contentAlpha)*predicted + r.contentAlpha*r.itemAverage(itemID)

	confidence := genreOnlyConfidence
	if len(ratings) > 0 {
		confidence = float64(len(ratings)) / contentConfidenceCap
		if confidence > contentMaxConfidence {
			confidence = contentMaxConfidence
		}
	}

	return core.Prediction{
		Rating:     core.ClampRating(predicted),
		Confidence: confidence,
		Similarity: similarity,
		Method:     core.MethodContentBased,
	}
}

// itemAverage 返回物品观测均值，没有观测时退回全局均值。
func (r *Recommender) itemAverage(itemID int64) float64 {
	if mean, ok := r.model.ItemMean(itemID); ok {
		return mean
	}
	return r.model.GlobalMean()
}

// NewUserRequest 是冷启动推荐请求。
type NewUserRequest struct {
	Ratings         []core.RatedItem
	PreferredGenres []string
	N               int

	// GenreWeight / RatingWeight 覆盖画像组合权重；都为 0 时取推荐器默认
	GenreWeight  float64
	RatingWeight float64

	// ExcludeRated 排除请求历史中已评分的物品
	ExcludeRated bool

	// DiversityBoost 启用多样性惩罚，压制过度集中在支配类型上的物品
	DiversityBoost bool
}

// RecommendForNewUser 为训练集外的用户生成 Top-N 推荐。
// 画像为零向量时落到贝叶斯热门兜底；否则按画像与目录中每个物品的
// 余弦相似度排序（可选多样性惩罚），结果附带相似度分数与类型列表。
func (r *Recommender) RecommendForNewUser(req NewUserRequest) []*core.Item {
	n := req.N
	if n <= 0 {
		n = 10
	}
	gw, rw := req.GenreWeight, req.RatingWeight
	if gw == 0 && rw == 0 {
		gw, rw = r.genreWeight, r.ratingWeight
	}

	profile := BuildUserProfile(r.cat, req.Ratings, req.PreferredGenres, gw, rw)
	if IsZeroProfile(profile) {
		out := make([]*core.Item, 0, n)
		for _, id := range r.RecommendPopular(n) {
			it := core.NewItem(id)
			it.Genres = r.cat.Genres(id)
			it.PutLabel("method", utils.Label{Value: string(core.MethodPopularity), Source: "hybrid"})
			out = append(out, it)
		}
		return out
	}

	rated := make(map[int64]struct{}, len(req.Ratings))
	if req.ExcludeRated {
		for _, rt := range req.Ratings {
			rated[rt.ItemID] = struct{}{}
		}
	}

	type scoredItem struct {
		itemID int64
		score  float64
	}
	scored := make([]scoredItem, 0, r.cat.Len())
	for _, itemID := range r.cat.Items() {
		vec, _ := r.cat.Vector(itemID)
		sim := Cosine(profile, vec)
		if req.DiversityBoost {
			sim = ApplyDiversityPenalty(sim, vec, profile, r.diversityPenalty)
		}
		scored = append(scored, scoredItem{itemID: itemID, score: sim})
	}

	// 目录按 ID 升序遍历，稳定排序保证同分物品顺序确定
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]*core.Item, 0, n)
	for _, s := range scored {
		if _, skip := rated[s.itemID]; skip {
			continue
		}
		it := core.NewItem(s.itemID)
		it.Score = s.score
		it.Genres = r.cat.Genres(s.itemID)
		it.PutLabel("method", utils.Label{Value: string(core.MethodContentBased), Source: "hybrid"})
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}

// RecommendForExistingUser 为训练集内的用户生成 Top-N，直接委托 svd 引擎。
func (r *Recommender) RecommendForExistingUser(userID int64, n int) []int64 {
	return r.model.RecommendTopN(userID, n)
}

// Verdict 是 WillUserLike 的结构化判定结果。
type Verdict struct {
	WillLike        bool
	PredictedRating float64
	Confidence      float64
	Method          core.Method
	ItemGenres      []string
	Explanation     string
}

// WillUserLike 判断用户是否会喜欢某物品：预测评分过阈值即判喜欢，
// 并生成包含匹配类型与历史规模的可读解释。
func (r *Recommender) WillUserLike(userID, itemID int64, ratings []core.RatedItem, preferredGenres []string) Verdict {
	pred := r.PredictRating(userID, itemID, ratings, preferredGenres)
	itemGenres := r.cat.Genres(itemID)
	willLike := pred.Rating >= r.likeThreshold

	return Verdict{
		WillLike:        willLike,
		PredictedRating: pred.Rating,
		Confidence:      pred.Confidence,
		Method:          pred.Method,
		ItemGenres:      itemGenres,
		Explanation:     r.explain(willLike, pred, itemGenres, ratings, preferredGenres),
	}
}

func (r *Recommender) explain(willLike bool, pred core.Prediction, itemGenres []string, ratings []core.RatedItem, preferredGenres []string) string {
	var b strings.Builder
	if willLike {
		fmt.Fprintf(&b, "you will probably like it (estimated rating: %.1f/5)", pred.Rating)
	} else {
		fmt.Fprintf(&b, "you probably won't like it (estimated rating: %.1f/5)", pred.Rating)
	}

	if len(preferredGenres) > 0 && len(itemGenres) > 0 {
		declared := make(map[string]struct{}, len(preferredGenres))
		for _, g := range preferredGenres {
			declared[g] = struct{}{}
		}
		var matched []string
		for _, g := range itemGenres {
			if _, ok := declared[g]; ok {
				matched = append(matched, g)
			}
		}
		if len(matched) > 0 {
			fmt.Fprintf(&b, "; matches your favorite genres: %s", strings.Join(matched, ", "))
		}
	}
	if len(ratings) > 0 {
		fmt.Fprintf(&b, "; based on your %d previous ratings", len(ratings))
	}
	if pred.Confidence < 0.3 {
		b.WriteString("; low confidence - we need more information about your tastes")
	}
	return b.String()
}

// BatchPrediction 是批量评分预测的一行结果。
type BatchPrediction struct {
	ItemID     int64
	Prediction core.Prediction
}

// BatchPredictRatings 对一组物品批量预测评分，按预测分降序返回。
func (r *Recommender) BatchPredictRatings(userID int64, itemIDs []int64, ratings []core.RatedItem, preferredGenres []string) []BatchPrediction {
	out := make([]BatchPrediction, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		out = append(out, BatchPrediction{
			ItemID:     itemID,
			Prediction: r.PredictRating(userID, itemID, ratings, preferredGenres),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Prediction.Rating > out[j].Prediction.Rating
	})
	return out
}

// ExplainRecommendation 解释一个推荐：按画像贡献度列出前三个类型。
func (r *Recommender) ExplainRecommendation(itemID int64, profile []float64) string {
	itemVec, ok := r.cat.Vector(itemID)
	if !ok {
		return "item not found in catalog"
	}

	vocab := r.cat.Vocabulary()
	type contribution struct {
		genre  string
		weight float64
	}
	var contribs []contribution
	for i, v := range itemVec {
		if w := v * profile[i]; w > 0 {
			contribs = append(contribs, contribution{genre: vocab[i], weight: w})
		}
	}
	if len(contribs) == 0 {
		return "recommended as a popular title"
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].weight > contribs[j].weight
	})
	if len(contribs) > 3 {
		contribs = contribs[:3]
	}
	genres := make([]string, 0, len(contribs))
	for _, c := range contribs {
		genres = append(genres, c.genre)
	}
	return "recommended because you like: " + strings.Join(genres, ", ")
}

// ItemGenres 返回物品的类型标签；目录外的物品返回 nil。
func (r *Recommender) ItemGenres(itemID int64) []string {
	return r.cat.Genres(itemID)
}
