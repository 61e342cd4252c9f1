package metrics

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cinerec/core"
)

// Predictor 是评分预测函数（通常是 (*svd.Model).PredictScore）。
type Predictor func(userID, itemID int64) float64

// TopNRecommender 是 Top-N 推荐函数（通常是 (*svd.Model).RecommendTopN）。
type TopNRecommender func(userID int64, n int) []int64

// EvaluateRMSE 在留出集上评估预测误差。
// 训练集中没出现过的用户不调用模型，直接用评分中位值替代
// （仅用于评估的冷启动近似，与在线降级路径无关）。
func EvaluateRMSE(predict Predictor, train, test []core.Rating) float64 {
	trainUsers := make(map[int64]struct{}, len(train))
	for _, r := range train {
		trainUsers[r.UserID] = struct{}{}
	}

	predicted := make([]float64, len(test))
	actual := make([]float64, len(test))
	for i, r := range test {
		if _, known := trainUsers[r.UserID]; known {
			predicted[i] = predict(r.UserID, r.ItemID)
		} else {
			predicted[i] = core.RatingMid
		}
		actual[i] = r.Rating
	}
	return RMSE(predicted, actual)
}

// TopNResult 是排序质量评估的聚合结果（被评估用户上的均值）。
type TopNResult struct {
	Precision float64
	Recall    float64
	MAP       float64
	NumEval   int // 实际参与统计的用户数
}

// TopNOptions 控制排序质量评估。
type TopNOptions struct {
	// At 每个用户取多少条推荐，<=0 时取 25
	At int
	// RelevanceThreshold 测试集中评分不低于该值的物品视为相关，<=0 时取 4
	RelevanceThreshold float64
	// Concurrency 并行评估的用户数，<=1 时串行。
	// 各用户的计算相互独立且只读，聚合是均值，与顺序无关。
	Concurrency int
}

// EvaluateTopN 在留出集上评估 Precision / Recall / MAP。
//
// 遍历留出集中出现的每个用户：没有相关物品的用户直接跳过；
// 推荐器返回空列表的用户不计入 NumEval 但也不报错；
// NumEval 为 0 时返回全零结果，不会发生除零。
func EvaluateTopN(ctx context.Context, recommend TopNRecommender, test []core.Rating, opts TopNOptions) (TopNResult, error) {
	at := opts.At
	if at <= 0 {
		at = 25
	}
	threshold := opts.RelevanceThreshold
	if threshold <= 0 {
		threshold = 4
	}

	// 每个用户在留出集中的相关物品
	relevantByUser := make(map[int64][]int64)
	for _, r := range test {
		if _, ok := relevantByUser[r.UserID]; !ok {
			relevantByUser[r.UserID] = nil
		}
		if r.Rating >= threshold {
			relevantByUser[r.UserID] = append(relevantByUser[r.UserID], r.ItemID)
		}
	}
	users := make([]int64, 0, len(relevantByUser))
	for userID := range relevantByUser {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	var (
		mu     sync.Mutex
		result TopNResult
	)
	evalUser := func(userID int64) {
		relevant := relevantByUser[userID]
		if len(relevant) == 0 {
			return
		}
		recommended := recommend(userID, at)
		if len(recommended) == 0 {
			return
		}
		p := Precision(recommended, relevant)
		r := Recall(recommended, relevant)
		ap := AveragePrecision(recommended, relevant)

		mu.Lock()
		result.Precision += p
		result.Recall += r
		result.MAP += ap
		result.NumEval++
		mu.Unlock()
	}

	if opts.Concurrency > 1 {
		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(opts.Concurrency)
		for _, userID := range users {
			userID := userID
			eg.Go(func() error {
				evalUser(userID)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return TopNResult{}, err
		}
	} else {
		for _, userID := range users {
			if err := ctx.Err(); err != nil {
				return TopNResult{}, err
			}
			evalUser(userID)
		}
	}

	if result.NumEval == 0 {
		return TopNResult{}, nil
	}
	n := float64(result.NumEval)
	result.Precision /= n
	result.Recall /= n
	result.MAP /= n
	return result, nil
}
