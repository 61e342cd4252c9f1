package core

// Rating 是一条用户对物品的评分记录，训练/评估数据集的最小单元。
// 评分取值 [1,5]。Timestamp 可选，训练时忽略，保留给上游做数据切分。
// 一旦进入训练数据集即视为不可变；数据集本身是固定批次，不是流。
type Rating struct {
	UserID    int64
	ItemID    int64
	Rating    float64
	Timestamp int64
}

// RatedItem 是请求侧携带的 (物品, 评分) 对，用于冷启动用户的部分评分历史。
type RatedItem struct {
	ItemID int64
	Rating float64
}

// RatingScale 定义评分区间 [1,5] 及其中位值，所有裁剪与兜底都引用这里。
const (
	RatingMin = 1.0
	RatingMax = 5.0
	RatingMid = 3.0
)

// ClampRating 将评分裁剪到 [RatingMin, RatingMax]。
func ClampRating(r float64) float64 {
	if r < RatingMin {
		return RatingMin
	}
	if r > RatingMax {
		return RatingMax
	}
	return r
}
