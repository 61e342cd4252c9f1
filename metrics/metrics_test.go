package metrics

import (
	"math"
	"testing"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		predicted []float64
		actual    []float64
		want      float64
	}{
		{"完全一致", []float64{3, 4, 5}, []float64{3, 4, 5}, 0},
		{"恒差 1", []float64{2, 3, 4}, []float64{3, 4, 5}, 1},
		{"手算：误差 1 和 2", []float64{4, 1}, []float64{5, 3}, math.Sqrt(2.5)},
		{"空输入", nil, nil, 0},
		{"长度不一致", []float64{1, 2}, []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMSE(tt.predicted, tt.actual); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrecisionRecall(t *testing.T) {
	recommended := []int64{1, 2, 3, 4}
	relevant := []int64{2, 4, 6}

	// 命中 2 个：precision = 2/4，recall = 2/3
	if got := Precision(recommended, relevant); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Precision() = %v, want 0.5", got)
	}
	if got := Recall(recommended, relevant); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Recall() = %v, want 2/3", got)
	}

	// 空输入不除零
	if got := Precision(nil, relevant); got != 0 {
		t.Errorf("空推荐 Precision = %v, want 0", got)
	}
	if got := Recall(recommended, nil); got != 0 {
		t.Errorf("空相关集 Recall = %v, want 0", got)
	}
}

func TestAveragePrecision(t *testing.T) {
	tests := []struct {
		name        string
		recommended []int64
		relevant    []int64
		want        float64
	}{
		{
			// 位置 1、3 命中：(1/1 + 2/3) / min(2,3) = 5/6
			name:        "位置敏感手算",
			recommended: []int64{10, 20, 30},
			relevant:    []int64{10, 30},
			want:        5.0 / 6.0,
		},
		{
			// 全部命中且顺序靠前：AP = 1
			name:        "完美排序",
			recommended: []int64{10, 20},
			relevant:    []int64{10, 20},
			want:        1,
		},
		{
			// 相关物品被压到末位：(1/3) / 1
			name:        "命中靠后受罚",
			recommended: []int64{20, 30, 10},
			relevant:    []int64{10},
			want:        1.0 / 3.0,
		},
		{
			// 归一分母取 min(|相关|, |推荐|)：命中 1/1，分母 min(3,1)=1
			name:        "推荐数少于相关数",
			recommended: []int64{10},
			relevant:    []int64{10, 20, 30},
			want:        1,
		},
		{"无命中", []int64{1, 2}, []int64{9}, 0},
		{"空推荐", nil, []int64{1}, 0},
		{"空相关集", []int64{1}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AveragePrecision(tt.recommended, tt.relevant); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AveragePrecision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAveragePrecision_OrderMatters(t *testing.T) {
	relevant := []int64{10}
	early := AveragePrecision([]int64{10, 20, 30}, relevant)
	late := AveragePrecision([]int64{20, 30, 10}, relevant)
	if early <= late {
		t.Errorf("命中靠前 AP 应更高: early=%v late=%v", early, late)
	}
}
