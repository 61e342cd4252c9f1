package core

import (
	"errors"
	"testing"

	"github.com/rushteam/cinerec/pkg/utils"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.2, RatingMin},
		{1, 1},
		{3.3, 3.3},
		{5, 5},
		{6.8, RatingMax},
	}
	for _, tt := range tests {
		if got := ClampRating(tt.in); got != tt.want {
			t.Errorf("ClampRating(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ModuleSVD, ErrorCodeInvalidInput, "svd: empty training dataset")
	if err.Error() != "svd: empty training dataset" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsInvalidInput(err) {
		t.Errorf("IsInvalidInput 应为 true")
	}
	if IsNotFound(err) || IsNotFitted(err) {
		t.Errorf("错误代码判断串线")
	}

	if GetDomainError(errors.New("plain")) != nil {
		t.Errorf("普通 error 不应识别为 DomainError")
	}
	if GetDomainError(nil) != nil {
		t.Errorf("nil 不应识别为 DomainError")
	}
}

func TestIsStoreNotFound(t *testing.T) {
	if !IsStoreNotFound(ErrStoreNotFound) {
		t.Errorf("ErrStoreNotFound 应被识别")
	}
	// 同代码不同模块不算
	other := NewDomainError(ModuleCatalog, ErrorCodeNotFound, "x")
	if IsStoreNotFound(other) {
		t.Errorf("非 store 模块的 NOT_FOUND 不应被识别")
	}
}

func TestItem_PutLabel(t *testing.T) {
	it := NewItem(1)
	it.PutLabel("recall_source", utils.Label{Value: "cf", Source: "recall"})
	it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})

	lbl := it.Labels["recall_source"]
	if lbl.Value != "cf|hot" {
		t.Errorf("同名标签应累积: %+v", lbl)
	}

	// Labels 为 nil 时自动初始化
	bare := &Item{ID: 2}
	bare.PutLabel("k", utils.Label{Value: "v"})
	if bare.Labels["k"].Value != "v" {
		t.Errorf("nil Labels 未初始化")
	}
}

func TestRecommendContext_RatedSet(t *testing.T) {
	rctx := &RecommendContext{
		Ratings: []RatedItem{{ItemID: 10, Rating: 5}, {ItemID: 20, Rating: 3}},
	}
	set := rctx.RatedSet()
	if len(set) != 2 {
		t.Fatalf("RatedSet() = %v", set)
	}
	if _, ok := set[10]; !ok {
		t.Errorf("缺少 10")
	}

	empty := &RecommendContext{}
	if empty.RatedSet() != nil {
		t.Errorf("空历史应返回 nil")
	}
}

func TestRecommendContext_Labels(t *testing.T) {
	rctx := &RecommendContext{}
	if _, ok := rctx.GetLabel("k"); ok {
		t.Errorf("未写入的标签不应存在")
	}
	rctx.PutLabel("k", utils.Label{Value: "v", Source: "test"})
	lbl, ok := rctx.GetLabel("k")
	if !ok || lbl.Value != "v" {
		t.Errorf("GetLabel() = %+v, %v", lbl, ok)
	}
}
