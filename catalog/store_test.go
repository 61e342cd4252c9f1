package catalog

import (
	"context"
	"testing"

	"github.com/rushteam/cinerec/store"
)

func TestCatalogStoreRoundTrip(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	ctx := context.Background()

	src := FromEntries([]string{"Action", "Comedy", "Drama"}, []Entry{
		{ItemID: 1, Genres: []string{"Action", "Drama"}},
		{ItemID: 2, Genres: []string{"Comedy"}},
		{ItemID: 3, Genres: nil}, // 无标签物品也要落盘
	})
	if err := src.SaveToStore(ctx, kv, "catalog:genres"); err != nil {
		t.Fatalf("SaveToStore() error = %v", err)
	}

	got, err := LoadFromStore(ctx, kv, "catalog:genres", []string{"Action", "Comedy", "Drama"})
	if err != nil {
		t.Fatalf("LoadFromStore() error = %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("装载后 Len() = %d, want 3", got.Len())
	}
	for _, id := range src.Items() {
		wantVec, _ := src.Vector(id)
		gotVec, ok := got.Vector(id)
		if !ok {
			t.Fatalf("装载后缺少物品 %d", id)
		}
		for i := range wantVec {
			if gotVec[i] != wantVec[i] {
				t.Errorf("物品 %d 向量不一致: got %v, want %v", id, gotVec, wantVec)
			}
		}
	}
}

func TestLoadFromStore_SkipsGarbage(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	ctx := context.Background()

	// 合法行 + 非数字 field + 非 JSON value
	if err := kv.HSet(ctx, "catalog:genres", "1", []byte(`["Action"]`)); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := kv.HSet(ctx, "catalog:genres", "not-an-id", []byte(`["Action"]`)); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := kv.HSet(ctx, "catalog:genres", "2", []byte(`{{broken`)); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := LoadFromStore(ctx, kv, "catalog:genres", nil)
	if err != nil {
		t.Fatalf("LoadFromStore() error = %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("脏数据应被跳过: Len() = %d, want 1", got.Len())
	}
}

func TestLoadFromStore_EmptyHash(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()

	got, err := LoadFromStore(context.Background(), kv, "missing-key", nil)
	if err != nil {
		t.Fatalf("LoadFromStore() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("空 Hash 应得到空目录: Len() = %d", got.Len())
	}
}
