package store

import (
	"context"
	"testing"

	"github.com/rushteam/cinerec/core"
)

// 需要本地 Redis 才能运行，CI 默认跳过
func TestRedisStore(t *testing.T) {
	t.Skip("需要连接真实的 Redis 才能运行")

	ctx := context.Background()
	s, err := NewRedisStore("localhost:6379", 0)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer s.Close()

	if err := s.Set(ctx, "cinerec:test:k", []byte("v"), 10); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "cinerec:test:k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if _, err := s.Get(ctx, "cinerec:test:missing"); !core.IsStoreNotFound(err) {
		t.Errorf("缺失 key 应返回 ErrStoreNotFound: %v", err)
	}

	if err := s.ZAdd(ctx, "cinerec:test:hot", 4.5, "100"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}
	members, err := s.ZRange(ctx, "cinerec:test:hot", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(members) == 0 {
		t.Errorf("ZRange() 为空")
	}
}
