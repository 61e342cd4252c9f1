package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/cinerec/core"
)

// stubNode 是测试 Node：把固定 ID 追加到候选里，或者返回错误。
type stubNode struct {
	name string
	add  []int64
	err  error
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return KindRecall }

func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	out := items
	for _, id := range n.add {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "a", add: []int64{1}},
		&stubNode{name: "b", add: []int64{2, 3}},
	}}

	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Run() 返回 %d 个, want 3", len(out))
	}
	for i, want := range []int64{1, 2, 3} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, want)
		}
	}
}

func TestPipeline_RunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "a", add: []int64{1}},
		&stubNode{name: "bad", err: boom},
		&stubNode{name: "c", add: []int64{9}},
	}}

	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if out != nil {
		t.Errorf("出错时不应返回部分结果: %+v", out)
	}
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
pipeline:
  name: movie_rec
  nodes:
    - type: recall.fanout
      config:
        dedup: true
    - type: rerank.topn
      config:
        n: 10
`)
	cfg, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "movie_rec" {
		t.Errorf("Name = %q, want movie_rec", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("Nodes = %d, want 2", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Type != "recall.fanout" {
		t.Errorf("Nodes[0].Type = %q", cfg.Pipeline.Nodes[0].Type)
	}
	if v, ok := cfg.Pipeline.Nodes[1].Config["n"]; !ok || v != 10 {
		t.Errorf("Nodes[1].Config[n] = %v, want 10", v)
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := ParseYAML([]byte("pipeline: [")); err == nil {
		t.Errorf("非法 YAML 应报错")
	}
}

func TestNodeFactoryBuildPipeline(t *testing.T) {
	factory := NewNodeFactory()
	factory.Register("stub", func(config map[string]any) (Node, error) {
		return &stubNode{name: "stub", add: []int64{7}}, nil
	})

	cfg, err := ParseYAML([]byte(`
pipeline:
  name: t
  nodes:
    - type: stub
`))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != 7 {
		t.Errorf("配置驱动构建的链路结果错误: %+v", out)
	}
}

func TestNodeFactory_UnknownType(t *testing.T) {
	factory := NewNodeFactory()
	cfg, err := ParseYAML([]byte(`
pipeline:
  nodes:
    - type: no.such.node
`))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Errorf("未注册的 Node 类型应构建失败")
	}
}
