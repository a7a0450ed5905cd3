package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/matchkit/core"
)

// stageNode 记录执行顺序，并可选地注入错误。
type stageNode struct {
	name string
	log  *[]string
	err  error
}

func (n *stageNode) Name() string { return n.name }
func (n *stageNode) Kind() Kind   { return KindPostProcess }

func (n *stageNode) Process(_ context.Context, _ *core.MatchContext, items []*core.Item) ([]*core.Item, error) {
	*n.log = append(*n.log, n.name)
	if n.err != nil {
		return nil, n.err
	}
	items = append(items, core.NewItem(n.name))
	return items, nil
}

func TestPipeline_RunInOrder(t *testing.T) {
	var log []string
	p := &Pipeline{Nodes: []Node{
		&stageNode{name: "recall", log: &log},
		&stageNode{name: "rank", log: &log},
		&stageNode{name: "filter", log: &log},
	}}

	items, err := p.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	want := []string{"recall", "rank", "filter"}
	for i, name := range want {
		if log[i] != name {
			t.Errorf("stage %d = %s, want %s", i, log[i], name)
		}
	}
}

func TestPipeline_FailFast(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&stageNode{name: "first", log: &log},
		&stageNode{name: "second", log: &log, err: boom},
		&stageNode{name: "third", log: &log},
	}}

	items, err := p.Run(context.Background(), nil, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if items != nil {
		t.Error("failed run must not return partial results")
	}
	if len(log) != 2 {
		t.Errorf("executed %d stages, want fail-fast after 2", len(log))
	}
}

func TestPipeline_Empty(t *testing.T) {
	p := &Pipeline{}
	items, err := p.Run(context.Background(), nil, []*core.Item{core.NewItem("crs-1")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("empty pipeline must pass items through, got %d", len(items))
	}
}
