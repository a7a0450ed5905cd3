package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/matchkit/core"
)

func scoredItem(id string, score float64) *core.Item {
	item := core.NewItem(id)
	item.Score = score
	return item
}

func TestSortNode(t *testing.T) {
	node := &SortNode{}
	items := []*core.Item{
		scoredItem("crs-c", 0.5),
		scoredItem("crs-a", 0.9),
		scoredItem("crs-b", 0.5),
		scoredItem("crs-d", 1.0),
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 降序；同分（crs-b / crs-c）按课程 ID 升序
	want := []string{"crs-d", "crs-a", "crs-b", "crs-c"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestSortNode_Deterministic(t *testing.T) {
	build := func() []*core.Item {
		return []*core.Item{
			scoredItem("crs-3", 0.7),
			scoredItem("crs-1", 0.7),
			scoredItem("crs-2", 0.7),
		}
	}

	node := &SortNode{}
	first, _ := node.Process(context.Background(), nil, build())
	for i := 0; i < 10; i++ {
		again, _ := node.Process(context.Background(), nil, build())
		for j := range first {
			if first[j].ID != again[j].ID {
				t.Fatalf("sort not deterministic at %d: %s != %s", j, first[j].ID, again[j].ID)
			}
		}
	}
}

func TestTopNNode(t *testing.T) {
	items := []*core.Item{
		scoredItem("crs-1", 0.9),
		scoredItem("crs-2", 0.8),
		scoredItem("crs-3", 0.7),
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "truncates to n", n: 2, want: 2},
		{name: "fewer candidates than n", n: 10, want: 3},
		{name: "exactly n", n: 3, want: 3},
		{name: "non-positive n keeps all", n: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
		})
	}
}
