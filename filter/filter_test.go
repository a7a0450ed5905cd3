package filter

import (
	"context"
	"testing"

	"github.com/rushteam/matchkit/core"
)

func newCourseItem(course *core.Course) *core.Item {
	item := core.NewItem(course.ID)
	item.Course = course
	return item
}

func testMatchContext() *core.MatchContext {
	return &core.MatchContext{
		CentreID: "c-001",
		Centre: &core.Centre{
			ID:     "c-001",
			Labs:   map[string]float64{"chemistry": 3, "it": 1},
			Skills: map[string]float64{"lab_safety": 2},
		},
	}
}

func TestLabRequirementFilter(t *testing.T) {
	f := &LabRequirementFilter{}
	mctx := testMatchContext()

	tests := []struct {
		name   string
		course *core.Course
		want   bool
	}{
		{
			name:   "all required labs present",
			course: &core.Course{ID: "crs-1", RequiredLabs: []string{"chemistry", "it"}},
			want:   false,
		},
		{
			name:   "one required lab missing",
			course: &core.Course{ID: "crs-2", RequiredLabs: []string{"chemistry", "physics"}},
			want:   true,
		},
		{
			name:   "no lab requirements",
			course: &core.Course{ID: "crs-3"},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(context.Background(), mctx, newCourseItem(tt.course))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabRequirementFilter_EmptyCentre(t *testing.T) {
	// 机构没有任何实训室：所有带实训室需求的课程都被剔除，不报错
	f := &LabRequirementFilter{}
	mctx := &core.MatchContext{CentreID: "c-empty", Centre: &core.Centre{ID: "c-empty"}}

	got, err := f.ShouldFilter(context.Background(), mctx,
		newCourseItem(&core.Course{ID: "crs-1", RequiredLabs: []string{"chemistry"}}))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Error("course with lab requirement should be filtered for an empty centre")
	}
}

func TestSkillRequirementFilter(t *testing.T) {
	f := &SkillRequirementFilter{}
	mctx := testMatchContext()

	keep, err := f.ShouldFilter(context.Background(), mctx,
		newCourseItem(&core.Course{ID: "crs-1", RequiredSkills: []string{"lab_safety"}}))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if keep {
		t.Error("course with satisfied skills should not be filtered")
	}

	drop, err := f.ShouldFilter(context.Background(), mctx,
		newCourseItem(&core.Course{ID: "crs-2", RequiredSkills: []string{"welding"}}))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !drop {
		t.Error("course with missing skill should be filtered")
	}
}

func TestDeliveryModeFilter(t *testing.T) {
	f := &DeliveryModeFilter{}
	online := newCourseItem(&core.Course{ID: "crs-1", DeliveryMode: core.DeliveryOnline})
	onsite := newCourseItem(&core.Course{ID: "crs-2", DeliveryMode: core.DeliveryOnsite})

	// 过滤集合为空：全部放行
	empty := &core.MatchContext{}
	if got, _ := f.ShouldFilter(context.Background(), empty, online); got {
		t.Error("empty mode set must allow every delivery mode")
	}

	restricted := &core.MatchContext{
		Modes: map[core.DeliveryMode]bool{core.DeliveryOnline: true},
	}
	if got, _ := f.ShouldFilter(context.Background(), restricted, online); got {
		t.Error("online course should pass an {online} mode set")
	}
	if got, _ := f.ShouldFilter(context.Background(), restricted, onsite); !got {
		t.Error("onsite course should be filtered by an {online} mode set")
	}
}

func TestMinScoreFilter(t *testing.T) {
	f := &MinScoreFilter{}
	item := newCourseItem(&core.Course{ID: "crs-1"})
	item.Score = 0.3

	if got, _ := f.ShouldFilter(context.Background(), &core.MatchContext{}, item); got {
		t.Error("zero threshold must not filter")
	}
	if got, _ := f.ShouldFilter(context.Background(), &core.MatchContext{MinScore: 0.5}, item); !got {
		t.Error("score below threshold should be filtered")
	}
	if got, _ := f.ShouldFilter(context.Background(), &core.MatchContext{MinScore: 0.3}, item); got {
		t.Error("score equal to threshold should pass")
	}
}

func TestMinScoreFilter_ConfiguredThreshold(t *testing.T) {
	// 运营侧固定下限与查询参数取较大者生效
	item := newCourseItem(&core.Course{ID: "crs-1"})
	item.Score = 0.3

	tests := []struct {
		name      string
		threshold float64
		minScore  float64
		want      bool
	}{
		{name: "threshold alone filters", threshold: 0.5, minScore: 0, want: true},
		{name: "threshold alone passes", threshold: 0.2, minScore: 0, want: false},
		{name: "query raises threshold", threshold: 0.2, minScore: 0.5, want: true},
		{name: "threshold raises query", threshold: 0.5, minScore: 0.2, want: true},
		{name: "both below score", threshold: 0.1, minScore: 0.2, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &MinScoreFilter{Threshold: tt.threshold}
			got, err := f.ShouldFilter(context.Background(), &core.MatchContext{MinScore: tt.minScore}, item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleFilter(t *testing.T) {
	mctx := testMatchContext()
	mctx.Centre.RiskScore = 2.5

	item := newCourseItem(&core.Course{
		ID:           "crs-1",
		DeliveryMode: core.DeliveryOnline,
		Tags:         []string{"priority"},
	})
	item.Score = 0.8

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "risk rule fires for online course",
			expr: `course.delivery_mode == "online" && centre.risk_score < 3.0`,
			want: true,
		},
		{
			name: "risk rule passes high score centre",
			expr: `course.delivery_mode == "online" && centre.risk_score < 2.0`,
			want: false,
		},
		{
			name: "tag membership",
			expr: `!("priority" in course.tags)`,
			want: false,
		},
		{
			name: "score threshold",
			expr: `item.score < 0.9`,
			want: true,
		},
		{
			name: "empty expression never filters",
			expr: "",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRuleFilter(tt.expr).ShouldFilter(context.Background(), mctx, item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFilterNode(t *testing.T) {
	mctx := testMatchContext()
	items := []*core.Item{
		newCourseItem(&core.Course{ID: "crs-1", RequiredLabs: []string{"chemistry"}}),
		newCourseItem(&core.Course{ID: "crs-2", RequiredLabs: []string{"physics"}}),
		newCourseItem(&core.Course{ID: "crs-3", RequiredSkills: []string{"welding"}}),
	}

	node := &FilterNode{Filters: []Filter{
		&LabRequirementFilter{},
		&SkillRequirementFilter{},
	}}
	out, err := node.Process(context.Background(), mctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "crs-1" {
		t.Fatalf("Process() kept %d items, want only crs-1", len(out))
	}
}

func TestFilterNode_BrokenRuleFailsOpen(t *testing.T) {
	// 规则表达式损坏时记录标签、候选放行，不中断链路
	mctx := testMatchContext()
	item := newCourseItem(&core.Course{ID: "crs-1"})

	node := &FilterNode{Filters: []Filter{NewRuleFilter("this is not CEL ((")}}
	out, err := node.Process(context.Background(), mctx, []*core.Item{item})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("broken rule must fail open, got %d items", len(out))
	}
	if _, ok := out[0].Labels["filter_error"]; !ok {
		t.Error("expected filter_error label on the surviving item")
	}
}
