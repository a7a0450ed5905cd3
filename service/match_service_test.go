package service

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/filter"
	"github.com/rushteam/matchkit/store"
)

// newTestService 构建一个带固定实体的服务并完成首次重建。
func newTestService(t *testing.T, opts ...Option) *MatchService {
	t.Helper()
	ctx := context.Background()
	es := store.NewMemoryEntityStore()

	centres := []*core.Centre{
		{
			ID:    "c-solo",
			Name:  "化学专科机构",
			Labs:  map[string]float64{"chemistry": 3},
			Modes: map[core.DeliveryMode]bool{core.DeliveryOnline: true},
		},
		{
			ID:   "c-empty",
			Name: "空机构",
		},
	}
	courses := []*core.Course{
		{
			ID:           "crs-a",
			Title:        "基础化学（线上）",
			DeliveryMode: core.DeliveryOnline,
			RequiredLabs: []string{"chemistry"},
		},
		{
			ID:           "crs-b",
			Title:        "基础化学（线下）",
			DeliveryMode: core.DeliveryOnsite,
			RequiredLabs: []string{"chemistry"},
		},
		{
			ID:           "crs-x",
			Title:        "应用物理",
			DeliveryMode: core.DeliveryOnline,
			RequiredLabs: []string{"physics"},
		},
	}
	for _, c := range centres {
		if err := es.PutCentre(ctx, c); err != nil {
			t.Fatalf("PutCentre() error = %v", err)
		}
	}
	for _, c := range courses {
		if err := es.PutCourse(ctx, c); err != nil {
			t.Fatalf("PutCourse() error = %v", err)
		}
	}

	svc := NewMatchService(es, opts...)
	if _, err := svc.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	return svc
}

func TestMatchService_RecommendCollinearMatch(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Recommend(context.Background(), &Query{CentreID: "c-solo"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// crs-x 被实训室硬过滤剔除；crs-a / crs-b 需求与机构能力共线，
	// 得分恰为 1.0，同分按课程 ID 升序
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	if resp.Recommendations[0].CourseID != "crs-a" || resp.Recommendations[1].CourseID != "crs-b" {
		t.Errorf("order = %s, %s; want crs-a, crs-b",
			resp.Recommendations[0].CourseID, resp.Recommendations[1].CourseID)
	}
	for _, rec := range resp.Recommendations {
		if math.Abs(rec.Score-1.0) > 1e-9 {
			t.Errorf("%s score = %v, want 1.0", rec.CourseID, rec.Score)
		}
	}

	if resp.Generation != 1 {
		t.Errorf("generation = %d, want 1", resp.Generation)
	}
	if resp.Centre.ID != "c-solo" || resp.Centre.Name != "化学专科机构" {
		t.Errorf("centre profile = %+v", resp.Centre)
	}
	if len(resp.Centre.Modes) != 1 || resp.Centre.Modes[0] != core.DeliveryOnline {
		t.Errorf("profile modes = %v, want [online]", resp.Centre.Modes)
	}
}

func TestMatchService_DeliveryModeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Recommend(ctx, &Query{CentreID: "c-solo", Modes: []string{"online"}})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].CourseID != "crs-a" {
		t.Errorf("online filter kept %v, want only crs-a", recommendationIDs(resp))
	}

	resp, err = svc.Recommend(ctx, &Query{CentreID: "c-solo", Modes: []string{"onsite", "hybrid"}})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].CourseID != "crs-b" {
		t.Errorf("onsite/hybrid filter kept %v, want only crs-b", recommendationIDs(resp))
	}
}

func TestMatchService_EmptyCentreGetsEmptyList(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Recommend(context.Background(), &Query{CentreID: "c-empty"})
	if err != nil {
		t.Fatalf("Recommend() error = %v, empty centre is not an error", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("empty centre got %v, want no recommendations", recommendationIDs(resp))
	}
}

func TestMatchService_TopNTruncation(t *testing.T) {
	svc := newTestService(t)

	q := (&Query{CentreID: "c-solo"}).SetTopN(1)
	resp, err := svc.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].CourseID != "crs-a" {
		t.Errorf("top_n=1 kept %v, want only crs-a", recommendationIDs(resp))
	}
}

func TestMatchService_InvalidQueries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query *Query
	}{
		{name: "nil query", query: nil},
		{name: "missing centre id", query: &Query{}},
		{name: "explicit zero top_n", query: (&Query{CentreID: "c-solo"}).SetTopN(0)},
		{name: "explicit negative top_n", query: (&Query{CentreID: "c-solo"}).SetTopN(-5)},
		{name: "unknown delivery mode", query: &Query{CentreID: "c-solo", Modes: []string{"remote"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Recommend(ctx, tt.query); !core.IsInvalidQuery(err) {
				t.Errorf("Recommend() error = %v, want INVALID_QUERY", err)
			}
		})
	}
}

func TestMatchService_UnknownCentre(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Recommend(context.Background(), &Query{CentreID: "c-404"}); !core.IsNotFound(err) {
		t.Errorf("Recommend() error = %v, want NOT_FOUND", err)
	}
}

func TestMatchService_NotBuilt(t *testing.T) {
	svc := NewMatchService(store.NewMemoryEntityStore())
	if _, err := svc.Recommend(context.Background(), &Query{CentreID: "c-solo"}); !core.IsNotBuilt(err) {
		t.Errorf("Recommend() error = %v, want NOT_BUILT", err)
	}
}

func TestMatchService_RuleFilters(t *testing.T) {
	svc := newTestService(t, WithRuleFilters(
		filter.NewRuleFilter(`course.delivery_mode == "onsite"`),
	))

	resp, err := svc.Recommend(context.Background(), &Query{CentreID: "c-solo"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].CourseID != "crs-a" {
		t.Errorf("rule filter kept %v, want only crs-a", recommendationIDs(resp))
	}
}

// stubAnnotations 返回固定注记。
type stubAnnotations struct {
	ann *core.CentreAnnotations
	err error
}

func (s *stubAnnotations) Name() string { return "stub" }

func (s *stubAnnotations) GetCentreAnnotations(_ context.Context, _ string) (*core.CentreAnnotations, error) {
	return s.ann, s.err
}

func (s *stubAnnotations) Close() error { return nil }

func TestMatchService_AnnotationOverride(t *testing.T) {
	svc := newTestService(t, WithAnnotationService(&stubAnnotations{
		ann: &core.CentreAnnotations{RiskScore: 4.2, PartnerTier: core.PartnerTierStrategic},
	}))

	resp, err := svc.Recommend(context.Background(), &Query{CentreID: "c-solo"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Centre.RiskScore != 4.2 || resp.Centre.PartnerTier != core.PartnerTierStrategic {
		t.Errorf("profile annotations = %v / %q, want 4.2 / strategic",
			resp.Centre.RiskScore, resp.Centre.PartnerTier)
	}
}

func TestMatchService_AnnotationFailureFallsBack(t *testing.T) {
	svc := newTestService(t, WithAnnotationService(&stubAnnotations{
		err: core.NewDomainError(core.ModuleAnnotation, core.ErrorCodeInternalError, "feast: down"),
	}))

	resp, err := svc.Recommend(context.Background(), &Query{CentreID: "c-solo"})
	if err != nil {
		t.Fatalf("Recommend() error = %v, annotation failure must not fail the query", err)
	}
	// 回退到机构记录上的透传字段（此处为零值）
	if resp.Centre.RiskScore != 0 || resp.Centre.PartnerTier != "" {
		t.Errorf("fallback profile = %v / %q", resp.Centre.RiskScore, resp.Centre.PartnerTier)
	}
}

func recommendationIDs(resp *Response) []string {
	out := make([]string, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		out = append(out, rec.CourseID)
	}
	return out
}
