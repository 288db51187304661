package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/use-this-search/clustering-platform/internal/apperr"
	"github.com/use-this-search/clustering-platform/internal/model"
)

// An in-memory database does not survive the connection pool opening a second
// connection, so tests run against a file in a per-test temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAnalysis(userID, companyID string, createdAt time.Time) *model.Analysis {
	return &model.Analysis{
		UserID:        userID,
		CompanyID:     companyID,
		TotalKeywords: 4,
		TotalClusters: 2,
		Clusters: []model.Cluster{
			{
				ID:                 1,
				Name:               "Email Marketing",
				PrimaryKeyword:     "email marketing guide",
				Keywords:           []string{"email marketing guide", "email marketing tips"},
				Intent:             model.IntentInformational,
				JourneyStage:       model.StageAwareness,
				TopicTheme:         "email",
				SearchVolumeTotal:  400,
				DifficultyAverage:  50,
				ContentSuggestions: []string{"Complete Guide to Email"},
				PriorityScore:      0.16,
			},
			{
				ID:             2,
				Name:           "Seo Tools",
				PrimaryKeyword: "best seo tools",
				Keywords:       []string{"best seo tools", "seo tools review"},
				Intent:         model.IntentCommercial,
				JourneyStage:   model.StageConsideration,
				PriorityScore:  0.1,
			},
		},
		UnclusteredKeywords: []string{},
		ContentGaps: []model.ContentGap{
			{Kind: model.GapIntent, Bucket: "transactional", Priority: model.PriorityHigh},
		},
		ProcessingTimeSeconds: 0.42,
		CreatedAt:             createdAt,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleAnalysis("u1", "c1", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected a generated id")
	}

	got, err := s.Get(ctx, created.ID, "u1", "c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TotalKeywords != 4 || got.TotalClusters != 2 {
		t.Errorf("Expected totals 4/2, got %d/%d", got.TotalKeywords, got.TotalClusters)
	}
	if len(got.Clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(got.Clusters))
	}
	if got.Clusters[0].Name != "Email Marketing" {
		t.Errorf("Expected cluster name preserved, got %q", got.Clusters[0].Name)
	}
	if got.Clusters[0].PriorityScore != 0.16 {
		t.Errorf("Expected priority preserved, got %f", got.Clusters[0].PriorityScore)
	}
	if len(got.ContentGaps) != 1 || got.ContentGaps[0].Kind != model.GapIntent {
		t.Errorf("Expected content gaps preserved, got %v", got.ContentGaps)
	}
	if got.UnclusteredKeywords == nil || len(got.UnclusteredKeywords) != 0 {
		t.Errorf("Expected empty unclustered slice, got %v", got.UnclusteredKeywords)
	}
}

func TestGetCrossTenantIsNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleAnalysis("u1", "c1", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cases := []struct{ user, company string }{
		{"u2", "c1"},
		{"u1", "c2"},
	}
	for _, tc := range cases {
		_, err := s.Get(ctx, created.ID, tc.user, tc.company)
		if apperr.KindOf(err) != apperr.NotFound {
			t.Errorf("Get as (%s,%s): expected NotFound, got %v", tc.user, tc.company, err)
		}
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "no-such-id", "u1", "c1")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestDeleteRemovesAndRepeatsNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleAnalysis("u1", "c1", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.Delete(ctx, created.ID, "u1", "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, created.ID, "u1", "c1"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Expected analysis gone, got %v", err)
	}
	if err := s.Delete(ctx, created.ID, "u1", "c1"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Expected NotFound on repeat delete, got %v", err)
	}
}

func TestDeleteCrossTenantIsNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleAnalysis("u1", "c1", time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, created.ID, "u1", "c2"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Expected NotFound for cross-tenant delete, got %v", err)
	}
	// The record is untouched for the owner.
	if _, err := s.Get(ctx, created.ID, "u1", "c1"); err != nil {
		t.Errorf("Expected record still readable by owner, got %v", err)
	}
}

func TestListNewestFirstWithPaging(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a := sampleAnalysis("u1", "c1", base.Add(time.Duration(i)*time.Hour))
		a.TotalKeywords = i
		if _, err := s.Create(ctx, a); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	if _, err := s.Create(ctx, sampleAnalysis("u2", "c1", base)); err != nil {
		t.Fatalf("Create for other user failed: %v", err)
	}

	page, total, err := s.List(ctx, "u1", "c1", 2, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(page))
	}
	if page[0].TotalKeywords != 4 || page[1].TotalKeywords != 3 {
		t.Errorf("Expected newest first, got keywords %d then %d",
			page[0].TotalKeywords, page[1].TotalKeywords)
	}

	page2, _, err := s.List(ctx, "u1", "c1", 2, 4)
	if err != nil {
		t.Fatalf("List page 2 failed: %v", err)
	}
	if len(page2) != 1 || page2[0].TotalKeywords != 0 {
		t.Errorf("Expected final page with oldest record, got %v", page2)
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)
	page, total, err := s.List(context.Background(), "u1", "c1", 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 0 || len(page) != 0 {
		t.Errorf("Expected empty list, got total=%d page=%v", total, page)
	}
}

func TestForEachOldestFirstScoped(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		a := sampleAnalysis("u1", "c1", base.Add(time.Duration(i)*time.Hour))
		a.TotalKeywords = i
		if _, err := s.Create(ctx, a); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	if _, err := s.Create(ctx, sampleAnalysis("u2", "c2", base)); err != nil {
		t.Fatalf("Create for other tenant failed: %v", err)
	}

	var order []int
	err := s.ForEach(ctx, "u1", "c1", func(a *model.Analysis) error {
		order = append(order, a.TotalKeywords)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if len(order) != 3 || order[0] != 0 || order[2] != 2 {
		t.Errorf("Expected oldest-first visit of owned records, got %v", order)
	}
}

func TestRecordIncrementsAtomically(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := s.Record(ctx, "u1", "c1", 10, 4, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	usage, err := s.CurrentMonth(ctx, "u1", "c1", now)
	if err != nil {
		t.Fatalf("CurrentMonth failed: %v", err)
	}
	if usage.AnalysesCount != 3 {
		t.Errorf("Expected 3 analyses, got %d", usage.AnalysesCount)
	}
	if usage.KeywordsProcessed != 30 {
		t.Errorf("Expected 30 keywords, got %d", usage.KeywordsProcessed)
	}
	if usage.ClustersCreated != 12 {
		t.Errorf("Expected 12 clusters, got %d", usage.ClustersCreated)
	}
	wantLast := now.Add(2 * time.Minute)
	if !usage.LastAnalysisDate.Equal(wantLast) {
		t.Errorf("Expected last analysis at %v, got %v", wantLast, usage.LastAnalysisDate)
	}
}

func TestCurrentMonthZeroRow(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	usage, err := s.CurrentMonth(context.Background(), "u1", "c1", now)
	if err != nil {
		t.Fatalf("CurrentMonth failed: %v", err)
	}
	if usage.AnalysesCount != 0 || usage.KeywordsProcessed != 0 {
		t.Errorf("Expected zero usage, got %+v", usage)
	}
	if !usage.MonthStart.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected month start, got %v", usage.MonthStart)
	}
}

func TestRecordSeparatesMonthsAndTenants(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	march := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	if err := s.Record(ctx, "u1", "c1", 5, 2, march); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(ctx, "u1", "c1", 7, 3, april); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(ctx, "u2", "c1", 9, 4, april); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	aprilUsage, err := s.CurrentMonth(ctx, "u1", "c1", april)
	if err != nil {
		t.Fatalf("CurrentMonth failed: %v", err)
	}
	if aprilUsage.AnalysesCount != 1 || aprilUsage.KeywordsProcessed != 7 {
		t.Errorf("Expected April row isolated, got %+v", aprilUsage)
	}

	totals, err := s.Totals(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.AnalysesCount != 2 || totals.KeywordsProcessed != 12 || totals.ClustersCreated != 5 {
		t.Errorf("Expected cross-month totals 2/12/5, got %+v", totals)
	}
}

func TestTotalsEmptyLedger(t *testing.T) {
	s := openTestStore(t)
	totals, err := s.Totals(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.AnalysesCount != 0 || !totals.LastAnalysisDate.IsZero() {
		t.Errorf("Expected zero totals, got %+v", totals)
	}
}
