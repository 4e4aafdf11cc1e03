// Package contract holds behavior suites every HistoryStore implementation must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

// HistoryFactory returns a fresh, empty store and its cleanup.
type HistoryFactory func(t *testing.T) (repository.HistoryStore, func())

func snapshot(team string, matches int) model.ReportSnapshot {
	return model.ReportSnapshot{
		TeamName:   team,
		Report:     model.ScoutingReport{TeamName: team, MatchesAnalyzed: matches, AvgGameTime: "31:20"},
		Confidence: model.Confidence{Score: 80, Label: model.ConfidenceHigh, MatchesAnalyzed: matches},
	}
}

func RunHistoryStoreContract(t *testing.T, makeStore HistoryFactory) {
	t.Helper()

	t.Run("append_report_assigns_id_and_time", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		a, err := store.AppendReport(ctx, snapshot("Cloud9", 5))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		b, err := store.AppendReport(ctx, snapshot("Cloud9", 6))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if a.ID == 0 || b.ID == a.ID {
			t.Fatalf("expected distinct non-zero ids, got %d and %d", a.ID, b.ID)
		}
		if a.CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be set")
		}
	})

	t.Run("list_reports_newest_first_case_insensitive", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 1; i <= 3; i++ {
			if _, err := store.AppendReport(ctx, snapshot("Team Liquid", i)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		if _, err := store.AppendReport(ctx, snapshot("G2", 9)); err != nil {
			t.Fatalf("seed: %v", err)
		}

		res, err := store.ListReports(ctx, "  team liquid ", repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].Report.MatchesAnalyzed != 3 || res.Items[1].Report.MatchesAnalyzed != 2 {
			t.Fatalf("expected newest first, got %d then %d", res.Items[0].Report.MatchesAnalyzed, res.Items[1].Report.MatchesAnalyzed)
		}
		if res.Items[0].Report.AvgGameTime != "31:20" || res.Items[0].Confidence.Label != model.ConfidenceHigh {
			t.Fatalf("report payload not round-tripped: %+v", res.Items[0])
		}

		res, err = store.ListReports(ctx, "Team Liquid", repository.Page{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("list offset: %v", err)
		}
		if len(res.Items) != 1 || res.Items[0].Report.MatchesAnalyzed != 1 {
			t.Fatalf("unexpected second page: %+v", res.Items)
		}
	})

	t.Run("list_reports_unknown_team_is_empty", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		res, err := store.ListReports(context.Background(), "nobody", repository.Page{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 0 || len(res.Items) != 0 || res.Items == nil {
			t.Fatalf("expected empty non-nil page, got %+v", res)
		}
	})

	t.Run("messages_in_sequence_order", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		session := fmt.Sprintf("sess-%d", time.Now().UnixNano())
		for _, seq := range []int{2, 1, 3} {
			m := model.ChatMessage{
				SessionID: session, Seq: seq, Role: model.ChatRoleCoach,
				Content: fmt.Sprintf("m%d", seq), CreatedAt: time.Now().UTC(),
			}
			if err := store.AppendMessage(ctx, m); err != nil {
				t.Fatalf("append message: %v", err)
			}
		}
		msgs, err := store.ListMessages(ctx, session)
		if err != nil {
			t.Fatalf("list messages: %v", err)
		}
		if len(msgs) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(msgs))
		}
		for i, m := range msgs {
			if m.Seq != i+1 || m.Content != fmt.Sprintf("m%d", i+1) {
				t.Fatalf("unexpected order at %d: %+v", i, m)
			}
		}
	})

	t.Run("duplicate_sequence_rejected", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m := model.ChatMessage{SessionID: "dup", Seq: 1, Role: model.ChatRoleCoach, Content: "x", CreatedAt: time.Now().UTC()}
		if err := store.AppendMessage(ctx, m); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := store.AppendMessage(ctx, m); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown_session_is_empty", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		msgs, err := store.ListMessages(context.Background(), "missing")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(msgs) != 0 {
			t.Fatalf("expected none, got %d", len(msgs))
		}
	})

	t.Run("ping", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
