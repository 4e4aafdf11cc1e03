package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/repository/contract"
	"github.com/maxviazov/tactical-scout-service/internal/repository/memory"
)

func TestHistoryStoreContract(t *testing.T) {
	contract.RunHistoryStoreContract(t, func(t *testing.T) (repository.HistoryStore, func()) {
		s := memory.NewHistoryStore()
		return s, func() { _ = s.Close() }
	})
}

func TestHistoryStore_DropsOldestReportsPastCap(t *testing.T) {
	ctx := context.Background()
	s := memory.NewHistoryStore(memory.WithReportsPerTeam(3))
	for i := 1; i <= 5; i++ {
		_, err := s.AppendReport(ctx, model.ReportSnapshot{TeamName: "T1", Report: model.ScoutingReport{MatchesAnalyzed: i}})
		require.NoError(t, err)
	}

	res, err := s.ListReports(ctx, "t1", repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 5, res.Items[0].Report.MatchesAnalyzed)
	assert.Equal(t, 3, res.Items[2].Report.MatchesAnalyzed)
	assert.Equal(t, int64(5), res.Items[0].ID)
}

func TestHistoryStore_EvictsLeastRecentTeams(t *testing.T) {
	ctx := context.Background()
	s := memory.NewHistoryStore(memory.WithTeams(2))
	for _, team := range []string{"A", "B", "C"} {
		_, err := s.AppendReport(ctx, model.ReportSnapshot{TeamName: team})
		require.NoError(t, err)
	}

	res, err := s.ListReports(ctx, "A", repository.Page{})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	res, err = s.ListReports(ctx, "C", repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestHistoryStore_EvictsLeastRecentTranscripts(t *testing.T) {
	ctx := context.Background()
	s := memory.NewHistoryStore(memory.WithSessions(2))
	for i := range 3 {
		err := s.AppendMessage(ctx, model.ChatMessage{SessionID: fmt.Sprintf("s%d", i), Seq: 1, Role: model.ChatRoleCoach})
		require.NoError(t, err)
	}

	gone, err := s.ListMessages(ctx, "s0")
	require.NoError(t, err)
	assert.Empty(t, gone)
	kept, err := s.ListMessages(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestHistoryStore_StampsWithClock(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := memory.NewHistoryStore(memory.WithClock(func() time.Time { return at }))

	snap, err := s.AppendReport(context.Background(), model.ReportSnapshot{TeamName: "G2"})
	require.NoError(t, err)
	assert.Equal(t, at, snap.CreatedAt)
}
