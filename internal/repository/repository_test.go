package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

func TestMapPgError(t *testing.T) {
	plain := errors.New("plain")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, repository.ErrAlreadyExists},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), repository.ErrAlreadyExists},
		{"fk", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, repository.ErrConflict},
		{"serialization", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, repository.ErrConflict},
		{"too many connections", &pgconn.PgError{Code: pgerrcode.TooManyConnections}, repository.ErrUnavailable},
		{"other", plain, plain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := repository.MapPgError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, repository.Page{Limit: repository.DefaultPageLimit}, repository.Page{}.Normalize())
	assert.Equal(t, repository.Page{Limit: 3}, repository.Page{Limit: 3, Offset: -4}.Normalize())
	assert.Equal(t, repository.Page{Limit: 7, Offset: 2}, repository.Page{Limit: 7, Offset: 2}.Normalize())
}

func TestTeamKey(t *testing.T) {
	assert.Equal(t, "team liquid", repository.TeamKey("  Team Liquid "))
	assert.Equal(t, repository.TeamKey("CLOUD9"), repository.TeamKey("cloud9"))
}
