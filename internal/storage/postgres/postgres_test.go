package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	got := dsn(config.Postgres{
		Host:     "db",
		Port:     5433,
		User:     "staff",
		Password: "secret",
		DBName:   "portal",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5433 user=staff password=secret database=portal sslmode=disable", got)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_documents.sql", entries[0].Name())
}

// Runs against a live database when POSTGRES_TEST_HOST is set.
func TestRepo_SaveLoad(t *testing.T) {
	host := os.Getenv("POSTGRES_TEST_HOST")
	if host == "" {
		t.Skip("POSTGRES_TEST_HOST not set")
	}

	port, _ := strconv.Atoi(os.Getenv("POSTGRES_TEST_PORT"))
	if port == 0 {
		port = 5432
	}

	ctx := context.Background()
	repo, err := New(ctx, config.Postgres{
		Host:     host,
		Port:     port,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
	}, "test_"+t.Name())
	require.NoError(t, err)
	defer repo.Close()

	snap := storage.Empty()
	snap.Users = append(snap.Users, models.User{Email: "a@x.com", Password: "pw", Role: models.RoleEmployee})
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}
