package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated, empty test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, applies migrations and
// truncates every table. The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	_, err = postgresql.Migrate(ctx, db)
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables removes every row from the application tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"punch_events",
		"justifications",
		"daily_notes",
		"projects",
		"employees",
		"companies",
	}

	for _, table := range tables {
		_, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// Close closes the pool
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) createCompany(t *testing.T, ctx context.Context) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `INSERT INTO companies (id, name) VALUES ($1, 'Test Company')`, id)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createEmployee(t *testing.T, ctx context.Context, companyID, name string, active bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, is_active)
		VALUES ($1, $2, $3, $4)
	`, id, companyID, name, active)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createProject(t *testing.T, ctx context.Context, companyID, name string, mode *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO projects (id, company_id, name, tracking_mode)
		VALUES ($1, $2, $3, $4)
	`, id, companyID, name, mode)
	require.NoError(t, err)
	return id
}
