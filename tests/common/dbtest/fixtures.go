//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"meetroom/internal/domain/room"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertDocument writes body straight into the document table, bypassing
// the repositories. Useful for seeding rows the API cannot produce.
func InsertDocument(t *testing.T, db DBLike, collection, key string, body any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(),
		"INSERT INTO documents (collection, key, body) VALUES ($1, $2, $3::jsonb)",
		collection, key, string(raw))
	require.NoError(t, err)
}

func CreateTestRoom(t *testing.T, db DBLike, namespace string, roomNo, floorNo, capacity int, occupied bool) {
	t.Helper()

	r := room.Reconstruct(roomNo, floorNo, capacity, occupied)
	InsertDocument(t, db, docstore.Join(namespace, "Rooms"), uuid.NewString(), converter.RoomToDocument(r))
}

func CountDocuments(t *testing.T, db DBLike, collection string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM documents WHERE collection = $1", collection).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + ";")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
