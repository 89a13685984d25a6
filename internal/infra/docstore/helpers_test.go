//go:build unit || e2e

package docstore_test

import (
	"testing"

	"meetroom/internal/infra/docstore"

	"github.com/stretchr/testify/require"
)

type roomDoc struct {
	RoomNo       int  `json:"RoomNo"`
	FloorNo      int  `json:"FloorNo"`
	RoomCapacity int  `json:"RoomCapacity"`
	IsOccupied   bool `json:"isOccupied"`
}

func decodeAll(t *testing.T, snap docstore.Snapshot) []roomDoc {
	t.Helper()
	out := make([]roomDoc, 0, len(snap))
	for _, d := range snap {
		var r roomDoc
		require.NoError(t, d.Decode(&r))
		out = append(out, r)
	}
	return out
}
