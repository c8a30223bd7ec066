package snapshots

import (
	"fmt"
	"path/filepath"
)

// BoardSnapshotPath builds the path to a board snapshot for a given date.
func BoardSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, string(kindBoards), fmt.Sprintf("%s.json", date))
}
