package legacy

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type idMapFile struct {
	IDs map[string]string `toml:"ids"`
}

// LoadIDMap reads a TOML file of the form
//
//	[ids]
//	"123456789" = "987654321098765432"
//
// mapping old platform user ids to new ones.
func LoadIDMap(path string) (map[int64]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read id map: %w", err)
	}

	var file idMapFile
	if err = toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode id map: %w", err)
	}

	ids := make(map[int64]string, len(file.IDs))
	for old, id := range file.IDs {
		oldID, err := strconv.ParseInt(old, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid legacy user id %q: %w", old, err)
		}
		if id == "" {
			return nil, fmt.Errorf("empty target id for legacy user %d", oldID)
		}
		ids[oldID] = id
	}
	return ids, nil
}
