package journal

import (
	"fmt"

	"github.com/rustyeddy/sizer/config"
)

// Open creates the journal described by cfg. It returns nil, nil when
// journaling is turned off.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "csv":
		j, err := NewCSV(cfg.PlansFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
