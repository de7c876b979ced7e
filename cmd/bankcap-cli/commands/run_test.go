package commands

import (
	"os"
	"path/filepath"
	"testing"

	"bankcap-backend/services/bankcap"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		output_db_path: "other.db",
		currencies: [{ code: "EUR", rate: 0.93 }],
	}`), 0o644))

	cfg := loadConfig(path)

	// explicit fields survive
	require.Equal(t, "other.db", cfg.OutputDBPath)
	require.Equal(t, []bankcap.Currency{{Code: "EUR", Rate: 0.93}}, cfg.Currencies)

	// omitted fields fall back to defaults
	require.Equal(t, 10, cfg.RowLimit)
	require.Equal(t, 2, cfg.ValueColumnIndex)
	require.Equal(t, "By_market_capitalization", cfg.SectionAnchorID)
}

// the merge cannot tell an explicit zero apart from an omitted field,
// documented on Config
func TestLoadConfigZeroFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{ row_limit: 0 }`), 0o644))

	cfg := loadConfig(path)
	require.Equal(t, 10, cfg.RowLimit)
}
