// Package testutil provides shared test helpers for creating config files and spreadsheet fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SetupTestConfig creates a config file pointing at a SQLite database inside tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
study_day:
  utc_offset: "+09:00"
  cutoff_hour: 3
  due_hour: 12
`,
		filepath.Join(tmpDir, "studyloop.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithReminder creates a config file with the reminder enabled on cron.
func SetupTestConfigWithReminder(t *testing.T, tmpDir, cron string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("reminder:\n  enabled: true\n  cron: %q\n", cron))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CreateStudyLogWorkbook writes rows to Sheet1 of a new workbook, starting at A1.
// Returns the path to the workbook.
func CreateStudyLogWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}

	path := filepath.Join(dir, "study_logs.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
