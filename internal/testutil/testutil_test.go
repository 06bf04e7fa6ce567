package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite3")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "studyloop.db"))
}

func TestSetupTestConfigWithReminder(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithReminder(t, tmpDir, "30 7 * * *")

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite3")
	assert.Contains(t, string(content), "enabled: true")
	assert.Contains(t, string(content), `cron: "30 7 * * *"`)
}

func TestCreateStudyLogWorkbook(t *testing.T) {
	path := CreateStudyLogWorkbook(t, t.TempDir(), [][]any{
		{"date", "subject"},
		{"2024-01-02", "Math"},
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"date", "subject"}, {"2024-01-02", "Math"}}, rows)
}
