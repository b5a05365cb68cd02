package syncer

import (
	"os"
	"path/filepath"
	"strings"
)

// FileIDStore remembers the project id in a small file, the CLI's stand-in
// for the browser's localStorage entry.
type FileIDStore struct {
	Path string
}

// DefaultIDStorePath places the id file under the user config dir.
func DefaultIDStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wedding_project_id"
	}
	return filepath.Join(dir, "seatctl", "project_id")
}

func (f *FileIDStore) Load() string {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (f *FileIDStore) Store(id string) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(f.Path, []byte(id+"\n"), 0o644)
}
