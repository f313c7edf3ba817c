package score

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// bestFile is the on-disk shape of a persisted best score.
type bestFile struct {
	BestScore int `json:"best_score"`
}

// FileStore keeps the best score in a small JSON file.
// A missing or unreadable file loads as 0; Save rewrites the file wholesale.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultBestPath returns the per-game best score file location,
// ~/.arcade/best/<gameID>.json, falling back to the working directory
// when the home directory cannot be resolved.
func DefaultBestPath(gameID string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Sprintf(".arcade_%s_best.json", gameID)
	}
	return filepath.Join(home, ".arcade", "best", gameID+".json")
}

// Load reads the stored best score. Missing or malformed files are not
// errors from the caller's perspective; they load as 0.
func (s *FileStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read best score file: %w", err)
	}

	var f bestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, nil
	}
	return f.BestScore, nil
}

// Save writes the best score, creating parent directories as needed.
func (s *FileStore) Save(best int) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create best score dir: %w", err)
		}
	}

	data, err := json.Marshal(bestFile{BestScore: best})
	if err != nil {
		return fmt.Errorf("encode best score: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write best score file: %w", err)
	}
	return nil
}
