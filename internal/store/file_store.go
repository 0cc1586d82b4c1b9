package store

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"cantina-backend/internal/models"
)

// FileStore keeps the snapshot and its backup as JSON documents in one
// directory. Writes go through a temp file + rename so a crash mid-write
// never leaves a half snapshot behind.
type FileStore struct {
	dir  string
	seed SeedFunc
}

func NewFileStore(dir string, seed SeedFunc) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, seed: seed}, nil
}

func (f *FileStore) snapshotPath() string { return filepath.Join(f.dir, SnapshotKey+".json") }
func (f *FileStore) backupPath() string   { return filepath.Join(f.dir, BackupKey+".json") }

func (f *FileStore) Load(ctx context.Context) (*models.AppState, error) {
	raw, err := os.ReadFile(f.snapshotPath())
	if err == nil {
		state, derr := Decode(raw)
		if derr == nil {
			return state, nil
		}
		log.Println("snapshot unreadable, reseeding defaults:", derr)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	state := f.seed()
	if err := f.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (f *FileStore) Save(ctx context.Context, state *models.AppState) error {
	return f.write(f.snapshotPath(), state)
}

func (f *FileStore) SaveBackup(ctx context.Context, state *models.AppState) error {
	return f.write(f.backupPath(), state)
}

func (f *FileStore) LoadBackup(ctx context.Context) (*models.AppState, error) {
	raw, err := os.ReadFile(f.backupPath())
	if os.IsNotExist(err) {
		return nil, ErrNoBackup
	}
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func (f *FileStore) write(path string, state *models.AppState) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
