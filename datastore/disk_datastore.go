package datastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type (
	DiskDataStore struct {
		rootPath string
	}
)

func NewDiskDataStore(rootPath string) (*DiskDataStore, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("error in os.MkdirAll: %w", err)
	}
	dds := &DiskDataStore{
		rootPath: rootPath,
	}

	return dds, nil
}

func (dds *DiskDataStore) WriteFile(_ context.Context, namespace, fileName string, r io.Reader) (string, error) {
	dir := filepath.Join(dds.rootPath, "ns="+namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error in os.MkdirAll: %w", err)
	}
	path := filepath.Join(dir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error in os.Create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("error in io.Copy: %w", err)
	}
	return path, nil
}

func (dds *DiskDataStore) Shutdown(_ context.Context) error {
	return nil
}
