// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"gitlab.com/tozd/go/errors"
)

func TestManager_LocalFiles(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		operation   func(t *testing.T, ctx context.Context, mgr *Manager) error
		check       func(t *testing.T, dir string)
		wantErr     bool
		errContains string
	}{
		{
			name: "read_file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				content, err := mgr.ReadFile(ctx, "a.txt")
				assert.Equal(t, "hello", string(content))
				return err
			},
		},
		{
			name: "read_missing_file",
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				_, err := mgr.ReadFile(ctx, "missing.txt")
				return err
			},
			wantErr:     true,
			errContains: "reading file",
		},
		{
			name: "atomic_write_replaces_content",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("old"), 0600))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				return mgr.WriteFileAtomic(ctx, "nested/b.txt", []byte("new"))
			},
			check: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "nested", "b.txt")
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "new", string(content))

				_, err = os.Stat(path + tempSuffix)
				assert.True(t, os.IsNotExist(err), "temp file should be gone")

				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "mode should be preserved")
			},
		},
		{
			name: "backup_and_restore",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("original"), 0644))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				require.NoError(t, mgr.BackupFile(ctx, "c.txt"))
				require.NoError(t, mgr.WriteFileAtomic(ctx, "c.txt", []byte("changed")))
				return mgr.RestoreFile(ctx, "c.txt")
			},
			check: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "c.txt"))
				require.NoError(t, err)
				assert.Equal(t, "original", string(content))

				_, err = os.Stat(filepath.Join(dir, "c.txt"+backupSuffix))
				assert.True(t, os.IsNotExist(err), "backup should be removed after restore")
			},
		},
		{
			name: "backup_keeps_first_backup",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "e.txt"), []byte("original"), 0644))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				require.NoError(t, mgr.BackupFile(ctx, "e.txt"))
				require.NoError(t, mgr.WriteFileAtomic(ctx, "e.txt", []byte("first")))
				require.NoError(t, mgr.BackupFile(ctx, "e.txt"))
				require.NoError(t, mgr.WriteFileAtomic(ctx, "e.txt", []byte("second")))
				return mgr.RestoreFile(ctx, "e.txt")
			},
			check: func(t *testing.T, dir string) {
				content, err := os.ReadFile(filepath.Join(dir, "e.txt"))
				require.NoError(t, err)
				assert.Equal(t, "original", string(content))
			},
		},
		{
			name: "backup_missing_file_is_noop",
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				return mgr.BackupFile(ctx, "nothing.txt")
			},
			check: func(t *testing.T, dir string) {
				_, err := os.Stat(filepath.Join(dir, "nothing.txt"+backupSuffix))
				assert.True(t, os.IsNotExist(err))
			},
		},
		{
			name: "restore_without_backup",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "d.txt"), []byte("x"), 0644))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				return mgr.RestoreFile(ctx, "d.txt")
			},
			wantErr:     true,
			errContains: "backup file does not exist",
		},
		{
			name: "file_exists_and_delete",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "e.txt"), []byte("x"), 0644))
			},
			operation: func(t *testing.T, ctx context.Context, mgr *Manager) error {
				ok, err := mgr.FileExists(ctx, "e.txt")
				require.NoError(t, err)
				assert.True(t, ok)

				require.NoError(t, mgr.DeleteFile(ctx, "e.txt"))

				ok, err = mgr.FileExists(ctx, "e.txt")
				assert.False(t, ok)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			logger := zerolog.New(zerolog.NewTestWriter(t))
			mgr, err := New(dir, &logger)
			require.NoError(t, err, "New should succeed")

			err = tt.operation(t, context.Background(), mgr)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, dir)
			}
		})
	}
}

func TestManager_Memory(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	base := "mem://localhost/anchoredit-status-test"
	mgr := NewWithService(fs, base, nil)

	require.NoError(t, fs.Upload(ctx, base+"/src/main.go", 0644, bytes.NewReader([]byte("package main\n"))))

	content, err := mgr.ReadFile(ctx, "src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(content))

	require.NoError(t, mgr.BackupFile(ctx, "src/main.go"))
	require.NoError(t, mgr.WriteFileAtomic(ctx, "src/main.go", []byte("package app\n")))

	content, err = mgr.ReadFile(ctx, "src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package app\n", string(content))

	ok, err := mgr.FileExists(ctx, "src/main.go"+backupSuffix)
	require.NoError(t, err)
	assert.True(t, ok, "backup should exist")

	assert.Equal(t, base+"/src/main.go", mgr.URL("src/main.go"))
}

func TestManager_Tracking(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	mgr := NewWithService(afs.New(), "mem://localhost/tracking", &logger)

	mgr.TrackFile(ctx, "b.go", FileInfo{Status: StatusModified, Edits: 2, Checksum: Checksum([]byte("b"))})
	mgr.TrackFile(ctx, "a.go", FileInfo{Status: StatusFailed, Error: errors.New("target not found")})

	info, err := mgr.GetFileInfo(ctx, "b.go")
	require.NoError(t, err)
	assert.Equal(t, "b.go", info.Path, "path is filled in")
	assert.Equal(t, StatusModified, info.Status)
	assert.Equal(t, 2, info.Edits)

	_, err = mgr.GetFileInfo(ctx, "c.go")
	assert.Error(t, err)

	files, err := mgr.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Path, "files are sorted by path")
	assert.Equal(t, "b.go", files[1].Path)

	assert.Contains(t, buf.String(), "📝 Modified b.go (2 edits)")
	assert.Contains(t, buf.String(), "❌ Error: target not found")
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Checksum([]byte("hello")))
	assert.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "dry-run", StatusPreviewed.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "restored", StatusRestored.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
