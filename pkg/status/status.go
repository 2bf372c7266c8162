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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
	afsurl "github.com/viant/afs/url"
	"gitlab.com/tozd/go/errors"
)

const (
	tempSuffix   = ".tmp"
	backupSuffix = ".bak"
)

// 📊 FileStatus represents what a run did to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Content was rewritten
	StatusUnchanged            // Edits produced identical content
	StatusPreviewed            // Content would change, nothing written
	StatusFailed               // An edit or write failed
	StatusRestored             // Content was restored from backup
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusPreviewed:
		return "dry-run"
	case StatusFailed:
		return "failed"
	case StatusRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains what we know about an edited file
type FileInfo struct {
	Path     string     // Path relative to the base directory
	Status   FileStatus // Current status
	Checksum string     // SHA-256 of the content after the run
	Edits    int        // Number of edits applied
	Error    error      // Any error associated with this file
}

// 💾 FileManager handles file storage for edits
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
	DeleteFile(ctx context.Context, path string) error

	BackupFile(ctx context.Context, path string) error
	RestoreFile(ctx context.Context, path string) error
}

// 📈 StatusReporter tracks what happened to each file
type StatusReporter interface {
	TrackFile(ctx context.Context, path string, info FileInfo)
	GetFileInfo(ctx context.Context, path string) (FileInfo, error)
	ListFiles(ctx context.Context) ([]FileInfo, error)
}

// 🔧 Manager implements both FileManager and StatusReporter on top of afs
type Manager struct {
	fs        afs.Service
	baseURL   string          // Base URL for all operations
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo
}

// 🏭 New creates a status manager rooted at a local directory
func New(baseDir string, logger *zerolog.Logger) (*Manager, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Errorf("resolving base directory: %w", err)
	}
	return NewWithService(afs.New(), afsfile.Scheme+"://"+filepath.ToSlash(abs), logger), nil
}

// 🏭 NewWithService creates a status manager for any afs URL (file://, mem://, ...)
func NewWithService(fs afs.Service, baseURL string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		fs:        fs,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 🔗 URL returns the storage URL for a path relative to the base
func (m *Manager) URL(path string) string {
	return afsurl.Join(m.baseURL, filepath.ToSlash(path))
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := m.fs.DownloadWithURL(ctx, m.URL(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	target := m.URL(path)
	temp := target + tempSuffix

	mode := os.FileMode(0644)
	if obj, err := m.fs.Object(ctx, target); err == nil && obj != nil {
		mode = obj.Mode().Perm()
	}

	if err := m.fs.Upload(ctx, temp, mode, bytes.NewReader(content)); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := m.fs.Move(ctx, temp, target); err != nil {
		_ = m.fs.Delete(ctx, temp) // Clean up temp file
		return errors.Errorf("moving temp file: %w", err)
	}

	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	ok, err := m.fs.Exists(ctx, m.URL(path))
	if err != nil {
		return false, errors.Errorf("checking file existence: %w", err)
	}
	return ok, nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := m.fs.Delete(ctx, m.URL(path)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// BackupFile copies path to path.bak. An existing backup is kept, so restore
// returns to the content from before the first backed-up write.
func (m *Manager) BackupFile(ctx context.Context, path string) error {
	source := m.URL(path)

	// Only backup if file exists
	ok, err := m.fs.Exists(ctx, source)
	if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}
	if !ok {
		return nil
	}

	exists, err := m.fs.Exists(ctx, source+backupSuffix)
	if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}
	if exists {
		m.logger.Debug().Str("path", path).Msg("keeping existing backup")
		return nil
	}

	if err := m.fs.Copy(ctx, source, source+backupSuffix); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	m.logger.Debug().Str("path", path).Msg("backed up file")
	return nil
}

func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	target := m.URL(path)
	backup := target + backupSuffix

	ok, err := m.fs.Exists(ctx, backup)
	if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}
	if !ok {
		return errors.Errorf("backup file does not exist: %s", path+backupSuffix)
	}

	if err := m.fs.Copy(ctx, backup, target); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := m.fs.Delete(ctx, backup); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	m.logger.Debug().Str("path", path).Msg("restored file from backup")
	return nil
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info.Path = path
	m.files[path] = info

	msg := m.formatter.FormatFileStatus(path, info.Status, info.Edits)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Debug().
		Str("path", path).
		Stringer("status", info.Status).
		Str("checksum", info.Checksum).
		Msg(msg)
}

func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns tracked files sorted by path
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
