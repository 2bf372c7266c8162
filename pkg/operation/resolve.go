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

package operation

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/config"
)

// files we write next to edited files; never edited themselves
var artifactSuffixes = []string{".bak", ".tmp"}

// 📂 Job is one file and every file set that matched it, in plan order
type Job struct {
	Path string
	Sets []config.FileSet
}

// 🔍 Resolve expands each file set's glob under root and groups the
// matches by file. Jobs come back sorted by path.
func Resolve(ctx context.Context, root string, sets []config.FileSet) ([]Job, error) {
	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(root)

	byPath := map[string]*Job{}
	for i, set := range sets {
		if !doublestar.ValidatePattern(set.Glob) {
			return nil, errors.Errorf("file set %d: invalid glob %q", i, set.Glob)
		}

		matches, err := doublestar.Glob(fsys, set.Glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("file set %d: globbing %q: %w", i, set.Glob, err)
		}

		if len(matches) == 0 {
			logger.Warn().Str("glob", set.Glob).Str("root", root).Msg("file set matched no files")
		}

		for _, path := range matches {
			if shouldIgnore(ctx, set.Ignore, path) {
				continue
			}
			job, ok := byPath[path]
			if !ok {
				job = &Job{Path: path}
				byPath[path] = job
			}
			job.Sets = append(job.Sets, set)
		}
	}

	jobs := make([]Job, 0, len(byPath))
	for _, job := range byPath {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })

	logger.Debug().Int("files", len(jobs)).Msg("resolved files")
	return jobs, nil
}

// 🔍 shouldIgnore checks if a file should be ignored
func shouldIgnore(ctx context.Context, patterns []string, path string) bool {
	for _, suffix := range artifactSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}

	return false
}
