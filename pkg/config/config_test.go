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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/anchoredit/pkg/text"
)

func ptr(s string) *string { return &s }

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, plan *Plan)
	}{
		{
			name:     "valid_yaml",
			filename: "plan.yaml",
			config: `
root: src
concurrency: 4
backup: true
files:
  - name: app-config
    glob: "**/config.ts"
    ignore: ["**/node_modules/**"]
    edits:
      - label: rename
        target: '  name: "hello",'
        replacement: '  name: "confetti_test",'
        before: ["export const config = {"]
        after: ['  permissions: ["net"],']
      - target: "// remove me"
        replacement: ""
`,
			check: func(t *testing.T, dir string, plan *Plan) {
				assert.Equal(t, filepath.Join(dir, "src"), plan.Root, "root should be joined to the plan dir")
				assert.Equal(t, 4, plan.Concurrency)
				assert.True(t, plan.Backup)
				require.Len(t, plan.Files, 1)

				fs := plan.Files[0]
				assert.Equal(t, "app-config", fs.Name)
				assert.Equal(t, "**/config.ts", fs.Glob)
				assert.Equal(t, []string{"**/node_modules/**"}, fs.Ignore)
				require.Len(t, fs.Edits, 2)
				assert.Equal(t, "rename", fs.Edits[0].Label)
				assert.Equal(t, `  name: "confetti_test",`, *fs.Edits[0].Replacement)
				assert.Equal(t, []string{"export const config = {"}, fs.Edits[0].Before)
				require.NotNil(t, fs.Edits[1].Replacement, "an empty replacement is still present")
				assert.Equal(t, "", *fs.Edits[1].Replacement)
			},
		},
		{
			name:     "valid_hcl",
			filename: "plan.hcl",
			config: `
backup = true

files "go" {
  glob   = "**/*.go"
  ignore = ["vendor/**"]

  edit {
    label       = "bump"
    target      = "const Version = \"1.0.0\""
    replacement = "const Version = \"1.1.0\""
  }

  edit {
    target      = <<-EOT
      func old() {
      }
    EOT
    replacement = ""
    after       = ["func keep() {"]
  }
}
`,
			check: func(t *testing.T, dir string, plan *Plan) {
				assert.Equal(t, dir, plan.Root, "root should default to the plan dir")
				assert.Equal(t, 1, plan.Concurrency, "concurrency should default to 1")
				require.Len(t, plan.Files, 1)
				assert.Equal(t, "go", plan.Files[0].Name)
				require.Len(t, plan.Files[0].Edits, 2)
				assert.Equal(t, "func old() {\n}\n", plan.Files[0].Edits[1].Target)
				assert.Equal(t, []string{"func keep() {"}, plan.Files[0].Edits[1].After)
			},
		},
		{
			name:     "valid_json",
			filename: "plan.json",
			config: `{
  "root": "/abs/root",
  "files": [
    {
      "glob": "*.txt",
      "edits": [{"target": "a", "replacement": "b"}]
    }
  ]
}`,
			check: func(t *testing.T, dir string, plan *Plan) {
				assert.Equal(t, "/abs/root", plan.Root, "absolute roots are kept")
				assert.Len(t, plan.Files[0].Edits, 1)
			},
		},
		{
			name:     "missing_replacement_key",
			filename: "plan.yaml",
			config: `
files:
  - name: docs
    glob: "*.md"
    edits:
      - target: "a"
`,
			wantErr:     true,
			errContains: "files[0] (docs): edits[0]: replacement is required",
		},
		{
			name:     "missing_glob",
			filename: "plan.yaml",
			config: `
files:
  - edits:
      - target: "a"
        replacement: "b"
`,
			wantErr:     true,
			errContains: "files[0]: glob is required",
		},
		{
			name:        "no_edits",
			filename:    "plan.json",
			config:      `{"files": [{"glob": "*"}]}`,
			wantErr:     true,
			errContains: "at least one edit is required",
		},
		{
			name:        "no_files",
			filename:    "plan.yaml",
			config:      "root: .\n",
			wantErr:     true,
			errContains: "at least one file set is required",
		},
		{
			name:     "unknown_yaml_field",
			filename: "plan.yaml",
			config: `
files:
  - glob: "*"
    edits:
      - target: a
        replacment: b
`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "plan.json",
			config:      `{"fiels": []}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			filename:    "plan.hcl",
			config:      `files "x" {`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "plan.toml",
			config:      `root = "."`,
			wantErr:     true,
			errContains: "no parser found",
		},
		{
			name:     "negative_concurrency",
			filename: "plan.yaml",
			config: `
concurrency: -1
files:
  - glob: "*"
    edits:
      - target: a
        replacement: b
`,
			wantErr:     true,
			errContains: "concurrency must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			plan, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, plan.Location())
			if tt.check != nil {
				tt.check(t, dir, plan)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ErrInvalidPlan(t *testing.T) {
	plan := &Plan{Files: []FileSet{{Glob: "*", Edits: []Edit{{Target: "a"}}}}}
	err := plan.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestValidate_Defaults(t *testing.T) {
	plan := &Plan{Files: []FileSet{{Glob: "*", Edits: []Edit{{Target: "a", Replacement: ptr("b")}}}}}
	require.NoError(t, plan.Validate())
	assert.Equal(t, ".", plan.Root)
	assert.Equal(t, 1, plan.Concurrency)
	assert.Equal(t, ".: 1 file sets, 1 edits", plan.String())
}

func TestHCLParser_Env(t *testing.T) {
	p := &HCLParser{Environ: func() []string {
		return []string{"APP_NAME=confetti", "=ignored", "1BAD=x"}
	}}

	plan, err := p.Parse(context.Background(), []byte(`
files "app" {
  glob = "*.ts"
  edit {
    target      = "name: \"hello\""
    replacement = "name: \"${env.APP_NAME}\""
  }
}
`))
	require.NoError(t, err)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, `name: "confetti"`, *plan.Files[0].Edits[0].Replacement)
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"plan.yaml", &YAMLParser{}},
		{"plan.YML", &YAMLParser{}},
		{"plan.hcl", &HCLParser{}},
		{"dir/plan.json", &JSONParser{}},
		{"plan.toml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestFileSet_Requests(t *testing.T) {
	fs := FileSet{
		Glob: "*",
		Edits: []Edit{
			{Label: "one", Target: "a", Replacement: ptr("b"), Before: []string{"x"}, After: []string{"y"}},
			{Target: "c", Replacement: ptr("")},
			{Target: "d"},
		},
	}

	assert.Equal(t, []text.Request{
		{Label: "one", Target: "a", Replacement: "b", Before: []string{"x"}, After: []string{"y"}},
		{Target: "c", Replacement: ""},
		{Target: "d", Replacement: ""},
	}, fs.Requests())
}
