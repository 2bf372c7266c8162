// Package config loads and validates anchoredit edit plans.
//
// 	            +-------------+
// 	            |    Plan     |
// 	            | (file sets) |
// 	            +------+------+
// 	                   |
// 	      +------------+------------+
// 	      |            |            |
// 	+-----+-----+ +----+----+ +-----+-----+
// 	|   YAML    | |   HCL   | |   JSON    |
// 	|  Parser   | | Parser  | |  Parser   |
// 	+-----------+ +---------+ +-----------+
//
// 🎯 Purpose:
// - Reads a plan file and picks a parser by extension
// - Rejects unknown keys in every format
// - Validates file sets and edits before anything touches disk
// - Converts edits into text.Request values
//
// 🔄 Flow:
// 1. Load reads the file and asks GetParser for a Parser
// 2. The parser decodes into Plan
// 3. Validate checks required fields and fills defaults
// 4. FileSet.Requests hands the edits to pkg/text
//
// ⚡ Defaults:
// - root: the directory holding the plan file (relative roots are joined to it)
// - concurrency: 1
//
// 📝 Replacement keys:
// An edit must spell out its replacement, even when it is empty. A missing key
// is a validation error; an empty string deletes the matched lines.
//
// 🔍 Example (HCL):
//
// 	root = "src"
//
// 	files "app-config" {
// 	  glob   = "**/config.ts"
// 	  ignore = ["**/node_modules/**"]
//
// 	  edit {
// 	    label       = "rename"
// 	    target      = "  name: \"hello\","
// 	    replacement = "  name: \"${env.APP_NAME}\","
// 	    before      = ["export const config = {"]
// 	  }
// 	}
package config
