/*
Package text applies context-anchored replacements to a single text.

	+-------------+        +-------------+
	|   Requests  | -----> |  PlanEdits  |  locate each request against
	+-------------+        +------+------+  the original lines
	                              |
	                       +------+------+
	                       |  Plan.Apply |  splice from the bottom up
	                       +------+------+
	                              |
	                       +------+------+
	                       |  New text   |
	                       +-------------+

🎯 Matching:
- A request names a target snippet plus optional lines expected directly
  above (Before) and below (After) it.
- Lines are compared after trimming leading and trailing whitespace. Case and
  inner whitespace are significant.
- Every start position is checked. None qualifying is ErrNotFound, more than
  one is ErrAmbiguous. Nothing is applied unless every request resolves.

🔄 Applying:
- All locations refer to the original lines, so edits are spliced from the
  highest start line to the lowest.
- Overlapping edits are rejected with ErrOverlap. Touching edits are fine.
- The output keeps the input's line breaks ("\n" or "\r\n").

🔍 Example:

	out, err := text.Apply(src, []text.Request{{
		Target:      `  name: "hello",`,
		Replacement: `  name: "confetti_test",`,
		Before:      []string{"export const config = {"},
	}})
	if errors.Is(err, text.ErrAmbiguous) {
		// add more Before/After lines and retry
	}
*/
package text
