/*
Package operation implements applying edit plans to files.

	+-------------+
	|    Plan     |
	| (file sets) |
	+------+------+
	       |
	+------+------+
	|   Resolve   |
	|  (globs)    |
	+------+------+
	       |
	+------+------+      +-------------+
	|   Runner    +----->+   status    |
	| (errgroup)  |      |  (storage)  |
	+-------------+      +-------------+

🎯 Purpose:
- Expands each file set's glob under the plan root
- Applies anchored edits to every matched file
- Hands storage to the status package and reporting to log

🔄 Flow:
1. Resolve groups glob matches by file
2. The runner processes files in order, or on a bounded pool
3. Each file is read, edited by every matching file set in plan order,
   then backed up and written atomically unless it is a dry run
4. The first failing file cancels the files not yet started

⚡ Operations:
- ApplyOperation: edit files (or preview with DryRun and Diff)
- LocateOperation: report where each edit lands, writing nothing
- RestoreOperation: put back .bak copies from a backed-up apply

🔍 Example:

	op, err := operation.NewApplyOperation(ctx, operation.Options{
		Plan:   plan,
		DryRun: true,
		Diff:   true,
		Out:    os.Stdout,
	})
	if err != nil {
		return err
	}
	return op.Execute(ctx)
*/
package operation
