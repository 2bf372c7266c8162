/*
Package status manages file storage and status tracking for anchoredit.

	            +-------------+
	            |   Manager   |
	            |    (afs)    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +-----+-----+
	|   Files   |           |   Diffs   |
	| (Storage) |           |  (UI/UX)  |
	+-----------+           +-----------+

🎯 Purpose:
- Reads and writes files through afs URLs (file:// on disk, mem:// in tests)
- Writes atomically: upload to path.tmp, then move over path
- Keeps path.bak backups when a plan asks for them
- Tracks what each run did to each file, with SHA-256 checksums
- Renders unified diffs for dry runs

🔄 Flow:
1. Receives edited content from the operation package
2. Backs up and writes the file
3. Tracks the outcome (modified, unchanged, dry-run, failed)
4. Formats per-file and summary messages

🤝 Interfaces:
- FileManager: storage operations
- StatusReporter: per-file outcome tracking
- FileFormatter: message formatting

🔍 Example:

	mgr, err := status.New(root, zerolog.Ctx(ctx))
	if err != nil {
		return err
	}

	before, err := mgr.ReadFile(ctx, "src/config.ts")
	// ... edit ...
	if err := mgr.BackupFile(ctx, "src/config.ts"); err != nil {
		return err
	}
	if err := mgr.WriteFileAtomic(ctx, "src/config.ts", after); err != nil {
		return err
	}

	diff, _ := status.FormatDiff("src/config.ts", before, after, true)
*/
package status
