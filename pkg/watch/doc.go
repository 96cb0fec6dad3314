// Package watch re-runs analysis when a chat export changes on disk.
//
// A FileWatcher follows a single export or a directory tree with
// github.com/fsnotify/fsnotify. Create and write events are filtered by
// extension and hidden-file rules, then debounced per path so an editor or
// assistant rewriting a file in several steps produces a single callback:
//
//	w, err := watch.NewFileWatcher(&watch.Config{
//		Path:     "exports/",
//		Debounce: 250 * time.Millisecond,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	err = w.Watch(ctx, func(path string) error {
//		_, err := processor.ProcessFile(ctx, path)
//		return err
//	})
//
// A single file is watched through its parent directory, because many
// writers replace files by renaming a temporary file over them.
package watch
