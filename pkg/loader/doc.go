// Package loader reads chat exports from disk and decodes them into the
// open-ended values the analysis package works on.
//
// JSON exports are decoded with json.Number for numbers; YAML exports are
// normalized so every mapping is a map[string]any. Any top-level value is
// accepted, including null, arrays and scalars.
//
//	l := loader.New(loader.Config{MaxSize: 64 << 20})
//	export, err := l.LoadFile("chat.json")
//	if err != nil {
//		return err
//	}
//	status := analysis.GetDialogStatus(export.Document)
//
// Discover walks a directory and returns matching exports in lexical order.
// Errors are *LoadError values carrying the path, the failed step and a
// reason suitable for metric labels.
package loader
