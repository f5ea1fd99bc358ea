package scenario

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the scenarios shipped with the binary, ordered by file name.
func Builtin() ([]*Document, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var docs []*Document
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, err
		}
		for _, doc := range parsed {
			if doc.Name == "" {
				doc.Name = path.Base(name)
			}
		}
		docs = append(docs, parsed...)
	}
	return docs, nil
}
