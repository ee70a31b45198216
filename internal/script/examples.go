package script

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

// builtinExamples embeds the example scripts shipped with caret.
//
//go:embed examples/*.yaml
var builtinExamples embed.FS

// ExamplesFS returns the example scripts with the "examples/" prefix removed.
func ExamplesFS() fs.FS {
	sub, err := fs.Sub(builtinExamples, "examples")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// ExampleNames returns the names of the embedded examples without extension.
func ExampleNames() []string {
	entries, err := fs.ReadDir(ExamplesFS(), ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

// LoadExample parses the embedded example called name.
func LoadExample(name string) (*Script, error) {
	return LoadFS(ExamplesFS(), name+".yaml")
}
