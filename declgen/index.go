package declgen

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/errors"
)

// IndexFileName is the reference barrel written next to the class files.
const IndexFileName = "index.d.ts"

// RenderIndex returns an index file referencing every generated file, sorted by name.
func RenderIndex(files []File, newLine dts.NewLineKind) string {
	nl := "\n"
	if newLine == dts.CarriageReturnLineFeed {
		nl = "\r\n"
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("// Auto-generated by dtsgen - references every generated declaration file" + nl)
	sb.WriteString("// This file is regenerated on every run" + nl + nl)
	for _, name := range names {
		sb.WriteString(`/// <reference path="./` + name + `" />` + nl)
	}
	return sb.String()
}

// GenerateIndexFile writes index.d.ts into outdir and returns its path.
func GenerateIndexFile(outdir string, files []File, newLine dts.NewLineKind) (string, error) {
	path := filepath.Join(outdir, IndexFileName)
	if err := os.WriteFile(path, []byte(RenderIndex(files, newLine)), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", IndexFileName)
	}
	return path, nil
}
