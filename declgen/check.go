package declgen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/yuidoc"
)

// CheckResult compares rendered declarations with the files in an output directory.
type CheckResult struct {
	UpToDate bool
	// Missing files would be generated but do not exist.
	Missing []string
	// Stale files exist with different content.
	Stale []string
	// Extra .d.ts files exist but would not be generated.
	Extra []string
}

// Check renders doc in memory and compares it against outdir without writing.
func (g *Generator) Check(doc *yuidoc.Document, outdir string) (*CheckResult, error) {
	files, err := g.Render(doc)
	if err != nil {
		return nil, err
	}

	expected := make(map[string]string, len(files)+1)
	for _, f := range files {
		expected[f.Name] = f.Text
	}
	if g.opts.Index {
		expected[IndexFileName] = RenderIndex(files, g.opts.Printer.NewLine)
	}

	result := &CheckResult{}
	for name, text := range expected {
		existing, err := os.ReadFile(filepath.Join(outdir, name))
		if os.IsNotExist(err) {
			result.Missing = append(result.Missing, name)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}
		if !bytes.Equal(existing, []byte(text)) {
			result.Stale = append(result.Stale, name)
		}
	}

	entries, err := os.ReadDir(outdir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to list %s", outdir)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), declarationExt) {
			continue
		}
		if _, ok := expected[e.Name()]; !ok {
			result.Extra = append(result.Extra, e.Name())
		}
	}

	sort.Strings(result.Missing)
	sort.Strings(result.Stale)
	sort.Strings(result.Extra)
	result.UpToDate = len(result.Missing) == 0 && len(result.Stale) == 0 && len(result.Extra) == 0
	return result, nil
}
