package declgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/yuidoc"
)

func widgetDoc() *yuidoc.Document {
	return &yuidoc.Document{
		Project: yuidoc.Project{Name: "Widgets", Version: "1.2.0"},
		Classes: map[string]yuidoc.ClassDoc{
			"Ns.Widget": {Name: "Ns.Widget"},
		},
		ClassItems: []yuidoc.ClassItemDoc{
			{
				Class:    "Ns.Widget",
				Name:     "spin",
				ItemType: yuidoc.ItemMethod,
				Params:   []yuidoc.ParamDoc{{Name: "speed", Type: "Number"}},
				Return:   &yuidoc.ReturnDoc{Type: "Boolean"},
			},
		},
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerateEndToEnd(t *testing.T) {
	outdir := filepath.Join(t.TempDir(), "types", "ember")

	report, err := NewGenerator(DefaultOptions()).Generate(widgetDoc(), outdir)
	require.NoError(t, err)

	assert.Equal(t, outdir, report.OutputDir)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "Ns.Widget", report.Files[0].Class)
	assert.Equal(t, 1, report.Files[0].Members)
	assert.Empty(t, report.IndexFile)

	assert.Equal(t, []string{"Widget.d.ts"}, listDir(t, outdir))

	data, err := os.ReadFile(filepath.Join(outdir, "Widget.d.ts"))
	require.NoError(t, err)
	want := `declare namespace Ns {
    class Widget {
        spin(speed: number): boolean;
    }
}
`
	assert.Equal(t, want, string(data))
}

func TestGenerateTwiceIntoSameDirectory(t *testing.T) {
	outdir := t.TempDir()
	gen := NewGenerator(DefaultOptions())

	_, err := gen.Generate(widgetDoc(), outdir)
	require.NoError(t, err)
	_, err = gen.Generate(widgetDoc(), outdir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Widget.d.ts"}, listDir(t, outdir))
}

func TestGenerateEmptyDocument(t *testing.T) {
	outdir := filepath.Join(t.TempDir(), "out")
	report, err := NewGenerator(DefaultOptions()).Generate(&yuidoc.Document{Classes: map[string]yuidoc.ClassDoc{}}, outdir)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.DirExists(t, outdir)
}

func TestGenerateFailsOnUnwritableOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewGenerator(DefaultOptions()).Generate(widgetDoc(), filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestRenderFileNameCollision(t *testing.T) {
	doc := &yuidoc.Document{
		Classes: map[string]yuidoc.ClassDoc{
			"A.Widget": {Name: "A.Widget"},
			"B.Widget": {Name: "B.Widget"},
			"Gadget":   {Name: "Gadget"},
		},
	}

	files, err := NewGenerator(DefaultOptions()).Render(doc)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "Widget.d.ts", files[0].Name)
	assert.Equal(t, "B.Widget", files[0].Class, "the later class in name order wins")
	assert.Contains(t, files[0].Text, "declare namespace B {")
	assert.Equal(t, "Gadget.d.ts", files[1].Name)
}

func TestRenderQualifiedFileNames(t *testing.T) {
	doc := &yuidoc.Document{
		Classes: map[string]yuidoc.ClassDoc{
			"A.Widget": {Name: "A.Widget"},
			"B.Widget": {Name: "B.Widget"},
		},
	}

	opts := DefaultOptions()
	opts.FileNaming = NamingQualified
	files, err := NewGenerator(opts).Render(doc)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A.Widget.d.ts", files[0].Name)
	assert.Equal(t, "B.Widget.d.ts", files[1].Name)
}

func TestGenerateSkipsUnsafeFileNames(t *testing.T) {
	for _, naming := range []FileNaming{NamingBare, NamingQualified} {
		t.Run(string(naming), func(t *testing.T) {
			root := t.TempDir()
			outdir := filepath.Join(root, "a", "b")

			doc := widgetDoc()
			doc.Classes["../../escaped"] = yuidoc.ClassDoc{Name: "../../escaped"}
			doc.Classes[`..\..\escaped`] = yuidoc.ClassDoc{Name: `..\..\escaped`}
			doc.Classes["Ember."] = yuidoc.ClassDoc{Name: "Ember."}

			opts := DefaultOptions()
			opts.FileNaming = naming
			report, err := NewGenerator(opts).Generate(doc, outdir)
			require.NoError(t, err)

			require.Len(t, report.Files, 1)
			assert.Equal(t, "Ns.Widget", report.Files[0].Class)
			assert.Len(t, listDir(t, outdir), 1)
			assert.Equal(t, []string{"a"}, listDir(t, root))
			assert.Equal(t, []string{"b"}, listDir(t, filepath.Join(root, "a")))
		})
	}
}

func TestIsLocalFileName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Widget.d.ts", true},
		{"Ember.Array.d.ts", true},
		{".d.ts", false},
		{"..d.ts", false},
		{"../escaped.d.ts", false},
		{"/escaped.d.ts", false},
		{`..\escaped.d.ts`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLocalFileName(tt.name))
		})
	}
}

func TestRenderVersionConstraint(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    bool
	}{
		{"unconstrained", "", false},
		{"satisfied", "^1.0", false},
		{"unsatisfied", ">= 2.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.VersionConstraint = tt.constraint
			outdir := filepath.Join(t.TempDir(), "out")

			_, err := NewGenerator(opts).Generate(widgetDoc(), outdir)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrVersionMismatch))
			assert.NoDirExists(t, outdir, "nothing is written when the version gate fails")
		})
	}
}

func TestGenerateWithIndexAndCRLF(t *testing.T) {
	outdir := t.TempDir()
	opts := DefaultOptions()
	opts.Index = true
	opts.Printer.NewLine = dts.CarriageReturnLineFeed

	report, err := NewGenerator(opts).Generate(widgetDoc(), outdir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outdir, IndexFileName), report.IndexFile)
	assert.ElementsMatch(t, []string{"Widget.d.ts", "index.d.ts"}, listDir(t, outdir))

	data, err := os.ReadFile(filepath.Join(outdir, "Widget.d.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "declare namespace Ns {\r\n")
}

func TestNewGeneratorNormalizesOptions(t *testing.T) {
	g := NewGenerator(Options{Fallback: "bogus", FileNaming: "weird"})
	opts := g.Options()
	assert.Equal(t, DefaultNamespace, opts.DefaultNamespace)
	assert.Equal(t, FallbackPermissive, opts.Fallback)
	assert.Equal(t, NamingBare, opts.FileNaming)
}

func TestGeneratorConservativeFallback(t *testing.T) {
	doc := widgetDoc()
	doc.ClassItems = append(doc.ClassItems, yuidoc.ClassItemDoc{
		Class: "Ns.Widget", Name: "owner", ItemType: yuidoc.ItemProperty, Type: "Ember.Object", Line: 2,
	})

	opts := DefaultOptions()
	opts.Fallback = FallbackConservative
	files, err := NewGenerator(opts).Render(doc)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Text, "owner: any;")
}

func TestGeneratorBuildMember(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	m, ok := g.BuildMember(yuidoc.ClassItemDoc{Name: "size", ItemType: yuidoc.ItemProperty, Type: "Number"})
	require.True(t, ok)
	assert.Equal(t, "size", dts.MemberName(m))

	_, ok = g.BuildMember(yuidoc.ClassItemDoc{Name: "size", ItemType: "config"})
	assert.False(t, ok)
}
