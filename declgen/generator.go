// Package declgen maps a YUIDoc document onto TypeScript declaration files.
//
// Each documented class becomes one file holding an ambient namespace with a
// single class declaration. Types are translated best-effort: anything that is
// not understood is emitted as `any`.
package declgen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/yuidoc"
	"go.uber.org/zap"
)

// FileNaming decides the output file name of a class.
type FileNaming string

const (
	// NamingBare names files after the class without its qualifier: Widget.d.ts.
	NamingBare FileNaming = "bare"
	// NamingQualified keeps the full class name: Ns.Widget.d.ts.
	NamingQualified FileNaming = "qualified"
)

// Valid reports whether n is a known naming scheme.
func (n FileNaming) Valid() bool {
	return n == NamingBare || n == NamingQualified
}

const declarationExt = ".d.ts"

// Options configures a Generator.
type Options struct {
	DefaultNamespace  string
	Fallback          FallbackMode
	IncludePrivate    bool
	FileNaming        FileNaming
	Printer           dts.PrinterOptions
	Index             bool
	VersionConstraint string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DefaultNamespace: DefaultNamespace,
		Fallback:         FallbackPermissive,
		FileNaming:       NamingBare,
		Printer:          dts.PrinterOptions{NewLine: dts.LineFeed},
	}
}

// File is one rendered declaration file.
type File struct {
	Class   string
	Name    string
	Text    string
	Members int
}

// Report summarizes a Generate run.
type Report struct {
	OutputDir string
	Files     []File
	IndexFile string
}

// Generator renders documents. It holds no state between runs.
type Generator struct {
	opts    Options
	builder *builder
	printer *dts.Printer
	log     *zap.SugaredLogger
}

func NewGenerator(opts Options) *Generator {
	if opts.DefaultNamespace == "" {
		opts.DefaultNamespace = DefaultNamespace
	}
	if !opts.Fallback.Valid() {
		opts.Fallback = FallbackPermissive
	}
	if !opts.FileNaming.Valid() {
		opts.FileNaming = NamingBare
	}

	log := logger.ComponentLogger("declgen")
	return &Generator{
		opts: opts,
		builder: &builder{
			types:            TypeParser{Fallback: opts.Fallback},
			defaultNamespace: opts.DefaultNamespace,
			includePrivate:   opts.IncludePrivate,
			log:              log,
		},
		printer: dts.NewPrinter(opts.Printer),
		log:     log,
	}
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// BuildClass assembles the namespace declaration for class from the items it owns.
func (g *Generator) BuildClass(class yuidoc.ClassDoc, items []yuidoc.ClassItemDoc) *dts.Namespace {
	return g.builder.buildClass(class, items)
}

// BuildMember builds a single member. It returns false for excluded item types.
func (g *Generator) BuildMember(item yuidoc.ClassItemDoc) (dts.Member, bool) {
	return g.builder.buildMember(item)
}

// SourceFile builds the syntax tree for one class.
func (g *Generator) SourceFile(class yuidoc.ClassDoc, items []yuidoc.ClassItemDoc) *dts.SourceFile {
	return &dts.SourceFile{Statements: []*dts.Namespace{g.BuildClass(class, items)}}
}

// FileName returns the output file name for a class.
func (g *Generator) FileName(class yuidoc.ClassDoc) string {
	if g.opts.FileNaming == NamingQualified {
		return class.Name + declarationExt
	}
	return BareName(class.Name) + declarationExt
}

// isLocalFileName reports whether name is a single path element inside the
// output directory with a non-empty stem.
func isLocalFileName(name string) bool {
	stem := strings.TrimSuffix(name, declarationExt)
	return stem != "" && stem != "." &&
		!strings.ContainsAny(name, `/\`) &&
		filepath.IsLocal(name)
}

// Render prints every class of doc in memory. Classes are visited in name
// order; when two classes map to the same file name the later one wins.
// Classes whose file name is empty or not a plain name inside the output
// directory are skipped with a warning.
func (g *Generator) Render(doc *yuidoc.Document) ([]File, error) {
	if err := doc.Project.CheckVersion(g.opts.VersionConstraint); err != nil {
		return nil, err
	}

	var files []File
	byName := make(map[string]int)

	for _, name := range doc.ClassNames() {
		class := doc.Classes[name]
		fileName := g.FileName(class)
		if BareName(class.Name) == "" || !isLocalFileName(fileName) {
			g.log.Warnw("Skipping class without a usable file name",
				logger.FieldClass, class.Name,
				logger.FieldPath, fileName)
			continue
		}

		source := g.SourceFile(class, doc.ClassItems)
		file := File{
			Class:   class.Name,
			Name:    fileName,
			Text:    g.printer.PrintFile(source),
			Members: len(source.Statements[0].Body[0].Members),
		}

		if i, dup := byName[file.Name]; dup {
			g.log.Warnw("Two classes map to the same file, keeping the later one",
				logger.FieldPath, file.Name,
				logger.FieldClass, file.Class,
				"replaced", files[i].Class)
			files[i] = file
			continue
		}
		byName[file.Name] = len(files)
		files = append(files, file)

		g.log.Debugw("Rendered class",
			logger.FieldClass, file.Class,
			logger.FieldPath, file.Name,
			logger.FieldCount, file.Members)
	}

	return files, nil
}

// Generate renders doc and writes one file per class into outdir, creating
// it when missing. The first file-system error aborts the run.
func (g *Generator) Generate(doc *yuidoc.Document, outdir string) (*Report, error) {
	files, err := g.Render(doc)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outdir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", outdir)
	}

	report := &Report{OutputDir: outdir, Files: files}
	for _, f := range files {
		path := filepath.Join(outdir, f.Name)
		if err := os.WriteFile(path, []byte(f.Text), 0644); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
	}

	if g.opts.Index {
		path, err := GenerateIndexFile(outdir, files, g.opts.Printer.NewLine)
		if err != nil {
			return nil, err
		}
		report.IndexFile = path
	}

	g.log.Infow("Generated declarations",
		logger.FieldPath, outdir,
		logger.FieldCount, len(files))
	return report, nil
}
