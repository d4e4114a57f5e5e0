package display

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/errors"
)

// Reporter announces the results of generation runs.
//
// Implementations include:
// - CLIReporter: Pretty-printed terminal output using pterm
// - JSONReporter: One JSON event per line for scripts and editors
type Reporter interface {
	// Generated announces a completed Generate run
	Generated(report *declgen.Report)
	// Checked announces the result of a Check run
	Checked(result *declgen.CheckResult)
	// Error announces a failed stage that does not end the command (watch mode)
	Error(stage string, err error)
	// Info prints an informational message
	Info(message string)
}

// Event represents a structured JSON result event
type Event struct {
	Type      string                 `json:"type"` // "generated", "check", "error", "info"
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewReporter picks the JSON or terminal reporter
func NewReporter(w io.Writer, jsonOutput bool, verbosity int) Reporter {
	if jsonOutput {
		return NewJSONReporter(w)
	}
	return NewCLIReporter(w, verbosity)
}

// CLIReporter outputs pretty-printed results to a terminal using pterm
type CLIReporter struct {
	w         io.Writer
	verbosity int
}

// NewCLIReporter creates a terminal reporter. With verbosity >= 1 every
// written file is listed.
func NewCLIReporter(w io.Writer, verbosity int) *CLIReporter {
	return &CLIReporter{w: w, verbosity: verbosity}
}

func (r *CLIReporter) Generated(report *declgen.Report) {
	if r.verbosity >= 1 {
		for _, f := range report.Files {
			pterm.Fprintln(r.w, fmt.Sprintf("  %s %s %s",
				pterm.Gray("→"),
				pterm.LightGreen(f.Name),
				pterm.Gray(fmt.Sprintf("(%d members)", f.Members))))
		}
		if report.IndexFile != "" {
			pterm.Fprintln(r.w, fmt.Sprintf("  %s %s", pterm.Gray("→"), pterm.LightCyan(declgen.IndexFileName)))
		}
	}
	pterm.Success.WithWriter(r.w).Printfln("Generated %s declaration files in %s",
		pterm.Green(fmt.Sprintf("%d", len(report.Files))), report.OutputDir)
}

func (r *CLIReporter) Checked(result *declgen.CheckResult) {
	if result.UpToDate {
		pterm.Success.WithWriter(r.w).Println("Declarations are up to date")
		return
	}

	pterm.Warning.WithWriter(r.w).Println("Declarations are out of date")
	r.list("missing", result.Missing)
	r.list("stale", result.Stale)
	r.list("extra", result.Extra)
}

func (r *CLIReporter) list(label string, names []string) {
	for _, name := range names {
		pterm.Fprintln(r.w, fmt.Sprintf("  %s %s", pterm.Yellow(label+":"), name))
	}
}

func (r *CLIReporter) Error(stage string, err error) {
	pterm.Error.WithWriter(r.w).Printfln("Error in %s: %v", stage, err)
}

func (r *CLIReporter) Info(message string) {
	pterm.Info.WithWriter(r.w).Println(message)
}

// JSONReporter outputs one JSON event per line
type JSONReporter struct {
	encoder *json.Encoder
}

// NewJSONReporter creates a JSON reporter writing to w
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{encoder: json.NewEncoder(w)}
}

func (r *JSONReporter) emit(eventType string, data map[string]interface{}) {
	r.encoder.Encode(Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (r *JSONReporter) Generated(report *declgen.Report) {
	files := make([]map[string]interface{}, 0, len(report.Files))
	for _, f := range report.Files {
		files = append(files, map[string]interface{}{
			"class":   f.Class,
			"file":    f.Name,
			"members": f.Members,
		})
	}
	r.emit("generated", map[string]interface{}{
		"output_dir": report.OutputDir,
		"files":      files,
		"index_file": report.IndexFile,
	})
}

func (r *JSONReporter) Checked(result *declgen.CheckResult) {
	r.emit("check", map[string]interface{}{
		"up_to_date": result.UpToDate,
		"missing":    nonNil(result.Missing),
		"stale":      nonNil(result.Stale),
		"extra":      nonNil(result.Extra),
	})
}

func (r *JSONReporter) Error(stage string, err error) {
	r.emit("error", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
		"hints": nonNil(errors.GetAllHints(err)),
	})
}

func (r *JSONReporter) Info(message string) {
	r.emit("info", map[string]interface{}{
		"message": message,
	})
}

// nonNil keeps empty lists as [] rather than null in JSON
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
