package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across dtsgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Documentation model
	FieldClass     = "class"
	FieldItem      = "item"
	FieldItemType  = "itemtype"
	FieldNamespace = "namespace"

	// Files and paths
	FieldFile = "file"
	FieldLine = "line"
	FieldPath = "path"

	// Counts
	FieldCount = "count"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Generator struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewGenerator() *Generator {
//	    return &Generator{log: logger.ComponentLogger("declgen")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar().Named(name)
	}
	return Logger.Named(name)
}
