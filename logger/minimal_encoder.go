package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI colors of one theme.
type palette struct {
	time      string
	component string
	fg        string
	key       string
	yellow    string
	red       string
	yellowBg  string
	redBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	time:      "\x1b[38;5;108m", // Muted cyan-green (#8ec07c)
	component: "\x1b[38;5;208m", // Warm orange (#fe8019)
	fg:        "\x1b[38;5;223m", // Soft cream (#ebdbb2)
	key:       "\x1b[38;5;109m", // Soft blue (#83a598)
	yellow:    "\x1b[38;5;214m",
	red:       "\x1b[38;5;167m",
	yellowBg:  "\x1b[48;5;58m",
	redBg:     "\x1b[48;5;88m",
}

// Everforest Dark (natural forest greens)
var everforest = palette{
	time:      "\x1b[38;5;107m", // Mid green (#83c092)
	component: "\x1b[38;5;108m", // Bright green (#a7c080)
	fg:        "\x1b[38;5;223m", // Soft beige (#d3c6aa)
	key:       "\x1b[38;5;109m", // Blue-green (#7fbbb3)
	yellow:    "\x1b[38;5;179m",
	red:       "\x1b[38;5;167m",
	yellowBg:  "\x1b[48;5;58m",
	redBg:     "\x1b[48;5;52m",
}

// Current active theme (set from config before Initialize)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output. Unknown names are ignored.
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  WARN  declgen  Skipping class item  class=Ember.Route item=foo"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if tag := levelColorString(ent.Level, c); tag != "" {
		final.AppendString("  ")
		final.AppendString(tag)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if pairs := formatFields(fields, c); pairs != "" {
		final.AppendString("  ")
		final.AppendString(pairs)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level, c palette) string {
	switch {
	case level < zapcore.WarnLevel:
		return ""
	case level == zapcore.WarnLevel:
		return colorBold + c.yellowBg + c.yellow + "WARN" + colorReset
	default:
		return colorBold + c.redBg + c.red + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: declgen.index -> d.index
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// formatFields renders every field as key=value. No field is ever dropped
// except zap.Skip, which carries nothing.
func formatFields(fields []zapcore.Field, c palette) string {
	var pairs []string
	for _, f := range fields {
		if f.Type == zapcore.SkipType {
			continue
		}
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		value, ok := m.Fields[f.Key]
		if !ok {
			continue
		}
		pairs = append(pairs, c.key+f.Key+colorReset+"="+fmt.Sprintf("%v", value))
	}
	return strings.Join(pairs, " ")
}
