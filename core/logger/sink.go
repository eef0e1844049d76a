package logger

import (
	"bufio"
	"encoding/json"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLineSize bounds a single line of server output.
const maxLineSize = 1024 * 1024

// reservedKeys are produced by the launcher's encoders. Server fields with
// these names are kept under a "server_" prefix.
var reservedKeys = map[string]bool{
	"severity": true, "level": true,
	"message": true, "msg": true,
	"timestamp": true, "time": true,
	"logger": true, "caller": true,
	"exception": true, "stacktrace": true,
	"stream": true,
}

var levelToken = regexp.MustCompile(`(?i)\[(debug|info|notice|warn|warning|error|critical|fatal|alert|emergency)\]`)

// Forward reads r line by line and re-emits every line as a structured entry
// on l, tagged with the stream name. It returns when r is exhausted.
//
// JSON object lines keep their fields; "severity" or "level" selects the level
// and "message" or "msg" the message. Plain lines use a bracketed level token
// such as "[ERROR]" when present and INFO otherwise. Remaining fields that
// clash with the launcher's own keys are renamed with a "server_" prefix.
func Forward(l *zap.Logger, stream string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	core := l.Core()
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		ent, fields := parseLine(line)
		if !core.Enabled(ent.Level) {
			continue
		}
		ent.LoggerName = l.Name()
		fields = append(fields, zap.String("stream", stream))
		// Written on the core directly so CRITICAL and above never panic or exit.
		_ = core.Write(ent, fields)
	}
	return scanner.Err()
}

func parseLine(line string) (zapcore.Entry, []zap.Field) {
	ent := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: line}

	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err == nil {
			return parseObject(ent, obj)
		}
	}

	if m := levelToken.FindStringSubmatch(line); m != nil {
		ent.Level = ParseSeverity(m[1])
	}
	return ent, nil
}

func parseObject(ent zapcore.Entry, obj map[string]any) (zapcore.Entry, []zap.Field) {
	for _, key := range []string{"severity", "level"} {
		if s, ok := obj[key].(string); ok {
			ent.Level = ParseSeverity(s)
			delete(obj, key)
			break
		}
	}
	for _, key := range []string{"message", "msg"} {
		if s, ok := obj[key].(string); ok {
			ent.Message = s
			delete(obj, key)
			break
		}
	}
	for _, key := range []string{"timestamp", "time"} {
		if s, ok := obj[key].(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				ent.Time = t
				delete(obj, key)
			}
			break
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		name := k
		if reservedKeys[k] {
			name = "server_" + k
		}
		fields = append(fields, zap.Any(name, obj[k]))
	}
	return ent, fields
}

// ParseSeverity maps a severity or level name to a zap level. Unknown names
// map to INFO.
func ParseSeverity(s string) zapcore.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "CRITICAL", "FATAL":
		return zapcore.DPanicLevel
	case "ALERT":
		return zapcore.PanicLevel
	case "EMERGENCY":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
