package logging

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// offLevel disables a target entirely.
const offLevel = zapcore.FatalLevel + 1

// Filter holds a default level and per-target overrides, parsed from strings such as
// "info,chain=debug,network=warn". Targets match a logger name exactly or as a
// dotted prefix, so "chain" also covers "chain.sync".
type Filter struct {
	Default zapcore.Level
	Targets map[string]zapcore.Level
}

// ParseFilter parses a comma separated filter. A bare level sets the default; target=level
// pairs override it. An empty string means "info".
func ParseFilter(s string) (Filter, error) {
	f := Filter{Default: zapcore.InfoLevel, Targets: map[string]zapcore.Level{}}
	s = strings.TrimSpace(s)
	if s == "" {
		return f, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target, levelStr, hasTarget := strings.Cut(part, "=")
		if !hasTarget {
			lvl, err := parseLevel(part)
			if err != nil {
				return Filter{}, err
			}
			f.Default = lvl
			continue
		}
		target = strings.ToLower(strings.TrimSpace(target))
		if target == "" {
			return Filter{}, fmt.Errorf("empty target in %q", part)
		}
		lvl, err := parseLevel(levelStr)
		if err != nil {
			return Filter{}, err
		}
		f.Targets[target] = lvl
	}
	return f, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "off", "none":
		return offLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Level returns the level in effect for the named logger.
func (f Filter) Level(name string) zapcore.Level {
	name = strings.ToLower(name)
	best, bestLen := f.Default, -1
	for target, lvl := range f.Targets {
		if name == target || strings.HasPrefix(name, target+".") {
			if len(target) > bestLen {
				best, bestLen = lvl, len(target)
			}
		}
	}
	return best
}

// Enabled reports whether an entry at lvl from the named logger passes the filter.
func (f Filter) Enabled(name string, lvl zapcore.Level) bool {
	return lvl >= f.Level(name)
}

// minLevel is the lowest level any target lets through.
func (f Filter) minLevel() zapcore.Level {
	lvl := f.Default
	for _, l := range f.Targets {
		if l < lvl {
			lvl = l
		}
	}
	return lvl
}

// String renders the filter back into its textual form with targets sorted.
func (f Filter) String() string {
	parts := []string{levelName(f.Default)}
	targets := make([]string, 0, len(f.Targets))
	for t := range f.Targets {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		parts = append(parts, t+"="+levelName(f.Targets[t]))
	}
	return strings.Join(parts, ",")
}

func levelName(l zapcore.Level) string {
	if l == offLevel {
		return "off"
	}
	return l.String()
}

// filterCore drops entries whose logger name is not enabled by the filter.
type filterCore struct {
	zapcore.Core
	filter Filter
}

func (c *filterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.filter.minLevel()
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), filter: c.filter}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.filter.Enabled(ent.LoggerName, ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
