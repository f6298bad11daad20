// Package preproc implements a textual preprocessor for the C subset
// fed to the lexer. It handles #include file inclusion and
// #define/#ifdef/#ifndef/#else/#endif conditional compilation. The
// output is a single expanded string suitable for feeding into the
// lexer; the core lexer/parser never reference this package directly.
package preproc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithIncludePaths sets the search paths for #include resolution.
func WithIncludePaths(paths []string) Option {
	return func(pp *Preprocessor) {
		pp.includePaths = paths
	}
}

// WithDefines sets predefined symbols (as from -D on the command line).
func WithDefines(defs map[string]string) Option {
	return func(pp *Preprocessor) {
		for k, v := range defs {
			pp.defines[k] = v
		}
	}
}

// Preprocessor performs textual preprocessing of C source.
type Preprocessor struct {
	defines      map[string]string
	includePaths []string
	errors       []string
	processing   map[string]bool // absolute paths currently being processed (circular include detection)
}

// New creates a new Preprocessor with the given options.
func New(opts ...Option) *Preprocessor {
	pp := &Preprocessor{
		defines:    map[string]string{},
		processing: map[string]bool{},
	}
	for _, opt := range opts {
		opt(pp)
	}
	return pp
}

// Errors returns any errors accumulated during processing.
func (pp *Preprocessor) Errors() []string {
	return pp.errors
}

// ProcessFile reads and processes a file, resolving #include directives.
func (pp *Preprocessor) ProcessFile(filename string) (string, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", filename, err)
	}

	if pp.processing[absPath] {
		return "", fmt.Errorf("circular include detected: %s", filename)
	}
	pp.processing[absPath] = true
	defer delete(pp.processing, absPath)

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read %q: %w", filename, err)
	}

	return pp.processSource(string(data), filepath.Dir(absPath))
}

// ProcessSource processes C source text with no file context.
// #include directives only resolve against includePaths.
func (pp *Preprocessor) ProcessSource(source string) (string, error) {
	return pp.processSource(source, "")
}

// processSource performs line-by-line preprocessing. baseDir is the
// directory of the current file (for relative #include resolution).
func (pp *Preprocessor) processSource(source string, baseDir string) (string, error) {
	lines := strings.Split(source, "\n")
	var out strings.Builder
	var condStack []condState

	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			directive, rest := parseDirectiveLine(trimmed)

			switch directive {
			case "define":
				if isActive(condStack) {
					sym, val := splitDefine(rest)
					if sym != "" {
						pp.defines[sym] = val
					}
				}

			case "ifdef":
				_, ok := pp.defines[strings.TrimSpace(rest)]
				condStack = append(condStack, condState{active: ok, seenTrue: ok})

			case "ifndef":
				_, ok := pp.defines[strings.TrimSpace(rest)]
				condStack = append(condStack, condState{active: !ok, seenTrue: !ok})

			case "else":
				if len(condStack) == 0 {
					pp.errors = append(pp.errors, fmt.Sprintf("line %d: #else without matching #ifdef/#ifndef", i+1))
				} else {
					top := &condStack[len(condStack)-1]
					if top.seenTrue {
						top.active = false
					} else {
						top.active = true
						top.seenTrue = true
					}
				}

			case "endif":
				if len(condStack) == 0 {
					pp.errors = append(pp.errors, fmt.Sprintf("line %d: #endif without matching #ifdef/#ifndef", i+1))
				} else {
					condStack = condStack[:len(condStack)-1]
				}

			case "include":
				if isActive(condStack) {
					included, err := pp.resolveAndInclude(rest, baseDir)
					if err != nil {
						return "", fmt.Errorf("line %d: %w", i+1, err)
					}
					out.WriteString(included)
				}

			default:
				if isActive(condStack) {
					out.WriteString(expandDefines(line, pp.defines))
				}
			}
		} else if isActive(condStack) {
			out.WriteString(expandDefines(line, pp.defines))
		}
	}

	if len(condStack) > 0 {
		pp.errors = append(pp.errors, fmt.Sprintf("unterminated conditional (missing %d #endif)", len(condStack)))
	}

	return out.String(), nil
}

// condState tracks one level of #ifdef/#ifndef/#else nesting.
type condState struct {
	active   bool // currently emitting lines?
	seenTrue bool // has any branch been taken?
}

// isActive returns true if every condition stack level is active.
func isActive(stack []condState) bool {
	for _, s := range stack {
		if !s.active {
			return false
		}
	}
	return true
}

// parseDirectiveLine splits "#directive rest" into (directive, rest).
func parseDirectiveLine(trimmed string) (string, string) {
	s := strings.TrimSpace(trimmed[1:])
	idx := strings.IndexAny(s, " \t")
	if idx == -1 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

// splitDefine splits "SYMBOL replacement text" into (symbol, replacement).
// An object-like macro with no replacement text maps to "".
func splitDefine(rest string) (string, string) {
	idx := strings.IndexAny(rest, " \t")
	if idx == -1 {
		return rest, ""
	}
	return rest[:idx], strings.TrimSpace(rest[idx+1:])
}

// expandDefines replaces whole-word occurrences of object-like macros
// with their replacement text. Function-like macros are not supported.
func expandDefines(line string, defines map[string]string) string {
	if len(defines) == 0 {
		return line
	}
	var out strings.Builder
	i := 0
	for i < len(line) {
		if !isIdentStart(line[i]) {
			out.WriteByte(line[i])
			i++
			continue
		}
		j := i + 1
		for j < len(line) && isIdentCont(line[j]) {
			j++
		}
		word := line[i:j]
		if val, ok := defines[word]; ok && val != "" {
			out.WriteString(val)
		} else {
			out.WriteString(word)
		}
		i = j
	}
	return out.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// resolveAndInclude resolves an #include filename and processes the
// included file, honoring both "local.h" and <system.h> spellings.
func (pp *Preprocessor) resolveAndInclude(rest string, baseDir string) (string, error) {
	filename := stripDelims(rest)
	if filename == "" {
		return "", fmt.Errorf("#include with empty filename")
	}

	resolved := pp.resolveIncludePath(filename, baseDir)
	if resolved == "" {
		return "", fmt.Errorf("cannot find included file %q", filename)
	}

	return pp.ProcessFile(resolved)
}

// resolveIncludePath searches for a file: first relative to baseDir, then in includePaths.
func (pp *Preprocessor) resolveIncludePath(filename string, baseDir string) string {
	if baseDir != "" {
		candidate := filepath.Join(baseDir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	for _, dir := range pp.includePaths {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// stripDelims removes surrounding `"..."` or `<...>` from an include operand.
func stripDelims(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		return s[1 : len(s)-1]
	}
	return s
}
