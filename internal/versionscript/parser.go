// Package versionscript parses linker version scripts (symbol map files) into
// the exported function and global-variable names for one architecture and
// API level.
package versionscript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"abilink/internal/symbols"
)

// Script is the exported symbol surface described by a version script.
type Script struct {
	Functions         symbols.Set
	GlobalVars        symbols.Set
	FunctionPatterns  symbols.Set
	GlobalVarPatterns symbols.Set
}

func newScript() *Script {
	return &Script{
		Functions:         symbols.NewSet(),
		GlobalVars:        symbols.NewSet(),
		FunctionPatterns:  symbols.NewSet(),
		GlobalVarPatterns: symbols.NewSet(),
	}
}

var knownArches = map[string]struct{}{
	"arm":     {},
	"arm64":   {},
	"x86":     {},
	"x86_64":  {},
	"riscv64": {},
	"mips":    {},
	"mips64":  {},
}

type tags struct {
	arches       []string
	introduced   string
	perArch      map[string]string
	future       bool
	isVar        bool
	hasIntroduce bool
}

func parseTags(comment string) (tags, error) {
	var t tags
	for _, field := range strings.Fields(comment) {
		switch {
		case field == "future":
			t.future = true
		case field == "var":
			t.isVar = true
		case strings.HasPrefix(field, "introduced="):
			t.introduced = strings.TrimPrefix(field, "introduced=")
			t.hasIntroduce = true
		case strings.HasPrefix(field, "introduced-"):
			arch, level, ok := strings.Cut(strings.TrimPrefix(field, "introduced-"), "=")
			if !ok {
				return t, fmt.Errorf("malformed tag %q", field)
			}
			if t.perArch == nil {
				t.perArch = make(map[string]string)
			}
			t.perArch[arch] = level
		default:
			if _, ok := knownArches[field]; ok {
				t.arches = append(t.arches, field)
			}
		}
	}
	return t, nil
}

// merge layers symbol tags over the tags of the enclosing block.
func (t tags) merge(inner tags) tags {
	out := t
	if len(inner.arches) > 0 {
		out.arches = inner.arches
	}
	if inner.hasIntroduce {
		out.introduced = inner.introduced
		out.hasIntroduce = true
	}
	if len(inner.perArch) > 0 {
		m := make(map[string]string, len(t.perArch)+len(inner.perArch))
		for k, v := range t.perArch {
			m[k] = v
		}
		for k, v := range inner.perArch {
			m[k] = v
		}
		out.perArch = m
	}
	out.future = t.future || inner.future
	out.isVar = t.isVar || inner.isVar
	return out
}

type parser struct {
	arch   string
	api    uint32
	script *Script
}

func (p *parser) selected(t tags) (bool, error) {
	if p.arch != "" && len(t.arches) > 0 {
		found := false
		for _, a := range t.arches {
			if a == p.arch {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	if t.future && p.api != FutureAPILevel {
		return false, nil
	}
	introduced, ok := t.perArch[p.arch]
	if !ok || p.arch == "" {
		introduced, ok = t.introduced, t.hasIntroduce
	}
	if ok {
		level, err := ParseAPILevel(introduced)
		if err != nil {
			return false, err
		}
		if level > p.api {
			return false, nil
		}
	}
	return true, nil
}

func (p *parser) add(name string, t tags) {
	wildcard := strings.Contains(name, "*")
	switch {
	case t.isVar && wildcard:
		p.script.GlobalVarPatterns.Add(name)
	case t.isVar:
		p.script.GlobalVars.Add(name)
	case wildcard:
		p.script.FunctionPatterns.Add(name)
	default:
		p.script.Functions.Add(name)
	}
}

type block struct {
	tags  tags
	local bool
}

// Parse reads a version script and keeps the global symbols visible for arch
// at the given API level.
func Parse(r io.Reader, arch, api string) (*Script, error) {
	level, err := ParseAPILevel(api)
	if err != nil {
		return nil, err
	}
	p := &parser{arch: arch, api: level, script: newScript()}

	var stack []block
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		code, comment, _ := strings.Cut(sc.Text(), "#")
		code = strings.TrimSpace(code)
		lineTags, err := parseTags(comment)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		for code != "" {
			switch {
			case strings.HasPrefix(code, "}"):
				if len(stack) == 0 {
					return nil, fmt.Errorf("line %d: unbalanced '}'", lineNo)
				}
				stack = stack[:len(stack)-1]
				// Drop an optional parent version name and the terminating ';'.
				rest := strings.TrimSpace(code[1:])
				if i := strings.IndexByte(rest, ';'); i >= 0 {
					rest = rest[i+1:]
				} else {
					rest = ""
				}
				code = strings.TrimSpace(rest)

			case strings.Contains(code, "{") && strings.Index(code, "{") < semicolonIndex(code):
				i := strings.Index(code, "{")
				var outer block
				if len(stack) > 0 {
					outer = stack[len(stack)-1]
				}
				stack = append(stack, block{tags: outer.tags.merge(lineTags), local: outer.local})
				code = strings.TrimSpace(code[i+1:])

			default:
				if len(stack) == 0 {
					return nil, fmt.Errorf("line %d: symbol outside of a version block: %q", lineNo, code)
				}
				top := &stack[len(stack)-1]
				entry, rest, _ := strings.Cut(code, ";")
				code = strings.TrimSpace(rest)
				entry = strings.TrimSpace(entry)
				switch entry {
				case "global:":
					top.local = false
					continue
				case "local:":
					top.local = true
					continue
				}
				if label, after, ok := strings.Cut(entry, ":"); ok && (label == "global" || label == "local") {
					top.local = label == "local"
					entry = strings.TrimSpace(after)
				}
				if entry == "" || top.local {
					continue
				}
				t := top.tags.merge(lineTags)
				ok, err := p.selected(t)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if ok {
					p.add(strings.Trim(entry, `"`), t)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unterminated version block at end of file")
	}
	return p.script, nil
}

func semicolonIndex(s string) int {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return i
	}
	return len(s)
}

// ParseFile parses the version script stored at path.
func ParseFile(fs afero.Fs, path, arch, api string) (*Script, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	script, err := Parse(f, arch, api)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}
