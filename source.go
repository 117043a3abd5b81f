package tmfilters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Names of the fixed shader interface shared by all filters.
const (
	SamplerUniform    = "u_texture"
	ResolutionUniform = "u_resolution"
	TexCoordInput     = "v_uv"
	ColorOutput       = "fragColor"
	versionDirective  = "#version 300 es"
)

// Decl is a global declaration parsed from GLSL source: `uniform vec2 u_direction;`
// yields {Qualifier: "uniform", Type: "vec2", Name: "u_direction"}.
type Decl struct {
	Qualifier string
	Type      string
	Name      string
	// ArrayLen is the declared array length or 0 for non-array declarations.
	ArrayLen int
}

// ParseDecls returns the global uniform, in and out declarations of a GLSL source.
// Comments are ignored, declarations may span lines or share one, and layout,
// interpolation and precision qualifiers are accepted. Integer #define macros
// are expanded in array lengths. Statements inside braces, including interface
// blocks, are skipped. ParseDecls does not validate GLSL beyond what is
// needed to read these declarations.
func ParseDecls(src string) ([]Decl, error) {
	text, err := stripComments(src)
	if err != nil {
		return nil, err
	}
	defines := make(map[string]int)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "#define" {
			if n, err := strconv.Atoi(fields[2]); err == nil {
				defines[fields[1]] = n
			}
		}
		lines[i] = ""
	}
	text = strings.Join(lines, "\n")

	var decls []Decl
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
			start = i + 1
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("line %d: unbalanced braces", lineAt(text, i))
			}
			start = i + 1
		case ';':
			if depth == 0 {
				d, err := parseDecl(text[start:i], defines)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineAt(text, start), err)
				}
				decls = append(decls, d...)
			}
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("line %d: unbalanced braces", lineAt(text, len(text)))
	} else if strings.TrimSpace(text[start:]) != "" {
		return nil, fmt.Errorf("line %d: statement must end with ';'", lineAt(text, start))
	}
	return decls, nil
}

// ParseUniforms returns only the uniform declarations of src.
func ParseUniforms(src string) ([]Decl, error) {
	decls, err := ParseDecls(src)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, d := range decls {
		if d.Qualifier == "uniform" {
			decls[n] = d
			n++
		}
	}
	return decls[:n], nil
}

// stripComments replaces comments with whitespace, keeping line breaks.
func stripComments(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src))
	for {
		i := strings.IndexByte(src, '/')
		if i < 0 || i == len(src)-1 {
			b.WriteString(src)
			return b.String(), nil
		}
		b.WriteString(src[:i])
		switch src[i+1] {
		case '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				return b.String(), nil
			}
			src = src[i+end:]
		case '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("line %d: unterminated block comment", lineAt(b.String(), b.Len()))
			}
			comment := src[i : i+2+end+2]
			b.WriteByte(' ')
			b.WriteString(strings.Repeat("\n", strings.Count(comment, "\n")))
			src = src[i+len(comment):]
		default:
			b.WriteByte('/')
			src = src[i+1:]
		}
	}
}

func lineAt(text string, offset int) int {
	for offset < len(text) && (text[offset] == ' ' || text[offset] == '\t' || text[offset] == '\n' || text[offset] == '\r') {
		offset++
	}
	return 1 + strings.Count(text[:offset], "\n")
}

// typeQualifiers may precede or follow the storage qualifier of a declaration.
var typeQualifiers = map[string]bool{
	"flat": true, "smooth": true, "centroid": true, "invariant": true,
	"highp": true, "mediump": true, "lowp": true,
}

// parseDecl parses a single statement without its terminating ';'.
// Statements that are not uniform, in or out declarations yield no Decls.
func parseDecl(stmt string, defines map[string]int) ([]Decl, error) {
	stmt = strings.TrimSpace(stmt)
	if rest, ok := strings.CutPrefix(stmt, "layout"); ok {
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "(") {
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				return nil, errors.New("unterminated layout qualifier")
			}
			stmt = rest[end+1:]
		}
	}
	fields := strings.Fields(stmt)
	var qualifier string
QUALIFIERS:
	for len(fields) > 0 {
		switch f := fields[0]; {
		case f == "uniform" || f == "in" || f == "out":
			if qualifier != "" {
				return nil, fmt.Errorf("conflicting qualifiers %s and %s", qualifier, f)
			}
			qualifier = f
		case typeQualifiers[f]:
		default:
			break QUALIFIERS
		}
		fields = fields[1:]
	}
	if qualifier == "" || len(fields) == 0 {
		// Not a declaration, or a qualifier-only statement such as `layout(std140) uniform;`.
		return nil, nil
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("malformed %s declaration", qualifier)
	}
	typ := fields[0]
	var decls []Decl
	for _, name := range strings.Split(strings.Join(fields[1:], ""), ",") {
		name, _, _ = strings.Cut(name, "=")
		d := Decl{Qualifier: qualifier, Type: typ, Name: name}
		if open := strings.IndexByte(name, '['); open >= 0 {
			if !strings.HasSuffix(name, "]") {
				return nil, fmt.Errorf("malformed array declaration %q", name)
			}
			d.Name = name[:open]
			length := name[open+1 : len(name)-1]
			n, ok := defines[length]
			if !ok {
				var err error
				n, err = strconv.Atoi(length)
				if err != nil {
					return nil, fmt.Errorf("array %q length: %w", d.Name, err)
				}
			}
			if n <= 0 {
				return nil, fmt.Errorf("array %q has non-positive length %d", d.Name, n)
			}
			d.ArrayLen = n
		}
		if d.Name == "" {
			return nil, fmt.Errorf("empty name in %s declaration", qualifier)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// CheckSource verifies that src implements the filter shader interface and
// declares every binding's uniform with a GLSL type that can hold its default.
func CheckSource(src string, bindings []Binding) error {
	if !strings.HasPrefix(strings.TrimSpace(src), versionDirective) {
		return errors.New("shader must begin with " + versionDirective)
	}
	decls, err := ParseDecls(src)
	if err != nil {
		return err
	}
	find := func(qualifier, name string) (Decl, bool) {
		for _, d := range decls {
			if d.Qualifier == qualifier && d.Name == name {
				return d, true
			}
		}
		return Decl{}, false
	}
	for _, want := range [...]Decl{
		{Qualifier: "uniform", Type: "sampler2D", Name: SamplerUniform},
		{Qualifier: "uniform", Type: "vec2", Name: ResolutionUniform},
		{Qualifier: "in", Type: "vec2", Name: TexCoordInput},
		{Qualifier: "out", Type: "vec4", Name: ColorOutput},
	} {
		got, ok := find(want.Qualifier, want.Name)
		if !ok {
			return fmt.Errorf("missing declaration %s %s %s", want.Qualifier, want.Type, want.Name)
		} else if got != want {
			return fmt.Errorf("%s %s declared as %s", want.Qualifier, want.Name, got.Type)
		}
	}
	for _, b := range bindings {
		if !b.Default.IsValid() {
			return fmt.Errorf("binding %q has no default value", b.Option)
		}
		d, ok := find("uniform", b.Uniform)
		if !ok {
			return fmt.Errorf("binding %q: uniform %s not declared", b.Option, b.Uniform)
		}
		if d.Type != b.Default.GLSLType() {
			return fmt.Errorf("binding %q: uniform %s is %s, default is %s", b.Option, b.Uniform, d.Type, b.Default.Kind())
		}
		isArray := b.Default.Kind() == KindFloatArray
		switch {
		case isArray && d.ArrayLen == 0:
			return fmt.Errorf("binding %q: uniform %s is not an array", b.Option, b.Uniform)
		case !isArray && d.ArrayLen != 0:
			return fmt.Errorf("binding %q: uniform %s is an array", b.Option, b.Uniform)
		case isArray && b.Default.Len() > d.ArrayLen:
			return fmt.Errorf("binding %q: default has %d elements, %s holds %d", b.Option, b.Default.Len(), b.Uniform, d.ArrayLen)
		}
	}
	return nil
}
