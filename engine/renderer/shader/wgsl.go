package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// wgslTypeLayout is the byte size and alignment of a WGSL type.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

type parsedStruct struct {
	name   string
	fields []parsedField
}

type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// Host-shareable layouts, see https://www.w3.org/TR/WGSL/#alignment-and-size
var primitiveLayouts = map[string]wgslTypeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"vec2<u32>":   {8, 8},
	"vec4<u32>":   {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat3x3f":     {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

var vertexFormats = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
}

var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`^(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)$`)
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	bindingRegex       = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// resolveType sizes a primitive, a known struct or a fixed-size array of either.
func resolveType(name string, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := primitiveLayouts[name]; ok {
		return l, true
	}
	if l, ok := known[name]; ok {
		return l, true
	}
	if !strings.HasPrefix(name, "array<") || !strings.HasSuffix(name, ">") {
		return wgslTypeLayout{}, false
	}
	parts := strings.SplitN(name[len("array<"):len(name)-1], ",", 2)
	if len(parts) != 2 {
		return wgslTypeLayout{}, false
	}
	elem, ok := resolveType(strings.TrimSpace(parts[0]), known)
	if !ok {
		return wgslTypeLayout{}, false
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{count * roundUp(elem.align, elem.size), elem.align}, true
}

func structLayout(ps parsedStruct, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	align := uint64(1)
	for _, f := range ps.fields {
		if f.isBuiltin {
			continue
		}
		fl, ok := resolveType(f.typeName, known)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUp(fl.align, offset) + fl.size
		align = max(align, fl.align)
	}
	return wgslTypeLayout{roundUp(align, offset), align}, true
}

// computeStructSizes resolves struct layouts in dependency order. Structs that reference
// unknown types are left out.
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	pending := append([]parsedStruct(nil), structs...)
	for len(pending) > 0 {
		next := pending[:0]
		for _, ps := range pending {
			if l, ok := structLayout(ps, resolved); ok {
				resolved[ps.name] = l
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return resolved
}

func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	out := make([]parsedStruct, 0, len(matches))
	for _, m := range matches {
		out = append(out, parsedStruct{name: m[1], fields: parseStructFields(m[2])})
	}
	return out
}

func parseStructFields(body string) []parsedField {
	var fields []parsedField
	for _, line := range splitTopLevel(body) {
		line = strings.TrimSpace(line)
		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		f := parsedField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(line),
		}
		if lm := locationRegex.FindStringSubmatch(line); lm != nil {
			f.location, _ = strconv.Atoi(lm[1])
		}
		fields = append(fields, f)
	}
	return fields
}

// isVertexInputStruct reports whether every field is a @location attribute.
func isVertexInputStruct(ps parsedStruct) bool {
	if len(ps.fields) == 0 {
		return false
	}
	for _, f := range ps.fields {
		if f.isBuiltin || f.location < 0 {
			return false
		}
	}
	return true
}

func vertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64
	for _, f := range ps.fields {
		info, ok := vertexFormats[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, errors.Errorf("shader: %s.%s has no vertex format for %s", ps.name, f.name, f.typeName)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

func parseBindings(source string, sizes map[string]wgslTypeLayout) ([]Binding, error) {
	var out []Binding
	for _, m := range bindingRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.ParseUint(m[1], 10, 32)
		binding, _ := strconv.ParseUint(m[2], 10, 32)
		b := Binding{
			Group:        uint32(group),
			Binding:      uint32(binding),
			AddressSpace: strings.TrimSpace(m[3]),
			Name:         m[4],
			Type:         strings.TrimSpace(m[5]),
		}
		if b.AddressSpace != "" {
			l, ok := resolveType(b.Type, sizes)
			if !ok {
				return nil, errors.Errorf("shader: cannot size %s binding %s of type %s", b.AddressSpace, b.Name, b.Type)
			}
			b.Size = l.size
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out, nil
}

func findEntryPoint(source string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

// splitTopLevel splits at commas outside angle brackets so array<T, N> stays whole.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		switch {
		case i+1 < len(source) && source[i] == '/' && source[i+1] == '*':
			depth++
			i++
		case depth > 0 && i+1 < len(source) && source[i] == '*' && source[i+1] == '/':
			depth--
			i++
		case depth > 0:
		case i+1 < len(source) && source[i] == '/' && source[i+1] == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			sb.WriteByte('\n')
		default:
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
