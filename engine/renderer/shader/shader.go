package shader

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Binding describes one @group(N) @binding(M) resource declaration.
type Binding struct {
	Group        uint32
	Binding      uint32
	Name         string
	AddressSpace string
	Type         string
	// Size is the byte size of Type under WGSL layout rules, zero for handle types.
	Size uint64
}

// shader is the implementation of the Shader interface.
type shader struct {
	source       string
	vertexEntry  string
	fragEntry    string
	bindings     []Binding
	structSizes  map[string]wgslTypeLayout
	vertexLayout *wgpu.VertexBufferLayout
}

// Shader is the reflected view of a WGSL program: its entry points, resource bindings,
// struct sizes and vertex input layout.
type Shader interface {
	// Source returns the WGSL text the shader was reflected from.
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// Bindings returns every resource declaration ordered by group then binding.
	Bindings() []Binding

	// Binding looks up a single resource declaration.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - Binding: the declaration
	//   - bool: false when nothing is bound at that slot
	Binding(group, binding uint32) (Binding, bool)

	// StructSize returns the byte size of a struct declared in the source.
	//
	// Parameters:
	//   - name: the struct name
	//
	// Returns:
	//   - uint64: the size rounded up to the struct alignment
	//   - bool: false if the struct is unknown or could not be sized
	StructSize(name string) (uint64, bool)

	// VertexLayout returns the buffer layout of the vertex input struct.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: tightly packed attributes in declaration order
	//   - bool: false if the source declares no vertex input struct
	VertexLayout() (wgpu.VertexBufferLayout, bool)
}

var _ Shader = &shader{}

// NewShader reflects WGSL source. The source must declare a @vertex and a @fragment entry
// point and every uniform or storage binding must resolve to a sized type.
//
// Parameters:
//   - source: the WGSL program text
//
// Returns:
//   - Shader: the reflected shader
//   - error: if an entry point is missing or a buffer binding cannot be sized
func NewShader(source string) (Shader, error) {
	cleaned := stripComments(source)
	s := &shader{
		source:      source,
		vertexEntry: findEntryPoint(cleaned, vertexEntryRegex),
		fragEntry:   findEntryPoint(cleaned, fragmentEntryRegex),
	}
	if s.vertexEntry == "" {
		return nil, errors.New("shader: no @vertex entry point")
	}
	if s.fragEntry == "" {
		return nil, errors.New("shader: no @fragment entry point")
	}

	structs := parseStructBlocks(cleaned)
	s.structSizes = computeStructSizes(structs)

	for _, ps := range structs {
		if !isVertexInputStruct(ps) {
			continue
		}
		layout, err := vertexBufferLayout(ps)
		if err != nil {
			return nil, err
		}
		s.vertexLayout = &layout
		break
	}

	bindings, err := parseBindings(cleaned, s.structSizes)
	if err != nil {
		return nil, err
	}
	s.bindings = bindings
	return s, nil
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragEntry
}

func (s *shader) Bindings() []Binding {
	return append([]Binding(nil), s.bindings...)
}

func (s *shader) Binding(group, binding uint32) (Binding, bool) {
	i := sort.Search(len(s.bindings), func(i int) bool {
		b := s.bindings[i]
		return b.Group > group || (b.Group == group && b.Binding >= binding)
	})
	if i < len(s.bindings) && s.bindings[i].Group == group && s.bindings[i].Binding == binding {
		return s.bindings[i], true
	}
	return Binding{}, false
}

func (s *shader) StructSize(name string) (uint64, bool) {
	layout, ok := s.structSizes[name]
	return layout.size, ok
}

func (s *shader) VertexLayout() (wgpu.VertexBufferLayout, bool) {
	if s.vertexLayout == nil {
		return wgpu.VertexBufferLayout{}, false
	}
	layout := *s.vertexLayout
	layout.Attributes = append([]wgpu.VertexAttribute(nil), layout.Attributes...)
	return layout, true
}
