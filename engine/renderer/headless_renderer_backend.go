package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/pkg/errors"
)

// FrameRecord captures everything a headless frame received.
type FrameRecord struct {
	Scene     SceneBlock
	Clear     [4]float64
	Draws     []DrawCommand
	Ended     bool
	Presented bool
}

// MeshRecord captures a mesh created on the headless backend.
type MeshRecord struct {
	Label       string
	VertexCount int
	IndexCount  int
	// Updates counts UpdateMesh calls since creation.
	Updates int
	// Mesh is a copy of the most recently uploaded data.
	Mesh mesh.Mesh
	// Released is set once the renderer frees the mesh.
	Released bool
}

// Recorder stores the frames and meshes seen by a headless backend. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	frames []FrameRecord
	meshes []*MeshRecord
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Frames returns a copy of every frame begun so far, the current one included.
func (r *Recorder) Frames() []FrameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FrameRecord, len(r.frames))
	for i, f := range r.frames {
		out[i] = f
		out[i].Draws = append([]DrawCommand(nil), f.Draws...)
	}
	return out
}

// LastFrame returns the most recent frame, or false if none was begun.
func (r *Recorder) LastFrame() (FrameRecord, bool) {
	frames := r.Frames()
	if len(frames) == 0 {
		return FrameRecord{}, false
	}
	return frames[len(frames)-1], true
}

// Meshes returns a copy of every mesh record in creation order.
func (r *Recorder) Meshes() []MeshRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]MeshRecord, len(r.meshes))
	for i, m := range r.meshes {
		out[i] = *m
	}
	return out
}

// Reset drops all recorded frames and meshes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
	r.meshes = nil
}

func (r *Recorder) addMesh(rec *MeshRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes = append(r.meshes, rec)
}

func (r *Recorder) updateMesh(rec *MeshRecord, m mesh.Mesh) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.VertexCount = len(m.Vertices)
	rec.IndexCount = len(m.Indices)
	rec.Mesh = copyMesh(m)
	rec.Updates++
}

func (r *Recorder) releaseMesh(rec *MeshRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Released = true
}

func (r *Recorder) beginFrame(scene SceneBlock, clear [4]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, FrameRecord{Scene: scene, Clear: clear})
}

func (r *Recorder) current(fn func(f *FrameRecord)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return
	}
	fn(&r.frames[len(r.frames)-1])
}

// headlessMesh is the MeshHandle created by the headless backend.
type headlessMesh struct {
	record *MeshRecord
}

func (h *headlessMesh) Label() string {
	return h.record.Label
}

func (h *headlessMesh) VertexCount() int {
	return h.record.VertexCount
}

func (h *headlessMesh) IndexCount() int {
	return h.record.IndexCount
}

// headlessRendererBackendImpl records calls instead of issuing them to a GPU.
type headlessRendererBackendImpl struct {
	recorder *Recorder
	drawHook func(cmd DrawCommand) error
	meshHook func(label string) error

	width, height int
	presentMode   PresentMode
	clearColor    [4]float64
}

var _ RendererBackend = &headlessRendererBackendImpl{}

func newHeadlessRendererBackend(rec *Recorder, drawHook func(cmd DrawCommand) error, meshHook func(label string) error) RendererBackend {
	if rec == nil {
		rec = NewRecorder()
	}
	return &headlessRendererBackendImpl{
		recorder: rec,
		drawHook: drawHook,
		meshHook: meshHook,
	}
}

func (b *headlessRendererBackendImpl) ConfigureSurface(width, height int) {
	b.width, b.height = width, height
}

func (b *headlessRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.presentMode = mode
}

func (b *headlessRendererBackendImpl) SetClearColor(color [4]float64) {
	b.clearColor = color
}

func (b *headlessRendererBackendImpl) CreateMesh(label string, m mesh.Mesh) (MeshHandle, error) {
	if b.meshHook != nil {
		if err := b.meshHook(label); err != nil {
			return nil, err
		}
	}
	if len(m.Vertices) == 0 {
		return nil, errors.New("headless: mesh has no vertices")
	}
	rec := &MeshRecord{
		Label:       label,
		VertexCount: len(m.Vertices),
		IndexCount:  len(m.Indices),
		Mesh:        copyMesh(m),
	}
	b.recorder.addMesh(rec)
	return &headlessMesh{record: rec}, nil
}

func (b *headlessRendererBackendImpl) UpdateMesh(h MeshHandle, m mesh.Mesh) error {
	hm, ok := h.(*headlessMesh)
	if !ok {
		return ErrUnknownMesh
	}
	if b.meshHook != nil {
		if err := b.meshHook(hm.Label()); err != nil {
			return err
		}
	}
	b.recorder.updateMesh(hm.record, m)
	return nil
}

func (b *headlessRendererBackendImpl) ReleaseMesh(h MeshHandle) {
	if hm, ok := h.(*headlessMesh); ok {
		b.recorder.releaseMesh(hm.record)
	}
}

func (b *headlessRendererBackendImpl) BeginFrame(scene SceneBlock) error {
	b.recorder.beginFrame(scene, b.clearColor)
	return nil
}

func (b *headlessRendererBackendImpl) Draw(cmd DrawCommand) error {
	if b.drawHook != nil {
		if err := b.drawHook(cmd); err != nil {
			return err
		}
	}
	b.recorder.current(func(f *FrameRecord) {
		f.Draws = append(f.Draws, cmd)
	})
	return nil
}

func (b *headlessRendererBackendImpl) EndFrame() error {
	b.recorder.current(func(f *FrameRecord) {
		f.Ended = true
	})
	return nil
}

func (b *headlessRendererBackendImpl) Present() {
	b.recorder.current(func(f *FrameRecord) {
		if f.Ended {
			f.Presented = true
		}
	})
}

func (b *headlessRendererBackendImpl) Release() {}

func copyMesh(m mesh.Mesh) mesh.Mesh {
	return mesh.Mesh{
		Vertices: append([]mesh.Vertex(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}
