package video

// Plane holds one component of a frame as 8-bit samples in row-major
// order. Stride equals Width: Data[y*Width+x] is the sample at (x, y).
type Plane struct {
	Width  int
	Height int
	Data   []byte
}

// NewPlane allocates a zeroed plane
func NewPlane(width, height int) Plane {
	return Plane{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height),
	}
}

// Clone returns a deep copy of the plane
func (p Plane) Clone() Plane {
	out := Plane{Width: p.Width, Height: p.Height, Data: make([]byte, len(p.Data))}
	copy(out.Data, p.Data)
	return out
}

// Fill sets every sample to the given value
func (p Plane) Fill(value byte) {
	for i := range p.Data {
		p.Data[i] = value
	}
}

// Metadata is the per-frame decision record supplied by an upstream
// field-match classifier. The engine only reads it.
type Metadata struct {
	// Combed is true when the classifier judged the frame to carry
	// residual interlacing after field matching.
	Combed bool

	// SceneChange marks scene-cut frames. The value domain is
	// producer-defined; the boundary corrector sums the flags of
	// adjacent frames, so classifiers emitting plain 0/1 flags get the
	// documented end/start behavior.
	SceneChange int
}

// Frame represents one progressive video frame
type Frame struct {
	Index  int     // Position in the source stream
	Planes []Plane // Plane 0 is luma, planes 1.. chroma
	Meta   *Metadata
}

// NewFrame creates a frame from pre-built planes
func NewFrame(index int, planes ...Plane) *Frame {
	return &Frame{Index: index, Planes: planes}
}

// NewYUV420Frame allocates a zeroed 4:2:0 frame. Width and height must
// be even; chroma planes are half size in both directions.
func NewYUV420Frame(index, width, height int) *Frame {
	return &Frame{
		Index: index,
		Planes: []Plane{
			NewPlane(width, height),
			NewPlane(width/2, height/2),
			NewPlane(width/2, height/2),
		},
	}
}

// Clone returns a deep copy of the frame, metadata included
func (f *Frame) Clone() *Frame {
	out := &Frame{Index: f.Index, Planes: make([]Plane, len(f.Planes))}
	for i := range f.Planes {
		out.Planes[i] = f.Planes[i].Clone()
	}
	if f.Meta != nil {
		meta := *f.Meta
		out.Meta = &meta
	}
	return out
}

// WithMeta sets the metadata and returns the frame
func (f *Frame) WithMeta(combed bool, sceneChange int) *Frame {
	f.Meta = &Metadata{Combed: combed, SceneChange: sceneChange}
	return f
}

// Luma returns plane 0
func (f *Frame) Luma() Plane {
	return f.Planes[0]
}
