package y4m

import (
	"fmt"
	"io"

	"github.com/zsiec/cadence/internal/video"
)

// Writer emits a YUV4MPEG2 stream. NewWriter writes the stream header
// immediately; WriteFrame appends frames in call order. The Writer does
// not buffer, callers wrap w as needed.
type Writer struct {
	w       io.Writer
	width   int
	height  int
	chromaW int
	chromaH int
	frames  int
}

// NewWriter validates the geometry against colorspace and writes the
// stream header. The output is marked progressive.
func NewWriter(w io.Writer, width, height int, rate video.Rational, colorspace string) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("y4m: invalid geometry %dx%d", width, height)
	}
	if rate.Num <= 0 || rate.Den <= 0 {
		return nil, fmt.Errorf("y4m: invalid frame rate %d:%d", rate.Num, rate.Den)
	}

	var chromaW, chromaH int
	switch colorspace {
	case "420", "420jpeg", "420mpeg2", "420paldv":
		if width%2 != 0 || height%2 != 0 {
			return nil, fmt.Errorf("y4m: odd geometry %dx%d for colorspace %q", width, height, colorspace)
		}
		chromaW, chromaH = width/2, height/2
	case "422":
		if width%2 != 0 {
			return nil, fmt.Errorf("y4m: odd width %d for colorspace %q", width, colorspace)
		}
		chromaW, chromaH = width/2, height
	case "444":
		chromaW, chromaH = width, height
	default:
		return nil, fmt.Errorf("y4m: unsupported colorspace %q", colorspace)
	}

	header := fmt.Sprintf("%s W%d H%d F%d:%d Ip A0:0 C%s\n", magic, width, height, rate.Num, rate.Den, colorspace)
	if _, err := io.WriteString(w, header); err != nil {
		return nil, fmt.Errorf("y4m: write header: %w", err)
	}

	return &Writer{
		w:       w,
		width:   width,
		height:  height,
		chromaW: chromaW,
		chromaH: chromaH,
	}, nil
}

// WriteFrame appends one frame. The frame's plane geometry must match
// the writer's.
func (w *Writer) WriteFrame(f *video.Frame) error {
	if len(f.Planes) != 3 {
		return fmt.Errorf("y4m: frame %d has %d planes, want 3", f.Index, len(f.Planes))
	}
	want := [3][2]int{
		{w.width, w.height},
		{w.chromaW, w.chromaH},
		{w.chromaW, w.chromaH},
	}
	for i, p := range f.Planes {
		if p.Width != want[i][0] || p.Height != want[i][1] {
			return fmt.Errorf("y4m: frame %d plane %d is %dx%d, want %dx%d",
				f.Index, i, p.Width, p.Height, want[i][0], want[i][1])
		}
	}

	if _, err := w.w.Write(frameMagic); err != nil {
		return fmt.Errorf("y4m: write frame %d: %w", f.Index, err)
	}
	if _, err := w.w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("y4m: write frame %d: %w", f.Index, err)
	}
	for _, p := range f.Planes {
		if _, err := w.w.Write(p.Data); err != nil {
			return fmt.Errorf("y4m: write frame %d: %w", f.Index, err)
		}
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }
