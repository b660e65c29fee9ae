package y4m

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

const magic = "YUV4MPEG2"

// maxHeaderLen bounds the stream header scan so a binary file without a
// newline fails fast.
const maxHeaderLen = 1024

var frameMagic = []byte("FRAME")

// File is an open YUV4MPEG2 file. Every frame occupies the same number
// of bytes, so frames are addressed by offset arithmetic and fetched
// with ReadAt; a File therefore satisfies stream.Stream and is safe for
// concurrent Get.
type File struct {
	f *os.File

	width      int
	height     int
	chromaW    int
	chromaH    int
	rate       video.Rational
	interlace  string
	aspect     string
	colorspace string

	dataStart int64
	stride    int64
	markerLen int
	count     int
}

// Open opens path and parses the stream header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("y4m: open: %w", err)
	}
	file, err := parse(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Width returns the luma width in pixels.
func (f *File) Width() int { return f.width }

// Height returns the luma height in pixels.
func (f *File) Height() int { return f.height }

// FrameRate returns the stream frame rate as parsed from the F field.
func (f *File) FrameRate() video.Rational { return f.rate }

// Colorspace returns the raw C field token, e.g. "420jpeg".
func (f *File) Colorspace() string { return f.colorspace }

// Interlace returns the I field token, "p" when the stream omits it.
func (f *File) Interlace() string { return f.interlace }

// Aspect returns the A field token, empty when the stream omits it.
func (f *File) Aspect() string { return f.aspect }

// Len returns the number of frames in the file.
func (f *File) Len() int { return f.count }

// Get reads frame n. The index clamps to [0, Len-1]; each call reads
// into a fresh buffer, so concurrent Gets do not interfere.
func (f *File) Get(n int) (*video.Frame, error) {
	if f.count == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	n = stream.Clamp(n, f.count)

	buf := make([]byte, f.stride)
	if _, err := f.f.ReadAt(buf, f.dataStart+int64(n)*f.stride); err != nil {
		return nil, fmt.Errorf("y4m: read frame %d: %w", n, err)
	}
	if !bytes.HasPrefix(buf, frameMagic) || buf[f.markerLen-1] != '\n' {
		return nil, fmt.Errorf("y4m: frame %d: malformed FRAME marker", n)
	}

	data := buf[f.markerLen:]
	ySize := f.width * f.height
	cSize := f.chromaW * f.chromaH
	return &video.Frame{
		Index: n,
		Planes: []video.Plane{
			{Width: f.width, Height: f.height, Data: data[:ySize]},
			{Width: f.chromaW, Height: f.chromaH, Data: data[ySize : ySize+cSize]},
			{Width: f.chromaW, Height: f.chromaH, Data: data[ySize+cSize:]},
		},
	}, nil
}

func parse(f *os.File) (*File, error) {
	head := make([]byte, maxHeaderLen)
	n, err := f.ReadAt(head, 0)
	if n == 0 && err != nil {
		return nil, fmt.Errorf("y4m: read header: %w", err)
	}
	head = head[:n]

	end := bytes.IndexByte(head, '\n')
	if end < 0 {
		return nil, fmt.Errorf("y4m: stream header missing terminator")
	}

	file := &File{f: f, colorspace: "420jpeg", interlace: "p"}
	if err := file.parseHeader(string(head[:end])); err != nil {
		return nil, err
	}
	file.dataStart = int64(end + 1)

	var evenW, evenH bool
	switch file.colorspace {
	case "420", "420jpeg", "420mpeg2", "420paldv":
		file.chromaW, file.chromaH = file.width/2, file.height/2
		evenW, evenH = true, true
	case "422":
		file.chromaW, file.chromaH = file.width/2, file.height
		evenW = true
	case "444":
		file.chromaW, file.chromaH = file.width, file.height
	default:
		return nil, fmt.Errorf("y4m: unsupported colorspace %q", file.colorspace)
	}
	if evenW && file.width%2 != 0 {
		return nil, fmt.Errorf("y4m: odd width %d for colorspace %q", file.width, file.colorspace)
	}
	if evenH && file.height%2 != 0 {
		return nil, fmt.Errorf("y4m: odd height %d for colorspace %q", file.height, file.colorspace)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("y4m: stat: %w", err)
	}
	remaining := info.Size() - file.dataStart
	if remaining == 0 {
		return file, nil
	}

	// Measure the first frame marker; every frame must repeat it.
	marker := make([]byte, 256)
	n, err = f.ReadAt(marker, file.dataStart)
	if n == 0 && err != nil {
		return nil, fmt.Errorf("y4m: read frame marker: %w", err)
	}
	marker = marker[:n]
	mEnd := bytes.IndexByte(marker, '\n')
	if mEnd < 0 || !bytes.HasPrefix(marker, frameMagic) {
		return nil, fmt.Errorf("y4m: malformed FRAME marker at stream start")
	}
	file.markerLen = mEnd + 1

	dataSize := int64(file.width*file.height + 2*file.chromaW*file.chromaH)
	file.stride = int64(file.markerLen) + dataSize
	if remaining%file.stride != 0 {
		return nil, fmt.Errorf("y4m: truncated stream: %d bytes beyond last whole frame", remaining%file.stride)
	}
	file.count = int(remaining / file.stride)
	return file, nil
}

func (f *File) parseHeader(line string) error {
	fields := strings.Split(line, " ")
	if fields[0] != magic {
		return fmt.Errorf("y4m: invalid magic %q", fields[0])
	}

	for _, field := range fields[1:] {
		if field == "" {
			continue
		}
		value := field[1:]
		var err error
		switch field[0] {
		case 'W':
			f.width, err = strconv.Atoi(value)
		case 'H':
			f.height, err = strconv.Atoi(value)
		case 'F':
			f.rate, err = parseRate(value)
		case 'I':
			f.interlace = value
		case 'A':
			f.aspect = value
		case 'C':
			f.colorspace = value
		}
		// Unknown and X extension fields pass through untouched
		if err != nil {
			return fmt.Errorf("y4m: invalid header field %q: %w", field, err)
		}
	}

	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("y4m: missing or invalid geometry %dx%d", f.width, f.height)
	}
	if f.rate.Num <= 0 || f.rate.Den <= 0 {
		return fmt.Errorf("y4m: missing or invalid frame rate F%d:%d", f.rate.Num, f.rate.Den)
	}
	return nil
}

func parseRate(value string) (video.Rational, error) {
	num, den, ok := strings.Cut(value, ":")
	if !ok {
		return video.Rational{}, fmt.Errorf("expected num:den")
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return video.Rational{}, err
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return video.Rational{}, err
	}
	return video.Rational{Num: n, Den: d}, nil
}
