package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRational(t *testing.T) {
	tests := []struct {
		name     string
		num      int
		den      int
		expected Rational
	}{
		{
			name:     "Normal rational",
			num:      30000,
			den:      1001,
			expected: Rational{Num: 30000, Den: 1001},
		},
		{
			name:     "Zero denominator gets corrected to 1",
			num:      5,
			den:      0,
			expected: Rational{Num: 5, Den: 1},
		},
		{
			name:     "Zero numerator",
			num:      0,
			den:      5,
			expected: Rational{Num: 0, Den: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewRational(tt.num, tt.den))
		})
	}
}

func TestRational_Float64(t *testing.T) {
	assert.InDelta(t, 29.97003, FrameRate29_97.Float64(), 1e-5)
	assert.InDelta(t, 23.976024, FrameRate23_976.Float64(), 1e-5)
	assert.Equal(t, 0.0, Rational{Num: 5, Den: 0}.Float64())
}

func TestRational_Equals(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		assert.True(t, Rational{Num: 30000, Den: 1001}.Equals(FrameRate29_97))
	})

	t.Run("equal value but different terms does not match", func(t *testing.T) {
		// 60000/2002 == 30000/1001 numerically, but the cadence gate
		// requires the canonical terms.
		assert.False(t, Rational{Num: 60000, Den: 2002}.Equals(FrameRate29_97))
	})
}

func TestRational_String(t *testing.T) {
	assert.Equal(t, "30000/1001", FrameRate29_97.String())
}

func TestNTSCFrameRates(t *testing.T) {
	assert.Equal(t, Rational{Num: 24000, Den: 1001}, FrameRate23_976)
	assert.Equal(t, Rational{Num: 30000, Den: 1001}, FrameRate29_97)
	assert.Equal(t, Rational{Num: 60000, Den: 1001}, FrameRate59_94)
}

func TestPlane(t *testing.T) {
	t.Run("NewPlane allocates zeroed samples", func(t *testing.T) {
		p := NewPlane(4, 3)
		assert.Equal(t, 4, p.Width)
		assert.Equal(t, 3, p.Height)
		assert.Len(t, p.Data, 12)
		for _, s := range p.Data {
			assert.Equal(t, byte(0), s)
		}
	})

	t.Run("Fill sets every sample", func(t *testing.T) {
		p := NewPlane(2, 2)
		p.Fill(128)
		assert.Equal(t, []byte{128, 128, 128, 128}, p.Data)
	})

	t.Run("Clone is a deep copy", func(t *testing.T) {
		p := NewPlane(2, 1)
		p.Data[0] = 10
		c := p.Clone()
		c.Data[0] = 99

		assert.Equal(t, byte(10), p.Data[0])
		assert.Equal(t, byte(99), c.Data[0])
	})
}

func TestFrame(t *testing.T) {
	t.Run("NewYUV420Frame halves chroma dimensions", func(t *testing.T) {
		f := NewYUV420Frame(7, 16, 8)

		assert.Equal(t, 7, f.Index)
		assert.Len(t, f.Planes, 3)
		assert.Equal(t, 16, f.Planes[0].Width)
		assert.Equal(t, 8, f.Planes[0].Height)
		assert.Equal(t, 8, f.Planes[1].Width)
		assert.Equal(t, 4, f.Planes[1].Height)
		assert.Equal(t, f.Planes[0], f.Luma())
	})

	t.Run("WithMeta attaches metadata", func(t *testing.T) {
		f := NewYUV420Frame(0, 2, 2).WithMeta(true, 1)

		assert.NotNil(t, f.Meta)
		assert.True(t, f.Meta.Combed)
		assert.Equal(t, 1, f.Meta.SceneChange)
	})

	t.Run("Clone copies planes and metadata independently", func(t *testing.T) {
		f := NewYUV420Frame(3, 4, 2).WithMeta(false, 0)
		f.Planes[0].Data[0] = 42

		c := f.Clone()
		c.Planes[0].Data[0] = 7
		c.Meta.Combed = true

		assert.Equal(t, byte(42), f.Planes[0].Data[0])
		assert.False(t, f.Meta.Combed)
		assert.True(t, c.Meta.Combed)
	})

	t.Run("Clone preserves nil metadata", func(t *testing.T) {
		f := NewFrame(0, NewPlane(2, 2))
		c := f.Clone()
		assert.Nil(t, c.Meta)
	})
}
