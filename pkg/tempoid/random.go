package tempoid

import (
	"math/bits"
	"strings"

	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/metrics"
)

// ByteSource supplies secure random bytes. *entropy.Pool implements it.
type ByteSource interface {
	Take(size int) ([]byte, error)
}

// sampler draws uniform alphabet indexes by masking random bytes to the
// smallest covering power of two and rejecting values outside the alphabet.
type sampler struct {
	size  int
	mask  uint32
	width int // bytes per candidate
}

func newSampler(size int) sampler {
	// mask = 2^(floor(log2(size-1))+1) - 1, so rejection stays below 50%.
	s := sampler{
		size:  size,
		mask:  uint32(1)<<bits.Len(uint(size-1)) - 1,
		width: 1,
	}
	if size > 256 {
		s.width = 2
	}
	return s
}

func (s sampler) candidate(b []byte) int {
	v := uint32(b[0])
	if s.width == 2 {
		v = v<<8 | uint32(b[1])
	}
	return int(v & s.mask)
}

// randomSegment returns length characters drawn uniformly from the alphabet.
// Bytes are requested from src in batches of length*2 candidates, and a fresh
// batch is requested whenever rejections exhaust the current one.
func randomSegment(src ByteSource, length int, a string) (string, error) {
	if length <= 0 {
		return "", nil
	}

	ascii := isASCII(a)
	var digits []rune
	size := len(a)
	if !ascii {
		digits = []rune(a)
		size = len(digits)
	}
	if size < 2 {
		return "", alphabet.ErrTooShort
	}

	s := newSampler(size)
	batch := length * 2 * s.width

	var (
		sb       strings.Builder
		buf      []byte
		rejected int
	)
	if ascii {
		sb.Grow(length)
	} else {
		sb.Grow(length * 4)
	}

	for produced := 0; produced < length; {
		if len(buf) < s.width {
			var err error
			if buf, err = src.Take(batch); err != nil {
				return "", err
			}
		}
		idx := s.candidate(buf)
		buf = buf[s.width:]
		if idx >= size {
			rejected++
			continue
		}
		if ascii {
			sb.WriteByte(a[idx])
		} else {
			sb.WriteRune(digits[idx])
		}
		produced++
	}

	if rejected > 0 && metrics.RandomRejections != nil {
		_ = metrics.RandomRejections.Add(float64(rejected))
	}
	return sb.String(), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
