package math

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/dora-network/dora-safemath/errors"
)

// Width is the bit width of an unsigned integer operand.
type Width uint8

const (
	_ Width = iota
	Width8
	Width16
	Width32
	Width64
	Width128
)

var widthBits = map[Width]uint{
	Width8:   8,
	Width16:  16,
	Width32:  32,
	Width64:  64,
	Width128: 128,
}

// Widths returns every supported width, narrowest first.
func Widths() []Width {
	return []Width{Width8, Width16, Width32, Width64, Width128}
}

// ParseWidth accepts "8", "u8" or "uint8" (and the same forms for the other widths).
func ParseWidth(s string) (Width, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "uint"), "u")
	for w, bits := range widthBits {
		if trimmed == uintString(bits) {
			return w, nil
		}
	}
	return 0, errors.Wrap(errors.InvalidInputError, errors.ErrUnknownWidth, s)
}

// Bits returns the number of bits in w, or 0 for an unknown width.
func (w Width) Bits() uint {
	return widthBits[w]
}

// Max returns 2^Bits - 1 as a new big.Int.
func (w Width) Max() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), w.Bits())
	return m.Sub(m, big.NewInt(1))
}

func (w Width) String() string {
	if bits, ok := widthBits[w]; ok {
		return "u" + uintString(bits)
	}
	return "unknown"
}

func (w Width) MarshalText() ([]byte, error) {
	if _, ok := widthBits[w]; !ok {
		return nil, errors.ErrUnknownWidth
	}
	return []byte(w.String()), nil
}

func (w *Width) UnmarshalText(text []byte) error {
	parsed, err := ParseWidth(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
