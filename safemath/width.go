package safemath

// SafeMath is the checked operation set every supported width implements.
type SafeMath[T any] interface {
	SafeAdd(rhs T) (T, error)
	SafeSub(rhs T) (T, error)
	SafeMul(rhs T) (T, error)
	SafeDiv(rhs T) (T, error)
	SafePow(exp uint32) (T, error)
}

type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
)

var (
	_ SafeMath[U8]  = U8(0)
	_ SafeMath[U16] = U16(0)
	_ SafeMath[U32] = U32(0)
	_ SafeMath[U64] = U64(0)
)

func (a U8) SafeAdd(rhs U8) (U8, error) { return Add(a, rhs) }
func (a U8) SafeSub(rhs U8) (U8, error) { return Sub(a, rhs) }
func (a U8) SafeMul(rhs U8) (U8, error) { return Mul(a, rhs) }
func (a U8) SafeDiv(rhs U8) (U8, error) { return Div(a, rhs) }
func (a U8) SafePow(exp uint32) (U8, error) { return Pow(a, exp) }

func (a U16) SafeAdd(rhs U16) (U16, error) { return Add(a, rhs) }
func (a U16) SafeSub(rhs U16) (U16, error) { return Sub(a, rhs) }
func (a U16) SafeMul(rhs U16) (U16, error) { return Mul(a, rhs) }
func (a U16) SafeDiv(rhs U16) (U16, error) { return Div(a, rhs) }
func (a U16) SafePow(exp uint32) (U16, error) { return Pow(a, exp) }

func (a U32) SafeAdd(rhs U32) (U32, error) { return Add(a, rhs) }
func (a U32) SafeSub(rhs U32) (U32, error) { return Sub(a, rhs) }
func (a U32) SafeMul(rhs U32) (U32, error) { return Mul(a, rhs) }
func (a U32) SafeDiv(rhs U32) (U32, error) { return Div(a, rhs) }
func (a U32) SafePow(exp uint32) (U32, error) { return Pow(a, exp) }

func (a U64) SafeAdd(rhs U64) (U64, error) { return Add(a, rhs) }
func (a U64) SafeSub(rhs U64) (U64, error) { return Sub(a, rhs) }
func (a U64) SafeMul(rhs U64) (U64, error) { return Mul(a, rhs) }
func (a U64) SafeDiv(rhs U64) (U64, error) { return Div(a, rhs) }
func (a U64) SafePow(exp uint32) (U64, error) { return Pow(a, exp) }
