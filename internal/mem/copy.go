package mem

import "fmt"

// Copy copies src into dst and returns the number of bytes copied.
//
// dst and src must have the same length; a mismatch is a caller bug and panics.
func Copy(dst, src []byte) int {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("mem: copy length mismatch: dst=%d src=%d", len(dst), len(src)))
	}
	return copy(dst, src)
}
