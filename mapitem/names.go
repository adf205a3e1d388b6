package mapitem

import "unicode/utf8"

// PackName stores s in n int32 words, four bytes per word, most significant
// byte first, every byte offset by 128. The last byte is always a
// terminator, so at most 4*n-1 bytes of s are kept.
func PackName(s string, n int) []int32 {
	if n <= 0 {
		return nil
	}
	limit := 4*n - 1
	for len(s) > limit {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}

	w := make([]int32, n)
	for i := range w {
		var b [4]byte
		for j := range b {
			if k := i*4 + j; k < len(s) {
				b[j] = s[k]
			}
		}
		w[i] = int32(uint32(b[0]+128)<<24 | uint32(b[1]+128)<<16 | uint32(b[2]+128)<<8 | uint32(b[3]+128))
	}
	w[n-1] &^= 0xFF
	return w
}

// UnpackName is the inverse of PackName. Words that are all zero or all
// ones decode as an empty name.
func UnpackName(w []int32) string {
	blank := true
	for _, v := range w {
		if v != 0 && v != NoData {
			blank = false
		}
	}
	if blank {
		return ""
	}

	buffer := make([]byte, 0, len(w)*4)
	for _, v := range w {
		for shift := 24; shift >= 0; shift -= 8 {
			b := byte(uint32(v)>>shift) - 128
			if b == 0 {
				return string(buffer)
			}
			buffer = append(buffer, b)
		}
	}
	return string(buffer)
}
