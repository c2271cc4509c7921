package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// hex formats a register value as 0x-prefixed uppercase hex, no padding
func hex(n uint32) string {
	const digits = "0123456789ABCDEF"
	if n == 0 {
		return "0x0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = digits[n&0xF]
		n >>= 4
	}
	pos--
	buf[pos] = 'x'
	pos--
	buf[pos] = '0'

	return string(buf[pos:])
}
