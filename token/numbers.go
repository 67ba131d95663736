package token

// IsNumber reports whether v is a JSON number, which is the form of
// numbers HOCON reads from unquoted text.
func IsNumber(v string) bool {
	d := []byte(v)
	if len(d) > 0 && d[0] == '-' {
		d = d[1:]
	}
	digits := asciiDigits(d)
	if digits == 0 {
		return false
	}
	if digits > 1 && d[0] == '0' {
		return false
	}
	d = d[digits:]
	d = d[fract(d):]
	d = d[exp(d):]
	return len(d) == 0
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	default:
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return i + n
}

func fract(d []byte) int {
	if len(d) < 2 || d[0] != '.' {
		return 0
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		return 0
	}
	return n + 1
}
