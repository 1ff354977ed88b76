package nbt

import (
	"strconv"
	"strings"
)

// quoteSNBT renders a string value in SNBT form: always wrapped in double
// quotes, with inner double quotes and backslashes backslash-escaped.
func quoteSNBT(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func joinInts8(v []int8) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatInt(int64(x), 10) + "B"
	}
	return strings.Join(parts, ",")
}

func joinInts32(v []int32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatInt(int64(x), 10)
	}
	return strings.Join(parts, ",")
}

func joinInts64(v []int64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatInt(x, 10) + "L"
	}
	return strings.Join(parts, ",")
}
