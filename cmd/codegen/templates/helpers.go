package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// typedSources renders "src0 Readable[T0], src1 Readable[T1]".
func typedSources(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("src" + n + " Readable[T" + n + "]")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func sourceList(count int) string {
	return "[]AnyReadable{" + prefixedStrings("src", count) + "}"
}

// tupleArgs renders one converted tuple slot per line.
func tupleArgs(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("\t\t\tas[T" + n + "](values[" + n + "]),\n")
	}
	return sb.String()
}
