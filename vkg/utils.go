package vkg

import "strings"

const end = "\x00"

// safeString returns s null terminated, as the Vulkan bindings expect
func safeString(s string) string {
	if strings.HasSuffix(s, end) {
		return s
	}
	return s + end
}

// safeStrings returns a null terminated copy of list
func safeStrings(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = safeString(list[i])
	}
	return ret
}
