//go:build !debug_dstring

package dstring

// DebugValidate will call Validate on the provided object and panics if any
// errors are returned. This method no-ops unless the debug_dstring build tag
// is present
func DebugValidate(validatable Validatable) {
}

// debugPoison overwrites a freed block's payload with a poison pattern. This
// method no-ops unless the debug_dstring build tag is present.
func debugPoison(data []byte) {
}
