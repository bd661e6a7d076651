//go:build debug_dstring

package dstring

const (
	// poisonByte is written across a block's payload when its reference count
	// reaches zero, so that any handle illegally held across a release reads
	// obviously-wrong data instead of stale string contents
	poisonByte byte = 0xDD
)

// DebugValidate will call Validate on the provided object and panics if any
// errors are returned. This method no-ops unless the debug_dstring build tag
// is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// debugPoison overwrites a freed block's payload with poisonByte. This method
// no-ops unless the debug_dstring build tag is present.
func debugPoison(data []byte) {
	for i := range data {
		data[i] = poisonByte
	}
}
