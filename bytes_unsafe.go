//go:build unsafe

package bloom

import "unsafe"

// toBytes returns a view of data that must not be written to.
func toBytes(data string) []byte {
	return unsafe.Slice(unsafe.StringData(data), len(data))
}
