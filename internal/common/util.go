package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to clear pasted credentials from memory after they have been copied
// into their destination. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
