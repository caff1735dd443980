package picking

// MaxID is the largest ID the 24-bit pick target can hold.
const MaxID = 1<<24 - 1

// EncodeID splits id into the RGB bytes the pick shader writes.
// 0 is reserved for background.
func EncodeID(id int) [3]byte {
	return [3]byte{byte(id), byte(id >> 8), byte(id >> 16)}
}

// DecodeID rebuilds an ID from a read-back pixel.
func DecodeID(px [3]byte) int {
	return int(px[0]) | int(px[1])<<8 | int(px[2])<<16
}

// MeshIndex converts a decoded ID into a mesh index. ok is false for background.
func MeshIndex(id int) (index int, ok bool) {
	if id <= 0 {
		return 0, false
	}
	return id - 1, true
}
