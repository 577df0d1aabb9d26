package report

import (
	"encoding/binary"
	"fmt"

	"github.com/x448/float16"

	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// compact keypoint encoding: per keypoint two little endian float16
// coordinates followed by one state byte.  Index is implicit from position.
// Halves the bulk coordinate payload for large dataset exports at half
// precision, which is ample for pixel coordinates
const compactKeypointSize = 5

var f16LookupTable [65536]float32

func init() {
	// precompute float16 lookup table for faster conversion to float32
	for i := range f16LookupTable {
		f16 := float16.Frombits(uint16(i))
		f16LookupTable[i] = f16.Float32()
	}
}

// EncodeKeypoints packs the keypoint sequence into the compact binary form
func EncodeKeypoints(kps []result.KeypointValue) []byte {

	buf := make([]byte, 0, len(kps)*compactKeypointSize)

	for _, kp := range kps {
		buf = binary.LittleEndian.AppendUint16(buf,
			float16.Fromfloat32(float32(kp.X)).Bits())
		buf = binary.LittleEndian.AppendUint16(buf,
			float16.Fromfloat32(float32(kp.Y)).Bits())
		buf = append(buf, byte(kp.State))
	}

	return buf
}

// DecodeKeypoints unpacks a compact binary keypoint sequence.  Keypoint
// indices are reassigned from position
func DecodeKeypoints(buf []byte) ([]result.KeypointValue, error) {

	if len(buf)%compactKeypointSize != 0 {
		return nil, fmt.Errorf("compact keypoint data length %d is not a multiple of %d",
			len(buf), compactKeypointSize)
	}

	kps := make([]result.KeypointValue, len(buf)/compactKeypointSize)

	for i := range kps {
		off := i * compactKeypointSize

		kps[i] = result.KeypointValue{
			Index: i,
			X:     float64(f16LookupTable[binary.LittleEndian.Uint16(buf[off:])]),
			Y:     float64(f16LookupTable[binary.LittleEndian.Uint16(buf[off+2:])]),
			State: result.PointState(buf[off+4]),
		}
	}

	return kps, nil
}
