package sharecode

import "github.com/rcliao/seriesmark/internal/model"

// codeReactions maps a 2-bit code to its reaction. Code 0 is reserved and
// never emitted.
var codeReactions = [4]model.Reaction{
	1: model.ReactionYes,
	2: model.ReactionMaybe,
	3: model.ReactionNo,
}

// reactionCode returns the 2-bit code for r. None and unknown values have no code.
func reactionCode(r model.Reaction) (byte, bool) {
	switch r {
	case model.ReactionYes:
		return 1, true
	case model.ReactionMaybe:
		return 2, true
	case model.ReactionNo:
		return 3, true
	}
	return 0, false
}

// packedLen is the byte length of n packed codes.
func packedLen(n int) int { return (n + 3) / 4 }

// appendPacked packs 2-bit codes four to a byte, entry 0 in the low bits.
func appendPacked(buf []byte, codes []byte) []byte {
	start := len(buf)
	buf = append(buf, make([]byte, packedLen(len(codes)))...)
	for i, c := range codes {
		buf[start+i/4] |= (c & 0b11) << (2 * (i % 4))
	}
	return buf
}

// unpack extracts n codes from packed.
func unpack(packed []byte, n int) ([]byte, error) {
	if len(packed) < packedLen(n) {
		return nil, ErrTruncated
	}
	codes := make([]byte, n)
	for i := range codes {
		codes[i] = (packed[i/4] >> (2 * (i % 4))) & 0b11
	}
	return codes, nil
}
