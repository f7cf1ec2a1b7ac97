// Package sharecode packs a sparse set of movie reactions into a short,
// URL-safe token and back.
//
// Wire format, before base64 (standard alphabet, padded):
//
//	[count varint][count x index varint][ceil(count/4) bytes of 2-bit codes]
//
// Indices are positions in the caller's catalog, so encode and decode must
// see the catalog in the same order. No reactions encode to "".
package sharecode

import (
	"encoding/base64"
	"errors"

	"go.uber.org/zap"

	"github.com/rcliao/seriesmark/internal/model"
)

var (
	// ErrBadEncoding means the token is not valid base64.
	ErrBadEncoding = errors.New("sharecode: invalid base64")
	// ErrTruncated means the token ended before a varint or the packed codes did.
	ErrTruncated = errors.New("sharecode: truncated token")
	// ErrOverflow means a varint does not fit in an int.
	ErrOverflow = errors.New("sharecode: varint overflow")
)

var encoding = base64.StdEncoding

// Catalog is the ordered movie list a token is resolved against.
type Catalog interface {
	Len() int
	ID(i int) string
}

// IDs is a Catalog backed by a plain slice of movie ids.
type IDs []string

func (s IDs) Len() int        { return len(s) }
func (s IDs) ID(i int) string { return s[i] }

// Result is a successfully parsed token.
type Result struct {
	Reactions model.ReactionMap
	// Skipped counts entries whose index fell outside the catalog or whose
	// code was unknown. A non-zero value usually means catalog drift.
	Skipped int
}

// Codec encodes and decodes tokens, reporting decode problems to its logger.
// The zero value is not usable; call New.
type Codec struct {
	log *zap.Logger
}

// New returns a Codec. A nil logger disables diagnostics.
func New(log *zap.Logger) *Codec {
	if log == nil {
		log = zap.NewNop()
	}
	return &Codec{log: log.Named("sharecode")}
}

var std = New(nil)

// Encode serializes the non-none reactions of catalog entries in catalog order.
func Encode(reactions model.ReactionMap, catalog Catalog) string {
	return std.Encode(reactions, catalog)
}

// Decode parses token against catalog. It never fails: malformed tokens
// yield an empty map and stale indices are skipped.
func Decode(token string, catalog Catalog) model.ReactionMap {
	return std.Decode(token, catalog)
}

// Encode serializes the non-none reactions of catalog entries in catalog order.
func (c *Codec) Encode(reactions model.ReactionMap, catalog Catalog) string {
	var (
		indices []int
		codes   []byte
	)
	for i := 0; i < catalog.Len(); i++ {
		code, ok := reactionCode(reactions[catalog.ID(i)])
		if !ok {
			continue
		}
		indices = append(indices, i)
		codes = append(codes, code)
	}
	if len(indices) == 0 {
		return ""
	}

	buf := make([]byte, 0, 2+2*len(indices)+packedLen(len(codes)))
	buf = AppendVarint(buf, len(indices))
	for _, idx := range indices {
		buf = AppendVarint(buf, idx)
	}
	buf = appendPacked(buf, codes)
	return encoding.EncodeToString(buf)
}

// Decode parses token against catalog. It never fails: malformed tokens
// yield an empty map and stale indices are skipped.
func (c *Codec) Decode(token string, catalog Catalog) model.ReactionMap {
	return c.DecodeResult(token, catalog).Reactions
}

// DecodeResult is Decode that also reports how many entries were skipped.
func (c *Codec) DecodeResult(token string, catalog Catalog) Result {
	res, err := Parse(token, catalog)
	if err != nil {
		c.log.Warn("discarding malformed share token", zap.Error(err), zap.Int("token_len", len(token)))
		return Result{Reactions: model.ReactionMap{}}
	}
	if res.Skipped > 0 {
		c.log.Warn("share token references movies outside the catalog",
			zap.Int("skipped", res.Skipped),
			zap.Int("decoded", len(res.Reactions)),
			zap.Int("catalog_len", catalog.Len()))
	}
	return res
}

// Parse is Decode with errors exposed. An empty token is not an error.
// Bytes after the packed codes are ignored.
func Parse(token string, catalog Catalog) (Result, error) {
	res := Result{Reactions: model.ReactionMap{}}
	if token == "" {
		return res, nil
	}

	buf, err := encoding.DecodeString(token)
	if err != nil {
		return res, errors.Join(ErrBadEncoding, err)
	}

	count, off, err := ReadVarint(buf, 0)
	if err != nil {
		return res, err
	}
	if count == 0 {
		return res, nil
	}
	// Every index takes at least one byte.
	if count > len(buf)-off {
		return res, ErrTruncated
	}

	indices := make([]int, count)
	for i := range indices {
		indices[i], off, err = ReadVarint(buf, off)
		if err != nil {
			return res, err
		}
	}

	codes, err := unpack(buf[off:], count)
	if err != nil {
		return res, err
	}

	n := catalog.Len()
	for i, idx := range indices {
		r := codeReactions[codes[i]]
		if idx >= n || r == "" {
			res.Skipped++
			continue
		}
		res.Reactions[catalog.ID(idx)] = r
	}
	return res, nil
}
