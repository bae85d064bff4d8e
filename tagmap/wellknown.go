package tagmap

import (
	"errors"
	"time"

	"github.com/wiretype/cbor"
)

// DateTimeStringTag returns a ClassTag for CBOR tag 0 (standard date/time
// string, RFC 8949 §3.4.1): a time.Time is matched and encoded as the
// RFC 3339 text produced by t.Format(time.RFC3339Nano), and decoded back
// with time.Parse(time.RFC3339, ...). Per SPEC_FULL.md §4.9 this is an
// opt-in registration, not a default: register it in a Mapper's classTags
// slice to get tag-0 round-tripping for time.Time values.
func DateTimeStringTag() ClassTag {
	return ClassTag{
		TagNumber: uint64(cbor.TagDateTimeString),
		Predicate: func(v any) bool {
			_, ok := v.(time.Time)
			return ok
		},
		Encode: func(v any) (cbor.Value, error) {
			t := v.(time.Time)
			return cbor.Text(t.Format(time.RFC3339Nano)), nil
		},
		Decode: func(inner cbor.Value) (any, error) {
			text, ok := inner.(cbor.Text)
			if !ok {
				return nil, errors.New("tagmap: tag 0 inner value is not a text string")
			}
			return time.Parse(time.RFC3339, string(text))
		},
	}
}

// UnixTimeTag returns a ClassTag for CBOR tag 1 (epoch-based date/time,
// RFC 8949 §3.4.2): a time.Time is matched and encoded as a float64 count
// of seconds since the Unix epoch when it carries sub-second precision, or
// as an integer when it doesn't, matching the RFC's guidance to prefer
// integers "if integer values suffice". Decode accepts either Uint, NegInt,
// or Float as the inner value.
func UnixTimeTag() ClassTag {
	return ClassTag{
		TagNumber: uint64(cbor.TagUnixTime),
		Predicate: func(v any) bool {
			_, ok := v.(time.Time)
			return ok
		},
		Encode: func(v any) (cbor.Value, error) {
			t := v.(time.Time)
			if ns := t.Nanosecond(); ns != 0 {
				return cbor.Float(float64(t.UnixNano()) / 1e9), nil
			}
			return cbor.IntValue(t.Unix()), nil
		},
		Decode: func(inner cbor.Value) (any, error) {
			switch v := inner.(type) {
			case cbor.Uint:
				return time.Unix(int64(v), 0), nil
			case cbor.NegInt:
				n, ok := v.Int64()
				if !ok {
					return nil, errors.New("tagmap: tag 1 NegInt overflows int64")
				}
				return time.Unix(n, 0), nil
			case cbor.Float:
				secs := float64(v)
				whole := int64(secs)
				frac := secs - float64(whole)
				return time.Unix(whole, int64(frac*1e9)), nil
			default:
				return nil, errors.New("tagmap: tag 1 inner value is not a number")
			}
		},
	}
}
