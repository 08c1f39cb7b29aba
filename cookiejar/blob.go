package cookiejar

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Attribute blobs use the protobuf wire format without a schema file.
const (
	fieldName     protowire.Number = 1
	fieldValue    protowire.Number = 2
	fieldDomain   protowire.Number = 3
	fieldPath     protowire.Number = 4
	fieldExpires  protowire.Number = 5 // unix seconds, zigzag
	fieldSecure   protowire.Number = 6
	fieldHTTPOnly protowire.Number = 7
	fieldHostOnly protowire.Number = 8
	fieldSameSite protowire.Number = 9
	fieldExpiresN protowire.Number = 10 // nanoseconds within the second
)

func appendBlob(b []byte, c *Cookie) []byte {
	b = appendString(b, fieldName, c.Name)
	b = appendString(b, fieldValue, c.Value)
	b = appendString(b, fieldDomain, c.Domain)
	b = appendString(b, fieldPath, c.Path)

	if !c.Expires.IsZero() {
		b = protowire.AppendTag(b, fieldExpires, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(c.Expires.Unix()))

		if ns := c.Expires.Nanosecond(); ns != 0 {
			b = protowire.AppendTag(b, fieldExpiresN, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(ns))
		}
	}

	b = appendBool(b, fieldSecure, c.Secure)
	b = appendBool(b, fieldHTTPOnly, c.HTTPOnly)
	b = appendBool(b, fieldHostOnly, c.HostOnly)

	if c.SameSite != SameSiteDefault {
		b = protowire.AppendTag(b, fieldSameSite, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c.SameSite))
	}

	return b
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func decodeBlob(b []byte) (Cookie, error) {
	var (
		c         Cookie
		sec, nsec int64
		expires   bool
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Cookie{}, corrupt(n)
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && num >= fieldName && num <= fieldPath:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}

			switch num {
			case fieldName:
				c.Name = string(v)
			case fieldValue:
				c.Value = string(v)
			case fieldDomain:
				c.Domain = string(v)
			case fieldPath:
				c.Path = string(v)
			}
		case typ == protowire.VarintType && num >= fieldExpires && num <= fieldExpiresN:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if n < 0 {
				break
			}

			switch num {
			case fieldExpires:
				sec, expires = protowire.DecodeZigZag(v), true
			case fieldExpiresN:
				nsec = int64(v % uint64(time.Second))
			case fieldSecure:
				c.Secure = protowire.DecodeBool(v)
			case fieldHTTPOnly:
				c.HTTPOnly = protowire.DecodeBool(v)
			case fieldHostOnly:
				c.HostOnly = protowire.DecodeBool(v)
			case fieldSameSite:
				c.SameSite = SameSite(v)
			}
		default:
			// Unknown fields are skipped for forward compatibility.
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return Cookie{}, corrupt(n)
		}
		b = b[n:]
	}

	if expires {
		c.Expires = time.Unix(sec, nsec).UTC()
	}

	return c, nil
}

func corrupt(n int) error {
	return fmt.Errorf("%w: %v", ErrCorruptBlob, protowire.ParseError(n))
}
