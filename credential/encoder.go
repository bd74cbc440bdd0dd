package credential

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"time"
)

const recordFormatVersionV1 = 1

// Encode serializes a credential with stable field ordering. The output is
// the plaintext handed to the encryptor; it never touches storage unencrypted.
func Encode(c *Credential) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordFormatVersionV1)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"id", c.ID},
		{"userID", c.UserID},
		{"role", c.Role},
		{"salt", c.Salt},
		{"strength", c.Metadata.Strength},
		{"policyName", c.Metadata.PolicyName},
	} {
		if len(field.value) > 255 {
			return nil, errors.New(field.name + " too long")
		}
		buf.WriteByte(byte(len(field.value)))
		buf.WriteString(field.value)
	}

	// Hash strings exceed 255 bytes with 64-byte keys; length-prefix with
	// uint16.
	if len(c.Hash) > math.MaxUint16 {
		return nil, errors.New("hash too long")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(c.Hash))); err != nil {
		return nil, err
	}
	buf.WriteString(c.Hash)

	for _, ts := range []int64{c.CreatedAt.Unix(), c.LastUsedAt.Unix(), c.ExpiresAt.Unix()} {
		if err := binary.Write(&buf, binary.BigEndian, ts); err != nil {
			return nil, err
		}
	}

	if c.Active {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	buf.WriteByte(c.FailedAttempts)

	if err := binary.Write(&buf, binary.BigEndian, math.Float64bits(c.Metadata.EntropyBits)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func unixTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

// Decode parses a record produced by Encode.
func Decode(data []byte) (*Credential, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != recordFormatVersionV1 {
		return nil, errors.New("invalid record version")
	}

	c := &Credential{}

	short := make([]*string, 0, 6)
	short = append(short, &c.ID, &c.UserID, &c.Role, &c.Salt, &c.Metadata.Strength, &c.Metadata.PolicyName)
	for _, dst := range short {
		length, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(reader, raw); err != nil {
			return nil, err
		}
		*dst = string(raw)
	}

	var hashLen uint16
	if err := binary.Read(reader, binary.BigEndian, &hashLen); err != nil {
		return nil, err
	}
	rawHash := make([]byte, hashLen)
	if _, err := io.ReadFull(reader, rawHash); err != nil {
		return nil, err
	}
	c.Hash = string(rawHash)

	var createdAt, lastUsedAt, expiresAt int64
	for _, dst := range []*int64{&createdAt, &lastUsedAt, &expiresAt} {
		if err := binary.Read(reader, binary.BigEndian, dst); err != nil {
			return nil, err
		}
	}
	c.CreatedAt = unixTime(createdAt)
	c.LastUsedAt = unixTime(lastUsedAt)
	c.ExpiresAt = unixTime(expiresAt)

	active, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if active > 1 {
		return nil, errors.New("invalid active flag")
	}
	c.Active = active == 1

	c.FailedAttempts, err = reader.ReadByte()
	if err != nil {
		return nil, err
	}

	var entropyBits uint64
	if err := binary.Read(reader, binary.BigEndian, &entropyBits); err != nil {
		return nil, err
	}
	c.Metadata.EntropyBits = math.Float64frombits(entropyBits)

	if reader.Len() != 0 {
		return nil, errors.New("trailing record bytes")
	}

	return c, nil
}
