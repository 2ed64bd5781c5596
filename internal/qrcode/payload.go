// Package qrcode defines the textual payload embedded in check-in QR symbols
// and its parsing rules. The wire grammar is
//
//	<scheme>|<participantId>|<issuedAtEpochMillis>
//
// where <scheme> is a fixed version literal. Encoding and decoding are pure
// and idempotent; the embedded timestamp is informational unless the decoder
// is configured with a max age.
package qrcode

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// SchemeV1 is the only payload scheme the current engine accepts. Other
// scheme literals are reserved for future payload versions.
const SchemeV1 = "CHECKIN_v1"

const fieldSeparator = "|"

var (
	ErrInvalidFormat  = errors.New("payload does not match scheme|participantId|issuedAt grammar")
	ErrInvalidScheme  = errors.New("unknown payload scheme")
	ErrPayloadExpired = errors.New("payload is older than the configured max age")
)

// Payload is the decoded content of a QR symbol.
type Payload struct {
	Scheme        string
	ParticipantID string
	IssuedAt      time.Time
}

// Encode builds the v1 payload string for a participant. The participant id
// must not contain the field separator; payloads are generated once at
// participant-creation time and never rotated.
func Encode(participantID string, issuedAt time.Time) string {
	return SchemeV1 + fieldSeparator + participantID + fieldSeparator + strconv.FormatInt(issuedAt.UnixMilli(), 10)
}

// Decoder validates payload strings. A zero MaxAge disables the age check.
type Decoder struct {
	// MaxAge, when positive, rejects payloads issued more than MaxAge ago.
	MaxAge time.Duration

	// now is overridable for tests.
	now func() time.Time
}

// NewDecoder returns a Decoder with the given max age (zero disables expiry).
func NewDecoder(maxAge time.Duration) *Decoder {
	return &Decoder{MaxAge: maxAge, now: time.Now}
}

// Decode parses and validates a payload string. It never mutates state and
// returns ErrInvalidFormat, ErrInvalidScheme, or ErrPayloadExpired on
// rejection. The participant id is treated as an opaque string.
func (d *Decoder) Decode(payload string) (Payload, error) {
	parts := strings.Split(payload, fieldSeparator)
	if len(parts) != 3 {
		return Payload{}, ErrInvalidFormat
	}
	scheme, id, ts := parts[0], parts[1], parts[2]
	if id == "" {
		return Payload{}, ErrInvalidFormat
	}
	millis, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Payload{}, ErrInvalidFormat
	}
	if scheme != SchemeV1 {
		return Payload{}, ErrInvalidScheme
	}
	issuedAt := time.UnixMilli(millis)
	if d.MaxAge > 0 {
		now := time.Now
		if d.now != nil {
			now = d.now
		}
		if now().Sub(issuedAt) > d.MaxAge {
			return Payload{}, ErrPayloadExpired
		}
	}
	return Payload{Scheme: scheme, ParticipantID: id, IssuedAt: issuedAt}, nil
}
