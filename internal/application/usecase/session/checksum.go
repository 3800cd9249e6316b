package session

import "strconv"

// timestampTruncation removes the last 3 digits of an epoch-millisecond
// timestamp before it enters the checksum, giving the comparison a roughly
// one-second tolerance window.
const timestampTruncation = 1000

// checksum computes a lightweight rolling hash over the session id, the
// fingerprint prefix, and the coarse timestamp. It detects local record
// tampering; the remote signature remains the security boundary.
func checksum(sessionID, fingerprintPrefix string, timestampMillis int64) string {
	data := sessionID + fingerprintPrefix + strconv.FormatInt(timestampMillis/timestampTruncation, 10)

	var hash int32
	for _, r := range data {
		hash = hash<<5 - hash + int32(r)
	}

	return strconv.FormatInt(int64(uint32(hash)), 36)
}
