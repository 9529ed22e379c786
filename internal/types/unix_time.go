package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Timestamp sent by the service as whole seconds since the epoch
type UnixTime struct {
	time.Time
}

func (u *UnixTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		u.Time = time.Time{}
		return nil
	}

	var secs json.Number
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}

	n, err := strconv.ParseInt(secs.String(), 10, 64)
	if err != nil {
		return err
	}
	if n == 0 {
		u.Time = time.Time{}
		return nil
	}

	u.Time = time.Unix(n, 0).UTC()
	return nil
}

func (u UnixTime) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(u.Unix(), 10)), nil
}
