package types

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	timeLayout       = "2006-01-02T15:04:05"
	timeLayoutMillis = "2006-01-02T15:04:05.000"
)

// TimePointSec 秒级 UTC 时间戳，JSON 形式为 "2006-01-02T15:04:05"
type TimePointSec uint32

func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec(t.UTC().Unix())
}

func (t TimePointSec) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t TimePointSec) String() string {
	return t.Time().Format(timeLayout)
}

func (t TimePointSec) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimePointSec) UnmarshalText(text []byte) error {
	parsed, err := parseTime(string(text))
	if err != nil {
		return err
	}
	*t = NewTimePointSec(parsed)
	return nil
}

// TimePoint 毫秒精度时间，用于节点返回的区块时间
type TimePoint struct {
	time.Time
}

func (t TimePoint) MarshalText() ([]byte, error) {
	return []byte(t.UTC().Format(timeLayoutMillis)), nil
}

func (t *TimePoint) UnmarshalText(text []byte) error {
	parsed, err := parseTime(string(text))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// time.Time 自带的 MarshalJSON 会被提升，这里显式覆盖
func (t TimePoint) MarshalJSON() ([]byte, error) {
	text, _ := t.MarshalText()
	return json.Marshal(string(text))
}

func (t *TimePoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSuffix(s, "Z")
	layout := timeLayout
	if strings.Contains(s, ".") {
		layout = timeLayoutMillis
		if frac := s[strings.LastIndex(s, ".")+1:]; len(frac) != 3 {
			layout = timeLayout + "." + strings.Repeat("0", len(frac))
		}
	}
	return time.ParseInLocation(layout, s, time.UTC)
}
