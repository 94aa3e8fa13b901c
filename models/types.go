package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Optional представляет поле запроса на частичное обновление.
// Set == false - ключ отсутствовал в JSON (поле не трогаем),
// Set && Null - ключ передан как null (очищаем поле),
// иначе - новое значение в Value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON вызывается только для присутствующих ключей, поэтому Set выставляется здесь.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Some создает Optional с установленным значением.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null создает Optional, явно переданный как null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// HasValue сообщает, что передано значение, отличное от null.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr возвращает указатель на значение или nil для null.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04:05"
)

// timestampLayouts - форматы ISO-8601, которые принимает API.
// Время без смещения трактуется как UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseTimestamp разбирает строку ISO-8601 и возвращает время в UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// Date - календарная дата без времени (полночь UTC).
// В JSON и в БД хранится как "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate создает дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время суток у t (в UTC).
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate принимает "YYYY-MM-DD" или полный timestamp, из которого берется дата.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid ISO-8601 date %q", s)
	}
	return DateOf(t), nil
}

// AddDays сдвигает дату на n суток (n может быть отрицательным).
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner. Драйвер sqlite3 отдает колонки DATE как time.Time.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// Value реализует driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// TimeOfDay - время суток без даты, "HH:MM:SS".
type TimeOfDay struct {
	Hour, Minute, Second int
}

// ParseTimeOfDay принимает "HH:MM", "HH:MM:SS" или полный timestamp.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timeOfDayLayout, "15:04", "15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{t.Hour(), t.Minute(), t.Second()}, nil
		}
	}
	if t, err := ParseTimestamp(s); err == nil && strings.ContainsAny(s, "T ") {
		return TimeOfDay{t.Hour(), t.Minute(), t.Second()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *TimeOfDay) Scan(value any) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = TimeOfDay{v.Hour(), v.Minute(), v.Second()}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// TagSeparator - разделитель тегов в колонке notes.tags.
const TagSeparator = ","

// TagList - упорядоченный список тегов. В БД хранится одной строкой через запятую
// (наследие старой схемы), наружу всегда отдается как JSON-массив.
type TagList []string

// Value склеивает теги. Пустой список хранится как NULL.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return strings.Join(t, TagSeparator), nil
}

func (t *TagList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		*t = splitTags(v)
		return nil
	case []byte:
		*t = splitTags(string(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
}

func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON принимает как массив строк, так и строку "a,b,c".
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = TagList(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tags must be an array of strings or a comma-separated string")
	}
	*t = splitTags(s)
	return nil
}

func splitTags(s string) TagList {
	if s == "" {
		return TagList{}
	}
	return TagList(strings.Split(s, TagSeparator))
}
