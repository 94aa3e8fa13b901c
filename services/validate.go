package services

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"loom_server_go/common"
	"loom_server_go/models"
)

// requiredString возвращает значение обязательного строкового поля.
// Отсутствующее поле и пустая строка считаются ошибкой.
func requiredString(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", common.Required(field)
	}
	return *v, nil
}

func oneOf(field, v string, allowed []string) error {
	if !slices.Contains(allowed, v) {
		return common.Invalid(field, "must be one of %s, got %q", strings.Join(allowed, ", "), v)
	}
	return nil
}

// enumOrDefault возвращает значение перечисления или def, если поле не передано.
func enumOrDefault(field string, v *string, def string, allowed []string) (string, error) {
	if v == nil {
		return def, nil
	}
	if err := oneOf(field, *v, allowed); err != nil {
		return "", err
	}
	return *v, nil
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func parseTimestamp(field, s string) (time.Time, error) {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, common.Invalid(field, "invalid ISO-8601 timestamp %q", s)
	}
	return t, nil
}

func parseOptionalTimestamp(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTimestamp(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseRequiredTimestamp(field string, s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, common.Required(field)
	}
	return parseTimestamp(field, *s)
}

func parseDate(field, s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, common.Invalid(field, "invalid ISO-8601 date %q", s)
	}
	return d, nil
}

func parseRequiredDate(field string, s *string) (models.Date, error) {
	if s == nil || *s == "" {
		return models.Date{}, common.Required(field)
	}
	return parseDate(field, *s)
}

func parseOptionalTimeOfDay(field string, s *string) (*models.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := models.ParseTimeOfDay(*s)
	if err != nil {
		return nil, common.Invalid(field, "invalid time %q", *s)
	}
	return &t, nil
}

// --- Частичные обновления ---

// setRequired применяет Optional к обязательной колонке: null недопустим.
func setRequired[T any](field string, o models.Optional[T], dst *T) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return common.Invalid(field, "must not be null")
	}
	*dst = o.Value
	return nil
}

// setRequiredString - setRequired для строк, дополнительно запрещает пустую строку.
func setRequiredString(field string, o models.Optional[string], dst *string) error {
	if o.HasValue() && strings.TrimSpace(o.Value) == "" {
		return common.Required(field)
	}
	return setRequired(field, o, dst)
}

// setRequiredEnum - setRequired для перечислений.
func setRequiredEnum(field string, o models.Optional[string], allowed []string, dst *string) error {
	if o.HasValue() {
		if err := oneOf(field, o.Value, allowed); err != nil {
			return err
		}
	}
	return setRequired(field, o, dst)
}

// setNullable применяет Optional к необязательной колонке: null очищает значение.
func setNullable[T any](o models.Optional[T], dst **T) {
	if o.Set {
		*dst = o.Ptr()
	}
}

func setNullableTimestamp(field string, o models.Optional[string], dst **time.Time) error {
	if !o.Set {
		return nil
	}
	if o.Null || o.Value == "" {
		*dst = nil
		return nil
	}
	t, err := parseTimestamp(field, o.Value)
	if err != nil {
		return err
	}
	*dst = &t
	return nil
}

func setRequiredTimestamp(field string, o models.Optional[string], dst *time.Time) error {
	if !o.Set {
		return nil
	}
	if o.Null || o.Value == "" {
		return common.Invalid(field, "must not be null")
	}
	t, err := parseTimestamp(field, o.Value)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

func setRequiredDate(field string, o models.Optional[string], dst *models.Date) error {
	if !o.Set {
		return nil
	}
	if o.Null || o.Value == "" {
		return common.Invalid(field, "must not be null")
	}
	d, err := parseDate(field, o.Value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func setNullableTimeOfDay(field string, o models.Optional[string], dst **models.TimeOfDay) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		*dst = nil
		return nil
	}
	t, err := parseOptionalTimeOfDay(field, &o.Value)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// parseCompletedAt разбирает значение completed_at из запроса на обновление:
// строка ISO-8601 - установить, true - текущее время, false - очистить.
func parseCompletedAt(raw json.RawMessage, now time.Time) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		if !flag {
			return nil, nil
		}
		return &now, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, common.Invalid("completed_at", "must be an ISO-8601 timestamp, true or null")
	}
	return parseOptionalTimestamp("completed_at", &s)
}

// --- Проверки диапазонов ---

func nonNegative(field string, v *int) error {
	if v != nil && *v < 0 {
		return common.Invalid(field, "must not be negative")
	}
	return nil
}

func positive(field string, v int) error {
	if v <= 0 {
		return common.Invalid(field, "must be positive")
	}
	return nil
}

func weekDay(v *int) error {
	if v != nil && (*v < 0 || *v > 6) {
		return common.Invalid("week_day", "must be between 0 and 6")
	}
	return nil
}

func validateTags(field string, tags []string) error {
	for _, tag := range tags {
		if tag == "" {
			return common.Invalid(field, "tags must not be empty")
		}
		if strings.Contains(tag, models.TagSeparator) {
			return common.Invalid(field, "tag %q must not contain %q", tag, models.TagSeparator)
		}
	}
	return nil
}
