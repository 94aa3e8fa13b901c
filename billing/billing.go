// Package billing содержит правила расчета дат списания и напоминаний по подпискам.
// Длительности циклов фиксированы в днях и не учитывают календарь:
// "monthly" всегда +30 дней (31 января -> 2 марта).
package billing

import "loom_server_go/models"

// Длительность стандартных циклов в днях.
const (
	WeeklyDays    = 7
	MonthlyDays   = 30
	QuarterlyDays = 90
	AnnualDays    = 365
)

// CycleDays возвращает длительность цикла в днях и false, если цикл не задан
// (custom без custom_cycle_days или неизвестное значение).
func CycleDays(cycle models.BillingCycle, customDays *int) (int, bool) {
	switch cycle {
	case models.BillingWeekly:
		return WeeklyDays, true
	case models.BillingMonthly:
		return MonthlyDays, true
	case models.BillingQuarterly:
		return QuarterlyDays, true
	case models.BillingAnnual:
		return AnnualDays, true
	case models.BillingCustom:
		if customDays != nil && *customDays > 0 {
			return *customDays, true
		}
	}
	return 0, false
}

// NextBillingDate возвращает дату следующего списания после current.
// Если цикл не задан, дата возвращается без изменений.
func NextBillingDate(current models.Date, cycle models.BillingCycle, customDays *int) models.Date {
	days, ok := CycleDays(cycle, customDays)
	if !ok {
		return current
	}
	return current.AddDays(days)
}

// ReminderDate - дата, начиная с которой нужно напоминать о списании.
func ReminderDate(next models.Date, daysBefore int) models.Date {
	return next.AddDays(-daysBefore)
}

// ShouldSendReminder истинно, если ReminderDate <= today < next.
// В сам день списания напоминание уже не отправляется.
func ShouldSendReminder(today, next models.Date, daysBefore int) bool {
	reminder := ReminderDate(next, daysBefore)
	return !today.Before(reminder.Time) && today.Before(next.Time)
}

// Renew переносит next_billing_date подписки на следующий цикл.
// Каждый вызов - отдельное продление: два вызова сдвигают дату дважды.
func Renew(sub *models.Subscription) {
	sub.NextBillingDate = NextBillingDate(sub.NextBillingDate, sub.BillingCycle, sub.CustomCycleDays)
	sub.ReminderDate = ReminderDate(sub.NextBillingDate, sub.ReminderDaysBefore)
}

// Annotate заполняет вычисляемое поле reminder_date.
func Annotate(sub *models.Subscription) {
	sub.ReminderDate = ReminderDate(sub.NextBillingDate, sub.ReminderDaysBefore)
}
