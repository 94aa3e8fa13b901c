package models

import "time"

// BillingCycle - периодичность списания по подписке.
type BillingCycle string

const (
	BillingWeekly    BillingCycle = "weekly"
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingAnnual    BillingCycle = "annual"
	BillingCustom    BillingCycle = "custom"
)

// BillingCycles - допустимые значения billing_cycle.
var BillingCycles = []string{
	string(BillingWeekly), string(BillingMonthly), string(BillingQuarterly),
	string(BillingAnnual), string(BillingCustom),
}

const (
	DefaultCurrency           = "USD"
	DefaultReminderDaysBefore = 3
)

// Subscription представляет регулярную подписку.
// ReminderDate вычисляется при чтении и в БД не хранится.
type Subscription struct {
	ID                 int64        `json:"id" db:"id"`
	Name               string       `json:"name" db:"name"`
	Description        *string      `json:"description" db:"description"`
	Cost               float64      `json:"cost" db:"cost"`
	Currency           string       `json:"currency" db:"currency"`
	BillingCycle       BillingCycle `json:"billing_cycle" db:"billing_cycle"`
	CustomCycleDays    *int         `json:"custom_cycle_days" db:"custom_cycle_days"`
	NextBillingDate    Date         `json:"next_billing_date" db:"next_billing_date"`
	ReminderDaysBefore int          `json:"reminder_days_before" db:"reminder_days_before"`
	ReminderDate       Date         `json:"reminder_date" db:"-"`
	Category           *string      `json:"category" db:"category"`
	IsActive           bool         `json:"is_active" db:"is_active"`
	AutoRenew          bool         `json:"auto_renew" db:"auto_renew"`
	WebsiteURL         *string      `json:"website_url" db:"website_url"`
	Notes              *string      `json:"notes" db:"notes"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

// SubscriptionFilter - параметры выборки подписок.
type SubscriptionFilter struct {
	ActiveOnly bool
	Category   *string
}

// CreateSubscriptionRequest - тело запроса на создание подписки.
type CreateSubscriptionRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Cost               *float64 `json:"cost"`
	Currency           *string  `json:"currency"`
	BillingCycle       *string  `json:"billing_cycle"`
	CustomCycleDays    *int     `json:"custom_cycle_days"`
	NextBillingDate    *string  `json:"next_billing_date"`
	ReminderDaysBefore *int     `json:"reminder_days_before"`
	Category           *string  `json:"category"`
	IsActive           *bool    `json:"is_active"`
	AutoRenew          *bool    `json:"auto_renew"`
	WebsiteURL         *string  `json:"website_url"`
	Notes              *string  `json:"notes"`
}

// UpdateSubscriptionRequest - тело запроса на частичное обновление подписки.
type UpdateSubscriptionRequest struct {
	Name               Optional[string]  `json:"name"`
	Description        Optional[string]  `json:"description"`
	Cost               Optional[float64] `json:"cost"`
	Currency           Optional[string]  `json:"currency"`
	BillingCycle       Optional[string]  `json:"billing_cycle"`
	CustomCycleDays    Optional[int]     `json:"custom_cycle_days"`
	NextBillingDate    Optional[string]  `json:"next_billing_date"`
	ReminderDaysBefore Optional[int]     `json:"reminder_days_before"`
	Category           Optional[string]  `json:"category"`
	IsActive           Optional[bool]    `json:"is_active"`
	AutoRenew          Optional[bool]    `json:"auto_renew"`
	WebsiteURL         Optional[string]  `json:"website_url"`
	Notes              Optional[string]  `json:"notes"`
}
