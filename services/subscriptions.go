package services

import (
	"context"
	"fmt"

	"loom_server_go/billing"
	"loom_server_go/common"
	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// SubscriptionService управляет подписками и расчетом дат списания.
type SubscriptionService struct {
	base
}

func NewSubscriptionService(store *data.Store, log logging.Logger) *SubscriptionService {
	return &SubscriptionService{base: newBase(store, log, "subscriptions")}
}

func (s *SubscriptionService) List(ctx context.Context, f models.SubscriptionFilter) ([]models.Subscription, error) {
	subs, err := data.ListSubscriptions(ctx, s.store.DB(), f)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		billing.Annotate(&subs[i])
	}
	return subs, nil
}

// Reminders возвращает активные подписки, по которым сегодня (UTC) нужно напомнить о списании.
func (s *SubscriptionService) Reminders(ctx context.Context) ([]models.Subscription, error) {
	subs, err := data.ListSubscriptions(ctx, s.store.DB(), models.SubscriptionFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	today := models.DateOf(s.now())
	due := []models.Subscription{}
	for _, sub := range subs {
		if billing.ShouldSendReminder(today, sub.NextBillingDate, sub.ReminderDaysBefore) {
			billing.Annotate(&sub)
			due = append(due, sub)
		}
	}
	return due, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id int64) (*models.Subscription, error) {
	sub, err := data.GetSubscriptionByID(ctx, s.store.DB(), id)
	if err != nil {
		return nil, err
	}
	billing.Annotate(sub)
	return sub, nil
}

func (s *SubscriptionService) Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	name, err := requiredString("name", req.Name)
	if err != nil {
		return nil, err
	}
	if req.Cost == nil {
		return nil, common.Required("cost")
	}
	if req.BillingCycle == nil {
		return nil, common.Required("billing_cycle")
	}
	if err := oneOf("billing_cycle", *req.BillingCycle, models.BillingCycles); err != nil {
		return nil, err
	}
	next, err := parseRequiredDate("next_billing_date", req.NextBillingDate)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		Name:               name,
		Description:        req.Description,
		Cost:               *req.Cost,
		Currency:           orDefault(req.Currency, models.DefaultCurrency),
		BillingCycle:       models.BillingCycle(*req.BillingCycle),
		CustomCycleDays:    req.CustomCycleDays,
		NextBillingDate:    next,
		ReminderDaysBefore: orDefault(req.ReminderDaysBefore, models.DefaultReminderDaysBefore),
		Category:           req.Category,
		IsActive:           orDefault(req.IsActive, true),
		AutoRenew:          orDefault(req.AutoRenew, true),
		WebsiteURL:         req.WebsiteURL,
		Notes:              req.Notes,
	}
	if sub.Currency == "" {
		sub.Currency = models.DefaultCurrency
	}
	if err := validateSubscription(sub); err != nil {
		return nil, err
	}
	if err := data.CreateSubscription(ctx, s.store.DB(), sub); err != nil {
		return nil, fmt.Errorf("SubscriptionService.Create: %w", err)
	}
	billing.Annotate(sub)
	s.log.Debug(ctx, "подписка создана", "id", sub.ID, "cycle", sub.BillingCycle)
	return sub, nil
}

func (s *SubscriptionService) Update(ctx context.Context, id int64, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	var sub *models.Subscription
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if sub, err = data.GetSubscriptionByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("name", req.Name, &sub.Name); err != nil {
			return err
		}
		setNullable(req.Description, &sub.Description)
		if err := setRequired("cost", req.Cost, &sub.Cost); err != nil {
			return err
		}
		if err := setRequiredString("currency", req.Currency, &sub.Currency); err != nil {
			return err
		}
		cycle := string(sub.BillingCycle)
		if err := setRequiredEnum("billing_cycle", req.BillingCycle, models.BillingCycles, &cycle); err != nil {
			return err
		}
		sub.BillingCycle = models.BillingCycle(cycle)
		setNullable(req.CustomCycleDays, &sub.CustomCycleDays)
		if err := setRequiredDate("next_billing_date", req.NextBillingDate, &sub.NextBillingDate); err != nil {
			return err
		}
		if err := setRequired("reminder_days_before", req.ReminderDaysBefore, &sub.ReminderDaysBefore); err != nil {
			return err
		}
		setNullable(req.Category, &sub.Category)
		if err := setRequired("is_active", req.IsActive, &sub.IsActive); err != nil {
			return err
		}
		if err := setRequired("auto_renew", req.AutoRenew, &sub.AutoRenew); err != nil {
			return err
		}
		setNullable(req.WebsiteURL, &sub.WebsiteURL)
		setNullable(req.Notes, &sub.Notes)
		if err := validateSubscription(sub); err != nil {
			return err
		}
		return data.UpdateSubscription(ctx, tx, sub)
	})
	if err != nil {
		return nil, fmt.Errorf("SubscriptionService.Update: %w", err)
	}
	billing.Annotate(sub)
	return sub, nil
}

// Renew переносит дату списания на следующий цикл. Каждый вызов - новое продление.
func (s *SubscriptionService) Renew(ctx context.Context, id int64) (*models.Subscription, error) {
	var sub *models.Subscription
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if sub, err = data.GetSubscriptionByID(ctx, tx, id); err != nil {
			return err
		}
		billing.Renew(sub)
		return data.UpdateSubscription(ctx, tx, sub)
	})
	if err != nil {
		return nil, fmt.Errorf("SubscriptionService.Renew: %w", err)
	}
	s.log.Info(ctx, "подписка продлена", "id", sub.ID, "next_billing_date", sub.NextBillingDate.String())
	return sub, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	return data.DeleteSubscription(ctx, s.store.DB(), id)
}

// validateSubscription проверяет согласованность полей после применения значений по умолчанию.
func validateSubscription(sub *models.Subscription) error {
	if sub.Cost < 0 {
		return common.Invalid("cost", "must not be negative")
	}
	if sub.ReminderDaysBefore < 0 {
		return common.Invalid("reminder_days_before", "must not be negative")
	}
	if sub.BillingCycle == models.BillingCustom && (sub.CustomCycleDays == nil || *sub.CustomCycleDays <= 0) {
		return common.Invalid("custom_cycle_days", "must be a positive number of days for the custom billing cycle")
	}
	return nil
}
