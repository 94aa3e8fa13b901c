package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const subscriptionColumns = `id, name, description, cost, currency, billing_cycle, custom_cycle_days,
	next_billing_date, reminder_days_before, category, is_active, auto_renew, website_url, notes,
	created_at, updated_at`

// CreateSubscription создает подписку.
func CreateSubscription(ctx context.Context, db sqlx.ExtContext, sub *models.Subscription) error {
	now := nowFunc()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `INSERT INTO subscriptions (name, description, cost, currency, billing_cycle, custom_cycle_days,
	                                     next_billing_date, reminder_days_before, category, is_active, auto_renew,
	                                     website_url, notes, created_at, updated_at)
	          VALUES (:name, :description, :cost, :currency, :billing_cycle, :custom_cycle_days,
	                  :next_billing_date, :reminder_days_before, :category, :is_active, :auto_renew,
	                  :website_url, :notes, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, sub)
	if err != nil {
		return fmt.Errorf("CreateSubscription: ошибка вставки подписки: %w", err)
	}
	sub.ID = id
	return nil
}

// GetSubscriptionByID извлекает подписку по ID.
func GetSubscriptionByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Subscription, error) {
	sub := &models.Subscription{}
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = ?`
	if err := getOne(ctx, db, sub, "subscription", id, query); err != nil {
		return nil, fmt.Errorf("GetSubscriptionByID: ошибка получения подписки ID %d: %w", id, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки по дате ближайшего списания.
func ListSubscriptions(ctx context.Context, db sqlx.QueryerContext, f models.SubscriptionFilter) ([]models.Subscription, error) {
	b := squirrel.Select(subscriptionColumns).From("subscriptions")
	if f.ActiveOnly {
		b = b.Where(squirrel.Eq{"is_active": true})
	}
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": *f.Category})
	}
	b = b.OrderBy("next_billing_date ASC", "id ASC")

	subs := []models.Subscription{}
	if err := selectAll(ctx, db, &subs, b); err != nil {
		return nil, fmt.Errorf("ListSubscriptions: ошибка получения подписок: %w", err)
	}
	return subs, nil
}

// UpdateSubscription сохраняет все поля подписки.
func UpdateSubscription(ctx context.Context, db sqlx.ExtContext, sub *models.Subscription) error {
	sub.UpdatedAt = nowFunc()

	query := `UPDATE subscriptions SET
	            name = :name, description = :description, cost = :cost, currency = :currency,
	            billing_cycle = :billing_cycle, custom_cycle_days = :custom_cycle_days,
	            next_billing_date = :next_billing_date, reminder_days_before = :reminder_days_before,
	            category = :category, is_active = :is_active, auto_renew = :auto_renew,
	            website_url = :website_url, notes = :notes, updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, sub, "subscription", sub.ID); err != nil {
		return fmt.Errorf("UpdateSubscription: ошибка обновления подписки ID %d: %w", sub.ID, err)
	}
	return nil
}

// DeleteSubscription удаляет подписку по ID.
func DeleteSubscription(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "subscriptions", "subscription", id); err != nil {
		return fmt.Errorf("DeleteSubscription: ошибка удаления подписки ID %d: %w", id, err)
	}
	return nil
}
