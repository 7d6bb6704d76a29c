package api

import (
	"context"
	"time"
)

const pathNotifications = "/admin/notifications"

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  string    `json:"audience"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var out dataEnvelope[[]Notification]
	_, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(pathNotifications)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	var out dataEnvelope[Notification]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(n).
		SetResult(&out).
		Post(pathNotifications)
	if err != nil {
		return Notification{}, err
	}
	return out.Data, nil
}
