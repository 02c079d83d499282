package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с Notification Sink
// Уведомления fire-and-forget: ошибка доставки логируется и никогда
// не откатывает уже зафиксированное бронирование
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Notification Sink
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет событие в Notification Sink
func (c *Client) Notify(ctx context.Context, businessID int64, event Event) error {
	url := fmt.Sprintf("%s/internal/businesses/%d/notifications", c.baseURL, businessID)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// NotifyAsync отправляет событие в фоне, не блокируя вызывающего
// Использует собственный контекст с таймаутом: запрос-родитель к этому
// моменту уже мог завершиться
func (c *Client) NotifyAsync(businessID int64, event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := c.Notify(ctx, businessID, event); err != nil {
			c.log.Error("Failed to deliver %s event for business_id=%d, appointment_id=%d: %v",
				event.Type, businessID, event.AppointmentID, err)
			return
		}

		c.log.Info("Delivered %s event for business_id=%d, appointment_id=%d",
			event.Type, businessID, event.AppointmentID)
	}()
}
