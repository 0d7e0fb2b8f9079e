package authservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UnknownCounselorName имя-заглушка, используемое при недоступности AuthService
const UnknownCounselorName = "Unknown Counselor"

// Client клиент для работы с AuthService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AuthService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль пользователя по ID
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/users/%d/profile", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetCounselorName получает отображаемое имя консультанта с graceful degradation.
// При недоступности AuthService или отсутствии профиля возвращается
// имя-заглушка, чтобы не блокировать основной сценарий бронирования.
func (c *Client) GetCounselorName(ctx context.Context, counselorID int64) string {
	profile, err := c.GetProfile(ctx, counselorID)
	if err != nil {
		// Любая ошибка здесь не критична для бронирования —
		// повышаем уровень логирования до WARN и продолжаем с заглушкой
		c.log.Warn("AuthService unavailable, using fallback counselor name for counselor_id=%d: %v", counselorID, err)
		return UnknownCounselorName
	}

	name := profile.FullName()
	if name == "" {
		return UnknownCounselorName
	}

	c.log.Info("Fetched counselor profile: counselor_id=%d", counselorID)
	return name
}
