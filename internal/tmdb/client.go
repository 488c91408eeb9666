// Package tmdb реализует клиент к API метаданных фильмов TMDB.
// Ответы TMDB передаются клиенту без изменения структуры.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Значения конфигурации по умолчанию.
const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "es-ES"
	DefaultTimeout  = 10 * time.Second

	// maxErrorBody ограничивает объем тела ошибки, попадающего в лог.
	maxErrorBody = 512
)

// ErrUpstream сигнализирует о неуспешном ответе TMDB.
var ErrUpstream = errors.New("tmdb: неуспешный ответ")

// Config содержит параметры подключения к TMDB.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// Client выполняет запросы к TMDB.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// NewClient создает клиента TMDB. Незаданные поля получают значения по умолчанию.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.APIKey == "" {
		log.Warn("[TMDB] API ключ не задан, запросы к TMDB будут отклонены")
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Trending возвращает фильмы в тренде за неделю.
func (c *Client) Trending(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/trending/movie/week", nil)
}

// Popular возвращает первую страницу популярных фильмов.
func (c *Client) Popular(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/movie/popular", url.Values{"page": {"1"}})
}

// TopRatedTV возвращает первую страницу сериалов с наивысшим рейтингом.
func (c *Client) TopRatedTV(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/tv/top_rated", url.Values{"page": {"1"}})
}

// SearchMovies ищет фильмы по строке запроса.
func (c *Client) SearchMovies(ctx context.Context, query string) (json.RawMessage, error) {
	return c.get(ctx, "/search/movie", url.Values{"query": {query}})
}

// MovieDetails возвращает детали фильма с вложенным полем credits.
// Детали и состав запрашиваются параллельно, ошибка любого запроса отменяет другой.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error) {
	id := strconv.FormatInt(movieID, 10)

	var details, credits json.RawMessage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = c.get(gctx, "/movie/"+id, nil)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = c.get(gctx, "/movie/"+id+"/credits", nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Поля деталей сохраняются как есть, credits добавляется поверх
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(details, &merged); err != nil {
		return nil, fmt.Errorf("%w: детали фильма %d не являются JSON объектом: %w", ErrUpstream, movieID, err)
	}
	// null разбирается без ошибки в nil map
	if merged == nil {
		return nil, fmt.Errorf("%w: пустые детали фильма %d", ErrUpstream, movieID)
	}
	merged["credits"] = credits

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования деталей фильма %d: %w", movieID, err)
	}
	return out, nil
}

// get выполняет GET запрос к TMDB и возвращает тело ответа.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования URL %s: %w", path, err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error содержит полный адрес вместе с api_key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("ошибка выполнения запроса %s: %w", path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("[TMDB] Ошибка закрытия тела ответа")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.WithFields(log.Fields{
			"path":   path,
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("[TMDB] Неуспешный ответ")
		return nil, fmt.Errorf("%w: %s статус %d", ErrUpstream, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа %s: %w", path, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s вернул не JSON", ErrUpstream, path)
	}
	return body, nil
}
