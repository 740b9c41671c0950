package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/go-resty/resty/v2"
)

const (
	loginPath       = "/Auth/Login"
	collectionsPath = "/Collection/GetAll"
	productsPath    = "/Collection/{id}/GetProductsForConstants"
)

// Client talks to the remote commerce API.
type Client struct {
	log  *slog.Logger
	http *resty.Client
}

// NewClient creates a client for the API rooted at baseURL. Requests are never retried.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "collection-desk/1.0").
		SetRetryCount(0).
		SetLogger(restyLogger{log: log})

	return &Client{log: log, http: httpClient}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Data *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

// Login exchanges credentials for an access and refresh token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Tokens, error) {
	const opn = "commerce.Login"

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Username: username, Password: password}).
		Post(loginPath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to request %s: %w", opn, loginPath, err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%s: %w", opn, statusError(resp))
	}

	var body loginResponse
	if resp.IsSuccess() {
		if err = json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("%s: failed to decode login response: %w", opn, err)
		}
	}

	if !resp.IsSuccess() || body.Data == nil || body.Data.AccessToken == "" {
		c.log.WarnContext(ctx, "Login rejected", "op", opn, "username", username, "status code", resp.StatusCode())
		return nil, fmt.Errorf("%s: %w", opn, ErrInvalidCredentials)
	}

	c.log.InfoContext(ctx, "Login succeeded", "op", opn, "username", username)

	return &models.Tokens{AccessToken: body.Data.AccessToken, RefreshToken: body.Data.RefreshToken}, nil
}

type collectionsResponse struct {
	Data    []models.Collection `json:"data"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
}

// GetCollections returns every collection visible to the token holder.
func (c *Client) GetCollections(ctx context.Context, token string) ([]models.Collection, error) {
	const opn = "commerce.GetCollections"

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(collectionsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to request %s: %w", opn, collectionsPath, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%s: %w", opn, statusError(resp))
	}

	var body collectionsResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode collections: %w", opn, err)
	}

	if body.Error != "" {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		return nil, fmt.Errorf("%s: %w", opn, &APIError{Message: msg})
	}

	if body.Data == nil {
		body.Data = []models.Collection{}
	}

	c.log.DebugContext(ctx, "Fetched collections", "op", opn, "count", len(body.Data))

	return body.Data, nil
}

type productsResponse struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Data    *models.ProductPage `json:"data"`
}

// GetProducts returns one page of products of a collection.
func (c *Client) GetProducts(
	ctx context.Context,
	token string,
	collectionID int,
	req models.ProductPageRequest,
) (*models.ProductPage, error) {
	const opn = "commerce.GetProducts"

	if req.AdditionalFilters == nil {
		req.AdditionalFilters = []models.ProductFilter{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.Itoa(collectionID)).
		SetBody(req).
		Post(productsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to request products of collection %d: %w", opn, collectionID, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%s: %w", opn, statusError(resp))
	}

	var body productsResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode products: %w", opn, err)
	}

	if body.Status != http.StatusOK {
		msg := body.Message
		if msg == "" {
			msg = "API error"
		}
		return nil, fmt.Errorf("%s: %w", opn, &APIError{Status: body.Status, Message: msg})
	}

	page := body.Data
	if page == nil {
		page = &models.ProductPage{}
	}
	if page.Products == nil {
		page.Products = []models.Product{}
	}

	c.log.DebugContext(
		ctx,
		"Fetched product page",
		"op", opn,
		"collection", collectionID,
		"page", page.Meta.Page,
		"count", len(page.Products),
		"total", page.Meta.TotalProduct,
	)

	return page, nil
}

func statusError(resp *resty.Response) *StatusError {
	return &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
}

// restyLogger routes resty's internal messages into slog.
type restyLogger struct {
	log *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
