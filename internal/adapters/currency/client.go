package currency

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"yasen/internal/adapters/httpclient"
	"yasen/internal/core/domain"
)

// Client converts amounts through a Frankfurter compatible rates API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: httpclient.New("currency", 5),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (*domain.Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	if from == to {
		return &domain.Conversion{From: from, To: to, Amount: amount, Result: amount}, nil
	}

	params := url.Values{}
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	params.Set("from", from)
	params.Set("to", to)

	var data latestResponse
	err := httpclient.GetJSON(ctx, c.httpClient, c.baseURL+"/latest?"+params.Encode(), &data)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusNotFound || statusErr.StatusCode == http.StatusUnprocessableEntity) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetch rates: %w", err)
	}

	result, ok := data.Rates[to]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return &domain.Conversion{
		From:   from,
		To:     to,
		Amount: amount,
		Result: result,
		Date:   data.Date,
	}, nil
}
