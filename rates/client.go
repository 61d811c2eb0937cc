package rates

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://open.er-api.com"

// Table maps ISO currency codes to multipliers relative to USD. Tables are
// never mutated after construction; a refresh produces a new one.
type Table map[string]float64

// Rate returns the multiplier for code, defaulting to 1.0 (the model's
// training currency) when the code is absent.
func (t Table) Rate(code string) float64 {
	if r, ok := t[code]; ok {
		return r
	}
	return 1.0
}

// fallbackRates is served whenever the live endpoint cannot be used.
var fallbackRates = Table{
	"USD": 1.0,
	"EUR": 0.85,
	"GBP": 0.75,
	"JPY": 110.0,
	"CAD": 1.25,
	"AUD": 1.35,
	"EGP": 50,
}

// The public API omits some currencies the form offers, EGP among them.
// Those get a fixed approximate rate instead of being treated as missing.
const approximateEGPRate = 50

// FallbackTable returns a copy of the fixed fallback rate table.
func FallbackTable() Table {
	t := make(Table, len(fallbackRates))
	for k, v := range fallbackRates {
		t[k] = v
	}
	return t
}

type ClientOpts struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches USD-relative exchange rates from an open.er-api.com style
// endpoint.
type Client struct {
	httpClient *resty.Client
}

func NewClient(opts ClientOpts) *Client {
	baseURL := DefaultBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	timeout := 10 * time.Second
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Fetch returns the current rate table. It never fails: network errors,
// non-success results and malformed bodies all degrade to the fallback
// table.
func (c *Client) Fetch(ctx context.Context) Table {
	result := &ratesResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetResult(result).
		Get("/v6/latest/USD")
	if err != nil {
		log.Warn().Err(err).Msg("exchange rate fetch failed, using fallback rates")
		return FallbackTable()
	}
	if res.IsError() || result.Result != "success" || len(result.Rates) == 0 {
		log.Warn().
			Int("status", res.StatusCode()).
			Str("result", result.Result).
			Msg("exchange rate response not usable, using fallback rates")
		return FallbackTable()
	}

	table := make(Table, len(result.Rates))
	for code, rate := range result.Rates {
		table[code] = rate
	}
	if _, ok := table["EGP"]; !ok {
		table["EGP"] = approximateEGPRate
	}
	return table
}
