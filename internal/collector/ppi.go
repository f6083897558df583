package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

// PPIFetcher implements Fetcher using the Portfolio Personal Inversiones
// REST API, which quotes CEDEARs directly on BYMA.
type PPIFetcher struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Client    *http.Client

	token       string
	tokenExpiry time.Time
}

// NewPPIFetcher creates a new fetcher with optional proxy support.
func NewPPIFetcher(baseURL, apiKey, apiSecret, proxyURL string) *PPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://clientapi.portfoliopersonal.com"
	}
	return &PPIFetcher{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *PPIFetcher) Name() string { return "ppi" }

// login obtains a bearer token. Tokens are cached until shortly before
// expiry.
func (f *PPIFetcher) login() error {
	if f.token != "" && time.Now().Before(f.tokenExpiry) {
		return nil
	}

	req, err := http.NewRequest("POST", f.BaseURL+"/api/1.0/Account/LoginApi", nil)
	if err != nil {
		return err
	}
	req.Header.Set("ApiKey", f.APIKey)
	req.Header.Set("ApiSecret", f.APISecret)

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("ppi login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ppi login: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"accessToken"`
		Expires     int64  `json:"expires"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("ppi login decode: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("ppi login: empty access token")
	}

	expires := result.Expires
	if expires <= 0 {
		expires = 3600
	}
	f.token = result.AccessToken
	f.tokenExpiry = time.Now().Add(time.Duration(expires-60) * time.Second)
	return nil
}

// ppiBar is the expected JSON shape of one historic market data record.
type ppiBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"openingPrice"`
	High   float64 `json:"max"`
	Low    float64 `json:"min"`
	Close  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

func (f *PPIFetcher) FetchDailyHistory(ticker string, days int) ([]model.PricePoint, error) {
	if err := f.login(); err != nil {
		return nil, err
	}

	to := time.Now()
	// Calendar days, padded for weekends and holidays.
	from := to.AddDate(0, 0, -(days*7/5 + 10))
	endpoint := fmt.Sprintf(
		"%s/api/1.0/MarketData/SearchHistoricMarketData?ticker=%s&type=CEDEARS&settlement=A-24HS&dateFrom=%s&dateTo=%s",
		f.BaseURL, url.QueryEscape(ticker),
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ppi fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ppi fetch: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []ppiBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("ppi decode: %w", err)
	}

	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		date, err := time.Parse("2006-01-02T15:04:05", b.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", b.Date)
			if err != nil {
				continue
			}
		}
		if b.Close == 0 {
			continue
		}
		open := b.Open
		if open == 0 {
			open = b.Close
		}
		high, low := b.High, b.Low
		if high == 0 {
			high = b.Close
		}
		if low == 0 {
			low = b.Close
		}
		points = append(points, model.PricePoint{
			Date:   date.UTC().Truncate(24 * time.Hour),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}
