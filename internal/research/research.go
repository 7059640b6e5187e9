package research

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	companyPath     = "/companies"
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"

	requestTimeout = 10 * time.Second
)

// CompanyProfile is the research result for one company.
type CompanyProfile struct {
	CompanyName string     `json:"company_name"`
	Domain      string     `json:"domain,omitempty"`
	Overview    Overview   `json:"overview"`
	Culture     Culture    `json:"culture"`
	Financials  Financials `json:"financials"`
	Careers     Careers    `json:"careers"`
}

type Overview struct {
	Description  string `json:"description,omitempty"`
	Founded      int    `json:"founded,omitempty"`
	Size         string `json:"size,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
}

type Culture struct {
	Rating  float64  `json:"rating,omitempty"`
	Reviews int      `json:"reviews,omitempty"`
	Pros    []string `json:"pros,omitempty"`
	Cons    []string `json:"cons,omitempty"`
	Values  []string `json:"values,omitempty"`
}

type Financials struct {
	Revenue       string `json:"revenue,omitempty"`
	Funding       string `json:"funding,omitempty"`
	Profitability string `json:"profitability,omitempty"`
}

type Careers struct {
	OpenPositions int    `json:"open_positions,omitempty"`
	HiringTrend   string `json:"hiring_trend,omitempty"`
	AverageSalary string `json:"average_salary,omitempty"`
}

// Client fetches company profiles from the research API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, userAgent string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Lookup fetches the profile for the named company. The domain is optional
// and narrows the lookup when several companies share a name.
func (c *Client) Lookup(ctx context.Context, name, domain string) (*CompanyProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("company name is required")
	}

	q := url.Values{}
	q.Set("name", name)
	if domain = strings.TrimSpace(domain); domain != "" {
		q.Set("domain", domain)
	}

	var profile *CompanyProfile
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s", c.baseURL, companyPath), q, &profile); err != nil {
		return nil, err
	}

	if profile == nil {
		return nil, fmt.Errorf("no profile found for %q", name)
	}

	return profile, nil
}

func (c *Client) getJSON(ctx context.Context, url string, q url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	var gzipReader *gzip.Reader
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	return nil
}
