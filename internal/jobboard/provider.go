package jobboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const searchPath = "/jobs"

// Query describes a search against a single board.
type Query struct {
	// param is a custom tag for reflect. Please see buildParams.
	Keywords   []string `param:"keywords"`
	Location   string   `json:"location"`
	JobType    string   `json:"job_type"`
	Experience string   `json:"experience"`
	Remote     bool     `json:"remote"`
	// Limit caps the merged result set, not the per-board page size.
	Limit int `param:"-"`
	// Sources restricts an aggregated search to the named boards.
	// Individual boards ignore it.
	Sources []string `param:"-"`
}

// Provider searches one job board.
type Provider interface {
	Name() string
	Search(ctx context.Context, query *Query) (Listings, error)
}

type restProvider struct {
	name   string
	client *restClient
}

// NewProvider creates a REST provider for one board. The token may be empty
// for boards that do not require authorization.
func NewProvider(name, baseURL, token, userAgent string, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &restProvider{
		name: name,
		client: &restClient{
			baseURL:   baseURL,
			token:     token,
			userAgent: userAgent,
			httpClient: &http.Client{
				Timeout: requestTimeout,
			},
			logger: logger.With(zap.String("source", name)),
		},
	}
}

func (p *restProvider) Name() string {
	return p.name
}

func (p *restProvider) Search(ctx context.Context, query *Query) (Listings, error) {
	if query == nil {
		query = &Query{}
	}

	q := buildParams(query)
	// Set per_page max as possible. It should be faster.
	q.Set("per_page", perPage)

	items, err := p.client.getItems(ctx, fmt.Sprintf("%s%s", p.client.baseURL, searchPath), q)
	if err != nil {
		return nil, err
	}

	var listings Listings
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &listings,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode %s listings: %w", p.name, err)
	}

	for _, listing := range listings {
		if listing.Source == "" {
			listing.Source = p.name
		}
	}

	return listings, nil
}

// QueryFromParams coerces loosely typed parameters into a query. Parameters
// decoded from JSON arrive as []any and float64.
func QueryFromParams(params map[string]any) *Query {
	query := &Query{}

	switch v := params["keywords"].(type) {
	case []string:
		query.Keywords = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				query.Keywords = append(query.Keywords, s)
			}
		}
	case string:
		query.Keywords = strings.Fields(v)
	}

	if location, ok := params["location"].(string); ok {
		query.Location = location
	}

	if jobType, ok := params["job_type"].(string); ok {
		query.JobType = jobType
	}

	if experience, ok := params["experience"].(string); ok {
		query.Experience = experience
	}

	if remote, ok := params["remote"].(bool); ok {
		query.Remote = remote
	}

	switch v := params["sources"].(type) {
	case []string:
		query.Sources = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				query.Sources = append(query.Sources, s)
			}
		}
	}

	switch v := params["limit"].(type) {
	case int:
		query.Limit = v
	case float64:
		query.Limit = int(v)
	}

	return query
}

func buildParams(query *Query) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*query))
	for _, field := range fields {
		// Our custom tag is using here.
		key := field.Tag.Get("param")
		if key == "" {
			// Failover to default tag if our tag do not exist.
			key = field.Tag.Get("json")
		}
		if key == "" || key == "-" {
			continue
		}

		kind := field.Type.Kind()
		switch kind {
		case reflect.Slice:
			s := reflect.ValueOf(query).Elem().Field(field.Index[0]).Interface()
			switch v := s.(type) {
			case []int:
				for _, value := range v {
					q.Add(key, strconv.Itoa(value))
				}
			case []string:
				for _, value := range v {
					q.Add(key, value)
				}
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(query).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" && value != "false" {
				q.Set(key, value)
			}
		}
	}

	return q
}
