package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// APIError is a non-2xx reply from a Supabase service. Error returns the
// service's own message so callers can inspect its wording.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError reads the {code, message} / {error, message} body Supabase
// services reply with.
func NewAPIError(resp *resty.Response) *APIError {
	body := resp.Body()
	message := gjson.GetBytes(body, "message").String()
	if message == "" {
		message = gjson.GetBytes(body, "error").String()
	}
	if message == "" {
		message = resp.Status()
	}
	code := gjson.GetBytes(body, "code").String()
	if code == "" {
		code = gjson.GetBytes(body, "statusCode").String()
	}
	return &APIError{Status: resp.StatusCode(), Code: code, Message: message}
}

// SupabaseRepository talks to the applications table through PostgREST.
type SupabaseRepository struct {
	client *resty.Client
	table  string
}

func NewSupabaseRepository(cfg *config.SupabaseConfig) *SupabaseRepository {
	client := resty.New().
		SetBaseURL(cfg.URL+"/rest/v1").
		SetHeader("apikey", cfg.ServiceRoleKey).
		SetAuthToken(cfg.ServiceRoleKey)
	return &SupabaseRepository{client: client, table: ApplicationsTable}
}

func (r *SupabaseRepository) Insert(ctx context.Context, row Row) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Post("/" + r.table)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if resp.IsError() {
		return NewAPIError(resp)
	}
	return nil
}

func (r *SupabaseRepository) Select(ctx context.Context, query SelectQuery) ([]Row, int64, error) {
	params := map[string]string{
		"select": strings.Join(query.Columns, ","),
		"order":  "created_at.desc",
	}
	if query.Position != "" {
		params["position"] = "eq." + query.Position
	}
	if query.ID != "" {
		params["id"] = "eq." + query.ID
	}
	if pattern := ilikePattern(query.Search); pattern != "" {
		params["or"] = fmt.Sprintf("(full_name.ilike.%s,email.ilike.%s)", pattern, pattern)
	}
	if query.Limit > 0 {
		params["limit"] = strconv.Itoa(query.Limit)
	}

	var rows []Row
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParams(params).
		SetResult(&rows).
		Get("/" + r.table)
	if err != nil {
		return nil, 0, fmt.Errorf("select applications: %w", err)
	}
	if resp.IsError() {
		return nil, 0, NewAPIError(resp)
	}

	total, ok := parseContentRange(resp.Header().Get("Content-Range"))
	if !ok {
		total = int64(len(rows))
	}
	return rows, total, nil
}

func (r *SupabaseRepository) Count(ctx context.Context) (int64, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "id").
		Head("/" + r.table)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	if resp.IsError() {
		return 0, NewAPIError(resp)
	}
	total, ok := parseContentRange(resp.Header().Get("Content-Range"))
	if !ok {
		return 0, fmt.Errorf("count applications: missing Content-Range header")
	}
	return total, nil
}

// parseContentRange reads the total from "0-24/100" or "*/0".
func parseContentRange(header string) (int64, bool) {
	i := strings.LastIndex(header, "/")
	if i < 0 {
		return 0, false
	}
	total, err := strconv.ParseInt(strings.TrimSpace(header[i+1:]), 10, 64)
	if err != nil {
		return 0, false
	}
	return total, true
}

// ilikePattern drops characters that are structural inside a PostgREST
// or=(...) filter.
func ilikePattern(search string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '*', '"', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(search))
	if cleaned == "" {
		return ""
	}
	return "*" + cleaned + "*"
}
