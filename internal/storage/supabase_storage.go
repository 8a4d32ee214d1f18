package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/repository"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// SupabaseStorage stores files in a Supabase Storage bucket.
type SupabaseStorage struct {
	client  *resty.Client
	baseURL string
	bucket  string
}

func NewSupabaseStorage(cfg *config.SupabaseConfig) *SupabaseStorage {
	baseURL := cfg.URL + "/storage/v1"
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", cfg.ServiceRoleKey).
		SetAuthToken(cfg.ServiceRoleKey)
	return &SupabaseStorage{client: client, baseURL: baseURL, bucket: cfg.Bucket}
}

func (s *SupabaseStorage) Upload(ctx context.Context, path, contentType string, data []byte) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(data).
		Post(s.objectPath("/object/", path))
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	if resp.IsError() {
		return repository.NewAPIError(resp)
	}
	return nil
}

func (s *SupabaseStorage) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string][]string{"prefixes": paths}).
		Delete("/object/" + url.PathEscape(s.bucket))
	if err != nil {
		return fmt.Errorf("remove %s: %w", strings.Join(paths, ", "), err)
	}
	if resp.IsError() {
		return repository.NewAPIError(resp)
	}
	return nil
}

func (s *SupabaseStorage) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]int64{"expiresIn": int64(ttl.Seconds())}).
		Post(s.objectPath("/object/sign/", path))
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", path, err)
	}
	if resp.IsError() {
		return "", repository.NewAPIError(resp)
	}

	signed := gjson.GetBytes(resp.Body(), "signedURL").String()
	if signed == "" {
		signed = gjson.GetBytes(resp.Body(), "signedUrl").String()
	}
	if signed == "" {
		return "", fmt.Errorf("sign %s: empty signed url", path)
	}
	if strings.HasPrefix(signed, "http://") || strings.HasPrefix(signed, "https://") {
		return signed, nil
	}
	return s.baseURL + "/" + strings.TrimPrefix(signed, "/"), nil
}

func (s *SupabaseStorage) objectPath(prefix, path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return prefix + url.PathEscape(s.bucket) + "/" + strings.Join(segments, "/")
}
