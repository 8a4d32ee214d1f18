package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/dto"
	"github.com/fadilmartias/applicant-portal/internal/service"
	"github.com/stretchr/testify/require"
)

const testPassword = "hunter2"

func testGate() *auth.Gate {
	return auth.NewGate(&config.AdminConfig{Password: testPassword, CookieName: "admin_session"}, false)
}

func adminCookie() *http.Cookie {
	return &http.Cookie{Name: "admin_session", Value: testPassword}
}

type fakeUsecase struct {
	submitResult dto.SubmissionResult
	submitErr    error
	list         dto.ApplicationList
	listErr      error
	count        int64
	link         string
	linkErr      error

	submitted dto.SubmissionForm
	filter    dto.ApplicationFilter
	fileID    string
	fileKind  string
}

func (f *fakeUsecase) Submit(_ context.Context, form dto.SubmissionForm) (dto.SubmissionResult, error) {
	f.submitted = form
	return f.submitResult, f.submitErr
}

func (f *fakeUsecase) List(_ context.Context, filter dto.ApplicationFilter) (dto.ApplicationList, error) {
	f.filter = filter
	return f.list, f.listErr
}

func (f *fakeUsecase) Count(context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeUsecase) FileURL(_ context.Context, id, kind string) (string, error) {
	f.fileID, f.fileKind = id, kind
	return f.link, f.linkErr
}

type fakeCities struct {
	lookup service.CityLookup
	err    error
}

func (f *fakeCities) Cities(context.Context, string) (service.CityLookup, error) {
	return f.lookup, f.err
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}
