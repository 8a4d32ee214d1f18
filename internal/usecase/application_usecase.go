package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/compat"
	"github.com/fadilmartias/applicant-portal/internal/dto"
	"github.com/fadilmartias/applicant-portal/internal/geo"
	"github.com/fadilmartias/applicant-portal/internal/model"
	"github.com/fadilmartias/applicant-portal/internal/repository"
	"github.com/fadilmartias/applicant-portal/internal/response"
	"github.com/fadilmartias/applicant-portal/internal/storage"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	MaxUploadBytes = 5 * 1024 * 1024
	SignedURLTTL   = 60 * time.Second

	FileKindCV               = "cv"
	FileKindIdentityDocument = "identity-document"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrFileUnavailable     = errors.New("requested file not available")
	ErrInvalidFileKind     = errors.New("invalid file type")
	ErrLinkUnavailable     = errors.New("unable to generate file link")
)

type uploadRule struct {
	field        string
	label        string
	missing      string
	allowed      []string
	allowedLabel string
}

var (
	cvRule = uploadRule{
		field:   "cv",
		label:   "CV",
		missing: "CV file is required.",
		allowed: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
		},
		allowedLabel: "PDF, DOC, DOCX, or TXT",
	}
	identityDocumentRule = uploadRule{
		field:        "identityDocument",
		label:        "Identity document",
		missing:      "Identity document is required.",
		allowed:      []string{"application/pdf", "image/png", "image/jpeg"},
		allowedLabel: "PDF, PNG, or JPG/JPEG",
	}
)

var fileColumns = map[string]string{
	FileKindCV:               compat.ColumnCVPath,
	FileKindIdentityDocument: compat.ColumnIdentityDocumentPath,
}

type ApplicationUsecaseInterface interface {
	Submit(ctx context.Context, form dto.SubmissionForm) (dto.SubmissionResult, error)
	List(ctx context.Context, filter dto.ApplicationFilter) (dto.ApplicationList, error)
	Count(ctx context.Context) (int64, error)
	FileURL(ctx context.Context, id, kind string) (string, error)
}

type ApplicationUsecase struct {
	table    repository.ApplicationTable
	writer   *compat.Writer
	reader   *compat.Reader
	files    storage.FileStorage
	catalog  *geo.Catalog
	validate *validator.Validate
	now      func() time.Time
	newID    func() uuid.UUID
}

func NewApplicationUsecase(table repository.ApplicationTable, files storage.FileStorage, catalog *geo.Catalog) *ApplicationUsecase {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ApplicationUsecase{
		table:    table,
		writer:   compat.NewWriter(table),
		reader:   compat.NewReader(table),
		files:    files,
		catalog:  catalog,
		validate: validate,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Submit validates the form, uploads both documents and saves the row.
// Uploaded files are removed again if a later step fails.
func (uc *ApplicationUsecase) Submit(ctx context.Context, form dto.SubmissionForm) (dto.SubmissionResult, error) {
	normalizeForm(&form)
	years, err := uc.validateForm(form)
	if err != nil {
		return dto.SubmissionResult{}, err
	}

	id := uc.newID()
	var uploaded []string

	cvName := util.SanitizeFileName(form.CV.FileName)
	cvPath := fmt.Sprintf("%s/%d-cv-%s", id, uc.now().UnixMilli(), cvName)
	if err := uc.files.Upload(ctx, cvPath, form.CV.ContentType, form.CV.Data); err != nil {
		return dto.SubmissionResult{}, fmt.Errorf("CV upload failed: %w", err)
	}
	uploaded = append(uploaded, cvPath)

	docName := util.SanitizeFileName(form.IdentityDocument.FileName)
	docPath := fmt.Sprintf("%s/%d-identity-document-%s", id, uc.now().UnixMilli(), docName)
	if err := uc.files.Upload(ctx, docPath, form.IdentityDocument.ContentType, form.IdentityDocument.Data); err != nil {
		uc.removeUploads(ctx, uploaded)
		return dto.SubmissionResult{}, fmt.Errorf("Identity document upload failed: %w", err)
	}
	uploaded = append(uploaded, docPath)

	app := &model.Application{
		ID:                       id,
		FullName:                 form.FullName,
		Email:                    form.Email,
		Phone:                    form.Phone,
		Position:                 form.Position,
		City:                     optionalString(form.City),
		YearsOfExperience:        years,
		CountryCovered:           optionalString(form.CountryCovered),
		CitiesCovered:            form.CitiesCovered,
		Certifications:           form.Certifications,
		CoverLetter:              optionalString(form.CoverLetter),
		CVPath:                   cvPath,
		CVFileName:               cvName,
		IdentityDocumentPath:     &docPath,
		IdentityDocumentFileName: &docName,
	}

	result, err := uc.writer.Insert(ctx, app)
	if err != nil {
		uc.removeUploads(ctx, uploaded)
		return dto.SubmissionResult{}, fmt.Errorf("Application save failed: %w. Please apply the latest database schema updates.", err)
	}
	return dto.SubmissionResult{ID: id, Warning: result.Warning()}, nil
}

// removeUploads is best effort; a failure leaves orphaned objects behind.
func (uc *ApplicationUsecase) removeUploads(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := uc.files.Remove(context.WithoutCancel(ctx), paths); err != nil {
		log.Printf("failed to remove uploaded files %s: %v", strings.Join(paths, ", "), err)
	}
}

func normalizeForm(form *dto.SubmissionForm) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	form.Position = strings.TrimSpace(form.Position)
	form.City = strings.TrimSpace(form.City)
	form.YearsOfExperience = strings.TrimSpace(form.YearsOfExperience)
	form.CountryCovered = strings.TrimSpace(form.CountryCovered)
	form.CitiesCovered = cleanList(form.CitiesCovered)
	form.Certifications = cleanList(form.Certifications)
	form.CoverLetter = strings.TrimSpace(form.CoverLetter)
	if form.CV != nil && (form.CV.Size == 0 || form.CV.FileName == "") {
		form.CV = nil
	}
	if form.IdentityDocument != nil && (form.IdentityDocument.Size == 0 || form.IdentityDocument.FileName == "") {
		form.IdentityDocument = nil
	}
}

// cleanList trims entries, drops empty ones and keeps the first occurrence
// of duplicates.
func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (uc *ApplicationUsecase) validateForm(form dto.SubmissionForm) (*float64, error) {
	if err := uc.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		fields := make(map[string]string, len(verrs))
		message := "Please enter a valid email address."
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				fields[fe.Field()] = "This field is required."
				message = "Please fill all required fields."
				continue
			}
			fields[fe.Field()] = "Please enter a valid email address."
		}
		return nil, util.NewFormError(message, fields)
	}

	var years *float64
	if form.YearsOfExperience != "" {
		parsed, err := strconv.ParseFloat(form.YearsOfExperience, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
			return nil, fieldError("yearsOfExperience", "Years of experience must be a valid non-negative number.")
		}
		years = &parsed
	}

	if form.CountryCovered != "" && !uc.catalog.HasCountry(form.CountryCovered) {
		return nil, fieldError("countryCovered", "Invalid country selected.")
	}

	switch err := uc.catalog.ValidateCoverage(form.CountryCovered, form.CitiesCovered); {
	case errors.Is(err, geo.ErrCountryRequired):
		return nil, fieldError("citiesCovered", "Please select a country before selecting cities covered.")
	case errors.Is(err, geo.ErrCitiesTooClose):
		return nil, fieldError("citiesCovered", "Selected cities must be at least 35 km apart.")
	case err != nil:
		return nil, err
	}

	if err := validateUpload(form.CV, cvRule); err != nil {
		return nil, err
	}
	if err := validateUpload(form.IdentityDocument, identityDocumentRule); err != nil {
		return nil, err
	}
	return years, nil
}

// validateUpload also settles the upload's content type, sniffing it when
// the client sent a generic one.
func validateUpload(file *dto.Upload, rule uploadRule) error {
	if file == nil {
		return fieldError(rule.field, rule.missing)
	}
	if file.Size > MaxUploadBytes {
		return fieldError(rule.field, rule.label+" must be less than 5MB.")
	}
	file.ContentType = util.ContentType(file.ContentType, file.Data)
	if !slices.Contains(rule.allowed, file.ContentType) {
		return fieldError(rule.field, fmt.Sprintf("%s must be %s.", rule.label, rule.allowedLabel))
	}
	return nil
}

func fieldError(field, message string) *util.FormError {
	return util.NewFormError(message, map[string]string{field: message})
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// List returns reconciled applications for the admin dashboard.
func (uc *ApplicationUsecase) List(ctx context.Context, filter dto.ApplicationFilter) (dto.ApplicationList, error) {
	city := strings.TrimSpace(filter.City)
	result, err := uc.reader.List(ctx, compat.Filter{
		Search:   strings.TrimSpace(filter.Search),
		Position: strings.TrimSpace(filter.Position),
		City:     city,
	})
	if err != nil {
		return dto.ApplicationList{}, err
	}

	options := append([]string(nil), result.Cities...)
	if city != "" && !slices.ContainsFunc(options, func(option string) bool {
		return strings.EqualFold(option, city)
	}) {
		options = append(options, city)
	}
	util.SortNames(options)

	rows := make([]dto.ApplicationRow, 0, len(result.Applications))
	for _, app := range result.Applications {
		rows = append(rows, toRow(app))
	}

	list := dto.ApplicationList{
		Applicants:  rows,
		TotalCount:  result.Total,
		CityOptions: options,
	}
	if len(result.DroppedColumns) > 0 {
		list.Warning = fmt.Sprintf("Showing compatibility data. Missing columns: %s.", strings.Join(result.DroppedColumns, ", "))
	}
	if filter.PageSize > 0 {
		list.Pagination = response.NewPagination(filter.Page, filter.PageSize, int64(len(rows)))
		from, to := list.Pagination.Bounds(len(rows))
		list.Applicants = rows[from:to]
	}
	return list, nil
}

func toRow(app model.Application) dto.ApplicationRow {
	return dto.ApplicationRow{
		ID:                       app.ID,
		FullName:                 app.FullName,
		Email:                    app.Email,
		Phone:                    app.Phone,
		Position:                 app.Position,
		City:                     app.City,
		YearsOfExperience:        app.YearsOfExperience,
		CountryCovered:           app.CountryCovered,
		CitiesCovered:            app.CitiesCovered,
		Certifications:           app.Certifications,
		Certification:            app.Certification,
		CoverLetter:              app.CoverLetter,
		CVFileName:               app.CVFileName,
		IdentityDocumentFileName: app.IdentityDocumentFileName,
		HasIdentityDocument:      app.IdentityDocumentPath != nil && *app.IdentityDocumentPath != "",
		CreatedAt:                app.CreatedAt,
	}
}

func (uc *ApplicationUsecase) Count(ctx context.Context) (int64, error) {
	return uc.table.Count(ctx)
}

// FileURL returns a short-lived link to one of an application's documents.
func (uc *ApplicationUsecase) FileURL(ctx context.Context, id, kind string) (string, error) {
	column, ok := fileColumns[kind]
	if !ok {
		return "", ErrInvalidFileKind
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrApplicationNotFound
	}

	rows, _, err := uc.table.Select(ctx, repository.SelectQuery{
		Columns: []string{column},
		ID:      id,
		Limit:   1,
	})
	if err != nil {
		return "", fmt.Errorf("load application %s: %w", id, err)
	}
	if len(rows) == 0 {
		return "", ErrApplicationNotFound
	}
	path, _ := rows[0][column].(string)
	if path == "" {
		return "", ErrFileUnavailable
	}

	link, err := uc.files.SignedURL(ctx, path, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLinkUnavailable, err)
	}
	return link, nil
}
