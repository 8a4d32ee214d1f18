package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/fadilmartias/applicant-portal/internal/dto"
	"github.com/fadilmartias/applicant-portal/internal/middleware"
	"github.com/fadilmartias/applicant-portal/internal/usecase"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	uc   usecase.ApplicationUsecaseInterface
	gate *auth.Gate
}

func NewApplicationHandler(uc usecase.ApplicationUsecaseInterface, gate *auth.Gate) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, gate: gate}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	admin := middleware.RequireAdmin(h.gate)

	api := app.Group("/api/applications")
	api.Post("/", middleware.RateLimiter(10, 1*time.Minute), h.Submit)
	api.Get("/", admin, h.List)
	api.Get("/count", admin, h.Count)
	api.Get("/:id/files/:fileType", admin, h.File)
	api.Get("/:id/cv", admin, h.CV)
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid form data.",
		}, err)
	}

	submission := dto.SubmissionForm{
		FullName:          firstValue(form, "fullName"),
		Email:             firstValue(form, "email"),
		Phone:             firstValue(form, "phone"),
		Position:          firstValue(form, "position"),
		City:              firstValue(form, "city"),
		YearsOfExperience: firstValue(form, "yearsOfExperience"),
		CountryCovered:    firstValue(form, "countryCovered"),
		CitiesCovered:     form.Value["citiesCovered"],
		Certifications:    form.Value["certifications"],
		CoverLetter:       firstValue(form, "coverLetter"),
	}
	if submission.CV, err = readUpload(form, "cv"); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Could not read CV file.",
		}, err)
	}
	if submission.IdentityDocument, err = readUpload(form, "identityDocument"); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Could not read identity document.",
		}, err)
	}

	result, err := h.uc.Submit(c.UserContext(), submission)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: formErr.Message,
				Details: formErr.Errors,
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted",
		Data:    result,
	})
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// readUpload reads at most one byte past the size limit; the usecase rejects
// anything larger using the part's declared size.
func readUpload(form *multipart.Form, key string) (*dto.Upload, error) {
	files := form.File[key]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	return &dto.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), dto.ApplicationFilter{
		Search:   strings.TrimSpace(c.Query("q")),
		Position: strings.TrimSpace(c.Query("position")),
		City:     strings.TrimSpace(c.Query("city")),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Applications loaded",
		Data:       list,
		Pagination: list.Pagination,
	})
}

func (h *ApplicationHandler) Count(c *fiber.Ctx) error {
	total, err := h.uc.Count(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Applications counted",
		Data:    fiber.Map{"total_count": total},
	})
}

func (h *ApplicationHandler) File(c *fiber.Ctx) error {
	link, err := h.uc.FileURL(c.UserContext(), c.Params("id"), c.Params("fileType"))
	if err != nil {
		return fileError(c, err, "Requested file not available.", "Unable to generate file link.")
	}
	return c.Redirect(link, fiber.StatusFound)
}

// CV is the older single-document link kept for existing admin bookmarks.
func (h *ApplicationHandler) CV(c *fiber.Ctx) error {
	link, err := h.uc.FileURL(c.UserContext(), c.Params("id"), usecase.FileKindCV)
	if err != nil {
		return fileError(c, err, "Application not found.", "Unable to generate CV link.")
	}
	return c.Redirect(link, fiber.StatusFound)
}

func fileError(c *fiber.Ctx, err error, unavailable, linkFailed string) error {
	code, message := fiber.StatusInternalServerError, err.Error()
	switch {
	case errors.Is(err, usecase.ErrInvalidFileKind):
		code, message = fiber.StatusBadRequest, "Invalid file type."
	case errors.Is(err, usecase.ErrApplicationNotFound):
		code, message = fiber.StatusNotFound, "Application not found."
	case errors.Is(err, usecase.ErrFileUnavailable):
		code, message = fiber.StatusNotFound, unavailable
	case errors.Is(err, usecase.ErrLinkUnavailable):
		message = linkFailed
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}
