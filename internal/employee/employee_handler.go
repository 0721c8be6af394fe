package employee

import (
	"errors"
	"fmt"
	"net/http"

	"go-hrms/internal/document"
	documenterrors "go-hrms/internal/document/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll returns full records to admins and the salary-free directory to
// everyone else.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	if c.GetString(middleware.CtxRole) == domain.RoleAdmin {
		resp, err := h.service.GetAll(ctx)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Paginate(c, resp)
		return
	}

	resp, err := h.service.Directory(ctx)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginate(c, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "employee deleted"}, nil)
}

func (h *Handler) Profile(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), middleware.SelfID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), middleware.SelfID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Documents(c *gin.Context) {
	resp, err := h.service.Documents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// UploadDocument expects a multipart form with "file" and "document_type".
func (h *Handler) UploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, document.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("http upload document missing file", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, documenterrors.ErrFileTooLarge)
			return
		}
		response.FromError(c, apperror.RequiredField("file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.UploadDocument(
		c.Request.Context(),
		middleware.SelfID(c),
		c.PostForm("document_type"),
		fh.Filename,
		f,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) OfferLetter(c *gin.Context) {
	file, err := h.service.OfferLetter(c.Request.Context(), middleware.SelfID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, "application/pdf", file.Content)
}

func (h *Handler) SalaryDetails(c *gin.Context) {
	resp, err := h.service.SalaryDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
