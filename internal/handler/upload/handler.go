package upload

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medlaunch/onboard-api/internal/handler"
	"github.com/medlaunch/onboard-api/internal/media"
	"github.com/medlaunch/onboard-api/internal/validation"
	apperrors "github.com/medlaunch/onboard-api/pkg/errors"
)

const (
	maxFileSize = 10 << 20 // 10MB
	maxFiles    = 20
)

// Upload error messages shown to the form user.
const (
	msgFileTooLarge    = "حجم الملف كبير جداً. الحد الأقصى 10 ميجابايت"
	msgTooManyFiles    = "عدد الملفات كبير جداً"
	msgUnsupportedType = "نوع الملف غير مدعوم. يرجى رفع صور (JPG, PNG, GIF) أو مستندات (PDF, DOC, DOCX, XLS, XLSX)"
	msgUnknownField    = "حقل الملف غير معروف"
	msgMissingFile     = "الملف مطلوب"
	msgUploadFailed    = "خطأ في رفع الملف. يرجى المحاولة مرة أخرى"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// allowedTypes maps each form field to the MIME types it accepts. Only the
// pricing file may be a document; everything else is an image.
var allowedTypes = map[string]func(string) bool{
	"logo":             isImage,
	"doctorPhotos":     isImage,
	"frontDeskPhoto":   isImage,
	"waitingRoomPhoto": isImage,
	"signagePhoto":     isImage,
	"pricingFile":      func(ct string) bool { return imageTypes[ct] || documentTypes[ct] },
}

func isImage(ct string) bool { return imageTypes[ct] }

type Handler struct {
	uploader   media.Uploader
	production bool
}

func NewHandler(uploader media.Uploader, production bool) *Handler {
	return &Handler{uploader: uploader, production: production}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/uploads/:field", h.UploadField)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.DELETE("/uploads", h.DeleteAsset)
}

// UploadField relays one form field's file(s) to the media host and returns
// the hosted URLs. doctorPhotos accepts several files; every other field
// takes exactly one. Files are checked for type and size before any remote
// call, and a failed upload aborts the rest of the batch.
func (h *Handler) UploadField(c *gin.Context) {
	field := c.Param("field")
	accepts, ok := allowedTypes[field]
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewValidationResponse([]validation.FieldError{
			{Field: field, Message: msgUnknownField},
		}))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(msgMissingFile))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		files = form.File[field]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, handler.NewValidationResponse([]validation.FieldError{
			{Field: field, Message: msgMissingFile},
		}))
		return
	}
	if len(files) > 1 && field != "doctorPhotos" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(msgTooManyFiles))
		return
	}
	if len(files) > maxFiles {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(msgTooManyFiles))
		return
	}

	// Reject everything up front so nothing is uploaded from a batch that
	// contains a bad file.
	for _, fh := range files {
		if msg := checkFile(fh, accepts); msg != "" {
			c.JSON(http.StatusBadRequest, handler.NewValidationResponse([]validation.FieldError{
				{Field: field, Message: msg},
			}))
			return
		}
	}

	submissionID := c.Query("submissionId")
	if submissionID == "" {
		submissionID = uuid.New().String()
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(msgUploadFailed))
			return
		}

		url, err := h.uploader.Upload(c.Request.Context(), field, submissionID, f)
		f.Close()
		if err != nil {
			// Already-uploaded files from this batch stay orphaned on the
			// host; the form restarts the field from scratch.
			handler.RespondError(c, apperror(err), h.production)
			return
		}
		urls = append(urls, url)
	}

	if field == "doctorPhotos" {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
			"submissionId": submissionID,
			"urls":         urls,
		}))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"submissionId": submissionID,
		"url":          urls[0],
	}))
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(msgMissingFile))
		return
	}

	if err := h.uploader.Delete(c.Request.Context(), publicID); err != nil {
		handler.RespondError(c, apperror(err), h.production)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// apperror folds media-host failures into a generic 400; the cause reaches
// logs and, outside production, the response detail.
func apperror(err error) error {
	return apperrors.BadRequest(msgUploadFailed, err)
}

func checkFile(fh *multipart.FileHeader, accepts func(string) bool) string {
	if fh.Size > maxFileSize {
		return msgFileTooLarge
	}
	if !accepts(fh.Header.Get("Content-Type")) {
		return msgUnsupportedType
	}
	return ""
}
