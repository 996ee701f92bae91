package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
)

type ChatHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type chatHandlerImpl struct {
	fileService file.FileService
	maxMemory   int64
}

func NewChatHandler(fileService file.FileService, maxMemory int64) ChatHandler {
	if maxMemory <= 0 {
		maxMemory = 10 << 20
	}
	return &chatHandlerImpl{fileService: fileService, maxMemory: maxMemory}
}

// Upload handles POST /chats/upload with a multipart "file" field.
func (h *chatHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer f.Close()

	attachment, err := h.fileService.UploadChatAttachment(r.Context(), f, header.Filename)
	switch {
	case errors.Is(err, file.ErrEmptyFile):
		response.BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrFileTooLarge):
		response.PayloadTooLarge(w, err.Error())
	case err != nil:
		response.HandleError(w, err)
	default:
		response.Created(w, "File uploaded successfully", attachment)
	}
}
