package profilehandler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"hrm/internal/domain/core"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

const maxProfileForm = 5 << 20

type Handler struct {
	Store     *core.Store
	UploadDir string
}

func NewHandler(store *core.Store, uploadDir string) *Handler {
	return &Handler{Store: store, UploadDir: uploadDir}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	profile, err := h.Store.GetProfile(r.Context(), user.RoleName, user.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "profile not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "profile_error", "failed to load profile", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, requestctx.GetRequestID(r.Context()))
}

// HandleUpdate accepts a multipart form so the profile picture can ride
// along with the editable text fields. Only phone, emergency contact and
// the picture are caller-editable; everything else is HR's to change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := r.ParseMultipartForm(maxProfileForm); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart form", requestctx.GetRequestID(r.Context()))
		return
	}

	phone := r.FormValue("phone")
	emergencyContact := r.FormValue("emergencyContact")

	picturePath := ""
	if file, header, err := r.FormFile("profilePicture"); err == nil {
		defer file.Close()
		stored, err := h.storePicture(file, header.Filename)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store profile picture", requestctx.GetRequestID(r.Context()))
			return
		}
		picturePath = stored
	}

	if err := h.Store.UpdateProfile(r.Context(), user.RoleName, user.UserID, phone, emergencyContact, picturePath); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update profile", requestctx.GetRequestID(r.Context()))
		return
	}

	profile, err := h.Store.GetProfile(r.Context(), user.RoleName, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_error", "failed to load profile", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) storePicture(file io.Reader, original string) (string, error) {
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(original)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
