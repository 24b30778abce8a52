package api

import "net/http"

// UploadURL выдаёт подписанную ссылку для загрузки изображения курса в S3.
//
// @Summary      Pre-signed upload URL
// @Tags         courses
// @Produce      json
// @Security     BasicAuth
// @Param        filename query string true "File name"
// @Param        fileType query string true "MIME type"
// @Success      200 {object} svcmodels.UploadURL
// @Failure      400 {object} ErrorResponse "Filename and fileType are required"
// @Failure      401 {object} ErrorResponse "Access Denied"
// @Failure      500 {object} ErrorResponse
// @Router       /api/courses/upload-url [get]
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.Svc.Uploads.IssueUploadURL(r.Context(), q.Get("filename"), q.Get("fileType"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
