package handlers

import (
	"errors"
	"net/http"

	"leafdoctor/internal/models"
	"leafdoctor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	uploadField = "file"

	errMissingFile   = "missing file field"
	errUnreadable    = "Invalid file"
	errInvalidImage  = "Invalid image"
	errPredictFailed = "prediction failed"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Classify a leaf image
// @Description  Top-3 predictions, every class score, and classes scoring at least 0.5. Redirects to /login without a valid session cookie.
// @Tags         predict
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Leaf image"
// @Success      200  {object}  models.PredictionResult
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /predict [post]
func (h *Handler) predict(c *gin.Context) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if h.log != nil {
			h.log.Infow("predict_missing_file", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFile})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, errUnreadable, "predict_open_failed", err, "filename", fh.Filename)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.services.Classify(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUpload) {
			if h.log != nil {
				h.log.Infow("predict_invalid_image", "filename", fh.Filename, "size", fh.Size, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidImage})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errPredictFailed, "predict_failed", err, "filename", fh.Filename)
		return
	}

	if h.log != nil {
		h.log.Debugw("predict_ok", "user", c.GetString(ctxUsername), "top", topLabel(res))
	}
	c.JSON(http.StatusOK, res)
}

func topLabel(res models.PredictionResult) string {
	if len(res.Predictions) == 0 {
		return ""
	}
	return res.Predictions[0].Label
}
