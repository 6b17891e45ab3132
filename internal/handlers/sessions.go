package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fip_qc/internal/acquisition"
	"fip_qc/internal/epoch"
	"fip_qc/internal/models"
	"fip_qc/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errRunQC           = "failed to run qc"
	errMapAcquisition  = "failed to map acquisition"
	errGetAcquisition  = "failed to load acquisition"
	errSessionRequired = "query parameter 'session' is required"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// sessionErrorStatus maps pipeline errors to HTTP status codes.
func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, epoch.ErrInvalidSessionPath):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoEpochs):
		return http.StatusNotFound
	case errors.Is(err, acquisition.ErrNoValidEpochs), errors.Is(err, service.ErrMissingInputs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// sessionError logs err and answers with the mapped status. Client errors carry the cause.
func (h *Handler) sessionError(c *gin.Context, userMsg, logKey, session string, err error) {
	code := sessionErrorStatus(err)
	if code != http.StatusInternalServerError {
		userMsg += ": " + err.Error()
	}
	h.logAndJSONError(c, code, userMsg, logKey, err, "session", session)
}

// SessionRequest names a session directory on the server host.
type SessionRequest struct {
	// Absolute path of the session root
	Session string `json:"session" binding:"required" example:"/data/000000_2025-07-18T190319"`
}

// RunSummary is the compact form of a run returned by POST /qc.
type RunSummary struct {
	ID      string `json:"id"`
	Epoch   string `json:"epoch"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
	Errored int    `json:"errored"`
	OK      bool   `json:"ok"`
}

func summarize(run models.QCRun) RunSummary {
	return RunSummary{
		ID:      run.ID,
		Epoch:   run.Epoch,
		Passed:  run.Passed,
		Failed:  run.Failed,
		Skipped: run.Skipped,
		Errored: run.Errored,
		OK:      run.OK(),
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run QC over a session
// @Description  Runs every check suite over each epoch of the session and stores one run per epoch.
// @Tags         qc
// @Accept       json
// @Produce      json
// @Param        body  body      SessionRequest  true  "Session payload"
// @Success      200   {object}  map[string]interface{}  "ok, runs"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/qc [post]
// @Security     BearerAuth
func (h *Handler) runQC(c *gin.Context) {
	var req SessionRequest
	if ok := h.bindJSONOrBadRequest(c, &req, "qc_bad_request_body"); !ok {
		return
	}
	session := strings.TrimSpace(req.Session)
	runs, err := h.services.QC.RunSession(operatorContext(c), session)
	if err != nil {
		h.sessionError(c, errRunQC, "qc_run_failed", session, err)
		return
	}
	ok := true
	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, summarize(r))
		ok = ok && r.OK()
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok, "runs": summaries})
}

// @Summary      Map session acquisition
// @Description  Aggregates epoch timing into an acquisition record, writes acquisition_fip.json and stores it.
// @Tags         acquisition
// @Accept       json
// @Produce      json
// @Param        body  body      SessionRequest  true  "Session payload"
// @Success      200   {object}  models.AcquisitionRecord
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/acquisition [post]
// @Security     BearerAuth
func (h *Handler) mapAcquisition(c *gin.Context) {
	var req SessionRequest
	if ok := h.bindJSONOrBadRequest(c, &req, "acquisition_bad_request_body"); !ok {
		return
	}
	session := strings.TrimSpace(req.Session)
	rec, err := h.services.Acquisition.MapSession(operatorContext(c), session)
	if err != nil {
		h.sessionError(c, errMapAcquisition, "acquisition_map_failed", session, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Get stored acquisition
// @Tags         acquisition
// @Produce      json
// @Param        session  query     string  true  "Session root path"
// @Success      200      {object}  models.AcquisitionRecord
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/v1/acquisition [get]
// @Security     BearerAuth
func (h *Handler) getAcquisition(c *gin.Context) {
	session := strings.TrimSpace(c.Query("session"))
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errSessionRequired})
		return
	}
	rec, err := h.services.Acquisition.GetAcquisition(c.Request.Context(), session)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetAcquisition, "acquisition_get_failed", err, "session", session)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no acquisition stored for session"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
