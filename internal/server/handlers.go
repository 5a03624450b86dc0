package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-stationreg/internal/platform/metrics"
	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/registration"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/renderers/vanilla"
	"github.com/goliatone/go-stationreg/pkg/schemas"
)

const advanceRejectedMessage = "Please correct the highlighted fields before continuing."

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.renderForm(w, r, sess, http.StatusOK, nil)
}

// handleField validates one field on blur and reports the result as JSON.
func (h *Handler) handleField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	name := chi.URLParam(r, "field")
	field, err := registration.ParseField(name)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "unknown_field", "no such field: "+name)
		return
	}

	sess, err := h.postedSession(r)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected field validation",
			"request_id", requestID,
			"field", name,
			"error", err.Error(),
		)
		writeJSONError(w, http.StatusForbidden, "invalid_session", err.Error())
		return
	}

	sess.mu.Lock()
	var fieldErr *registration.FieldError
	err = sess.form.SetValue(field, r.PostForm.Get("value"))
	if err == nil {
		fieldErr, err = sess.form.Commit(field)
	}
	sess.mu.Unlock()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to validate field",
			"request_id", requestID,
			"session", sess.ID,
			"field", name,
			"error", err.Error(),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "failed to validate field")
		return
	}

	resp := fieldResponse{Field: string(field), Valid: fieldErr == nil}
	result := metrics.ResultValid
	if fieldErr != nil {
		resp.Error = fieldErr.Message
		resp.Kind = string(fieldErr.Kind)
		result = metrics.ResultRequired
		if fieldErr.Kind == registration.KindInvalidFormat {
			result = metrics.ResultInvalid
		}
	}
	h.metrics.IncrementFieldValidation(name, result)
	writeJSON(w, http.StatusOK, resp)
}

// handleSubmit is the Next Step action: it re-validates every field and only
// hands off to step 2 when the advance gate passes.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	sess, err := h.postedSession(r)
	if err != nil {
		h.rejectPost(w, r, err)
		return
	}

	var values registration.Values
	if err := h.decoder.Decode(&values, r.PostForm); err != nil {
		h.logger.WarnContext(ctx, "invalid registration payload",
			"request_id", requestID,
			"session", sess.ID,
			"error", err.Error(),
		)
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	applyValues(sess.form, values)
	sess.submitted = nil
	outcome, err := sess.form.Advance(ctx, registration.NextStepFunc(func(ctx context.Context, submitted registration.Values) error {
		if h.next != nil {
			if err := h.next.Begin(ctx, submitted); err != nil {
				return err
			}
		}
		sess.submitted = &submitted
		return nil
	}))
	sess.mu.Unlock()

	if err != nil {
		h.metrics.IncrementAdvanceAttempt(metrics.OutcomeFailed)
		h.logger.ErrorContext(ctx, "failed to begin step 2",
			"request_id", requestID,
			"session", sess.ID,
			"error", err.Error(),
		)
		http.Error(w, "could not continue to step 2", http.StatusInternalServerError)
		return
	}
	if !outcome.Advance {
		h.metrics.IncrementAdvanceAttempt(metrics.OutcomeRejected)
		h.logger.InfoContext(ctx, "advance rejected",
			"request_id", requestID,
			"session", sess.ID,
			"errors", len(outcome.Errors),
		)
		h.renderForm(w, r, sess, http.StatusUnprocessableEntity, []string{advanceRejectedMessage})
		return
	}

	h.metrics.IncrementAdvanceAttempt(metrics.OutcomeAdvanced)
	h.logger.InfoContext(ctx, "step 1 completed",
		"request_id", requestID,
		"session", sess.ID,
	)
	redirect(w, r, RouteStepTwo)
}

// handleLocation toggles the location placeholder. The whole form is posted
// with it, so typed values are kept without being validated.
func (h *Handler) handleLocation(w http.ResponseWriter, r *http.Request) {
	sess, err := h.postedSession(r)
	if err != nil {
		h.rejectPost(w, r, err)
		return
	}

	var values registration.Values
	decodeErr := h.decoder.Decode(&values, r.PostForm)

	sess.mu.Lock()
	if decodeErr == nil {
		applyValues(sess.form, values)
	}
	state := sess.form.Location().Toggle()
	sess.mu.Unlock()

	h.logger.InfoContext(r.Context(), "location toggled",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"session", sess.ID,
		"state", string(state),
	)
	redirect(w, r, RouteRegister)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	sess, err := h.postedSession(r)
	if err != nil {
		h.rejectPost(w, r, err)
		return
	}
	h.sessions.Delete(sess.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.InfoContext(r.Context(), "registration cancelled",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"session", sess.ID,
	)
	redirect(w, r, RouteRegister)
}

func (h *Handler) handleStepTwo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existingSession(r)
	if !ok {
		redirect(w, r, RouteRegister)
		return
	}
	values, ok := sess.Submitted()
	if !ok {
		redirect(w, r, RouteRegister)
		return
	}

	page, err := h.pages.RenderTemplate("templates/step2", map[string]any{
		"stylesheet":  RouteAssets + "/" + vanilla.StylesheetName,
		"back":        RouteRegister,
		"stationName": values.StationName,
		"officerName": values.OfficerName,
		"district":    values.District,
		"email":       values.Email,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render step 2",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"session", sess.ID,
			"error", err.Error(),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (h *Handler) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(schemas.Registration())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, sess *Session, status int, formErrors []string) {
	sess.mu.Lock()
	opts := render.OptionsFromForm(sess.form)
	opts.Location = render.LocationFromPicker(sess.form.Location(), RouteLocation)
	sess.mu.Unlock()

	opts.Action = RouteRegister
	opts.FormErrors = formErrors
	opts.Hidden = render.MergeHiddenFields(nil, render.CSRFToken(CSRFField, sess.CSRF))

	output, err := h.orch.Render(r.Context(), h.form, orchestrator.Request{
		RenderOptions: opts,
		ThemeName:     h.themeName,
		ThemeVariant:  h.themeVariant,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render form",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"session", sess.ID,
			"error", err.Error(),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(output)
}

// session returns the caller's session, starting one (and setting its
// cookie) when none is live.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := h.existingSession(r); ok {
		return sess
	}
	sess := h.sessions.Create()
	h.metrics.IncrementSessionStarted()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.InfoContext(r.Context(), "session started",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"session", sess.ID,
	)
	return sess
}

func (h *Handler) existingSession(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(cookie.Value)
}

// postedSession parses the posted form and checks its CSRF token against the
// caller's live session.
func (h *Handler) postedSession(r *http.Request) (*Session, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("server: parse form: %w", err)
	}
	sess, ok := h.existingSession(r)
	if !ok {
		return nil, errSessionExpired
	}
	token := r.PostForm.Get(CSRFField)
	if subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRF)) != 1 {
		return nil, errInvalidCSRF
	}
	return sess, nil
}

// rejectPost answers a form post that carried no live session or a bad token.
// An expired session starts over; anything else is forbidden.
func (h *Handler) rejectPost(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "rejected form post",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"error", err.Error(),
	)
	if errors.Is(err, errSessionExpired) {
		redirect(w, r, RouteRegister)
		return
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

func applyValues(form *registration.Form, values registration.Values) {
	for _, field := range registration.Fields() {
		_ = form.SetValue(field, values.Get(field))
	}
}
