// This file implements utilities for parsing HTTP request data into the
// screen forms.

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"workday/internal/screens"
)

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *ResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// pathID reads a positive integer path value such as {id}.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// formValue returns a trimmed, sanitized form value.
func formValue(form url.Values, key string) string {
	return sanitizeInput(form.Get(key))
}

func clientForm(form url.Values) screens.ClientForm {
	return screens.ClientForm{
		Name:       formValue(form, "name"),
		Phone:      formValue(form, "phone"),
		DailyRate:  formValue(form, "daily_rate"),
		DaysWorked: formValue(form, "days_worked"),
	}
}

func paymentForm(form url.Values) screens.PaymentForm {
	return screens.PaymentForm{
		Amount: formValue(form, "amount"),
		Type:   formValue(form, "type"),
		Date:   formValue(form, "date"),
	}
}

func entryForm(form url.Values) screens.EntryForm {
	return screens.EntryForm{
		ID:          formValue(form, "id"),
		Type:        formValue(form, "type"),
		Amount:      formValue(form, "amount"),
		Description: formValue(form, "description"),
		Date:        formValue(form, "date"),
	}
}

// formBool treats "1", "true", "on" and "present" as true.
func formBool(form url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(form.Get(key))) {
	case "1", "true", "on", "present", "yes":
		return true
	}
	return false
}

// noticeFromQuery reads the notice left by RedirectWithNotice.
func noticeFromQuery(q url.Values) *notice {
	msg := strings.TrimSpace(q.Get("msg"))
	if msg == "" {
		return nil
	}
	level := NotificationType(q.Get("level"))
	switch level {
	case NotificationSuccess, NotificationError, NotificationWarning, NotificationInfo:
	default:
		level = NotificationInfo
	}
	return &notice{Level: level, Message: msg}
}

func parsePositive(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
