package httpservice

import "net/http"

import "github.com/google/uuid"

import "github.com/sirgallo/rdoc/pkg/txn"


func (httpService *HTTPService) GenerateRequestUUID() string {
	id := uuid.New()
	return id.String()
}

// tags every response with a request id, reusing the caller's when one is sent
func (httpService *HTTPService) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" { requestID = httpService.GenerateRequestUUID() }

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func StatusFor(code txn.Code) int {
	switch code {
		case txn.OK:
			return http.StatusOK
		case txn.NotLoggedIn, txn.TokenMismatch, txn.InvalidCredentials:
			return http.StatusUnauthorized
		case txn.NoPermission:
			return http.StatusForbidden
		case txn.DocumentNotFound, txn.SectionNotFound, txn.TargetNotFound:
			return http.StatusNotFound
		case txn.AlreadyLoggedIn, txn.UsernameTaken, txn.DocumentExists, txn.SectionBusy, txn.NotEditing:
			return http.StatusConflict
		case txn.InvalidRequest:
			return http.StatusBadRequest
		case txn.Aborted:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
	}
}

func toResponseBody(requestID string, res *txn.Result) *responseBody {
	body := &responseBody{
		RequestID: requestID,
		Code: res.Code,
		Message: res.Message,
		Token: res.Token,
		ChatAddress: res.ChatAddress,
		Occupant: res.Occupant,
		OccupiedSections: res.OccupiedSections,
		DocNames: res.DocNames,
		Notifications: res.Notifications,
	}

	if res.Content != nil {
		content := string(res.Content)
		body.Content = &content
	}

	return body
}
