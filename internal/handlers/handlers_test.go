package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// The checks below cover the validation layer, which runs before any storage
// call. Handlers are invoked with a nil DB to prove rejected requests never
// reach the database.

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not an error object: %v", err)
	}
	return resp["error"]
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	w := performJSON(t, CreateBooking(nil, nil), "POST", "/api/bookings",
		`{"learner_id": 1}`)
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	w := performJSON(t, CreateBooking(nil, nil), "POST", "/api/bookings",
		`{"learner_id": 1, "tutor_id": 2, "session_date": "2020-01-01", "session_time": "14:00", "duration": 60}`)
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(errorMessage(t, w), "past") {
		t.Error("error should mention the past date")
	}
}

func TestCreateBookingRejectsBadDuration(t *testing.T) {
	for _, duration := range []string{"15", "50"} {
		w := performJSON(t, CreateBooking(nil, nil), "POST", "/api/bookings",
			`{"learner_id": 1, "tutor_id": 2, "session_date": "2999-01-01", "session_time": "14:00", "duration": `+duration+`}`)
		if w.Code != 400 {
			t.Errorf("duration %s: expected 400, got %d", duration, w.Code)
		}
	}
}

func TestRescheduleBookingRequiresNewSlot(t *testing.T) {
	w := performJSON(t, RescheduleBooking(nil, nil), "PUT", "/api/bookings/1/reschedule",
		`{"session_date": "2999-01-01"}`)
	if w.Code != 400 {
		t.Errorf("expected 400 when session_time is missing, got %d", w.Code)
	}

	w = performJSON(t, RescheduleBooking(nil, nil), "PUT", "/api/bookings/1/reschedule", `{}`)
	if w.Code != 400 {
		t.Errorf("expected 400 for an empty body, got %d", w.Code)
	}
}

func TestSearchTutorsRequiresQuery(t *testing.T) {
	w := performJSON(t, SearchTutors(nil), "GET", "/api/tutors", "")
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(errorMessage(t, w), "module") {
		t.Error("error should name the missing query parameter")
	}

	w = performJSON(t, SearchTutors(nil), "GET", "/api/tutors?module=+++", "")
	if w.Code != 400 {
		t.Errorf("whitespace-only query should be rejected, got %d", w.Code)
	}
}

func TestRegisterTutorRejectsBadRate(t *testing.T) {
	for _, rate := range []string{"-10", "abc"} {
		w := performJSON(t, RegisterTutor(nil), "POST", "/api/tutors",
			`{"first_name": "Sam", "last_name": "Park", "college_email": "sam@college.edu", "modules": "Mathematics", "hourly_rate": "`+rate+`"}`)
		if w.Code != 400 {
			t.Errorf("rate %q: expected 400, got %d", rate, w.Code)
		}
	}
}

func TestRegisterTutorRejectsBadRating(t *testing.T) {
	w := performJSON(t, RegisterTutor(nil), "POST", "/api/tutors",
		`{"first_name": "Sam", "last_name": "Park", "college_email": "sam@college.edu", "modules": "Mathematics", "hourly_rate": "20.00", "rating": "9"}`)
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(errorMessage(t, w), "rating") {
		t.Error("error should name the rating field")
	}
}

func TestWebSocketHandlerRequiresIdentity(t *testing.T) {
	w := performJSON(t, WebSocketHandler(nil), "GET", "/api/ws", "")
	if w.Code != 400 {
		t.Errorf("expected 400 without userId, got %d", w.Code)
	}

	w = performJSON(t, WebSocketHandler(nil), "GET", "/api/ws?userId=7&userType=admin", "")
	if w.Code != 400 {
		t.Errorf("expected 400 for unknown userType, got %d", w.Code)
	}
}
