package respond

import (
	"encoding/json"
	"net/http"
	"time"
)

// TimestampHeader добавляется ко всем успешным ответам
const TimestampHeader = "X-Response-Time"

var now = time.Now

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	stamp(w, code)
	write(w, code, data)
}

// Empty отправляет успешный ответ без тела (201 после signup, 204 после удаления)
func Empty(w http.ResponseWriter, r *http.Request, code int) {
	stamp(w, code)
	w.WriteHeader(code)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	write(w, code, map[string]string{"error": message})
}

func stamp(w http.ResponseWriter, code int) {
	if code < http.StatusBadRequest {
		w.Header().Set(TimestampHeader, now().UTC().Format(time.RFC3339))
	}
}

func write(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}
