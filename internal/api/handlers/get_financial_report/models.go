package get_financial_report

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseYear читает параметр year, по умолчанию текущий год
func ParseYear(r *http.Request, now time.Time) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return now.Year(), nil
	}
	return strconv.Atoi(raw)
}
