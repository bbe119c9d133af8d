package utils

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func ValidateUrlParamID(param string) error {
	if strings.TrimSpace(param) == "" {
		return errors.New("parameter is missing from url path")
	}
	return nil
}

// ParseReportPeriod reads month and year query parameters, defaulting each to
// the current month and year in now's location.
func ParseReportPeriod(r *http.Request, now time.Time) (month, year int, err error) {
	month = int(now.Month())
	year = now.Year()

	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	return month, year, nil
}
