package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func accountIDFromPath(r *http.Request) (int64, *FieldError) {
	raw := r.PathValue("accountId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &FieldError{Field: "accountId", Message: "must be a positive integer"}
	}
	return id, nil
}

func transactionIDFromPath(r *http.Request) (int64, *FieldError) {
	id, err := strconv.ParseInt(r.PathValue("transactionId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &FieldError{Field: "transactionId", Message: "must be a positive integer"}
	}
	return id, nil
}

func pageFromQuery(r *http.Request) (limit, offset int, errs []FieldError) {
	limit, offset = defaultPageLimit, 0
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageLimit {
			errs = append(errs, FieldError{Field: "limit", Message: "must be between 1 and 100"})
		} else {
			limit = n
		}
	}

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, FieldError{Field: "offset", Message: "must be zero or greater"})
		} else {
			offset = n
		}
	}

	return limit, offset, errs
}
