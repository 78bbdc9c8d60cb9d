package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/pkg/httpx"
)

// RegisterResource mounts the five standard endpoints of a record collection
// under /api/{name}. Every route requires a session and is owner-scoped
// through it; parseFilter translates query parameters into the collection's
// filter type.
func RegisterResource[C, F, U, T any](
	r *Router,
	name string,
	svc service.Resource[C, F, U, T],
	parseFilter func(url.Values) (F, error),
) {
	secure := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			RequireSession(r.Sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /api/"+name, secure(createHandler(svc)))
	r.Mux.Handle("GET /api/"+name, secure(fetchHandler(svc, parseFilter)))
	r.Mux.Handle("GET /api/"+name+"/{id}", secure(getHandler(svc)))
	r.Mux.Handle("PATCH /api/"+name+"/{id}", secure(updateHandler(svc)))
	r.Mux.Handle("DELETE /api/"+name+"/{id}", secure(deleteHandler(svc)))
}

func createHandler[C, F, U, T any](svc service.Resource[C, F, U, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "")
			return
		}

		var params C
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		rec, err := svc.Create(r.Context(), sess.UserID, params)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusCreated, rec)
	}
}

func fetchHandler[C, F, U, T any](svc service.Resource[C, F, U, T], parseFilter func(url.Values) (F, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "")
			return
		}

		query := r.URL.Query()
		page, err := parsePage(query)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter, err := parseFilter(query)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		records, err := svc.Fetch(r.Context(), sess.UserID, filter, page)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, records)
	}
}

func getHandler[C, F, U, T any](svc service.Resource[C, F, U, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "")
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid id")
			return
		}

		rec, err := svc.Get(r.Context(), sess.UserID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, rec)
	}
}

func updateHandler[C, F, U, T any](svc service.Resource[C, F, U, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "")
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var patch U
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		rec, err := svc.Update(r.Context(), sess.UserID, id, patch)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, rec)
	}
}

func deleteHandler[C, F, U, T any](svc service.Resource[C, F, U, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "")
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid id")
			return
		}

		if err := svc.Delete(r.Context(), sess.UserID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, nil)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func parsePage(query url.Values) (domain.Page, error) {
	var limit, offset int
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Page{}, domain.ErrInvalidLimit
		}
		limit = n
	}
	if v := query.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Page{}, domain.ErrInvalidOffset
		}
		offset = n
	}
	return domain.NewPage(limit, offset)
}
