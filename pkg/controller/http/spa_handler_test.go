package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpCtrl "github.com/secmon-lab/demografi/pkg/controller/http"
)

func TestSPAHandler(t *testing.T) {
	spaFS := http.Dir("testdata/spa")

	t.Run("serve existing static file", func(t *testing.T) {
		handler, err := httpCtrl.NewSPAHandler(spaFS)
		gt.NoError(t, err).Required()

		req := httptest.NewRequest("GET", "/static/app.js", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/javascript; charset=utf-8")
		gt.Equal(t, w.Header().Get("Cache-Control"), "public, max-age=300")
		gt.S(t, w.Body.String()).Contains("console.log")
	})

	t.Run("serve index.html for client side route", func(t *testing.T) {
		handler, err := httpCtrl.NewSPAHandler(spaFS)
		gt.NoError(t, err).Required()

		for _, path := range []string{"/", "/gender", "/age/section", "/unknown/deep/path"} {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
			gt.Equal(t, w.Header().Get("Cache-Control"), "no-cache")
			gt.S(t, w.Body.String()).Contains("<div id=\"root\">")
		}
	})

	t.Run("missing asset is not found", func(t *testing.T) {
		handler, err := httpCtrl.NewSPAHandler(spaFS)
		gt.NoError(t, err).Required()

		req := httptest.NewRequest("GET", "/static/missing.js", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusNotFound)
	})

	t.Run("traversal stays inside the filesystem", func(t *testing.T) {
		handler, err := httpCtrl.NewSPAHandler(spaFS)
		gt.NoError(t, err).Required()

		req := httptest.NewRequest("GET", "/", nil)
		req.URL.Path = "/../../server.go"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).Contains("<div id=\"root\">")
	})

	t.Run("reject non-GET methods", func(t *testing.T) {
		handler, err := httpCtrl.NewSPAHandler(spaFS)
		gt.NoError(t, err).Required()

		req := httptest.NewRequest("POST", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusMethodNotAllowed)
	})
}

func TestSPAHandlerContentTypes(t *testing.T) {
	handler, err := httpCtrl.NewSPAHandler(http.Dir("testdata/spa"))
	gt.NoError(t, err).Required()

	testCases := []struct {
		path        string
		contentType string
	}{
		{"/static/app.js", "application/javascript; charset=utf-8"},
		{"/static/style.css", "text/css; charset=utf-8"},
		{"/static/data.json", "application/json; charset=utf-8"},
		{"/static/favicon.ico", "image/x-icon"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, w.Header().Get("Content-Type"), tc.contentType)
		})
	}
}

func TestNewSPAHandlerError(t *testing.T) {
	_, err := httpCtrl.NewSPAHandler(http.Dir("testdata/empty"))
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("failed to open index.html")
}
