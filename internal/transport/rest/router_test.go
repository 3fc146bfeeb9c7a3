package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/auth"
	"github.com/vnphone/staff-portal/internal/transport"
	"github.com/vnphone/staff-portal/pkg/logger"
)

type stubActivityService struct {
	appended []activity.AppendDTO
}

func (s *stubActivityService) List(_ context.Context, limit int) ([]*activity.Entry, error) {
	return []*activity.Entry{}, nil
}

func (s *stubActivityService) Append(_ context.Context, _ string, dto activity.AppendDTO) error {
	s.appended = append(s.appended, dto)
	return nil
}

var _ = ginkgo.Describe("Router", func() {
	var (
		router   *chi.Mux
		codec    *auth.TokenCodec
		logs     *stubActivityService
	)

	sessionFor := func(role string) *http.Cookie {
		token, err := codec.Sign(auth.Payload{StaffID: "staff-1", Role: role, Company: "vnphone"})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return &http.Cookie{Name: auth.CookieName, Value: token}
	}

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	ginkgo.BeforeEach(func() {
		var err error
		codec, err = auth.NewTokenCodec("router-secret")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		lg := logger.Discard()
		logs = &stubActivityService{}
		gate := auth.NewGate(codec, auth.SessionCookie{}, nil, auth.GateConfig{}, lg)

		router = chi.NewRouter()
		RegisterAllRoutes(router, Handlers{
			Gate:     gate,
			Activity: activity.NewHandler(transport.NewBaseHandler(lg), logs),
			Logger:   lg,
		})
	})

	ginkgo.It("serves liveness without a session", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/ping", nil))
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("OK"))
	})

	ginkgo.It("serves the OpenAPI document without a session", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/openapi.yml", nil))
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(w.Body.String()).To(gomega.HavePrefix("openapi:"))
	})

	ginkgo.It("rejects API calls without a session with 401", func() {
		w := serve(httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(`{"action":"view_product"}`)))
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(w.Header().Get("X-Trace-ID")).NotTo(gomega.BeEmpty())
	})

	ginkgo.It("redirects page requests without a session to the login page", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusFound))
		gomega.Expect(w.Header().Get("Location")).To(gomega.Equal("/login"))
	})

	ginkgo.It("lets any signed-in staff append to the activity log", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(`{"action":"view_product","details":{"model":"iPhone 15"}}`))
		req.AddCookie(sessionFor("staff"))

		w := serve(req)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusAccepted))
		gomega.Expect(logs.appended).To(gomega.HaveLen(1))
	})

	ginkgo.It("keeps reading the activity log admin only", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
		req.AddCookie(sessionFor("staff"))
		w := serve(req)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))

		req = httptest.NewRequest(http.MethodGet, "/api/logs?limit=10", nil)
		req.AddCookie(sessionFor("admin"))
		w = serve(req)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

		var body map[string]interface{}
		gomega.Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(gomega.Succeed())
		gomega.Expect(body["limit"]).To(gomega.BeEquivalentTo(10))
	})
})

var _ = ginkgo.Describe("HealthHandler", func() {
	ginkgo.It("reports healthy when every check passes", func() {
		h := NewHealthHandler(map[string]Pinger{
			"postgres": PingFunc(func(context.Context) error { return nil }),
			"redis":    nil,
		})
		w := httptest.NewRecorder()
		h.healthCheckHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		var resp HealthResponse
		gomega.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(gomega.Succeed())
		gomega.Expect(resp.Status).To(gomega.Equal(HealthHealthy))
		gomega.Expect(resp.Components).To(gomega.HaveKey("postgres"))
		gomega.Expect(resp.Components).NotTo(gomega.HaveKey("redis"))
	})

	ginkgo.It("returns 503 when a dependency is down", func() {
		h := NewHealthHandler(map[string]Pinger{
			"postgres": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
		})
		w := httptest.NewRecorder()
		h.healthCheckHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusServiceUnavailable))
		var resp HealthResponse
		gomega.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(gomega.Succeed())
		gomega.Expect(resp.Components["postgres"].Message).To(gomega.Equal("connection refused"))
	})
})
