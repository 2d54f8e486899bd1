package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/homa/internal/app"
	"github.com/MrJamesThe3rd/homa/internal/config"
	homaHttp "github.com/MrJamesThe3rd/homa/internal/http"
	"github.com/MrJamesThe3rd/homa/internal/http/assistant"
	"github.com/MrJamesThe3rd/homa/internal/http/dashboard"
	"github.com/MrJamesThe3rd/homa/internal/http/importdata"
	"github.com/MrJamesThe3rd/homa/internal/http/invoice"
	"github.com/MrJamesThe3rd/homa/internal/http/maintenance"
	"github.com/MrJamesThe3rd/homa/internal/http/tenant"
	"github.com/MrJamesThe3rd/homa/internal/http/unit"
)

func newRouter(t *testing.T) (http.Handler, *app.App) {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Storage.Backend = "memory"
	cfg.Gemini.APIKey = ""

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return homaHttp.New(homaHttp.Handlers{
		Dashboard:   dashboard.NewHandler(a.Buildings),
		Units:       unit.NewHandler(a.Buildings),
		Tenants:     tenant.NewHandler(a.Buildings, "IR"),
		Invoices:    invoice.NewHandler(a.Buildings, a.Export),
		Maintenance: maintenance.NewHandler(a.Buildings, a.Export),
		Assistant:   assistant.NewHandler(a.AI, a.Buildings),
		Import:      importdata.NewHandler(a.Importer),
	}, []string{"*"}), a
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRoutes(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{name: "Dashboard", method: http.MethodGet, path: "/api/v1/dashboard", wantStatus: http.StatusOK, wantBody: `"occupancyRate":67`},
		{name: "ListUnits", method: http.MethodGet, path: "/api/v1/units", wantStatus: http.StatusOK, wantBody: `"statusLabel":"پر"`},
		{name: "CreateUnitMissingNumber", method: http.MethodPost, path: "/api/v1/units", body: `{"floor":2}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "CreateUnit", method: http.MethodPost, path: "/api/v1/units", body: `{"number":"301"}`, wantStatus: http.StatusCreated, wantBody: `"status":"VACANT"`},
		{name: "BadStatus", method: http.MethodPatch, path: "/api/v1/units/1/status", body: `{"status":"RENTED"}`, wantStatus: http.StatusBadRequest},
		{name: "DeleteUnknownUnit", method: http.MethodDelete, path: "/api/v1/units/nope", wantStatus: http.StatusNotFound},
		{name: "CreateTenantMissingPhone", method: http.MethodPost, path: "/api/v1/tenants", body: `{"name":"x"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "Reminder", method: http.MethodGet, path: "/api/v1/tenants/t1/reminder", wantStatus: http.StatusOK, wantBody: `https://wa.me/989120000000?text=`},
		{name: "TogglePaid", method: http.MethodPatch, path: "/api/v1/invoices/i2/paid", wantStatus: http.StatusOK, wantBody: `"isPaid":true`},
		{name: "InvoiceMissingAmount", method: http.MethodPost, path: "/api/v1/invoices", body: `{"unitId":"1"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "PDFUnknown", method: http.MethodGet, path: "/api/v1/invoices/nope/pdf", wantStatus: http.StatusNotFound},
		{name: "Chat", method: http.MethodPost, path: "/api/v1/assistant/chat", body: `{"question":"سلام"}`, wantStatus: http.StatusOK, wantBody: `"failed":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	router, a := newRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/invoices", `{"unitId":"3","amount":9500000,"type":"CHARGE"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID         string `json:"id"`
		TenantName string `json:"tenantName"`
		UnitNumber string `json:"unitNumber"`
		TypeLabel  string `json:"typeLabel"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "زهرا رضایی", created.TenantName)
	assert.Equal(t, "201", created.UnitNumber)
	assert.Equal(t, "شارژ", created.TypeLabel)
	assert.Equal(t, created.ID, a.Buildings.Snapshot().Invoices[0].ID)

	rec = do(t, router, http.MethodGet, "/api/v1/invoices/"+created.ID+"/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = do(t, router, http.MethodGet, "/api/v1/invoices/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Gozaresh_Factor_Ha.xlsx")

	rec = do(t, router, http.MethodDelete, "/api/v1/invoices/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, a.Buildings.Snapshot().Invoices, 2)
}

func TestImport(t *testing.T) {
	router, a := newRouter(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("format", "maintenance_csv"))

	fw, err := mw.CreateFormFile("file", "costs.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte("تاریخ;شرح هزینه;مبلغ (تومان)\n1402/12/01;نظافت;300000\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"format":"maintenance_csv","imported":{"units":0,"tenants":0,"invoices":0,"maintenance":1}}`, rec.Body.String())
	assert.Len(t, a.Buildings.Snapshot().Maintenance, 3)
}
