package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movimenta/extrato-ledger/internal/categorizer"
	"github.com/movimenta/extrato-ledger/internal/logger"
)

const sampleStatement = `BANCO EXEMPLO S.A.
Agência 0001 Conta 12345-6
Data Lançamentos Valor
05/01/2024 PIX RECEBIDO MARIA 200,00
06/01/2024 SUPERMERCADO BONANZA -450,75
06/01/2024 SALDO DO DIA 1.200,00
10/01/2024 NETFLIX.COM -39,90`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	NewServer(categorizer.New(), logger.Nop()).Register(app)
	return app
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) statementResponse {
	t.Helper()
	defer resp.Body.Close()
	var body statementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func uploadSample(t *testing.T, app *fiber.App) statementResponse {
	t.Helper()
	resp := postForm(t, app, "/api/statements", url.Values{"extractedText": {sampleStatement}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decodeResponse(t, resp)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestUploadExtractedText(t *testing.T) {
	app := newTestApp(t)

	body := uploadSample(t, app)

	assert.True(t, body.Success)
	require.Len(t, body.Transactions, 3, "SALDO DO DIA line is dropped")
	assert.Equal(t, "PIX RECEBIDO MARIA", body.Transactions[0].Description)
	assert.Equal(t, "Transferências", body.Transactions[0].Category)
	assert.Equal(t, "Supermercado", body.Transactions[1].Category)
	assert.Equal(t, "Streaming", body.Transactions[2].Category)
	assert.Equal(t, 3, body.Totals.Count)
}

func TestUploadReplacesLedger(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	second := "Data Lançamentos Valor\n01/02/2024 PADARIA CENTRAL -15,00"
	body := decodeResponse(t, postForm(t, app, "/api/statements", url.Values{"extractedText": {second}}))
	require.Len(t, body.Transactions, 1)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/transactions", nil), -1)
	require.NoError(t, err)
	assert.Len(t, decodeResponse(t, resp).Transactions, 1)
}

func TestUploadWithoutPayload(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/api/statements", url.Values{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestTransactionsFilters(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"type debit", "?type=saida", 2},
		{"type credit", "?type=entrada", 1},
		{"search", "?search=netflix", 1},
		{"category", "?category=Supermercado", 1},
		{"range", "?from=05/01/2024&to=06/01/2024", 2},
		{"compound", "?type=saida&from=10/01/2024&to=31/01/2024", 1},
		{"no match", "?search=inexistente", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/transactions"+tt.query, nil), -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Len(t, decodeResponse(t, resp).Transactions, tt.want)
		})
	}
}

func TestTransactionsBadQuery(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	for _, query := range []string{
		"?type=transfer",
		"?from=05/01/2024",
		"?from=2024-01-05&to=2024-01-06",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/transactions"+query, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "query %s", query)
	}
}

func TestCategories(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/categories", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Categories, "Supermercado")
	assert.Equal(t, categorizer.Fallback, body.Categories[len(body.Categories)-1])
}

func TestExportCSV(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/export?format=csv&filename=extrato.csv", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="extrato.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(string(payload), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Data","Descrição","Categoria","Tipo","Valor"`, lines[0])
	assert.Contains(t, lines[2], `"-R$ 450,75"`)
}

func TestExportPDF(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportEmptyLedger(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/export?format=csv", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decodeResponse(t, resp).Error, "nenhuma movimentação")
}

func TestExportUnknownFormat(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/export?format=xlsx", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClearStatements(t *testing.T) {
	app := newTestApp(t)
	uploadSample(t, app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/statements", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/transactions", nil), -1)
	require.NoError(t, err)
	assert.Empty(t, decodeResponse(t, resp).Transactions)
}
