package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/observability/metrics"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
	"github.com/sbenmansour/cessiondesk/internal/pkg/config"
)

type fixture struct {
	client   *Client
	session  *session.Manager
	notifier *notify.Notifier
	store    *storage.MemoryStore
	expiries *atomic.Int32
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	metrics.InitAppMetrics()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	sess := session.NewManager(store, logger)
	notifier := notify.New()

	translator, err := i18n.New(store, "en", logger)
	require.NoError(t, err)

	expiries := &atomic.Int32{}
	client := NewClient(config.BackendConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
		ListCacheTTL:   time.Minute,
	}, sess, notifier, translator, logger, func() { expiries.Add(1) })

	return &fixture{client: client, session: sess, notifier: notifier, store: store, expiries: expiries}
}

func (f *fixture) signIn() {
	f.session.Set("test-token", &models.User{ID: "u-1", Email: "op@example.com"})
}

func TestNoTokenFailsLocally(t *testing.T) {
	var hits atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := f.client.ListClients(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Zero(t, hits.Load(), "should not reach the backend without a token")

	_, visible := f.notifier.Current()
	assert.False(t, visible, "local token errors produce no notification")
}

func TestBearerTokenAttached(t *testing.T) {
	var auth string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	f.signIn()

	_, err := f.client.ListClients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", auth)
}

func TestNoContentIsSuccess(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	f.signIn()

	err := f.client.DeleteClient(context.Background(), "c-1")
	assert.NoError(t, err)
}

func TestServerMessageSurfacedAsError(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"client number already in use"}`))
	}))
	f.signIn()

	_, err := f.client.CreateClient(context.Background(), models.Client{Name: "X"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "client number already in use", apiErr.Message)

	// An ordinary failure does not touch the session.
	assert.True(t, f.session.IsAuthenticated())
}

func TestNonJSONErrorBodyUsedVerbatim(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	f.signIn()

	_, err := f.client.ListClients(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestEmptyErrorBodyGetsGenericMessage(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	f.signIn()

	_, err := f.client.ListClients(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestUnauthorizedRunsExpiryProtocolOnce(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	f.signIn()

	const concurrency = 8
	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.client.GetClient(context.Background(), "c-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrAuthentication)
	}

	assert.False(t, f.session.IsAuthenticated())
	_, err := f.store.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	current, visible := f.notifier.Current()
	require.True(t, visible)
	assert.Equal(t, notify.KindError, current.Kind)
	assert.Equal(t, "Session expired. Please log in again.", current.Message)

	assert.Equal(t, int32(1), f.expiries.Load(), "redirect requested exactly once")
}

func TestForbiddenAlsoExpires(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	f.signIn()

	_, err := f.client.ListCessions(context.Background())
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, f.session.IsAuthenticated())
}

func TestInvalidIDRejectedLocally(t *testing.T) {
	var hits atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	f.signIn()

	for _, id := range []string{"", "undefined", "null"} {
		_, err := f.client.GetClient(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID)
	}
	assert.Zero(t, hits.Load())
}

func TestListCachingAndInvalidation(t *testing.T) {
	var hits atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			hits.Add(1)
			w.Write([]byte(`[{"id":"c-1","name":"A"}]`))
		default:
			w.Write([]byte(`{"id":"c-2","name":"B"}`))
		}
	}))
	f.signIn()

	_, err := f.client.ListClients(context.Background())
	require.NoError(t, err)
	_, err = f.client.ListClients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second list served from cache")

	_, err = f.client.CreateClient(context.Background(), models.Client{Name: "B"})
	require.NoError(t, err)

	_, err = f.client.ListClients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "mutation flushes the cache")
}

func TestSearchOmitsEmptyCriteria(t *testing.T) {
	var rawQuery string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	f.signIn()

	_, err := f.client.SearchClients(context.Background(), models.ClientSearch{Name: "ben", CIN: "12345678"})
	require.NoError(t, err)
	assert.Contains(t, rawQuery, "name=ben")
	assert.Contains(t, rawQuery, "cin=12345678")
	assert.NotContains(t, rawQuery, "job=")
	assert.NotContains(t, rawQuery, "workplace=")
}

func TestSignInStoresSession(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"fresh-token","id":"u-9","email":"op@example.com","fullName":"Op","role":"admin"}`))
	}))

	resp, err := f.client.SignIn(context.Background(), "op@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)
	assert.True(t, f.session.IsAuthenticated())
	require.NotNil(t, f.session.User())
	assert.Equal(t, "u-9", f.session.User().ID)
}

func TestStockMovementRecordedAsForm(t *testing.T) {
	var contentType, body string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m-1","productId":"p-1","quantity":3}`))
	}))
	f.signIn()

	_, err := f.client.RecordStockMovement(context.Background(), models.StockMovement{
		ProductID:          "p-1",
		Quantity:           3,
		SellingPriceAtSale: 120.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Contains(t, body, "productId=p-1")
	assert.Contains(t, body, "quantity=3")
	assert.Contains(t, body, "sellingPrice=120.5")
}

func TestRecentMovementsBackfillNestedProduct(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"m-1","quantity":2,"product":{"id":"p-7","name":"Fridge"}}]`))
	}))
	f.signIn()

	movements, err := f.client.GetRecentStockMovements(context.Background(), "OUTBOUND", 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "Fridge", movements[0].ProductName)
	assert.Equal(t, "p-7", movements[0].ProductID)
}

func TestFinancialReadsScopedToUser(t *testing.T) {
	var path, rawQuery string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"id":"e-1","amount":40}],"totalElements":1,"totalPages":1,"number":0}`))
	}))
	f.signIn()

	page, err := f.client.GetAllExpenses(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, 1, page.TotalElements)

	assert.Equal(t, "/api/v1/expenses/all", path)
	assert.Contains(t, rawQuery, "userId=u-1")
	assert.Contains(t, rawQuery, "size=50")
}

func TestExpensesByMonthCarriesYearAndMonth(t *testing.T) {
	var rawQuery string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	f.signIn()

	_, err := f.client.GetExpensesByMonth(context.Background(), 2026, 8)
	require.NoError(t, err)
	assert.Contains(t, rawQuery, "year=2026")
	assert.Contains(t, rawQuery, "month=8")
	assert.Contains(t, rawQuery, "userId=u-1")
}

func TestClientDocumentsListedWithoutType(t *testing.T) {
	var method, path string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"d-1","fileName":"cin.pdf","documentType":"cin"}]`))
	}))
	f.signIn()

	docs, err := f.client.GetClientDocuments(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/api/v1/documents/client/c-1", path)
}

func TestClientUploadPutsTypeInPath(t *testing.T) {
	var path, contentType, fileName string
	var extraFields int
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		extraFields = len(r.MultipartForm.Value)
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		fileName = header.Filename
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"d-1"}`))
	}))
	f.signIn()

	doc, err := f.client.UploadClientDocument(context.Background(), "c-1", "cin", "scan.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "d-1", doc.ID)
	assert.Equal(t, "/api/v1/documents/client/c-1/cin", path)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))
	assert.Equal(t, "scan.pdf", fileName)
	assert.Zero(t, extraFields, "the form carries the file part only")
}

func TestSpecificUploadCarriesTypeAndClientNumber(t *testing.T) {
	var path, documentType, clientNumber string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		documentType = r.FormValue("documentType")
		clientNumber = r.FormValue("clientNumber")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"d-2"}`))
	}))
	f.signIn()

	_, err := f.client.UploadSpecificDocument(context.Background(), "c-1", "1042", "payslip", "scan.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/documents/client/c-1/specific", path)
	assert.Equal(t, "payslip", documentType)
	assert.Equal(t, "1042", clientNumber)
}

func TestGenericUploadBindsTypeAndEntity(t *testing.T) {
	var path, docType, entityID string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		docType = r.FormValue("type")
		entityID = r.FormValue("entityId")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"d-3"}`))
	}))
	f.signIn()

	_, err := f.client.UploadDocument(context.Background(), "ces-7", "contract", "signed.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/documents/upload", path)
	assert.Equal(t, "contract", docType)
	assert.Equal(t, "ces-7", entityID)
}

func TestProductSearchUsesQueryKey(t *testing.T) {
	var rawQuery string
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	f.signIn()

	_, err := f.client.SearchProducts(context.Background(), "fridge")
	require.NoError(t, err)
	assert.Equal(t, "query=fridge", rawQuery)
}

func TestValidateFailureClearsSessionQuietly(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	f.signIn()

	_, err := f.client.Validate(context.Background())
	require.Error(t, err)
	assert.False(t, f.session.IsAuthenticated())

	_, visible := f.notifier.Current()
	assert.False(t, visible, "non-auth validation failures clear without a notification")
	assert.Zero(t, f.expiries.Load(), "no redirect requested")
}

func TestCreateClientWithoutIDRejected(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"X"}`))
	}))
	f.signIn()

	_, err := f.client.CreateClient(context.Background(), models.Client{Name: "X"})
	assert.ErrorIs(t, err, ErrMissingID)
}
