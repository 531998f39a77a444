package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gearguard/internal/docstore"
	"gearguard/pkg/config"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

func newTestEcho(t *testing.T, store docstore.Store, setupErr error) (*echo.Echo, Dependencies, context.CancelFunc) {
	t.Helper()
	logger := zap.NewNop()

	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))

	broker := docstore.NewBroker(logger)
	notifying := docstore.NewNotifyingStore(store, broker, nil, logger)

	cfg := config.Default()
	cfg.Store.Driver = config.StoreDriverSQLite
	cfg.JWT.SecretKey = "test-secret"

	ctx, cancel := context.WithCancel(context.Background())
	hub := appwebsocket.NewHub(logger)
	go hub.Run(ctx)

	deps := Dependencies{
		Store:         notifying,
		Subscriptions: docstore.NewSubscriptions(notifying, broker, logger),
		Bus:           eventbus.New(logger),
		Hub:           hub,
		JWT:           service.NewJWTService(cfg.JWT.SecretKey, time.Hour, 24*time.Hour, logger),
		Clock:         clockwork.NewRealClock(),
		Validator:     v,
		Config:        cfg,
		SetupErr:      setupErr,
	}

	e := echo.New()
	e.Validator = utils.NewValidator(v)
	InitRouter(e, deps, NewLoggers(logger))
	return e, deps, cancel
}

// APITestSuite прогоняет HTTP API поверх SQLite в памяти.
type APITestSuite struct {
	suite.Suite
	Echo   *echo.Echo
	Deps   Dependencies
	Token  string
	cancel context.CancelFunc
	store  *docstore.SQLiteStore
}

func (s *APITestSuite) SetupTest() {
	ctx := context.Background()
	db, err := docstore.OpenSQLite(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(docstore.MigrateSQLite(ctx, db, zap.NewNop()))
	s.store = docstore.NewSQLiteStore(db, docstore.Options{})

	s.Echo, s.Deps, s.cancel = newTestEcho(s.T(), s.store, nil)

	rec := s.request(http.MethodPost, "/api/auth/sign-up", `{"email":"tech@example.com","password":"secret1","displayName":"Tech"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var auth struct {
		AccessToken string `json:"accessToken"`
	}
	s.decode(rec, &auth)
	s.Require().NotEmpty(auth.AccessToken)
	s.Token = auth.AccessToken
}

func (s *APITestSuite) TearDownTest() {
	s.Deps.Bus.Wait()
	s.cancel()
	_ = s.store.Close()
}

func (s *APITestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if s.Token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, dst interface{}) {
	var resp apiResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	s.Require().NoError(json.Unmarshal(resp.Body, dst), rec.Body.String())
}

func (s *APITestSuite) TestAuth() {
	s.Run("me", func() {
		rec := s.request(http.MethodGet, "/api/auth/me", "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		var me map[string]interface{}
		s.decode(rec, &me)
		s.Equal("tech@example.com", me["email"])
		s.NotContains(me, "passwordHash")
	})

	s.Run("missing token", func() {
		token := s.Token
		s.Token = ""
		defer func() { s.Token = token }()
		rec := s.request(http.MethodGet, "/api/equipment", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("wrong password", func() {
		rec := s.request(http.MethodPost, "/api/auth/sign-in", `{"email":"tech@example.com","password":"wrong-one"}`)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("duplicate sign-up", func() {
		rec := s.request(http.MethodPost, "/api/auth/sign-up", `{"email":"tech@example.com","password":"secret1"}`)
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *APITestSuite) TestEquipmentLifecycle() {
	var created map[string]interface{}

	s.Run("create", func() {
		rec := s.request(http.MethodPost, "/api/equipment", `{"name":"Pump A","serialNumber":"SN-1","status":"active","location":"Hall 1"}`)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		s.decode(rec, &created)
		s.NotEmpty(created["id"])
		s.NotEmpty(created["purchaseDate"])
	})
	id := created["id"].(string)

	s.Run("invalid payload", func() {
		rec := s.request(http.MethodPost, "/api/equipment", `{"name":"Pump B","serialNumber":"bad serial!","status":"active"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("partial update keeps other fields", func() {
		rec := s.request(http.MethodPut, "/api/equipment/"+id, `{"status":"maintenance"}`)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var updated map[string]interface{}
		s.decode(rec, &updated)
		s.Equal("maintenance", updated["status"])
		s.Equal("Hall 1", updated["location"])
		s.Equal("SN-1", updated["serialNumber"])
	})

	s.Run("status filter", func() {
		rec := s.request(http.MethodGet, "/api/equipment?filter[status]=maintenance&withPagination=true", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		var page struct {
			List []map[string]interface{} `json:"list"`
		}
		s.decode(rec, &page)
		s.Len(page.List, 1)

		rec = s.request(http.MethodGet, "/api/equipment?filter[status]=active", "")
		var list []map[string]interface{}
		s.decode(rec, &list)
		s.Empty(list)
	})

	s.Run("requests and stage", func() {
		rec := s.request(http.MethodPost, "/api/requests", `{"subject":"Noise","equipmentId":"`+id+`"}`)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var request map[string]interface{}
		s.decode(rec, &request)

		rec = s.request(http.MethodGet, "/api/equipment/"+id+"/requests", "")
		var open []map[string]interface{}
		s.decode(rec, &open)
		s.Len(open, 1)

		rec = s.request(http.MethodPatch, "/api/requests/"+request["id"].(string)+"/stage", `{"status":"repaired"}`)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var repaired map[string]interface{}
		s.decode(rec, &repaired)
		s.NotEmpty(repaired["completedAt"])

		rec = s.request(http.MethodGet, "/api/equipment/"+id+"/requests", "")
		s.decode(rec, &open)
		s.Empty(open)
	})

	s.Run("scrap marks equipment scrapped", func() {
		rec := s.request(http.MethodPost, "/api/requests", `{"subject":"Cracked housing","equipmentId":"`+id+`"}`)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var request map[string]interface{}
		s.decode(rec, &request)

		rec = s.request(http.MethodPatch, "/api/requests/"+request["id"].(string)+"/stage", `{"status":"scrap"}`)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Deps.Bus.Wait()

		rec = s.request(http.MethodGet, "/api/equipment/"+id, "")
		s.Require().Equal(http.StatusOK, rec.Code)
		var equipment map[string]interface{}
		s.decode(rec, &equipment)
		s.Equal("scrapped", equipment["status"])
	})

	s.Run("delete", func() {
		rec := s.request(http.MethodDelete, "/api/equipment/"+id, "")
		s.Equal(http.StatusOK, rec.Code)

		rec = s.request(http.MethodGet, "/api/equipment/"+id, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *APITestSuite) TestDashboardAndSetup() {
	rec := s.request(http.MethodGet, "/api/setup", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var setup map[string]interface{}
	s.decode(rec, &setup)
	s.Equal(true, setup["configured"])

	rec = s.request(http.MethodGet, "/api/dashboard", "")
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestWebSocketSnapshots() {
	server := httptest.NewServer(s.Echo)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?collection=teams&token=" + s.Token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	defer conn.Close()

	readSnapshot := func() []map[string]interface{} {
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
		var envelope struct {
			Type    string                   `json:"type"`
			Payload []map[string]interface{} `json:"payload"`
		}
		s.Require().NoError(conn.ReadJSON(&envelope))
		s.Equal(appwebsocket.MessageTypeSnapshot, envelope.Type)
		return envelope.Payload
	}

	s.Empty(readSnapshot())

	rec := s.request(http.MethodPost, "/api/teams", `{"name":"Mechanics"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	teams := readSnapshot()
	s.Require().Len(teams, 1)
	s.Equal("Mechanics", teams[0]["name"])
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestUnconfiguredStoreReturns503(t *testing.T) {
	setupErr := assert.AnError
	e, deps, cancel := newTestEcho(t, docstore.Unconfigured{Reason: setupErr}, setupErr)
	defer cancel()

	token, _, err := deps.JWT.GenerateTokens("user-1")
	require.NoError(t, err)

	for _, path := range []string{"/api/equipment", "/api/teams", "/api/requests", "/api/categories", "/api/work-centers", "/api/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		var resp apiResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Status)
		assert.Equal(t, utils.SetupMessage, resp.Message, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/setup", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"configured":false`)
}
