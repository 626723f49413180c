package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vetcare-api/internal/adapters/http/middleware"
	"vetcare-api/internal/config"
	"vetcare-api/internal/pkg/jwt"
	"vetcare-api/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app    *fiber.App
	tokens *jwt.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppMode: config.ModeDev,
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Name:         ":memory:",
			QueryTimeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{Secret: "routes-test-secret-0123456789abcdef"},
		Security: config.SecurityConfig{
			BcryptCost:       10,
			RateLimitMax:     1000,
			AuthRateLimitMax: 1000,
		},
	}

	tokens, err := jwt.NewManager(cfg.JWT.Secret)
	require.NoError(t, err)

	log := zerolog.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(log)})
	middleware.Setup(app, cfg, log, nil)
	Setup(app, Deps{
		DB:     testutil.NewDB(t),
		Config: cfg,
		Log:    log,
		Tokens: tokens,
		Hasher: testutil.FastHasher(),
	})

	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (s *testServer) register(t *testing.T, name, email, role string) authBody {
	t.Helper()

	status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": name, "email": email, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var out authBody
	decode(t, raw, &out)
	return out
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	reg := s.register(t, "Ana", "ana@x.com", "CLIENTE")
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "CLIENTE", reg.User.Role)

	status, raw := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, status, string(raw))
	var login authBody
	decode(t, raw, &login)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotContains(t, string(raw), "password")

	status, raw = s.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"email":"ana@x.com"`)

	t.Run("duplicate email", func(t *testing.T) {
		status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name": "Other", "email": "ana@x.com", "password": "secret1", "role": "CLIENTE",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.JSONEq(t, `{"message":"Email already registered"}`, string(raw))
	})

	t.Run("invalid role", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name": "X", "email": "x@x.com", "password": "secret1", "role": "DUENO",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("role must match exactly", func(t *testing.T) {
		status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name": "X", "email": "x@x.com", "password": "secret1", "role": "cliente",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"message":"Invalid role"}`, string(raw))
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		long := strings.Repeat("ñ", 40)

		status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name": "Long", "email": "long@x.com", "password": long, "role": "CLIENTE",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"message":"password is too long"}`, string(raw))

		status, raw = s.do(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{
			"email": "ana@x.com", "newPassword": long,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"message":"password is too long"}`, string(raw))
	})

	t.Run("missing fields", func(t *testing.T) {
		status, raw := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@x.com"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(raw), "password is required")
	})

	t.Run("failed logins look the same", func(t *testing.T) {
		s1, wrongPass := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@x.com", "password": "nope"})
		s2, unknown := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ghost@x.com", "password": "secret1"})
		assert.Equal(t, http.StatusUnauthorized, s1)
		assert.Equal(t, http.StatusUnauthorized, s2)
		assert.Equal(t, string(wrongPass), string(unknown))
	})

	t.Run("reset password", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{"name": "Ana", "newPassword": "changed1"})
		require.Equal(t, http.StatusOK, status)

		status, _ = s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@x.com", "password": "changed1"})
		assert.Equal(t, http.StatusOK, status)

		status, _ = s.do(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{"email": "ghost@x.com", "newPassword": "x12345"})
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = s.do(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{"newPassword": "x12345"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAuthGateMessages(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, http.MethodGet, "/api/pets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"No token sent"}`, string(raw))

	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Malformed token format"}`, string(raw))

	status, raw = s.do(t, http.MethodGet, "/api/pets", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, string(raw))

	status, _ = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPetOwnershipAcrossUsers(t *testing.T) {
	s := newTestServer(t)

	ana := s.register(t, "Ana", "ana@x.com", "CLIENTE")
	bob := s.register(t, "Bob", "bob@x.com", "CLIENTE")

	status, raw := s.do(t, http.MethodPost, "/api/pets", ana.Token, fiber.Map{"nombre": "Rex", "especie": "Perro", "edad": 3})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var rex struct {
		ID        uint   `json:"id"`
		Name      string `json:"nombre"`
		ClienteID uint   `json:"clienteId"`
	}
	decode(t, raw, &rex)
	assert.Equal(t, ana.User.ID, rex.ClienteID)

	petPath := fmt.Sprintf("/api/pets/%d", rex.ID)

	// Another client sees nothing and cannot touch it
	status, raw = s.do(t, http.MethodGet, "/api/pets", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = s.do(t, http.MethodGet, petPath, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Pet not found"}`, string(raw))

	status, _ = s.do(t, http.MethodPut, petPath, bob.Token, fiber.Map{"nombre": "Stolen"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, petPath, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Not owned and absent look identical
	_, missing := s.do(t, http.MethodGet, "/api/pets/9999", bob.Token, nil)
	_, foreign := s.do(t, http.MethodGet, petPath, bob.Token, nil)
	assert.Equal(t, string(missing), string(foreign))

	// Booking on someone else's pet is rejected
	status, raw = s.do(t, http.MethodPost, "/api/appointments", bob.Token, fiber.Map{"mascotaId": rex.ID, "fecha": "2030-05-01T10:00"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Pet not valid for this user"}`, string(raw))

	status, _ = s.do(t, http.MethodPost, "/api/waiting-list", bob.Token, fiber.Map{"mascotaId": fmt.Sprint(rex.ID)})
	assert.Equal(t, http.StatusBadRequest, status)

	// The owner still has the pet intact
	status, raw = s.do(t, http.MethodGet, petPath, ana.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"nombre":"Rex"`)

	status, _ = s.do(t, http.MethodDelete, petPath, ana.Token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t)

	ana := s.register(t, "Ana", "ana@x.com", "CLIENTE")
	bob := s.register(t, "Bob", "bob@x.com", "CLIENTE")
	rita := s.register(t, "Rita", "rita@x.com", "RECEPCIONISTA")
	vera := s.register(t, "Vera", "vera@x.com", "VETERINARIO")

	status, raw := s.do(t, http.MethodPost, "/api/pets", ana.Token, fiber.Map{"nombre": "Rex", "especie": "Perro"})
	require.Equal(t, http.StatusCreated, status)
	var pet struct {
		ID uint `json:"id"`
	}
	decode(t, raw, &pet)

	// mascotaId arrives as a string from HTML selects
	status, raw = s.do(t, http.MethodPost, "/api/appointments", ana.Token, fiber.Map{
		"mascotaId": fmt.Sprint(pet.ID), "fecha": "2099-05-01T10:00", "motivo": "vacuna",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var appt struct {
		ID     uint   `json:"id"`
		Status string `json:"estado"`
		Pet    struct {
			Name string `json:"nombre"`
		} `json:"mascota"`
	}
	decode(t, raw, &appt)
	assert.Equal(t, "PENDIENTE", appt.Status)
	assert.Equal(t, "Rex", appt.Pet.Name)

	status, _ = s.do(t, http.MethodPost, "/api/appointments", ana.Token, fiber.Map{"mascotaId": pet.ID, "fecha": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = s.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/pet/%d", pet.ID), ana.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"motivo":"vacuna"`)

	apptPath := fmt.Sprintf("/api/appointments/%d", appt.ID)

	status, _ = s.do(t, http.MethodPatch, apptPath+"/cancel", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Staff views
	status, _ = s.do(t, http.MethodGet, "/api/reception/appointments", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = s.do(t, http.MethodGet, "/api/vet/appointments", vera.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"total":1`)

	status, raw = s.do(t, http.MethodGet, "/api/reception/appointments?estado=PENDIENTE", rita.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"total":1`)

	confirmPath := fmt.Sprintf("/api/reception/appointments/%d/confirm", appt.ID)
	status, raw = s.do(t, http.MethodPatch, confirmPath, rita.Token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"estado":"CONFIRMADA"`)

	status, _ = s.do(t, http.MethodPatch, confirmPath, rita.Token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(t, http.MethodPatch, "/api/reception/appointments/9999/confirm", rita.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Client transitions are not guarded
	status, raw = s.do(t, http.MethodPatch, apptPath+"/cancel", ana.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"estado":"CANCELADA"`)

	status, raw = s.do(t, http.MethodPatch, apptPath+"/complete", ana.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"estado":"COMPLETADA"`)

	status, raw = s.do(t, http.MethodPatch, apptPath, ana.Token, fiber.Map{"motivo": "control"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"motivo":"control"`)
}

func TestWaitingListAndDashboards(t *testing.T) {
	s := newTestServer(t)

	ana := s.register(t, "Ana", "ana@x.com", "CLIENTE")
	rita := s.register(t, "Rita", "rita@x.com", "RECEPCIONISTA")
	admin := s.register(t, "Root", "root@x.com", "ADMIN")

	status, raw := s.do(t, http.MethodPost, "/api/pets", ana.Token, fiber.Map{"nombre": "Michi", "especie": "Gato"})
	require.Equal(t, http.StatusCreated, status)
	var pet struct {
		ID uint `json:"id"`
	}
	decode(t, raw, &pet)

	status, raw = s.do(t, http.MethodPost, "/api/waiting-list", ana.Token, fiber.Map{
		"mascotaId": pet.ID, "motivo": "urgente", "fechaDeseada": nil,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var entry struct {
		ID uint `json:"id"`
	}
	decode(t, raw, &entry)

	status, raw = s.do(t, http.MethodGet, "/api/reception/waiting-list", rita.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"total":1`)

	status, raw = s.do(t, http.MethodGet, "/api/dashboard", ana.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"role":"CLIENTE"`)
	assert.Contains(t, string(raw), `"listaEspera":1`)

	status, _ = s.do(t, http.MethodGet, "/api/dashboard/admin", rita.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = s.do(t, http.MethodGet, "/api/dashboard/admin", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"totalUsuarios":3`)

	status, raw = s.do(t, http.MethodGet, "/api/users?role=CLIENTE", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"total":1`)

	status, _ = s.do(t, http.MethodGet, "/api/users", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/waiting-list/%d", entry.ID), ana.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/waiting-list/%d", entry.ID), ana.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
