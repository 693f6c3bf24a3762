package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kmorozova/inventory-api/internal/hash"
	"github.com/kmorozova/inventory-api/internal/models"
	"github.com/kmorozova/inventory-api/internal/token"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *token.Service
	A      *AuthHandler
	P      *ProductHandler
}

// newTestEnv builds handlers over a fresh in-memory sqlite DB. The producer
// is left nil, which disables event publishing.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	ts := token.New([]byte("test-secret"))

	env := &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Tokens: ts,
	}
	env.A = &AuthHandler{DB: db, Tokens: ts}
	env.P = &ProductHandler{DB: db}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(email, password, role string) models.User {
	env.T.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createProduct(name string, price float64, quantity int, description string) models.Product {
	env.T.Helper()
	product := models.Product{
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Description: description,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func jsonField(t *testing.T, rec *httptest.ResponseRecorder, key string) interface{} {
	t.Helper()
	return decodeBody(t, rec)[key]
}
