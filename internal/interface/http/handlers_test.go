package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/infrastructure/redisstore"
	"github.com/oksasatya/preppal/internal/interface/middleware"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/mailer"
	"github.com/oksasatya/preppal/pkg/validation"
)

type capturingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (s *capturingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

type testApp struct {
	engine *gin.Engine
	mail   *capturingSender
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger, _ := test.NewNullLogger()
	mail := &capturingSender{}
	kitchenRepo := &memKitchen{}

	creds := application.NewCredentialService(&memUsers{}, helpers.NewPasswordHasher(bcrypt.MinCost), logger)
	sessions := application.NewSessionService(redisstore.NewSessionStore(rdb), creds, logger, time.Hour)
	resets := application.NewResetService(creds, helpers.NewResetSigner("secret", 5*time.Minute), mail, logger, "http://app.test", "PrepPal", "team@app.test")
	favs := application.NewFavouriteService(&memFavourites{}, nil, logger)
	shopping := application.NewShoppingService(&memShopping{}, kitchenRepo, logger)
	kitchen := application.NewKitchenService(kitchenRepo, logger, 2)
	cookies := helpers.NewCookie("sid", "", false)

	auth := NewAuthHandler(sessions, resets, cookies, logger)
	user := NewUserHandler(sessions, creds, favs, logger)
	fh := NewFavouriteHandler(favs, logger)
	sh := NewShoppingHandler(shopping, logger)
	kh := NewKitchenHandler(kitchen, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)
	api.POST("/logout", auth.Logout)
	api.POST("/forgot-password", auth.ForgotPassword)
	api.GET("/reset-password/:userId/:token", auth.ResetForm)
	api.POST("/reset-password/:userId/:token", auth.ResetPassword)

	p := api.Group("/")
	p.Use(middleware.SessionAuth(sessions, cookies, logger))
	p.GET("/profile", user.Profile)
	p.POST("/settings", user.Settings)
	p.POST("/settings/password", user.ChangePassword)
	p.POST("/home/browsing", user.Browsing)
	p.GET("/ingredients", user.ListIngredients)
	p.POST("/ingredients", user.AddIngredient)
	p.POST("/ingredients/remove", user.RemoveIngredient)
	p.POST("/favourites/toggle", fh.Toggle)
	p.GET("/favourites", fh.List)
	p.GET("/favourites/overview", fh.Overview)
	p.GET("/favourites/search", fh.Search)
	p.GET("/favourites/:recipeId", fh.Get)
	p.PUT("/favourites/:recipeId", fh.Update)
	p.POST("/shoppinglist", sh.Add)
	p.GET("/shoppinglist", sh.List)
	p.DELETE("/shoppinglist/:id", sh.Remove)
	p.GET("/kitchen", kh.List)
	p.POST("/kitchen", kh.Apply)

	return &testApp{engine: r, mail: mail}
}

func (a *testApp) do(t *testing.T, method, path, sid string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatalf("no session cookie in response")
	return ""
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *testApp) signup(t *testing.T, name, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/signup", "", gin.H{"name": name, "email": email, "password": "pw123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func TestSignupLoginLogout(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "Alice", "a@x.com")

	w := app.do(t, http.MethodPost, "/api/signup", "", gin.H{"name": "Alice", "email": "a@x.com", "password": "pw"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code)
	sid := sessionCookie(t, w)

	w = app.do(t, http.MethodGet, "/api/profile", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Email       string `json:"email"`
		RecipeCount int    `json:"recipe_count"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &profile))
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, 3, profile.RecipeCount)

	w = app.do(t, http.MethodPost, "/api/logout", sid, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/profile", sid, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSignup_ValidationDetails(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/signup", "", gin.H{"name": "", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var details map[string]string
	require.NoError(t, json.Unmarshal(decode(t, w).Error, &details))
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestPasswordResetFlow(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "Alice", "a@x.com")

	w := app.do(t, http.MethodPost, "/api/forgot-password", "", gin.H{"email": "nobody@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	unknown := decode(t, w).Message

	w = app.do(t, http.MethodPost, "/api/forgot-password", "", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, unknown, decode(t, w).Message)
	require.Len(t, app.mail.sent, 1)

	text := app.mail.sent[0].Text
	start := strings.Index(text, "http://app.test")
	require.GreaterOrEqual(t, start, 0)
	link := strings.Fields(text[start:])[0]
	path := "/api" + strings.TrimPrefix(link, "http://app.test")

	w = app.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, path, "", gin.H{"password": "fresh", "confirm_password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, path, "", gin.H{"password": "fresh", "confirm_password": "fresh"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reset link is invalid or has expired", decode(t, w).Message)

	w = app.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "fresh"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPasswordOverBcryptLimit(t *testing.T) {
	app := newTestApp(t)
	long := strings.Repeat("é", 40)

	w := app.do(t, http.MethodPost, "/api/signup", "", gin.H{"name": "Alice", "email": "a@x.com", "password": long})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var details map[string]string
	require.NoError(t, json.Unmarshal(decode(t, w).Error, &details))
	assert.Equal(t, "must be at most 72 bytes", details["password"])

	app.signup(t, "Alice", "a@x.com")
	w = app.do(t, http.MethodPost, "/api/forgot-password", "", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, app.mail.sent, 1)
	text := app.mail.sent[0].Text
	link := strings.Fields(text[strings.Index(text, "http://app.test"):])[0]
	path := "/api" + strings.TrimPrefix(link, "http://app.test")

	w = app.do(t, http.MethodPost, path, "", gin.H{"password": long, "confirm_password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "pw123"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBrowsingAndSettings(t *testing.T) {
	app := newTestApp(t)
	sid := app.signup(t, "Alice", "a@x.com")

	var last struct {
		RecipeCount int `json:"recipe_count"`
	}
	for i := 0; i < 3; i++ {
		w := app.do(t, http.MethodPost, "/api/home/browsing", sid, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &last))
	}
	assert.Equal(t, 9, last.RecipeCount)

	w := app.do(t, http.MethodPost, "/api/settings", sid, gin.H{"date_of_birth": "1990-13-45"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = app.do(t, http.MethodPost, "/api/settings", sid, gin.H{"date_of_birth": "1990-05-17"})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/settings/password", sid, gin.H{"current_password": "bad", "new_password": "n"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(t, http.MethodPost, "/api/settings/password", sid, gin.H{"current_password": "pw123", "new_password": "n"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchIngredients(t *testing.T) {
	app := newTestApp(t)
	alice := app.signup(t, "Alice", "a@x.com")
	bob := app.signup(t, "Bob", "b@x.com")

	w := app.do(t, http.MethodPost, "/api/ingredients", alice, gin.H{"ingredient_name": "tomato"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/ingredients", bob, nil)
	assert.Contains(t, w.Body.String(), `"ingredients":[]`)

	w = app.do(t, http.MethodPost, "/api/ingredients/remove", alice, gin.H{"ingredient_name": "basil"})
	assert.JSONEq(t, `{"success":false}`, w.Body.String())
	w = app.do(t, http.MethodPost, "/api/ingredients/remove", alice, gin.H{"ingredient_name": "tomato"})
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestFavouritesEndpoints(t *testing.T) {
	app := newTestApp(t)
	alice := app.signup(t, "Alice", "a@x.com")
	bob := app.signup(t, "Bob", "b@x.com")

	payload := gin.H{
		"recipe_id":    "123",
		"title":        "Tomato soup",
		"details":      "<b>warm</b>",
		"ingredients":  []gin.H{{"original": "2 tomatoes"}},
		"instructions": []gin.H{{"step": "Chop"}},
	}
	w := app.do(t, http.MethodPost, "/api/favourites/toggle", alice, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"favourited":true`)

	w = app.do(t, http.MethodGet, "/api/favourites/123", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fav favouriteResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &fav))
	assert.Equal(t, "warm", fav.Details)
	assert.Equal(t, 1, fav.Instructions[0].Number)

	w = app.do(t, http.MethodGet, "/api/favourites/123", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodPut, "/api/favourites/123", bob, gin.H{"title": "mine now"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPut, "/api/favourites/123", alice, gin.H{
		"title": "Better soup", "ingredients": []string{"3 tomatoes"}, "instructions": []string{"Chop", "Simmer"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &fav))
	assert.Len(t, fav.Instructions, 2)

	w = app.do(t, http.MethodGet, "/api/favourites/overview", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":1}`, string(decode(t, w).Meta))

	w = app.do(t, http.MethodGet, "/api/favourites/search?q=soup", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/favourites/toggle", alice, payload)
	assert.Contains(t, w.Body.String(), `"favourited":false`)
	w = app.do(t, http.MethodGet, "/api/favourites", alice, nil)
	assert.JSONEq(t, `{"count":0}`, string(decode(t, w).Meta))
}

func TestShoppingAndKitchen(t *testing.T) {
	app := newTestApp(t)
	sid := app.signup(t, "Alice", "a@x.com")

	w := app.do(t, http.MethodPost, "/api/kitchen", sid, gin.H{"items": []gin.H{{"name": "Milk", "best_before": "01/02/2024"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = app.do(t, http.MethodPost, "/api/kitchen", sid, gin.H{"items": []gin.H{{"name": "Milk"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/kitchen", sid, gin.H{"items": []gin.H{
		{"name": "Tomato", "best_before": "2024-01-01"},
		{"name": "Eggs", "delete": true},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/kitchen", sid, nil)
	assert.JSONEq(t, `[{"name":"Tomato","best_before":"2024-01-01"}]`, string(decode(t, w).Data))

	w = app.do(t, http.MethodGet, "/api/shoppinglist", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "There is nothing in your shopping list!")

	add := gin.H{"recipe_id": "123", "title": "Soup", "ingredients": []gin.H{
		{"name": "tomato", "original": "2 tomatoes"},
		{"name": "basil", "original": "basil"},
	}}
	w = app.do(t, http.MethodPost, "/api/shoppinglist", sid, add)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/api/shoppinglist", sid, add)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/shoppinglist", sid, nil)
	var list shoppingListResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, []string{"tomato"}, list.OnHand)
	require.Len(t, list.Items[0].Missing, 1)
	assert.Equal(t, "basil", list.Items[0].Missing[0].Name)

	w = app.do(t, http.MethodDelete, "/api/shoppinglist/"+list.Items[0].ID, sid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/api/shoppinglist", sid, nil)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.True(t, list.IsEmpty)
}
