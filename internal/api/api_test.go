package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tokens := auth.NewTokenManager("api-test-secret", time.Hour)
	router := NewRouter(memory.New(), tokens, zerolog.Nop(), nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON issues a request with an optional JSON body and bearer token and
// decodes the JSON response into a generic map.
func doJSON(t *testing.T, method, url string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// signup registers a user and returns its id.
func signup(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()
	code, out := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusCreated, code, "signup: %v", out)
	return out["user"].(map[string]interface{})["id"].(string)
}

// login returns the session token for an account created by signup.
func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	code, out := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email": email, "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, code, "login: %v", out)
	return out["token"].(string)
}

func TestSignupAndLogin(t *testing.T) {
	srv := newTestServer(t)

	code, out := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", map[string]string{
		"name": "Ana", "email": "ana@campus.edu", "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Account created successfully", out["message"])
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "ana@campus.edu", user["email"])
	assert.NotEmpty(t, user["id"])
	_, hasHash := user["passwordHash"]
	assert.False(t, hasHash, "password hash must not be serialized")

	// Duplicate email is a conflict, case-insensitively.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", map[string]string{
		"name": "Other", "email": "Ana@Campus.edu", "password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusConflict, code)

	code, out = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email": "ana@campus.edu", "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", out["message"])
	assert.NotEmpty(t, out["token"])

	// Wrong password and unknown email both come back 401.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email": "ana@campus.edu", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email": "nobody@campus.edu", "password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []map[string]string{
		{"name": "", "email": "a@b.edu", "password": "hunter22"},
		{"name": "A", "email": "not-an-email", "password": "hunter22"},
		{"name": "A", "email": "a@b.edu", "password": "short"},
	}
	for _, in := range cases {
		code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", in, "")
		assert.Equal(t, http.StatusBadRequest, code, "input %v", in)
	}
}

func TestItemLifecycle(t *testing.T) {
	srv := newTestServer(t)
	sellerID := signup(t, srv, "Seller", "seller@campus.edu")

	code, out := doJSON(t, http.MethodPost, srv.URL+"/api/items", map[string]interface{}{
		"title":       "Standing Desk",
		"description": "Adjustable height, barely used",
		"price":       120.0,
		"category":    "furniture",
		"userId":      sellerID,
	}, "")
	require.Equal(t, http.StatusCreated, code, "create: %v", out)
	item := out["item"].(map[string]interface{})
	itemID := item["id"].(string)
	assert.Equal(t, "available", item["status"])
	assert.Equal(t, "sale", item["type"], "type defaults to sale")

	// Visible in the public listing and via search.
	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/items?search=desk", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), out["count"])

	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/items/"+itemID, nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Standing Desk", out["item"].(map[string]interface{})["title"])

	// Mark sold: disappears from the public listing, stays in the owner view.
	code, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/items/"+itemID, map[string]string{"status": "sold"}, "")
	require.Equal(t, http.StatusOK, code)

	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/items", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), out["count"])

	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/items?userId="+sellerID, nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), out["count"])

	// Sold is terminal.
	code, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/items/"+itemID, map[string]string{"status": "available"}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown item id.
	code, _ = doJSON(t, http.MethodGet, srv.URL+"/api/items/no-such-item", nil, "")
	assert.Equal(t, http.StatusNotFound, code)

	// Negative price rejected on create.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/items", map[string]interface{}{
		"title": "Bad", "description": "x", "price": -5.0, "category": "misc", "userId": sellerID,
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMessagingFlow(t *testing.T) {
	srv := newTestServer(t)
	aliceID := signup(t, srv, "Alice", "alice@campus.edu")
	bobID := signup(t, srv, "Bob", "bob@campus.edu")

	convKey := aliceID + "-" + bobID
	if bobID < aliceID {
		convKey = bobID + "-" + aliceID
	}

	for i := 0; i < 3; i++ {
		code, out := doJSON(t, http.MethodPost, srv.URL+"/api/messages", map[string]string{
			"conversationId": convKey,
			"senderId":       aliceID,
			"content":        fmt.Sprintf("hello %d", i),
		}, "")
		require.Equal(t, http.StatusCreated, code, "send: %v", out)
		m := out["message"].(map[string]interface{})
		assert.Equal(t, bobID, m["receiverId"], "receiver inferred from the pair")
	}

	code, out := doJSON(t, http.MethodGet, srv.URL+"/api/messages?conversationId="+convKey, nil, "")
	require.Equal(t, http.StatusOK, code)
	msgs := out["messages"].([]interface{})
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello 0", msgs[0].(map[string]interface{})["content"])

	// Bob sees one conversation with three unread messages.
	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/conversations?userId="+bobID, nil, "")
	require.Equal(t, http.StatusOK, code)
	convs := out["conversations"].([]interface{})
	require.Len(t, convs, 1)
	conv := convs[0].(map[string]interface{})
	assert.Equal(t, convKey, conv["id"])
	assert.Equal(t, float64(3), conv["unreadCount"])
	assert.Equal(t, "hello 2", conv["lastMessage"].(map[string]interface{})["content"])

	// Alice has nothing unread in the same conversation.
	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/conversations?userId="+aliceID, nil, "")
	require.Equal(t, http.StatusOK, code)
	conv = out["conversations"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(0), conv["unreadCount"])

	code, _ = doJSON(t, http.MethodGet, srv.URL+"/api/messages", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReviewsRequireSession(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "Reviewer", "rev@campus.edu")
	sellerID := signup(t, srv, "Seller", "sell@campus.edu")

	// Without a bearer token the review is rejected.
	code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/reviews", map[string]interface{}{
		"reviewedUserId": sellerID, "rating": 5, "comment": "great",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := login(t, srv, "rev@campus.edu")
	code, out := doJSON(t, http.MethodPost, srv.URL+"/api/reviews", map[string]interface{}{
		"reviewedUserId": sellerID, "rating": 5, "comment": "great",
	}, token)
	require.Equal(t, http.StatusCreated, code, "review: %v", out)
	rv := out["review"].(map[string]interface{})
	assert.Equal(t, "Reviewer", rv["reviewerName"])

	code, out = doJSON(t, http.MethodPost, srv.URL+"/api/reviews", map[string]interface{}{
		"reviewedUserId": sellerID, "rating": 3, "comment": "ok",
	}, token)
	require.Equal(t, http.StatusCreated, code, "review: %v", out)

	// Rating bounds enforced.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/reviews", map[string]interface{}{
		"reviewedUserId": sellerID, "rating": 6, "comment": "too high",
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)

	// Profile aggregates the two accepted reviews.
	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/profile/"+sellerID, nil, "")
	require.Equal(t, http.StatusOK, code)
	profile := out["profile"].(map[string]interface{})
	assert.Equal(t, float64(4), profile["averageRating"])
	assert.Equal(t, float64(2), profile["totalReviews"])
}

func TestProfileDefaultsAndUpdate(t *testing.T) {
	srv := newTestServer(t)

	// Unknown users still resolve to a usable profile shell.
	code, out := doJSON(t, http.MethodGet, srv.URL+"/api/profile/ghost", nil, "")
	require.Equal(t, http.StatusOK, code)
	profile := out["profile"].(map[string]interface{})
	assert.Equal(t, "User", profile["name"])
	assert.Equal(t, float64(0), profile["averageRating"])

	id := signup(t, srv, "Cara", "cara@campus.edu")
	code, out = doJSON(t, http.MethodPatch, srv.URL+"/api/profile/"+id, map[string]string{
		"name": "Cara B.", "bio": "Grad student, selling furniture",
	}, "")
	require.Equal(t, http.StatusOK, code)
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "Cara B.", user["name"])
	assert.Equal(t, "Grad student, selling furniture", user["bio"])

	code, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/profile/ghost", map[string]string{"name": "X"}, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNotificationsFlow(t *testing.T) {
	srv := newTestServer(t)
	id := signup(t, srv, "Nina", "nina@campus.edu")

	for i := 0; i < 2; i++ {
		code, out := doJSON(t, http.MethodPost, srv.URL+"/api/notifications", map[string]string{
			"userId": id, "type": "message", "title": "New message", "message": "You have mail",
		}, "")
		require.Equal(t, http.StatusCreated, code, "create: %v", out)
		assert.Equal(t, false, out["notification"].(map[string]interface{})["read"])
	}

	code, out := doJSON(t, http.MethodGet, srv.URL+"/api/notifications?userId="+id, nil, "")
	require.Equal(t, http.StatusOK, code)
	ns := out["notifications"].([]interface{})
	require.Len(t, ns, 2)
	first := ns[0].(map[string]interface{})

	code, out = doJSON(t, http.MethodPatch, srv.URL+"/api/notifications/"+first["id"].(string), map[string]bool{"read": true}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["notification"].(map[string]interface{})["read"])

	code, out = doJSON(t, http.MethodPost, srv.URL+"/api/notifications/mark-all-read", map[string]string{"userId": id}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "All notifications marked as read", out["message"])

	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/notifications?userId="+id, nil, "")
	require.Equal(t, http.StatusOK, code)
	for _, raw := range out["notifications"].([]interface{}) {
		assert.Equal(t, true, raw.(map[string]interface{})["read"])
	}

	// Invalid type rejected.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/notifications", map[string]string{
		"userId": id, "type": "spam", "title": "x", "message": "y",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	code, out := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", out["status"])

	code, out = doJSON(t, http.MethodGet, srv.URL+"/api/health/db", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "connected", out["database"])
}
