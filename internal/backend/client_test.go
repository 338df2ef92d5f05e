package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-2704/AgriNova/internal/model"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "farmer@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "name": "Farmer", "email": "farmer@example.com", "token": "tok",
		})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	sess, err := client.Login(context.Background(), "farmer@example.com", "Secret#123")

	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "Farmer", sess.Name)
}

func TestBearerToken(t *testing.T) {
	t.Run("profile attaches the token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Farmer"})
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second)
		user, err := client.Profile(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("no token attaches no header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte("{}"))
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second)
		_, err := client.Options(context.Background())
		assert.NoError(t, err)
	})

	t.Run("prediction is made as the given token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sess-token", r.Header.Get("Authorization"))
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second)
		_, err := client.PredictAs(context.Background(), "sess-token", model.FarmQuery{})
		assert.NoError(t, err)
	})
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Invalid email or password"}`, "Invalid email or password"},
		{"detail field", http.StatusNotFound, `{"detail":"City not found"}`, "City not found"},
		{"message preferred over detail", http.StatusBadRequest, `{"message":"m","detail":"d"}`, "m"},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(server.URL, 5*time.Second)
			_, err := client.Options(context.Background())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	apiErr := &APIError{StatusCode: 400, Message: "User not found"}
	assert.Equal(t, "User not found", ErrorMessage(apiErr, "fallback"))

	empty := &APIError{StatusCode: 500}
	assert.Equal(t, "fallback", ErrorMessage(empty, "fallback"))

	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(nil, "fallback"))
}

func TestForgotPassword(t *testing.T) {
	t.Run("server-declared expiry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/forgot-password", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "OTP sent", "expiresIn": 120})
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second)
		expiry, err := client.ForgotPassword(context.Background(), "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, 120*time.Second, expiry)
	})

	t.Run("omitted expiry is zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent"})
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second)
		expiry, err := client.ForgotPassword(context.Background(), "a@example.com")

		require.NoError(t, err)
		assert.Zero(t, expiry)
	})
}

func TestResetPasswordBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@example.com", body["email"])
		assert.Equal(t, "Secret#123", body["newPassword"])
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	err := client.ResetPassword(context.Background(), "a@example.com", "Secret#123")
	assert.NoError(t, err)
}

func TestWeatherPathEscaping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/weather/Tamil%20Nadu/Chennai", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(map[string]float64{"avg_temp": 33.1, "rainfall": 4.2})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	snap, err := client.Weather(context.Background(), "Tamil Nadu", "Chennai")

	require.NoError(t, err)
	assert.Equal(t, 33.1, snap.AvgTemp)
}

func TestPredictDecodesRankedList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var query model.FarmQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.Equal(t, 2.5, query.Area)
		w.Write([]byte(`[
			{"crop":"Rice","suitability":96.2,"profit_per_acre":42000,"total_profit":105000,"expected_production":18.5,"avg_price":2300},
			{"crop":"Cotton","suitability":91.0,"profit_per_acre":38000,"total_profit":95000,"expected_production":9.1,"avg_price":6100}
		]`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	recs, err := client.Predict(context.Background(), model.FarmQuery{State: "Gujarat", City: "Surat", Area: 2.5})

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Rice", recs[0].Crop)
	assert.Equal(t, 96.2, recs[0].Suitability)
	assert.Equal(t, "Cotton", recs[1].Crop)
}
