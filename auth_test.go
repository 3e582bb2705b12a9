package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/greendeeroper444/razon-clinic-sub000/controllers"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	db := setupTestDB()
	app := newTestApp(db)

	tests := []struct {
		name            string
		request         controllers.RegisterRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "Successful registration",
			request: controllers.RegisterRequest{
				Name:            "Clinic Staff",
				Email:           "staff@clinic.test",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			expectedStatus:  201,
			expectedSuccess: true,
		},
		{
			name: "Invalid email",
			request: controllers.RegisterRequest{
				Name:            "Clinic Staff",
				Email:           "not-an-email",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "Password mismatch",
			request: controllers.RegisterRequest{
				Name:            "Clinic Staff",
				Email:           "staff2@clinic.test",
				Password:        "password123",
				ConfirmPassword: "different123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "Duplicate email",
			request: controllers.RegisterRequest{
				Name:            "Clinic Staff",
				Email:           "staff@clinic.test",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			expectedStatus:  409,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var result controllers.AuthResponse
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tt.expectedSuccess, result.Success)
			if tt.expectedSuccess {
				assert.NotEmpty(t, result.Token)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB()
	app := newTestApp(db)

	// Register an account to log in with
	registerBody, _ := json.Marshal(controllers.RegisterRequest{
		Name:            "Clinic Staff",
		Email:           "staff@clinic.test",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	registerReq := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(registerBody))
	registerReq.Header.Set("Content-Type", "application/json")
	_, err := app.Test(registerReq)
	assert.NoError(t, err)

	tests := []struct {
		name            string
		request         controllers.LoginRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "Successful login",
			request: controllers.LoginRequest{
				Email:    "staff@clinic.test",
				Password: "password123",
			},
			expectedStatus:  200,
			expectedSuccess: true,
		},
		{
			name: "Wrong password",
			request: controllers.LoginRequest{
				Email:    "staff@clinic.test",
				Password: "wrong-password",
			},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name: "Unknown email",
			request: controllers.LoginRequest{
				Email:    "nobody@clinic.test",
				Password: "password123",
			},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name:            "Missing credentials",
			request:         controllers.LoginRequest{},
			expectedStatus:  400,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var result controllers.AuthResponse
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tt.expectedSuccess, result.Success)
		})
	}
}
