package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleProfile(id string) *profile.Profile {
	now := time.Now()
	return &profile.Profile{
		PersonalIdentifier: id,
		DisplayName:        "User",
		Balance:            50,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestProfileHandler_Ensure(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		registry := new(MockRegistryService)
		h := NewProfileHandler(testLogger(), registry, nil, nil, nil)

		registry.On("EnsureProfile", mock.Anything, "1000001").
			Return(sampleProfile("1000001"), nil).Once()

		router := setupTestRouter()
		router.POST("/profiles", h.Ensure)

		body, _ := json.Marshal(EnsureProfileRequest{PersonalIdentifier: "1000001"})
		req, _ := http.NewRequest(http.MethodPost, "/profiles", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "1000001", data["personal_identifier"])
		assert.Equal(t, float64(50), data["balance"])
		registry.AssertExpectations(t)
	})

	t.Run("MissingIdentifier", func(t *testing.T) {
		h := NewProfileHandler(testLogger(), new(MockRegistryService), nil, nil, nil)

		router := setupTestRouter()
		router.POST("/profiles", h.Ensure)

		req, _ := http.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProfileHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		registry := new(MockRegistryService)
		h := NewProfileHandler(testLogger(), registry, nil, nil, nil)

		registry.On("FindProfile", mock.Anything, "1000001").
			Return(sampleProfile("1000001"), nil).Once()

		router := setupTestRouter()
		router.GET("/profiles/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/profiles/1000001", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		registry := new(MockRegistryService)
		h := NewProfileHandler(testLogger(), registry, nil, nil, nil)

		registry.On("FindProfile", mock.Anything, "9999999").
			Return(nil, nil).Once()

		router := setupTestRouter()
		router.GET("/profiles/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/profiles/9999999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestProfileHandler_Update(t *testing.T) {
	t.Run("EditsOnlyProvidedFields", func(t *testing.T) {
		registry := new(MockRegistryService)
		h := NewProfileHandler(testLogger(), registry, nil, nil, nil)

		existing := sampleProfile("1000001")
		registry.On("FindProfile", mock.Anything, "1000001").
			Return(existing, nil).Once()
		registry.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *profile.Profile) bool {
			return p.DisplayName == "Samir" && p.Balance == 50
		})).Return(nil).Once()

		router := setupTestRouter()
		router.PATCH("/profiles/:id", h.Update)

		req, _ := http.NewRequest(http.MethodPatch, "/profiles/1000001",
			bytes.NewBufferString(`{"display_name":"Samir"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		registry.AssertExpectations(t)
	})

	t.Run("BalanceFieldIgnored", func(t *testing.T) {
		registry := new(MockRegistryService)
		h := NewProfileHandler(testLogger(), registry, nil, nil, nil)

		registry.On("FindProfile", mock.Anything, "1000001").
			Return(sampleProfile("1000001"), nil).Once()
		registry.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *profile.Profile) bool {
			return p.Balance == 50
		})).Return(nil).Once()

		router := setupTestRouter()
		router.PATCH("/profiles/:id", h.Update)

		req, _ := http.NewRequest(http.MethodPatch, "/profiles/1000001",
			bytes.NewBufferString(`{"balance":100000}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		registry.AssertExpectations(t)
	})
}

func TestProfileHandler_Credit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ledger := new(MockLedgerService)
		h := NewProfileHandler(testLogger(), nil, ledger, nil, nil)

		ledger.On("Credit", mock.Anything, "1000001", 100.0).
			Return(150.0, nil).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/credit", h.Credit)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/credit",
			bytes.NewBufferString(`{"amount":100}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, 150.0, data["new_balance"])
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ledger := new(MockLedgerService)
		h := NewProfileHandler(testLogger(), nil, ledger, nil, nil)

		ledger.On("Credit", mock.Anything, "1000001", -5.0).
			Return(0.0, shared.ErrInvalidAmount).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/credit", h.Credit)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/credit",
			bytes.NewBufferString(`{"amount":-5}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_AMOUNT", resp.Error.Code)
	})

	t.Run("BannedIdentifier", func(t *testing.T) {
		ledger := new(MockLedgerService)
		h := NewProfileHandler(testLogger(), nil, ledger, nil, nil)

		ledger.On("Credit", mock.Anything, "1000001", 100.0).
			Return(0.0, shared.ErrIdentifierBanned).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/credit", h.Credit)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/credit",
			bytes.NewBufferString(`{"amount":100}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("InfrastructureFailure", func(t *testing.T) {
		ledger := new(MockLedgerService)
		h := NewProfileHandler(testLogger(), nil, ledger, nil, nil)

		ledger.On("Credit", mock.Anything, "1000001", 100.0).
			Return(0.0, errors.New("connection refused")).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/credit", h.Credit)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/credit",
			bytes.NewBufferString(`{"amount":100}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestProfileHandler_Match(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		matcher := new(MockReconcilerService)
		bans := new(MockBanService)
		h := NewProfileHandler(testLogger(), nil, nil, matcher, bans)

		bans.On("IsBanned", mock.Anything, "1000001").Return(false, nil).Once()
		matcher.On("MatchAndConfirm", mock.Anything, "1000001", 80.0).
			Return(&shared.MatchResult{Outcome: shared.MatchConfirmed, ChargeID: "C1"}, nil).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/match", h.Match)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/match",
			bytes.NewBufferString(`{"amount":80}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "CONFIRMED", data["outcome"])
		assert.Equal(t, "C1", data["charge_id"])
	})

	t.Run("BannedIdentifierRejectedBeforeMatching", func(t *testing.T) {
		matcher := new(MockReconcilerService)
		bans := new(MockBanService)
		h := NewProfileHandler(testLogger(), nil, nil, matcher, bans)

		bans.On("IsBanned", mock.Anything, "1000001").Return(true, nil).Once()

		router := setupTestRouter()
		router.POST("/profiles/:id/match", h.Match)

		req, _ := http.NewRequest(http.MethodPost, "/profiles/1000001/match",
			bytes.NewBufferString(`{"amount":80}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		matcher.AssertNotCalled(t, "MatchAndConfirm", mock.Anything, mock.Anything, mock.Anything)
	})
}
