package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactJSON struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	AdditionalData string `json:"additional_data"`
}

func validContactBody() map[string]any {
	return map[string]any{
		"first_name":      "Grace",
		"last_name":       "Hopper",
		"email":           "grace@example.com",
		"phone_number":    "+12025550100",
		"birthday":        "1906-12-09",
		"additional_data": "navy",
	}
}

func TestContactCRUD(t *testing.T) {
	app, s := newTestServer(t)
	_, token := createTestUser(t, s, "jane", "jane@example.com")

	var contactID uint

	t.Run("create then read round trip", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/contacts/", token, validContactBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created contactJSON
		decodeBody(t, resp, &created)
		require.NotZero(t, created.ID)
		contactID = created.ID

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/contacts/%d", contactID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got contactJSON
		decodeBody(t, resp, &got)
		assert.Equal(t, "Grace", got.FirstName)
		assert.Equal(t, "Hopper", got.LastName)
		assert.Equal(t, "grace@example.com", got.Email)
		assert.Equal(t, "+12025550100", got.PhoneNumber)
		assert.Equal(t, "navy", got.AdditionalData)
	})

	t.Run("list includes the contact", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []contactJSON
		decodeBody(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, contactID, list[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		body := validContactBody()
		body["additional_data"] = "rear admiral"
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/contacts/%d", contactID), token, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got contactJSON
		decodeBody(t, resp, &got)
		assert.Equal(t, "rear admiral", got.AdditionalData)
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/contacts/9999", token, validContactBody())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid birthday rejected", func(t *testing.T) {
		body := validContactBody()
		body["birthday"] = "12/09/1906"
		resp := doJSON(t, app, http.MethodPost, "/api/contacts/", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete then delete again", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", contactID), token, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", contactID), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/contacts/%d", contactID), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestContactScoping(t *testing.T) {
	app, s := newTestServer(t)
	_, ownerToken := createTestUser(t, s, "owner", "owner@example.com")
	_, otherToken := createTestUser(t, s, "other", "other@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/contacts/", ownerToken, validContactBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created contactJSON
	decodeBody(t, resp, &created)

	t.Run("foreign contact reads as not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/contacts/%d", created.ID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign contact cannot be deleted", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.ID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign contact is absent from the list", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/", otherToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []contactJSON
		decodeBody(t, resp, &list)
		assert.Empty(t, list)
	})
}

func TestSearchContacts(t *testing.T) {
	app, s := newTestServer(t)
	_, token := createTestUser(t, s, "jane", "jane@example.com")

	seed := []map[string]any{
		{"first_name": "Grace", "last_name": "Hopper", "email": "grace@navy.mil", "phone_number": "+12025550100", "birthday": "1906-12-09"},
		{"first_name": "Alan", "last_name": "Turing", "email": "alan@bletchley.uk", "phone_number": "+442012345678", "birthday": "1912-06-23", "additional_data": "cryptanalysis"},
	}
	for _, body := range seed {
		resp := doJSON(t, app, http.MethodPost, "/api/contacts/", token, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	t.Run("matches case-insensitively", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/search?text=TURING", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []contactJSON
		decodeBody(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "Alan", list[0].FirstName)
	})

	t.Run("matches additional data", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/search?text=crypt", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []contactJSON
		decodeBody(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "Alan", list[0].FirstName)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/search", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no match yields empty array", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/contacts/search?text=nothing-here", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []contactJSON
		decodeBody(t, resp, &list)
		assert.Empty(t, list)
	})
}

func TestUpcomingBirthdaysEndpoint(t *testing.T) {
	app, s := newTestServer(t)
	_, token := createTestUser(t, s, "jane", "jane@example.com")

	now := time.Now().UTC()
	mkBody := func(name string, offsetDays int) map[string]any {
		// Birth year is arbitrary; only month and day matter.
		d := now.AddDate(0, 0, offsetDays)
		return map[string]any{
			"first_name":   name,
			"last_name":    "Test",
			"email":        name + "@example.com",
			"phone_number": "+10000000000",
			"birthday":     fmt.Sprintf("2000-%02d-%02d", int(d.Month()), d.Day()),
		}
	}

	for _, body := range []map[string]any{
		mkBody("Soon", 3),
		mkBody("Edge", 7),
		mkBody("Late", 30),
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/contacts/", token, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	t.Run("window of seven days", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/contacts/upcoming-birthdays", token, map[string]any{"days": 7})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []contactJSON
		decodeBody(t, resp, &list)
		var names []string
		for _, c := range list {
			names = append(names, c.FirstName)
		}
		assert.ElementsMatch(t, []string{"Soon", "Edge"}, names)
	})

	t.Run("invalid window rejected", func(t *testing.T) {
		for _, days := range []int{0, -3, 1000} {
			resp := doJSON(t, app, http.MethodPost, "/api/contacts/upcoming-birthdays", token, map[string]any{"days": days})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})
}
