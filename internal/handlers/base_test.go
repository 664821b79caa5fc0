package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"burrow/internal/apperr"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestFailTaxonomyCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.InvalidInput("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("no"), http.StatusUnauthorized},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Conflict("dup"), http.StatusConflict},
	}
	for _, tc := range cases {
		c, w := testContext("/")
		Fail(c, tc.err)
		if w.Code != tc.status {
			t.Errorf("Fail(%v) = %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}

func TestFailNoActionIsSuccess(t *testing.T) {
	c, w := testContext("/")
	Fail(c, apperr.NoAction("No action"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"data":null,"message":"No action"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestFailHidesInternalDetails(t *testing.T) {
	c, w := testContext("/")
	Fail(c, errors.New("pq: connection refused"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); body != `{"message":"Internal error"}` {
		t.Fatalf("internal detail leaked: %s", body)
	}
}

func TestSortKeyDefaulting(t *testing.T) {
	// Absent parameter defaults to top; a supplied but unknown value
	// normalizes to newest.
	c, _ := testContext("/getPostComments?postId=x")
	if got := sortKey(c); got != services.SortTop {
		t.Errorf("absent sortType = %q, want top", got)
	}

	c, _ = testContext("/getPostComments?postId=x&sortType=hot")
	if got := sortKey(c); got != services.SortNewest {
		t.Errorf("unknown sortType = %q, want newest", got)
	}

	c, _ = testContext("/getPostComments?postId=x&sortType=oldest")
	if got := sortKey(c); got != services.SortOldest {
		t.Errorf("sortType=oldest = %q", got)
	}
}
