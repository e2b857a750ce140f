package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/emberlink/emberlink-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newProfileTestRouter(t *testing.T) (*gin.Engine, *repositorytest.UserRepo, *repositorytest.ProfileRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repositorytest.NewUserRepo()
	profiles := repositorytest.NewProfileRepo()
	h := NewProfileHandler(profile.NewProfileUseCase(profiles, users))

	router := gin.New()
	// Stand-in for the auth middleware: every request acts as user 1.
	router.GET("/profile/:user_id", func(c *gin.Context) {
		c.Set("user_id", 1)
		h.GetProfileByUserID(c)
	})
	return router, users, profiles
}

func TestGetProfileByUserID(t *testing.T) {
	router, users, profiles := newProfileTestRouter(t)
	users.Seed(&domain.User{Name: "alice", BirthDate: time.Now().AddDate(-30, 0, 0)})
	bob := users.Seed(&domain.User{Name: "bob", BirthDate: time.Now().AddDate(-27, 0, 0)})
	profiles.Seed(&domain.Profile{UserID: bob.ID, DisplayName: "Bobby"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile/2", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display_name":"Bobby"`)
	assert.Contains(t, rec.Body.String(), `"user_id":2`)
}

func TestGetProfileByUserID_InvalidID(t *testing.T) {
	router, _, _ := newProfileTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile/abc", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfileByUserID_Unknown(t *testing.T) {
	router, _, _ := newProfileTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile/99", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
