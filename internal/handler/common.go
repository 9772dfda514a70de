package handler

import (
	"net/http"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the gin context. When it
// is missing the 401 envelope has already been written and the handler
// must return.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return nil, false
	}
	return user, true
}

// parseMonth reads a ?month=YYYY-MM query parameter, defaulting to the
// current month. The returned time is the first instant of that month.
func parseMonth(c *gin.Context) (time.Time, bool) {
	monthStr := c.Query("month")
	if monthStr == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	}

	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month, expected YYYY-MM")
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local), true
}

// parseFlexibleDate accepts the date formats clients actually send.
func parseFlexibleDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00-03:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
