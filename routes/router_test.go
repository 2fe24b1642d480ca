package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus-crumbs/api-go/models"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Listing{}, &models.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	SetupRoutes(r, db)
	return r
}

func tokenFor(t *testing.T, netID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"netId": netID})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, netID string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if netID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, netID))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func createTestPost(t *testing.T, r *gin.Engine, poster string) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/food", poster, gin.H{
		"foodName":       "Pizza",
		"quantity":       2,
		"category":       "Meals",
		"pickupLocation": "Davis Hall",
		"pickupTime":     "5pm-6pm",
		"photo":          `{"uri":"data:image/png;base64,xyz"}`,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: status %d body %v", w.Code, resp)
	}
	id, _ := resp["food_id"].(string)
	if id == "" {
		t.Fatalf("create post: missing food_id in %v", resp)
	}
	return id
}

func TestRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/food", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestReserveAndCompleteOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createTestPost(t, r, "alice")

	w, resp := doJSON(t, r, http.MethodPost, "/api/food/reserve", "bob", gin.H{"food_id": id})
	if w.Code != http.StatusOK {
		t.Fatalf("reserve: status %d body %v", w.Code, resp)
	}
	if resp["reservedBy"] != "bob" {
		t.Fatalf("reserve response %v", resp)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/food/reserve", "carol", gin.H{"food_id": id})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second reserve: status %d, want 400", w.Code)
	}

	// Only the reserver may complete.
	w, _ = doJSON(t, r, http.MethodPost, "/api/food/complete", "carol", gin.H{"food_id": id})
	if w.Code != http.StatusForbidden {
		t.Fatalf("complete by non-reserver: status %d, want 403", w.Code)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/api/food/complete", "bob", gin.H{"food_id": id})
	if w.Code != http.StatusOK {
		t.Fatalf("complete: status %d body %v", w.Code, resp)
	}
	if resp["status"] != string(models.StatusCompleted) {
		t.Fatalf("complete response %v", resp)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/food/complete", "bob", gin.H{"food_id": id})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second complete: status %d, want 400", w.Code)
	}
}

func TestReserveRejectsMalformedID(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/food/reserve", "bob", gin.H{"food_id": "not-a-uuid"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestReportFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := createTestPost(t, r, "alice")

	// The poster cannot report their own post.
	w, resp := doJSON(t, r, http.MethodGet, "/api/report/can-report/"+id, "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("can-report: status %d", w.Code)
	}
	if resp["canReport"] != false {
		t.Fatalf("poster can-report response %v", resp)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/api/report", "carol", gin.H{
		"postId":         id,
		"reportedUserId": "alice",
		"message":        "expired food",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit report: status %d body %v", w.Code, resp)
	}
	reportID, _ := resp["report_id"].(string)
	if reportID == "" {
		t.Fatalf("missing report_id in %v", resp)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/report/can-report/"+id, "carol", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("can-report after submit: status %d", w.Code)
	}
	if resp["canReport"] != false {
		t.Fatalf("duplicate reporter response %v", resp)
	}

	w, _ = doJSON(t, r, http.MethodPut, "/api/report/"+reportID, "admin1", gin.H{"status": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid review status: status %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPut, "/api/report/"+reportID, "admin1", gin.H{"status": "resolved"})
	if w.Code != http.StatusOK {
		t.Fatalf("update review status: status %d", w.Code)
	}
}

func TestGetListingsUnwrapsPhoto(t *testing.T) {
	r := newTestRouter(t)
	createTestPost(t, r, "alice")

	w, resp := doJSON(t, r, http.MethodGet, "/api/food", "bob", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get listings: status %d", w.Code)
	}
	posts, ok := resp["food_posts"].([]interface{})
	if !ok || len(posts) != 1 {
		t.Fatalf("food_posts = %v", resp["food_posts"])
	}
	post, _ := posts[0].(map[string]interface{})
	if post["photo"] != "data:image/png;base64,xyz" {
		t.Fatalf("photo = %v, want unwrapped uri", post["photo"])
	}
}
