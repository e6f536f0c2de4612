package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubhub/internal/config"
	"clubhub/internal/featureflags"
	"clubhub/internal/models"
	"clubhub/internal/repository"
	"clubhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Membership{},
		&models.Post{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against an in-memory database. Prometheus and
// Redis stay nil so tests never register global collectors twice.
func newTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "handler-test-secret-handler-test-secret",
		Env:       "test",
	}

	clubRepo := repository.NewClubRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		clubRepo:       clubRepo,
		membershipRepo: membershipRepo,
		postRepo:       postRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	s.clubService = service.NewClubService(clubRepo, postRepo, membershipRepo)
	s.membershipService = service.NewMembershipService(membershipRepo, clubRepo, s.featureFlags)
	s.postService = service.NewPostService(postRepo, membershipRepo, clubRepo)

	return s
}

// authedApp returns a Fiber app that behaves as if userID passed AuthRequired.
func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func createHandlerTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hashed)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createHandlerTestClub(t *testing.T, db *gorm.DB, adminID uint, name, slug string) *models.Club {
	t.Helper()
	club := &models.Club{Name: name, Slug: slug, Description: "test club", CreatorID: adminID}
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("create club %s: %v", slug, err)
	}
	membership := &models.Membership{
		UserID: adminID,
		ClubID: club.ID,
		Role:   models.MembershipRoleAdmin,
		Status: models.MembershipStatusApproved,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("create admin membership: %v", err)
	}
	return club
}

func createHandlerTestMembership(t *testing.T, db *gorm.DB, userID, clubID uint, role models.MembershipRole, status models.MembershipStatus) *models.Membership {
	t.Helper()
	membership := &models.Membership{UserID: userID, ClubID: clubID, Role: role, Status: status}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
	return membership
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
