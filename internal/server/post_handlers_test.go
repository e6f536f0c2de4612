package server

import (
	"fmt"
	"net/http"
	"testing"

	"clubhub/internal/models"
)

func TestCreatePost_MemberPublishesBlog(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	admin := createHandlerTestUser(t, db, "founder")
	member := createHandlerTestUser(t, db, "member")
	club := createHandlerTestClub(t, db, admin.ID, "Chess Club", "chess-club")
	createHandlerTestMembership(t, db, member.ID, club.ID, models.MembershipRoleMember, models.MembershipStatusApproved)

	app := authedApp(member.ID)
	app.Post("/api/clubs/:id/posts", s.CreatePost)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/clubs/%d/posts", club.ID), map[string]string{
		"title": "Tournament recap",
		"body":  "A close final round.",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var post models.Post
	decodeJSON(t, resp, &post)
	if post.Type != models.PostTypeBlog {
		t.Fatalf("expected default BLOG type, got %s", post.Type)
	}
	if !post.IsPublished {
		t.Fatal("expected post to be published")
	}
	if post.AuthorID != member.ID {
		t.Fatalf("expected author %d, got %d", member.ID, post.AuthorID)
	}
}

func TestCreatePost_RoleGating(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	admin := createHandlerTestUser(t, db, "founder")
	member := createHandlerTestUser(t, db, "member")
	moderator := createHandlerTestUser(t, db, "moderator")
	pendingUser := createHandlerTestUser(t, db, "pending")
	club := createHandlerTestClub(t, db, admin.ID, "Chess Club", "chess-club")
	createHandlerTestMembership(t, db, member.ID, club.ID, models.MembershipRoleMember, models.MembershipStatusApproved)
	createHandlerTestMembership(t, db, moderator.ID, club.ID, models.MembershipRoleModerator, models.MembershipStatusApproved)
	createHandlerTestMembership(t, db, pendingUser.ID, club.ID, models.MembershipRoleMember, models.MembershipStatusPending)

	target := fmt.Sprintf("/api/clubs/%d/posts", club.ID)
	newsBody := map[string]string{"title": "Announcement", "body": "Meeting moved.", "type": "news"}

	tests := []struct {
		name       string
		userID     uint
		payload    map[string]string
		wantStatus int
		wantError  string
	}{
		{"pending member cannot post", pendingUser.ID,
			map[string]string{"title": "t", "body": "b"},
			http.StatusForbidden, "You must be a member to create posts"},
		{"member cannot post news", member.ID, newsBody,
			http.StatusForbidden, "Only admins and moderators can create news posts"},
		{"moderator posts news", moderator.ID, newsBody, http.StatusCreated, ""},
		{"admin posts news", admin.ID, newsBody, http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := authedApp(tt.userID)
			app.Post("/api/clubs/:id/posts", s.CreatePost)

			resp := doJSON(t, app, http.MethodPost, target, tt.payload, nil)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if tt.wantError != "" {
				var errResp models.ErrorResponse
				decodeJSON(t, resp, &errResp)
				if errResp.Error != tt.wantError {
					t.Fatalf("unexpected error message: %q", errResp.Error)
				}
			} else {
				_ = resp.Body.Close()
			}
		})
	}
}

func TestCreatePost_Validation(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	admin := createHandlerTestUser(t, db, "founder")
	club := createHandlerTestClub(t, db, admin.ID, "Chess Club", "chess-club")

	app := authedApp(admin.ID)
	app.Post("/api/clubs/:id/posts", s.CreatePost)
	target := fmt.Sprintf("/api/clubs/%d/posts", club.ID)

	resp := doJSON(t, app, http.MethodPost, target, map[string]string{"title": "", "body": "b"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty title, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, target, map[string]string{"title": "t", "body": "b", "type": "GOSSIP"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid type, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// Missing club is 404.
	resp = doJSON(t, app, http.MethodPost, "/api/clubs/999/posts", map[string]string{"title": "t", "body": "b"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing club, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
}

func TestGetPost(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	admin := createHandlerTestUser(t, db, "founder")
	club := createHandlerTestClub(t, db, admin.ID, "Chess Club", "chess-club")

	published := &models.Post{
		Title: "Hello", Body: "First post.",
		Type: models.PostTypeBlog, ClubID: club.ID, AuthorID: admin.ID, IsPublished: true,
	}
	if err := db.Create(published).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	draft := &models.Post{
		Title: "Draft", Body: "Unfinished.",
		Type: models.PostTypeBlog, ClubID: club.ID, AuthorID: admin.ID, IsPublished: false,
	}
	if err := db.Create(draft).Error; err != nil {
		t.Fatalf("create draft: %v", err)
	}

	app := authedApp(0)
	app.Get("/api/posts/:id", s.GetPost)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", published.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var detail struct {
		Post models.Post `json:"post"`
	}
	decodeJSON(t, resp, &detail)
	if detail.Post.Title != "Hello" {
		t.Fatalf("expected Hello, got %q", detail.Post.Title)
	}

	// Drafts and missing posts are both 404.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", draft.ID), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for draft, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/posts/999", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
}
