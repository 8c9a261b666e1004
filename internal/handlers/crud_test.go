package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"review-system-api/internal/database"
	"review-system-api/internal/models"
)

type chain struct {
	userID       uint
	assignmentID uint
	subtaskID    uint
	submissionID uint
	reviewID     uint
	commentID    uint
}

// buildChain creates one row of every entity along the
// assignment → subtask → submission → review → comment path.
func buildChain(t *testing.T, e *echo.Echo, token string) chain {
	t.Helper()

	var c chain
	c.userID = createJSON(t, e, "/api/users",
		`{"username":"bob","email":"bob@x.com","password":"pw","first_name":"Bob","second_name":"Gray","roles":[{"name":"reviewee"}]}`, token)
	c.assignmentID = createJSON(t, e, "/api/assignments",
		fmt.Sprintf(`{"title":"Compilers","description":"build one","created_by_id":%d,"individual_reviewee_ids":[%d]}`, c.userID, c.userID), token)
	c.subtaskID = createJSON(t, e, "/api/subtasks",
		fmt.Sprintf(`{"title":"Lexer","description":"tokenize","due_date":"2026-09-15","assignment_id":%d}`, c.assignmentID), token)
	c.submissionID = createJSON(t, e, "/api/submissions",
		fmt.Sprintf(`{"description":"first pass","files_link":"https://files.example.com/lexer.zip","subtask_id":%d,"reviewee_id":%d}`, c.subtaskID, c.userID), token)
	c.reviewID = createJSON(t, e, "/api/reviews",
		fmt.Sprintf(`{"content":"solid start","status":"suggest_iteration","submission_id":%d,"reviewer_id":%d}`, c.submissionID, c.userID), token)
	c.commentID = createJSON(t, e, "/api/comments",
		fmt.Sprintf(`{"comment":"see line 40","review_id":%d,"commenter_id":%d}`, c.reviewID, c.userID), token)
	return c
}

func TestRoleCRUD(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	id := createJSON(t, e, "/api/roles", `{"name":"reviewer"}`, token)

	rec := doJSON(t, e, http.MethodPost, "/api/roles", `{"name":"reviewer"}`, token)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate role = %d, want 409", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/api/roles", `{"name":"overlord"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown role name = %d, want 400", rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/roles/%d", id), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get role = %d, want 200", rec.Code)
	}
	var role models.Role
	decodeJSON(t, rec, &role)
	if role.Name != "reviewer" {
		t.Errorf("role name = %q", role.Name)
	}

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/roles/%d", id), `{"name":"admin"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update role = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/roles/%d", id), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete role = %d, want 204", rec.Code)
	}
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/roles/%d", id), "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted role = %d, want 404", rec.Code)
	}
}

func TestUserRolesAreUpsertedByName(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	createJSON(t, e, "/api/users",
		`{"username":"u1","email":"u1@x.com","password":"pw","roles":[{"name":"reviewer"}]}`, token)
	createJSON(t, e, "/api/users",
		`{"username":"u2","email":"u2@x.com","password":"pw","roles":[{"name":"reviewer"},{"name":"admin"}]}`, token)

	// Both users share the single reviewer row.
	var count int64
	database.DB.Model(&models.Role{}).Where("name = ?", "reviewer").Count(&count)
	if count != 1 {
		t.Errorf("reviewer role rows = %d, want 1", count)
	}
	database.DB.Model(&models.Role{}).Count(&count)
	if count != 2 {
		t.Errorf("total role rows = %d, want 2", count)
	}
}

func TestUserUpdateReplacesRoleSet(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	id := createJSON(t, e, "/api/users",
		`{"username":"u1","email":"u1@x.com","password":"pw","roles":[{"name":"reviewer"},{"name":"reviewee"}]}`, token)

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", id), `{"roles":[{"name":"admin"}]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update user = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var user models.User
	if err := database.DB.Preload("Roles").First(&user, id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0].Name != "admin" {
		t.Errorf("roles after replace = %+v, want just admin", user.Roles)
	}
}

func TestUserPartialUpdateKeepsAbsentFields(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	id := createJSON(t, e, "/api/users",
		`{"username":"u1","email":"u1@x.com","password":"pw","first_name":"Uma","second_name":"Long"}`, token)

	patch := `{"second_name":"Short"}`
	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", id), patch, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d; body: %s", rec.Code, rec.Body.String())
	}

	// Applying the same patch again lands on the same state.
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", id), patch, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat update = %d", rec.Code)
	}

	var user models.User
	database.DB.First(&user, id)
	if user.FirstName != "Uma" {
		t.Errorf("first name = %q, want unchanged %q", user.FirstName, "Uma")
	}
	if user.SecondName != "Short" {
		t.Errorf("second name = %q, want %q", user.SecondName, "Short")
	}
	if user.Email != "u1@x.com" {
		t.Errorf("email = %q, want unchanged", user.Email)
	}
}

func TestDuplicateTeamNameConflict(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	createJSON(t, e, "/api/teams", `{"name":"alpha"}`, token)
	rec := doJSON(t, e, http.MethodPost, "/api/teams", `{"name":"alpha"}`, token)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate team = %d, want 409", rec.Code)
	}
}

func TestTeamMembersResolved(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	u1 := createJSON(t, e, "/api/users", `{"username":"u1","email":"u1@x.com","password":"pw"}`, token)
	u2 := createJSON(t, e, "/api/users", `{"username":"u2","email":"u2@x.com","password":"pw"}`, token)

	id := createJSON(t, e, "/api/teams", fmt.Sprintf(`{"name":"alpha","member_ids":[%d,%d]}`, u1, u2), token)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/teams/%d", id), "", token)
	var team models.Team
	decodeJSON(t, rec, &team)
	if len(team.Members) != 2 {
		t.Errorf("members = %d, want 2", len(team.Members))
	}

	// An unknown member id is a payload error.
	rec = doJSON(t, e, http.MethodPost, "/api/teams", `{"name":"beta","member_ids":[999]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown member = %d, want 400", rec.Code)
	}
}

func TestSubtaskRejectsUnknownAssignment(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	rec := doJSON(t, e, http.MethodPost, "/api/subtasks",
		`{"title":"Lexer","due_date":"2026-09-15","assignment_id":999}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown assignment = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestReviewRejectsUnknownStatus(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)
	c := buildChain(t, e, token)

	rec := doJSON(t, e, http.MethodPost, "/api/reviews",
		fmt.Sprintf(`{"content":"meh","status":"approved","submission_id":%d,"reviewer_id":%d}`, c.submissionID, c.userID), token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/reviews/%d", c.reviewID), `{"status":"approved"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status on update = %d, want 400", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/reviews/%d", c.reviewID), `{"status":"passed"}`, token)
	if rec.Code != http.StatusOK {
		t.Errorf("valid status on update = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteAssignmentCascades(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)
	c := buildChain(t, e, token)

	// Attach a file to the subtask so the cascade crosses into
	// attachments as well.
	rec := doMultipart(t, e, "/api/attachments", token,
		map[string]string{"subtask_id": fmt.Sprint(c.subtaskID)}, "notes.txt", "remember the edge cases")
	if rec.Code != http.StatusCreated {
		t.Fatalf("attachment upload = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/assignments/%d", c.assignmentID), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete assignment = %d, want 204; body: %s", rec.Code, rec.Body.String())
	}

	counts := map[string]interface{}{
		"subtasks":    &models.Subtask{},
		"submissions": &models.Submission{},
		"reviews":     &models.Review{},
		"comments":    &models.ReviewComment{},
		"attachments": &models.Attachment{},
	}
	for name, model := range counts {
		var count int64
		database.DB.Model(model).Count(&count)
		if count != 0 {
			t.Errorf("%s remaining after cascade = %d, want 0", name, count)
		}
	}

	// The reviewee account survives the cascade.
	var users int64
	database.DB.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("users after cascade = %d, want 1", users)
	}
}

func TestListEndpoints(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)
	buildChain(t, e, token)

	for _, path := range []string{
		"/api/users", "/api/assignments", "/api/subtasks",
		"/api/submissions", "/api/reviews", "/api/comments",
	} {
		rec := doJSON(t, e, http.MethodGet, path, "", token)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
			continue
		}
		var rows []map[string]interface{}
		decodeJSON(t, rec, &rows)
		if len(rows) != 1 {
			t.Errorf("GET %s rows = %d, want 1", path, len(rows))
		}
	}
}

func TestGetMissingIs404(t *testing.T) {
	e := setupApp(t)
	token := authToken(t, 1)

	for _, path := range []string{
		"/api/roles/42", "/api/users/42", "/api/teams/42",
		"/api/assignments/42", "/api/subtasks/42", "/api/submissions/42",
		"/api/reviews/42", "/api/comments/42", "/api/attachments/42",
	} {
		rec := doJSON(t, e, http.MethodGet, path, "", token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}
