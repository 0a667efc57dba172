package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/coursekit/internal/lms"
)

// apiStub serves canned responses keyed by "METHOD /path" and keeps the
// decoded request bodies.
type apiStub struct {
	mu     sync.Mutex
	routes map[string]string
	status map[string]int
	bodies map[string]map[string]any
	calls  int
}

func newAPIStub(t *testing.T) (*apiStub, string) {
	t.Helper()

	stub := &apiStub{
		routes: map[string]string{},
		status: map[string]int{},
		bodies: map[string]map[string]any{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		defer stub.mu.Unlock()

		stub.calls++
		route := r.Method + " " + r.URL.Path
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			var body map[string]any
			_ = json.Unmarshal(data, &body)
			stub.bodies[route] = body
		}

		body, ok := stub.routes[route]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not found."}`))
			return
		}
		status := stub.status[route]
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return stub, srv.URL
}

func (s *apiStub) handle(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = body
	s.status[route] = status
}

func newGlobals(t *testing.T, apiURL string) (*Globals, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &Globals{
		APIURL:     apiURL,
		SessionDir: t.TempDir(),
		Stdout:     out,
		Stdin:      strings.NewReader(""),
	}, out
}

func testToken(t *testing.T, username, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     role,
		"user_id":  12,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginWhoamiLogout(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /login/", http.StatusOK,
		`{"access":"`+testToken(t, "ada", "lecturer")+`","refresh":"refresh-1"}`)

	globals, out := newGlobals(t, url)
	globals.Stdin = strings.NewReader("correct-horse\n")
	ctx := context.Background()

	require.NoError(t, (&LoginCmd{Username: "ada"}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Logged in as ada (lecturer)")
	assert.Equal(t, "correct-horse", stub.bodies["POST /login/"]["password"])

	_, err := os.Stat(filepath.Join(globals.SessionDir, "session.json"))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&WhoamiCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Username: ada")
	assert.Contains(t, out.String(), "User ID:  12")

	out.Reset()
	require.NoError(t, (&LogoutCmd{}).Run(ctx, globals))
	require.NoError(t, (&WhoamiCmd{}).Run(ctx, globals))
	assert.Contains(t, out.String(), "Not logged in")
}

func TestLoginFailure(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /login/", http.StatusUnauthorized, `{"detail":"No active account found with the given credentials"}`)

	globals, _ := newGlobals(t, url)

	err := (&LoginCmd{Username: "ada", Password: "wrong"}).Run(context.Background(), globals)
	require.Error(t, err)
	assert.Equal(t, "No active account found with the given credentials", err.Error())
}

func TestRegister_ShortPasswordStaysLocal(t *testing.T) {
	stub, url := newAPIStub(t)
	globals, _ := newGlobals(t, url)
	globals.Stdin = strings.NewReader("short\n")

	err := (&RegisterCmd{Username: "ada", Email: "a@x.io", Role: "student"}).Run(context.Background(), globals)
	assert.ErrorIs(t, err, lms.ErrPasswordTooShort)
	assert.Equal(t, 0, stub.calls)
}

func TestCoursesList(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("GET /courses/", http.StatusOK, `[
		{"id":1,"title":"Go Basics","difficulty":"beginner","price":"10.00","category_name":"Programming","students_count":3,"lecturer_name":"ada"},
		{"id":2,"title":"Design 101","difficulty":"intermediate","price":"0.00","students_count":0}
	]`)

	globals, out := newGlobals(t, url)

	require.NoError(t, (&CoursesListCmd{Search: "go", Sort: lms.DefaultSort}).Run(context.Background(), globals))

	text := out.String()
	assert.Contains(t, text, "TITLE")
	assert.Contains(t, text, "Go Basics")
	assert.Contains(t, text, "Programming")
	assert.Contains(t, text, "Total courses: 2")
}

func TestCoursesCreateFromManifest(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /courses/", http.StatusCreated, `{"id":42,"title":"Go Basics"}`)

	manifest := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
title: Go Basics
description: Learn Go
price: 49.99
difficulty: intermediate
duration_hours: 6
is_published: true
`), 0600))

	globals, out := newGlobals(t, url)

	require.NoError(t, (&CoursesCreateCmd{File: manifest}).Run(context.Background(), globals))
	assert.Contains(t, out.String(), "Course created with ID: 42")

	body := stub.bodies["POST /courses/"]
	assert.Equal(t, "49.99", body["price"])
	assert.Equal(t, "intermediate", body["difficulty"])
	assert.Equal(t, true, body["is_published"])
	assert.Nil(t, body["category"])
}

func TestContentsCreateFromJSONManifest(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /courses/3/contents/", http.StatusCreated, `{"id":7,"title":"Intro"}`)

	manifest := filepath.Join(t.TempDir(), "lesson.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{
  "title": "Intro",
  "content_type": "video",
  "video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
  "order": 1
}`), 0600))

	globals, out := newGlobals(t, url)

	require.NoError(t, (&ContentsCreateCmd{CourseID: 3, File: manifest}).Run(context.Background(), globals))
	assert.Contains(t, out.String(), "Lesson created with ID: 7")
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", stub.bodies["POST /courses/3/contents/"]["video_url"])
}

func TestEnroll(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /courses/1/enroll/", http.StatusCreated, `{"id":5,"course":1,"course_title":"Go Basics"}`)
	stub.handle("POST /courses/2/enroll/", http.StatusOK, `{"message":"Already enrolled in this course"}`)

	globals, out := newGlobals(t, url)
	ctx := context.Background()

	require.NoError(t, (&EnrollCmd{CourseID: 1}).Run(ctx, globals))
	require.NoError(t, (&EnrollCmd{CourseID: 2}).Run(ctx, globals))

	assert.Contains(t, out.String(), "Enrolled in Go Basics")
	assert.Contains(t, out.String(), "Already enrolled in this course")
}

func TestProgress(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("GET /progress/", http.StatusOK,
		`[{"course_id":1,"course_title":"Go Basics","total_content":4,"completed_content":3,"progress_percentage":75.0}]`)

	globals, out := newGlobals(t, url)

	require.NoError(t, (&ProgressCmd{}).Run(context.Background(), globals))
	assert.Contains(t, out.String(), "3/4")
	assert.Contains(t, out.String(), "75%")
}

func TestCategoriesCreateForbidden(t *testing.T) {
	stub, url := newAPIStub(t)
	stub.handle("POST /categories/", http.StatusForbidden, `{"error":"Only lecturers can create categories"}`)

	globals, _ := newGlobals(t, url)

	err := (&CategoriesCreateCmd{Name: "Go"}).Run(context.Background(), globals)
	require.Error(t, err)
	assert.Equal(t, "Only lecturers can create categories", err.Error())
	assert.Equal(t, "Go", stub.bodies["POST /categories/"]["name"])
}
