package validation

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"

	"tasks-api/internal/errs"
)

func bindJSON[T any](t *testing.T, body string) (T, []errs.Issue) {
	t.Helper()
	Setup()
	var req T
	if err := binding.JSON.BindBody([]byte(body), &req); err != nil {
		return req, Issues(err)
	}
	return req, nil
}

func bindQuery(t *testing.T, rawQuery string) (ListTasksParams, []errs.Issue) {
	t.Helper()
	Setup()
	var p ListTasksParams
	r := httptest.NewRequest("GET", "/tasks?"+rawQuery, nil)
	if err := binding.Query.Bind(r, &p); err != nil {
		return p, Issues(err)
	}
	return p, nil
}

func fields(issues []errs.Issue) map[string]string {
	out := make(map[string]string, len(issues))
	for _, is := range issues {
		out[is.Field] = is.Code
	}
	return out
}

func TestCreateTaskRequest(t *testing.T) {
	cases := []struct {
		name string
		body string
		want map[string]string
	}{
		{"valid", `{"title":"x"}`, nil},
		{"missing title", `{"description":"no title"}`, map[string]string{"title": "invalid_type"}},
		{"empty title", `{"title":""}`, map[string]string{"title": "invalid_type"}},
		{"long title", `{"title":"` + strings.Repeat("a", 256) + `"}`, map[string]string{"title": "too_big"}},
		{"long description", `{"title":"x","description":"` + strings.Repeat("d", 1001) + `"}`, map[string]string{"description": "too_big"}},
		{"all issues collected", `{"description":"` + strings.Repeat("d", 1001) + `"}`, map[string]string{"title": "invalid_type", "description": "too_big"}},
		{"wrong type", `{"title":5}`, map[string]string{"title": "invalid_type"}},
		{"null body", `null`, map[string]string{"title": "invalid_type"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, issues := bindJSON[CreateTaskRequest](t, c.body)
			got := fields(issues)
			if len(got) != len(c.want) {
				t.Fatalf("issues = %+v, want fields %v", issues, c.want)
			}
			for f, code := range c.want {
				if got[f] != code {
					t.Errorf("field %q code = %q, want %q (%+v)", f, got[f], code, issues)
				}
			}
		})
	}
}

func TestCreateTaskRequestCountsCharacters(t *testing.T) {
	title := strings.Repeat("é", 255)
	if _, issues := bindJSON[CreateTaskRequest](t, `{"title":"`+title+`"}`); issues != nil {
		t.Fatalf("255 multibyte characters rejected: %+v", issues)
	}
}

func TestUpdateTaskRequest(t *testing.T) {
	_, issues := bindJSON[UpdateTaskRequest](t, `{}`)
	if len(issues) != 1 || issues[0].Code != "custom" || issues[0].Message != "At least one field must be provided" {
		t.Fatalf("empty update issues = %+v", issues)
	}

	_, issues = bindJSON[UpdateTaskRequest](t, `{"title":""}`)
	if got := fields(issues); got["title"] != "too_small" {
		t.Fatalf("empty title issues = %+v", issues)
	}

	req, issues := bindJSON[UpdateTaskRequest](t, `{"completed":false}`)
	if issues != nil {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	in := req.Input()
	if in.Completed == nil || *in.Completed || in.Title != nil || in.Description != nil {
		t.Fatalf("input = %+v", in)
	}

	_, issues = bindJSON[UpdateTaskRequest](t, `{"completed":"yes"}`)
	if got := fields(issues); got["completed"] != "invalid_type" {
		t.Fatalf("non-boolean completed issues = %+v", issues)
	}
}

func TestListTasksParams(t *testing.T) {
	p, issues := bindQuery(t, "")
	if issues != nil {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	q := p.Query()
	if q.Page != 1 || q.Limit != 10 || q.Completed != nil || q.From != nil || q.To != nil {
		t.Fatalf("defaults = %+v", q)
	}

	p, issues = bindQuery(t, "page=2&limit=100&completed=false&from=2025-01-01T00:00:00Z&to=2025-02-01T10:00:00.500%2B02:00")
	if issues != nil {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	q = p.Query()
	if q.Page != 2 || q.Limit != 100 || q.Completed == nil || *q.Completed {
		t.Fatalf("query = %+v", q)
	}
	if q.From == nil || !q.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", q.From)
	}
	if q.To == nil || !q.To.Equal(time.Date(2025, 2, 1, 8, 0, 0, 500e6, time.UTC)) {
		t.Fatalf("to = %v", q.To)
	}
}

func TestListTasksParamsCollectsEveryIssue(t *testing.T) {
	_, issues := bindQuery(t, "page=0&limit=101&completed=yes&from=yesterday&to=2025-13-01")
	want := map[string]string{
		"page":      "too_small",
		"limit":     "too_big",
		"completed": "invalid_enum_value",
		"from":      "invalid_string",
		"to":        "invalid_string",
	}
	got := fields(issues)
	if len(got) != len(want) {
		t.Fatalf("issues = %+v", issues)
	}
	for f, code := range want {
		if got[f] != code {
			t.Errorf("field %q code = %q, want %q", f, got[f], code)
		}
	}

	_, issues = bindQuery(t, "limit=abc&page=99999999999999999999999")
	got = fields(issues)
	if got["limit"] != "invalid_type" || got["page"] != "too_big" {
		t.Fatalf("issues = %+v", issues)
	}
}
