package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"techscreen-backend/db/dbtest"
	xlsexport "techscreen-backend/lib/export/xls"
	filestorage "techscreen-backend/lib/file-storage"
	generationlog "techscreen-backend/lib/generation-log"
	gptclient "techscreen-backend/lib/gpt/client"
	"techscreen-backend/lib/interview"
	jdenhancement "techscreen-backend/lib/jd-enhancement"
	questioncache "techscreen-backend/lib/question-cache"
	authutils "techscreen-backend/lib/utils/auth-utils"
	"techscreen-backend/lib/workflow"
	"techscreen-backend/models"
	interviewapimodels "techscreen-backend/models/api/interview"
)

const testSecret = "controller-secret"

type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	ErrorKind string          `json:"error_kind"`
	Data      json.RawMessage `json:"data"`
}

type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) EnsureBucket(context.Context, string) error { return nil }

func (m *memObjects) PutObject(_ context.Context, bucket, key string, data []byte, _ string) error {
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memObjects) PresignedURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://objects.test/" + bucket + "/" + key, nil
}

type testServer struct {
	app  *fiber.App
	mock *gptclient.MockProvider
}

func validReply() string {
	var b strings.Builder
	for q := 1; q <= 5; q++ {
		fmt.Fprintf(&b, "[Question %d]: Scenario %d\nExpected Answer: Area %d\n", q, q, q)
		for c := 1; c <= 8; c++ {
			fmt.Fprintf(&b, "Point %d: explanation %d\n", c, c)
		}
	}
	return b.String()
}

func newTestServer(t *testing.T, responses ...gptclient.MockResponse) testServer {
	t.Helper()
	conn := dbtest.New(t)
	mock := gptclient.NewMockProvider(responses...)
	provider := gptclient.WithRetry(mock, gptclient.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond})
	tracker := generationlog.NewHandler(conn, nil, "")
	cache := questioncache.NewHandler(conn)
	enhancer := jdenhancement.NewHandler(conn, provider, tracker, jdenhancement.Config{MaxTokens: 4000, Temperature: 0.3})
	generator := interview.NewHandler(conn, provider, tracker, cache, interview.Config{MaxTokens: 4000, Temperature: 0.4, CacheEnabled: true})

	app := fiber.New()
	InitInterviewApiRouters(app.Group("/api/v1"), InterviewAPI{
		JWTSecret:  testSecret,
		DB:         conn,
		Enhancer:   enhancer,
		Interviews: generator,
		Workflow:   workflow.NewHandler(enhancer, generator),
		Logs:       tracker,
		Cache:      cache,
		Xls:        xlsexport.NewHandler(),
		Archive:    filestorage.NewHandler(conn, &memObjects{objects: map[string][]byte{}}, filestorage.Config{BucketName: "kits"}),
	})
	return testServer{app: app, mock: mock}
}

func (s testServer) do(t *testing.T, method, path string, role models.UserRole, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if role != "" {
		token, err := authutils.GetToken(authutils.TokenConfig{Secret: testSecret, Expire: time.Hour}, "user-1", "Tester", role)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func enhanceBody() interviewapimodels.EnhanceJDRequest {
	return interviewapimodels.EnhanceJDRequest{
		ReqID:            "REQ-1",
		BasicTitle:       "Backend Engineer",
		BasicDescription: "Build services",
		BasicLevel:       "Senior",
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.do(t, fiber.MethodGet, "/api/v1/interview/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "success", env.Status)
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t)

	t.Run(`token required`, func(t *testing.T) {
		resp, _ := s.do(t, fiber.MethodGet, "/api/v1/interview/req/REQ-1", "", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`mutations require admin`, func(t *testing.T) {
		resp, _ := s.do(t, fiber.MethodDelete, "/api/v1/interview/some-id", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestEnhanceAndGenerate(t *testing.T) {
	s := newTestServer(t,
		gptclient.MockResponse{Text: "Senior Backend Engineer\nOwns services", Usage: gptclient.NewUsage(10, 20)},
		gptclient.MockResponse{Text: validReply(), Usage: gptclient.NewUsage(100, 200)},
	)

	resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/jd/enhance", models.UserRoleUser, enhanceBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var enhanced interviewapimodels.EnhanceJDResponse
	require.NoError(t, json.Unmarshal(env.Data, &enhanced))
	require.Equal(t, 30, enhanced.TokensUsed)
	require.Contains(t, string(env.Data), `"basic_jd":{"title":`)
	require.Contains(t, string(env.Data), `"work_inputs":{"work_output":`)
	require.Contains(t, string(env.Data), `"created_at":`)

	resp, env = s.do(t, fiber.MethodGet, "/api/v1/interview/jd/REQ-1", models.UserRoleUser, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var jd interviewapimodels.JobDescriptionView
	require.NoError(t, json.Unmarshal(env.Data, &jd))
	require.Equal(t, enhanced.JobDescriptionID, jd.ID)

	resp, env = s.do(t, fiber.MethodPost, "/api/v1/interview/generate", models.UserRoleUser, interviewapimodels.GenerateInterviewRequest{
		ReqID:            "REQ-1",
		JobDescriptionID: enhanced.JobDescriptionID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var generated interviewapimodels.GenerateInterviewResponse
	require.NoError(t, json.Unmarshal(env.Data, &generated))
	require.Len(t, generated.Interview.Questions, 5)
	require.Equal(t, 5, generated.CachedQuestions)

	id := generated.InterviewID

	t.Run(`read back`, func(t *testing.T) {
		resp, env := s.do(t, fiber.MethodGet, "/api/v1/interview/"+id, models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var view interviewapimodels.InterviewView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		require.Equal(t, "Backend Engineer - Interview", view.InterviewName)

		resp, env = s.do(t, fiber.MethodGet, "/api/v1/interview/req/REQ-1", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var list []interviewapimodels.InterviewView
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
	})

	t.Run(`audit trail`, func(t *testing.T) {
		resp, env := s.do(t, fiber.MethodGet, "/api/v1/interview/logs/REQ-1", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var logs []interviewapimodels.GenerationLogView
		require.NoError(t, json.Unmarshal(env.Data, &logs))
		require.Len(t, logs, 2)
		for _, l := range logs {
			require.Equal(t, models.GenerationSuccess, l.Status)
		}
	})

	t.Run(`cache lookup`, func(t *testing.T) {
		resp, env := s.do(t, fiber.MethodGet, "/api/v1/interview/cache?topic=Area%201&skill_level=Senior", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var cached interviewapimodels.CachedQuestionView
		require.NoError(t, json.Unmarshal(env.Data, &cached))
		require.Equal(t, "Scenario 1", cached.QuestionText)

		resp, _ = s.do(t, fiber.MethodGet, "/api/v1/interview/cache?topic=Nothing&skill_level=Senior", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		resp, _ = s.do(t, fiber.MethodGet, "/api/v1/interview/cache", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run(`reviewer actions`, func(t *testing.T) {
		resp, env := s.do(t, fiber.MethodPut, "/api/v1/interview/"+id+"/questions/2/criteria/3", models.UserRoleAdmin, interviewapimodels.SetCriterionRequest{IsChecked: true})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var question interviewapimodels.QuestionView
		require.NoError(t, json.Unmarshal(env.Data, &question))
		require.True(t, question.Criteria[2].IsChecked)

		resp, _ = s.do(t, fiber.MethodPut, "/api/v1/interview/"+id+"/questions/2/criteria/99", models.UserRoleAdmin, interviewapimodels.SetCriterionRequest{IsChecked: true})
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		resp, _ = s.do(t, fiber.MethodPut, "/api/v1/interview/"+id+"/status", models.UserRoleAdmin, interviewapimodels.UpdateStatusRequest{Status: models.InterviewPublished})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, _ = s.do(t, fiber.MethodPut, "/api/v1/interview/"+id+"/status", models.UserRoleAdmin, interviewapimodels.UpdateStatusRequest{Status: "closed"})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run(`exports`, func(t *testing.T) {
		resp, _ := s.do(t, fiber.MethodGet, "/api/v1/interview/"+id+"/export/xlsx", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")

		resp, _ = s.do(t, fiber.MethodGet, "/api/v1/interview/"+id+"/export/pdf", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

		resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/"+id+"/archive?format=xlsx", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var archived interviewapimodels.ArchiveView
		require.NoError(t, json.Unmarshal(env.Data, &archived))
		require.True(t, strings.HasSuffix(archived.ObjectKey, ".xlsx"))
		require.Contains(t, archived.URL, "https://objects.test/kits/")

		resp, _ = s.do(t, fiber.MethodPost, "/api/v1/interview/"+id+"/archive?format=docx", models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run(`delete`, func(t *testing.T) {
		resp, _ := s.do(t, fiber.MethodDelete, "/api/v1/interview/"+id, models.UserRoleAdmin, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, env := s.do(t, fiber.MethodGet, "/api/v1/interview/"+id, models.UserRoleUser, nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, string(models.ErrKindNotFound), env.ErrorKind)
	})
}

func TestGenerateErrors(t *testing.T) {
	t.Run(`missing fields`, func(t *testing.T) {
		s := newTestServer(t)
		resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/generate", models.UserRoleUser, interviewapimodels.GenerateInterviewRequest{ReqID: "REQ-1"})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Contains(t, env.Message, "job_description_id")
		require.Equal(t, 0, s.mock.CallCount())
	})

	t.Run(`unknown job description`, func(t *testing.T) {
		s := newTestServer(t)
		resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/generate", models.UserRoleUser, interviewapimodels.GenerateInterviewRequest{
			ReqID:            "REQ-1",
			JobDescriptionID: "missing",
		})
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, string(models.ErrKindNotFound), env.ErrorKind)
	})

	t.Run(`malformed model reply`, func(t *testing.T) {
		s := newTestServer(t,
			gptclient.MockResponse{Text: "Enhanced", Usage: gptclient.NewUsage(1, 1)},
			gptclient.MockResponse{Text: "[Question 1]: only one\nExpected Answer: x\n", Usage: gptclient.NewUsage(1, 1)},
		)
		resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/workflow/full", models.UserRoleUser, interviewapimodels.FullWorkflowRequest{
			EnhanceJDRequest: enhanceBody(),
		})
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		require.Equal(t, "JD was enhanced successfully, but interview generation failed", env.Message)
		var partial interviewapimodels.PartialWorkflowResult
		require.NoError(t, json.Unmarshal(env.Data, &partial))
		require.NotEmpty(t, partial.JobDescriptionID)
		require.Equal(t, string(models.ErrKindValidationFailed), partial.ErrorKind)
		require.Equal(t, 2, partial.TokensUsed)
	})

	t.Run(`provider exhausted`, func(t *testing.T) {
		s := newTestServer(t,
			gptclient.MockResponse{Err: &gptclient.ErrRateLimit{Err: errors.New("slow down")}},
			gptclient.MockResponse{Err: &gptclient.ErrRateLimit{Err: errors.New("slow down")}},
		)
		resp, env := s.do(t, fiber.MethodPost, "/api/v1/interview/workflow/jd-only", models.UserRoleUser, enhanceBody())
		require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		require.Equal(t, string(models.ErrKindProviderExhausted), env.ErrorKind)
	})
}
