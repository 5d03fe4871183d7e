package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/pkg/serverutils"
	"quiz-generation-be/internal/pkg/testdb"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/internal/service"
	"quiz-generation-be/pkg/embedding"
	"quiz-generation-be/pkg/mcq"
	"quiz-generation-be/pkg/rag/quizgen"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type countingGenerator struct {
	n int
}

func (g *countingGenerator) Generate(ctx context.Context, passage string, d mcq.Difficulty) (*mcq.Question, error) {
	g.n++
	return &mcq.Question{
		Text:     fmt.Sprintf("Question %d about %s", g.n, passage),
		Options:  mcq.Options{A: "one", B: "two", C: "three", D: "four"},
		Correct:  mcq.OptionC,
		TimeSecs: 30,
	}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	log := logger.NewNopLogger()
	uowFactory := unitofwork.NewRepositoryFactory(testdb.New(t))
	gateway := embedding.NewGateway(embedding.NewMockProvider(16))
	quizCfg := config.QuizConfig{ContextTopK: 5, SearchTopK: 6, SearchMaxTopK: 20, RetryFactor: 3, DefaultTimeSecs: 60}
	ingestCfg := config.IngestConfig{ChunkSize: 200, ChunkOverlap: 20, KeywordCount: 5}

	searchService := service.NewSearchService(uowFactory, gateway, quizCfg, log)
	orchestrator := quizgen.NewOrchestrator(&countingGenerator{}, log, quizCfg.RetryFactor)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewHealthController().RegisterRoutes(api)
	NewDocumentController(service.NewDocumentService(uowFactory, gateway, ingestCfg, t.TempDir(), nil, nil, log), 1<<20).RegisterRoutes(api)
	NewSearchController(searchService).RegisterRoutes(api)
	NewQuizController(service.NewQuizService(uowFactory, searchService, orchestrator, quizCfg, nil, log)).RegisterRoutes(api)
	NewLibraryController(service.NewLibraryService(uowFactory, nil, log)).RegisterRoutes(api)
	return app
}

func bearer(t *testing.T) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(t *testing.T, app *fiber.App, req *http.Request, out interface{}) int {
	t.Helper()
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", bearer(t))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func jsonRequest(method, path string, payload interface{}) *http.Request {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, courseId, filename, content string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("course_id", courseId))
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/document/v1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthIsPublic(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quiz/v1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadGenerateFinalizeFlow(t *testing.T) {
	app := newTestApp(t)
	courseId := uuid.NewString()

	var uploaded serverutils.BaseResponse[dto.UploadDocumentResponse]
	code := do(t, app, uploadRequest(t, courseId, "week3.md", "Pointers hold addresses. Slices wrap arrays and track length and capacity."), &uploaded)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, uploaded.Success)
	docId := uploaded.Data.Id
	assert.Equal(t, 1, uploaded.Data.ChunksCreated)

	var search serverutils.BaseResponse[dto.SearchResponse]
	code = do(t, app, jsonRequest(http.MethodPost, "/api/search/v1/"+docId.String(), dto.SearchRequest{Query: "slices"}), &search)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, search.Data.Results, 1)

	var preview serverutils.BaseResponse[dto.GeneratePreviewResponse]
	code = do(t, app, jsonRequest(http.MethodPost, "/api/quiz/v1/generate-preview", dto.GenerateQuizRequest{
		DocumentId:   docId,
		Topic:        "slices",
		NumQuestions: 2,
		Difficulty:   "easy",
	}), &preview)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, preview.Data.Questions, 2)

	payloads := make([]dto.QuestionPayload, 0, len(preview.Data.Questions))
	for _, q := range preview.Data.Questions {
		payloads = append(payloads, dto.QuestionPayload{
			Question:   q.Text,
			Options:    dto.OptionsPayload{A: q.Options.A, B: q.Options.B, C: q.Options.C, D: q.Options.D},
			Correct:    string(q.Correct),
			Difficulty: string(q.Difficulty),
			TimeSecs:   q.TimeSecs,
			Source:     q.Source,
		})
	}

	var finalized serverutils.BaseResponse[dto.FinalizeQuizResponse]
	code = do(t, app, jsonRequest(http.MethodPost, "/api/quiz/v1/finalize", dto.FinalizeQuizRequest{
		DocumentId: docId,
		Topic:      "slices",
		Difficulty: "Easy",
		Questions:  payloads,
	}), &finalized)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2, finalized.Data.QuestionsSaved)

	var shown serverutils.BaseResponse[dto.ShowQuizResponse]
	code = do(t, app, httptest.NewRequest(http.MethodGet, "/api/quiz/v1/"+finalized.Data.QuizId.String(), nil), &shown)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, shown.Data.Questions, 2)
	assert.Equal(t, "Easy", shown.Data.AvgDifficulty)

	var poor serverutils.BaseResponse[any]
	code = do(t, app, jsonRequest(http.MethodPost, "/api/question-library/v1/mark-poor", dto.MarkPoorRequest{
		QuizId:       finalized.Data.QuizId,
		QuestionText: "not in the library",
	}), &poor)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, poor.Success)
}

func TestRequestValidation(t *testing.T) {
	app := newTestApp(t)

	var res serverutils.BaseResponse[any]
	code := do(t, app, httptest.NewRequest(http.MethodGet, "/api/quiz/v1/not-a-uuid", nil), &res)
	assert.Equal(t, http.StatusBadRequest, code)

	code = do(t, app, jsonRequest(http.MethodPost, "/api/quiz/v1/generate-preview", map[string]interface{}{"topic": "slices"}), &res)
	assert.Equal(t, http.StatusBadRequest, code)

	code = do(t, app, uploadRequest(t, "bad-course", "week3.md", "text"), &res)
	assert.Equal(t, http.StatusBadRequest, code)

	code = do(t, app, jsonRequest(http.MethodPost, "/api/search/v1/"+uuid.NewString(), dto.SearchRequest{Query: "x"}), &res)
	assert.Equal(t, http.StatusNotFound, code)
}
