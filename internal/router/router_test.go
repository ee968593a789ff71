package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-quiz-api/internal/config"
	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	"github.com/yourusername/trivia-quiz-api/internal/handler"
	"github.com/yourusername/trivia-quiz-api/internal/middleware"
	apperrors "github.com/yourusername/trivia-quiz-api/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz-api/internal/service"
	"github.com/yourusername/trivia-quiz-api/internal/service/quizmanager"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// In-memory хранилище: реализует QuestionRepository и CategoryRepository
// ============================================================================

type memoryStore struct {
	categories []entity.Category
	questions  []entity.Question
	nextID     uint
	failDelete bool
}

func newMemoryStore(categoryTypes ...string) *memoryStore {
	s := &memoryStore{nextID: 1}
	for i, typ := range categoryTypes {
		s.categories = append(s.categories, entity.Category{ID: uint(i + 1), Type: typ})
	}
	return s
}

// questionStore и categoryStore разводят одноименные методы GetByID двух интерфейсов
type questionStore struct{ *memoryStore }
type categoryStore struct{ *memoryStore }

func (s *memoryStore) hasCategory(id uint) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *memoryStore) add(question, answer string, category uint, difficulty int) uint {
	q := entity.Question{ID: s.nextID, Question: question, Answer: answer, Category: category, Difficulty: difficulty}
	s.nextID++
	s.questions = append(s.questions, q)
	return q.ID
}

func page(questions []entity.Question, limit, offset int) []entity.Question {
	// Как gorm: неположительный OFFSET в запрос не попадает
	if offset < 0 {
		offset = 0
	}
	if offset >= len(questions) {
		return []entity.Question{}
	}
	end := offset + limit
	if end > len(questions) {
		end = len(questions)
	}
	return append([]entity.Question{}, questions[offset:end]...)
}

func (s questionStore) filter(keep func(q entity.Question) bool) []entity.Question {
	out := []entity.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s questionStore) Create(_ context.Context, q *entity.Question) error {
	// Аналог внешнего ключа в базе
	if !s.hasCategory(q.Category) {
		return fmt.Errorf("%w: unknown category %d", apperrors.ErrUnprocessable, q.Category)
	}
	q.ID = s.add(q.Question, q.Answer, q.Category, q.Difficulty)
	return nil
}

func (s questionStore) CreateBatch(ctx context.Context, questions []entity.Question) error {
	for _, q := range questions {
		if !s.hasCategory(q.Category) {
			return fmt.Errorf("%w: unknown category %d", apperrors.ErrUnprocessable, q.Category)
		}
	}
	for i := range questions {
		if err := s.Create(ctx, &questions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s questionStore) GetByID(_ context.Context, id uint) (*entity.Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			found := q
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s questionStore) Delete(_ context.Context, id uint) error {
	if s.failDelete {
		return errors.New("could not serialize access")
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s questionStore) Count(context.Context) (int64, error) {
	return int64(len(s.questions)), nil
}

func (s questionStore) ListPage(_ context.Context, limit, offset int) ([]entity.Question, error) {
	return page(s.filter(func(entity.Question) bool { return true }), limit, offset), nil
}

func (s questionStore) ListByCategory(_ context.Context, categoryID uint, limit, offset int) ([]entity.Question, error) {
	return page(s.filter(func(q entity.Question) bool { return q.Category == categoryID }), limit, offset), nil
}

func (s questionStore) Search(_ context.Context, term string, limit, offset int) ([]entity.Question, error) {
	term = strings.ToLower(term)
	return page(s.filter(func(q entity.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), limit, offset), nil
}

func (s questionStore) ListAll(context.Context) ([]entity.Question, error) {
	return s.filter(func(entity.Question) bool { return true }), nil
}

func (s questionStore) ListAllByCategory(_ context.Context, categoryID uint) ([]entity.Question, error) {
	return s.filter(func(q entity.Question) bool { return q.Category == categoryID }), nil
}

func (s categoryStore) List(context.Context) ([]entity.Category, error) {
	return append([]entity.Category{}, s.categories...), nil
}

func (s categoryStore) GetByID(_ context.Context, id uint) (*entity.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ============================================================================
// Сборка роутера
// ============================================================================

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "trivia-quiz-api", Env: config.EnvTest},
		Server: config.ServerConfig{APIPrefix: "/v1"},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		},
	}
}

func newTestRouterWithSelector(store *memoryStore, selector service.QuestionSelector) *gin.Engine {
	qcfg := quizmanager.DefaultConfig()
	questions := questionStore{store}
	categories := categoryStore{store}

	return New(Deps{
		Config:          testConfig(),
		Logger:          zerolog.Nop(),
		CategoryService: service.NewCategoryService(categories, questions, qcfg),
		QuestionService: service.NewQuestionService(questions, categories, qcfg),
		QuizService:     service.NewQuizService(questions, selector),
		Metrics:         middleware.NewHTTPMetrics(),
		HealthChecks: map[string]handler.PingFunc{
			"postgres": func(context.Context) error { return nil },
		},
	})
}

func newTestRouter(store *memoryStore) *gin.Engine {
	return newTestRouterWithSelector(store, quizmanager.NewRandomQuestionSelector(quizmanager.DefaultConfig()))
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, message, resp["message"])
	assert.Equal(t, float64(status), resp["error_code"])
}

func questionIDs(t *testing.T, resp map[string]interface{}) []uint {
	t.Helper()
	raw, ok := resp["questions"].([]interface{})
	require.True(t, ok, "questions должен быть массивом")
	ids := make([]uint, len(raw))
	for i, q := range raw {
		ids[i] = uint(q.(map[string]interface{})["id"].(float64))
	}
	return ids
}

// ============================================================================
// Сквозной сценарий
// ============================================================================

func TestEndToEnd_CreateThenList(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	w := doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{
		"question": "Q1", "answer": "A1", "difficulty": 1, "category": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, true, created["success"])
	assert.NotNil(t, created["created_id"])
	assert.Equal(t, float64(1), created["total_questions"])

	w = doRequest(r, http.MethodGet, "/v1/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode(t, w)
	assert.Equal(t, float64(1), listed["total_questions"])
	assert.Equal(t, map[string]interface{}{"1": "Science"}, listed["categories"])

	questions := listed["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, map[string]interface{}{
		"id":         created["created_id"],
		"question":   "Q1",
		"answer":     "A1",
		"category":   float64(1),
		"difficulty": float64(1),
	}, questions[0])
}

// ============================================================================
// Категории
// ============================================================================

func TestGetCategories(t *testing.T) {
	assertError(t, doRequest(newTestRouter(newMemoryStore()), http.MethodGet, "/v1/categories", nil),
		http.StatusNotFound, "Not Found")

	w := doRequest(newTestRouter(newMemoryStore("Science", "Art")), http.MethodGet, "/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, map[string]interface{}{"1": "Science", "2": "Art"}, resp["categories"])
}

func TestGetCategoryQuestions(t *testing.T) {
	store := newMemoryStore("Science", "Art")
	for i := 0; i < 12; i++ {
		store.add(fmt.Sprintf("science %d", i), "a", 1, 1)
	}
	store.add("art 1", "a", 2, 1)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/v1/categories/1/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Science", resp["current_category"])
	assert.Equal(t, float64(10), resp["total_questions"], "total_questions равен размеру страницы")
	assert.Len(t, questionIDs(t, resp), 10)

	w = doRequest(r, http.MethodGet, "/v1/categories/1/questions?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{11, 12}, questionIDs(t, decode(t, w)))

	assertError(t, doRequest(r, http.MethodGet, "/v1/categories/1/questions?page=3", nil), http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodGet, "/v1/categories/99/questions", nil), http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodGet, "/v1/categories/abc/questions", nil), http.StatusNotFound, "Not Found")
}

// ============================================================================
// Вопросы: список, удаление
// ============================================================================

func TestGetQuestions_Pagination(t *testing.T) {
	store := newMemoryStore("Science")
	for i := 0; i < 15; i++ {
		store.add(fmt.Sprintf("q%d", i), "a", 1, 1)
	}
	r := newTestRouter(store)

	first := decode(t, doRequest(r, http.MethodGet, "/v1/questions", nil))
	assert.Len(t, questionIDs(t, first), 10)
	assert.Equal(t, float64(15), first["total_questions"], "total_questions считает все вопросы")

	second := decode(t, doRequest(r, http.MethodGet, "/v1/questions?page=2", nil))
	assert.Equal(t, []uint{11, 12, 13, 14, 15}, questionIDs(t, second))

	assertError(t, doRequest(r, http.MethodGet, "/v1/questions?page=3", nil), http.StatusNotFound, "Not Found")

	// Нечисловая страница трактуется как первая
	fallback := decode(t, doRequest(r, http.MethodGet, "/v1/questions?page=abc", nil))
	assert.Equal(t, questionIDs(t, first), questionIDs(t, fallback))
}

func TestPagination_HugePageIsOutOfRange(t *testing.T) {
	store := newMemoryStore("Science")
	for i := 0; i < 3; i++ {
		store.add(fmt.Sprintf("title %d", i), "a", 1, 1)
	}
	r := newTestRouter(store)

	assertError(t, doRequest(r, http.MethodGet, "/v1/questions?page=1000000000000000000", nil),
		http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodGet, "/v1/categories/1/questions?page=1000000000000000000", nil),
		http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodPost, "/v1/questions?page=1000000000000000000", map[string]interface{}{"searchTerm": "title"}),
		http.StatusNotFound, "Not Found")
}

func TestGetQuestions_EmptyStore(t *testing.T) {
	assertError(t, doRequest(newTestRouter(newMemoryStore("Science")), http.MethodGet, "/v1/questions", nil),
		http.StatusNotFound, "Not Found")
}

func TestDeleteQuestion(t *testing.T) {
	store := newMemoryStore("Science")
	keep := store.add("keep", "a", 1, 1)
	gone := store.add("gone", "a", 1, 1)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/v1/questions/%d", gone), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(gone), resp["deleted_id"])

	listed := decode(t, doRequest(r, http.MethodGet, "/v1/questions", nil))
	assert.Equal(t, []uint{keep}, questionIDs(t, listed))

	assertError(t, doRequest(r, http.MethodDelete, fmt.Sprintf("/v1/questions/%d", gone), nil), http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodDelete, "/v1/questions/abc", nil), http.StatusNotFound, "Not Found")
}

func TestDeleteQuestion_StoreFailure(t *testing.T) {
	store := newMemoryStore("Science")
	id := store.add("q", "a", 1, 1)
	store.failDelete = true

	w := doRequest(newTestRouter(store), http.MethodDelete, fmt.Sprintf("/v1/questions/%d", id), nil)

	assertError(t, w, http.StatusUnprocessableEntity, "Cannot be processed")
	assert.NotContains(t, w.Body.String(), "serialize", "Ошибка хранилища не раскрывается клиенту")
}

// ============================================================================
// Вопросы: создание и поиск
// ============================================================================

func TestCreateQuestion_Errors(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{
		"question": "Q1", "answer": "A1", "difficulty": 1,
	}), http.StatusBadRequest, "Bad Request")

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions", "not json"), http.StatusBadRequest, "Bad Request")

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{
		"question": "Q1", "answer": "A1", "difficulty": 1, "category": 42,
	}), http.StatusUnprocessableEntity, "Cannot be processed")
}

func TestSearchQuestions(t *testing.T) {
	store := newMemoryStore("Science")
	store.add("What is the Title of the book?", "a", 1, 1)
	store.add("Whose autobiography is entitled X?", "a", 1, 1)
	store.add("100% sure?", "a", 1, 1)
	store.add("Unrelated", "a", 1, 1)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{"searchTerm": "title"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, []uint{1, 2}, questionIDs(t, resp), "Поиск без учета регистра")
	assert.Equal(t, float64(2), resp["total_questions"])

	w = doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{"searchTerm": "%"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{3}, questionIDs(t, decode(t, w)))

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions", map[string]interface{}{"searchTerm": "zzz"}),
		http.StatusNotFound, "Not Found")

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions?page=2", map[string]interface{}{"searchTerm": "title"}),
		http.StatusNotFound, "Not Found")
}

func TestCreateQuestionsBatch(t *testing.T) {
	store := newMemoryStore("Science", "Art")
	r := newTestRouter(store)

	w := doRequest(r, http.MethodPost, "/v1/questions/batch", map[string]interface{}{
		"questions": []map[string]interface{}{
			{"question": "Q1", "answer": "A1", "difficulty": 1, "category": 1},
			{"question": "Q2", "answer": "A2", "difficulty": 3, "category": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, []interface{}{float64(1), float64(2)}, resp["created_ids"])
	assert.Equal(t, float64(2), resp["total_questions"])

	w = doRequest(r, http.MethodPost, "/v1/questions/batch", map[string]interface{}{
		"questions": []map[string]interface{}{
			{"question": "Q3", "answer": "A3", "difficulty": 1, "category": 1},
			{"question": "Q4", "answer": "A4", "difficulty": 1, "category": 9},
		},
	})
	assertError(t, w, http.StatusUnprocessableEntity, "Cannot be processed")
	assert.Len(t, store.questions, 2, "Пакет с ошибкой не сохраняется частично")

	assertError(t, doRequest(r, http.MethodPost, "/v1/questions/batch", map[string]interface{}{"questions": []interface{}{}}),
		http.StatusBadRequest, "Bad Request")
}

// ============================================================================
// Викторина
// ============================================================================

func TestPlayQuiz_ReturnsUnseenQuestionOfCategory(t *testing.T) {
	store := newMemoryStore("Science", "Art")
	for i := 0; i < 5; i++ {
		store.add(fmt.Sprintf("science %d", i), "a", 1, 1)
		store.add(fmt.Sprintf("art %d", i), "a", 2, 1)
	}
	r := newTestRouter(store)

	// ID вопросов Art: 2, 4, 6, 8, 10
	previous := []uint{2, 4, 6}
	for i := 0; i < 20; i++ {
		w := doRequest(r, http.MethodPost, "/v1/quizzes", map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 2, "type": "Art"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		question := resp["question"].(map[string]interface{})

		assert.NotContains(t, previous, uint(question["id"].(float64)))
		assert.Equal(t, float64(2), question["category"])
	}
}

func TestPlayQuiz_AnyCategory(t *testing.T) {
	store := newMemoryStore("Science", "Art")
	store.add("s", "a", 1, 1)
	store.add("a", "a", 2, 1)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"previous_questions": []uint{1},
		"quiz_category":      map[string]interface{}{"id": 0},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["question"].(map[string]interface{})["id"])
}

func TestPlayQuiz_NoMoreQuestions(t *testing.T) {
	store := newMemoryStore("Science")
	store.add("q1", "a", 1, 1)
	store.add("q2", "a", 1, 1)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"previous_questions": []uint{1, 2},
		"quiz_category":      map[string]interface{}{"id": 1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "No more questions", resp["message"])
	assert.NotContains(t, resp, "question")
}

func TestPlayQuiz_NotFound(t *testing.T) {
	store := newMemoryStore("Science", "Art")
	store.add("q1", "a", 1, 1)
	store.add("q2", "a", 1, 1)

	// Пустая категория
	assertError(t, doRequest(newTestRouter(store), http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"previous_questions": []uint{},
		"quiz_category":      map[string]interface{}{"id": 2},
	}), http.StatusNotFound, "Not Found")

	// Лимит попыток исчерпан: источник всегда выбирает уже показанный вопрос
	alwaysFirst := quizmanager.NewRandomQuestionSelectorWithSource(quizmanager.DefaultConfig(), func(int) int { return 0 })
	assertError(t, doRequest(newTestRouterWithSelector(store, alwaysFirst), http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"previous_questions": []uint{1},
		"quiz_category":      map[string]interface{}{"id": 1},
	}), http.StatusNotFound, "Not Found")
}

func TestPlayQuiz_BadRequest(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	assertError(t, doRequest(r, http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"quiz_category": map[string]interface{}{"id": 1},
	}), http.StatusBadRequest, "Bad Request")

	assertError(t, doRequest(r, http.MethodPost, "/v1/quizzes", map[string]interface{}{
		"previous_questions": []uint{},
	}), http.StatusBadRequest, "Bad Request")
}

// ============================================================================
// Экспорт
// ============================================================================

func seedExportStore() *memoryStore {
	store := newMemoryStore("Science", "Art")
	store.add("What is H2O?", "Water", 1, 1)
	store.add("=HYPERLINK(\"x\")", "Injected, with comma", 2, 3)
	return store
}

func TestExportQuestions_CSV(t *testing.T) {
	w := doRequest(newTestRouter(seedExportStore()), http.MethodGet, "/v1/questions/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "CSV начинается с BOM")

	lines := strings.Split(strings.TrimSpace(string(body[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Question,Answer,Category ID,Category,Difficulty", lines[0])
	assert.Equal(t, "1,What is H2O?,Water,1,Science,1", lines[1])
	assert.Equal(t, `2,"'=HYPERLINK(""x"")","Injected, with comma",2,Art,3`, lines[2])
}

func TestExportQuestions_XLSX(t *testing.T) {
	w := doRequest(newTestRouter(seedExportStore()), http.MethodGet, "/v1/questions/export?format=xlsx", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Question", "Answer", "Category ID", "Category", "Difficulty"}, rows[0])
	assert.Equal(t, []string{"1", "What is H2O?", "Water", "1", "Science", "1"}, rows[1])
	assert.Equal(t, "'=HYPERLINK(\"x\")", rows[2][1])
}

func TestExportQuestions_UnknownFormat(t *testing.T) {
	assertError(t, doRequest(newTestRouter(seedExportStore()), http.MethodGet, "/v1/questions/export?format=pdf", nil),
		http.StatusBadRequest, "Bad Request")
}

// ============================================================================
// Маршрутизация, заголовки, служебные эндпоинты
// ============================================================================

func TestRouting_MethodNotAllowedAndNotFound(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	assertError(t, doRequest(r, http.MethodPatch, "/v1/questions", nil), http.StatusMethodNotAllowed, "Method not Allowed")
	assertError(t, doRequest(r, http.MethodGet, "/v1/quizzes", nil), http.StatusMethodNotAllowed, "Method not Allowed")
	assertError(t, doRequest(r, http.MethodPut, "/v1/questions/1", nil), http.StatusMethodNotAllowed, "Method not Allowed")
	assertError(t, doRequest(r, http.MethodGet, "/v1/unknown", nil), http.StatusNotFound, "Not Found")
	assertError(t, doRequest(r, http.MethodGet, "/questions", nil), http.StatusNotFound, "Not Found")
}

func TestRouting_LegacyHeadersOnEveryResponse(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	for _, w := range []*httptest.ResponseRecorder{
		doRequest(r, http.MethodGet, "/v1/categories", nil),
		doRequest(r, http.MethodGet, "/v1/unknown", nil),
		doRequest(r, http.MethodPatch, "/v1/questions", nil),
	} {
		assert.Equal(t, "Content-Type,Authorization,true", w.Header().Get("Allow-Control-Allow-Headers"))
		assert.Equal(t, "GET, POST, DELETE, OPTIONS", w.Header().Get("Allow-Control-Allow-Methods"))
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	}
}

func TestRouting_CORSPreflight(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	req := httptest.NewRequest(http.MethodOptions, "/v1/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(newMemoryStore("Science"))

	w := doRequest(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	doRequest(r, http.MethodGet, "/v1/categories", nil)
	w = doRequest(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/v1/categories"`)
}
