//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	appservice "taskboard/internal/app/service"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const translationFolder = "../../../../pkg/translator/translation"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  translationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()
	s.seedUsers()

	taskRepository := dbadapter.NewTaskRepository(s.DB)
	userRepository := dbadapter.NewUserRepository(s.DB)
	notificationRepository := dbadapter.NewNotificationRepository(s.DB)

	clock := appservice.RealClock{}
	notifier := appservice.NewNotifier(notificationRepository, clock)
	taskService := appservice.NewTaskService(taskRepository, userRepository, notifier, clock)
	notificationService := appservice.NewNotificationService(notificationRepository)
	statsService := appservice.NewStatsService(taskRepository, time.UTC, clock)

	router := gin.New()
	httpadapter.RegisterRoutes(
		router,
		userRepository,
		handlers.NewHealthHandler(s.DB),
		handlers.NewTaskHandler(taskService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewStatsHandler(statsService),
	)
	s.router = router
}

func (s *TasksIntegrationSuite) seedUsers() {
	_, err := s.DB.Exec(`
INSERT INTO users (id, name, role, active) VALUES
	(1, 'Alberts', 'admin', TRUE),
	(2, 'Dace', 'manager', TRUE),
	(3, 'Karlis', 'mechanic', TRUE),
	(4, 'Olga', 'operator', TRUE),
	(5, 'Gone', 'mechanic', FALSE)
`)
	s.Require().NoError(err)
}

func (s *TasksIntegrationSuite) do(method, path, actorID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) createTask(actorID, body string) dto.TaskItem {
	rec := s.do(http.MethodPost, "/api/tasks", actorID, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *TasksIntegrationSuite) TestCreateTask_PersistsDefaults() {
	got := s.createTask("2", `{
		"title":"Replace hydraulic hose",
		"category":"maintenance",
		"location":"bay 2",
		"assigned_to":3
	}`)

	s.Require().NotZero(got.ID)
	s.Require().Equal("Replace hydraulic hose", got.Title)
	s.Require().Equal("pending", got.Status)
	s.Require().Equal("medium", got.Priority)
	s.Require().Equal(0, got.Progress)
	s.Require().Equal(uint64(2), got.AssignedBy)
	s.Require().NotNil(got.AssignedTo)
	s.Require().Equal(uint64(3), *got.AssignedTo)
	s.Require().Equal(int64(1), got.Version)

	var row struct {
		Status  string `db:"status"`
		Version int64  `db:"version"`
	}
	s.Require().NoError(s.DB.Get(&row, "SELECT status, version FROM tasks WHERE id = ?", got.ID))
	s.Require().Equal("pending", row.Status)
	s.Require().Equal(int64(1), row.Version)
}

func (s *TasksIntegrationSuite) TestCreateTask_NotifiesAssignee() {
	got := s.createTask("2", `{"title":"Inspect lift chains","assigned_to":3}`)

	rec := s.do(http.MethodGet, "/api/notifications", "3", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var notifications []dto.NotificationItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &notifications))
	s.Require().Len(notifications, 1)
	s.Require().Equal("assigned", notifications[0].Kind)
	s.Require().Equal(got.ID, notifications[0].TaskID)
	s.Require().False(notifications[0].IsRead)
}

func (s *TasksIntegrationSuite) TestCreateTask_ForbiddenForMechanic() {
	rec := s.do(http.MethodPost, "/api/tasks", "3", `{"title":"Nope"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusForbidden, got.ErrDetails.Code)
}

func (s *TasksIntegrationSuite) TestCreateTask_RejectsInactiveAssignee() {
	rec := s.do(http.MethodPost, "/api/tasks", "2", `{"title":"Oil change","assigned_to":5}`)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *TasksIntegrationSuite) TestUnknownActor_Unauthorized() {
	rec := s.do(http.MethodGet, "/api/tasks", "999", "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TasksIntegrationSuite) TestStatusFlow_AssigneeCompletesTask() {
	created := s.createTask("2", `{"title":"Grease the crane","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"in_progress","version":1}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var inProgress dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &inProgress))
	s.Require().Equal("in_progress", inProgress.Status)
	s.Require().Equal(int64(2), inProgress.Version)

	rec = s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"completed","version":2}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var completed dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &completed))
	s.Require().Equal("completed", completed.Status)
	s.Require().Equal(100, completed.Progress)
	s.Require().NotNil(completed.CompletedDate)
	s.Require().Equal(int64(3), completed.Version)
}

func (s *TasksIntegrationSuite) TestStatusFlow_StaleVersionConflicts() {
	created := s.createTask("2", `{"title":"Swap brake pads","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"in_progress","version":1}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	// Replay with the original version: the row has moved on.
	rec = s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"on_hold","version":1}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(http.StatusConflict, got.ErrDetails.Code)
}

func (s *TasksIntegrationSuite) TestStatusFlow_AssigneeCannotCancel() {
	created := s.createTask("2", `{"title":"Weld the frame","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"cancelled","version":1}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)
}

func (s *TasksIntegrationSuite) TestStatusFlow_InvalidTransition() {
	created := s.createTask("2", `{"title":"Paint the gate","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskStatusPath(created.ID), "2", `{"status":"completed","version":1}`)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *TasksIntegrationSuite) TestReassign_NotifiesBothSides() {
	created := s.createTask("2", `{"title":"Check coolant level","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskAssigneePath(created.ID), "2", `{"assignee_id":4}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotNil(got.AssignedTo)
	s.Require().Equal(uint64(4), *got.AssignedTo)
	s.Require().Equal(int64(2), got.Version)

	countRec := s.do(http.MethodGet, "/api/notifications/count", "3", "")
	s.Require().Equal(http.StatusOK, countRec.Code)
	var oldAssignee dto.UnreadCountItem
	s.Require().NoError(json.Unmarshal(countRec.Body.Bytes(), &oldAssignee))
	// assigned on create, unassigned on reassignment
	s.Require().Equal(2, oldAssignee.Count)

	countRec = s.do(http.MethodGet, "/api/notifications/count", "4", "")
	s.Require().Equal(http.StatusOK, countRec.Code)
	var newAssignee dto.UnreadCountItem
	s.Require().NoError(json.Unmarshal(countRec.Body.Bytes(), &newAssignee))
	s.Require().Equal(1, newAssignee.Count)
}

func (s *TasksIntegrationSuite) TestListTasks_FiltersByStatusAndAssignee() {
	s.createTask("2", `{"title":"Task A","assigned_to":3}`)
	b := s.createTask("2", `{"title":"Task B","assigned_to":4}`)
	s.createTask("2", `{"title":"Task C"}`)

	rec := s.do(http.MethodPut, taskStatusPath(b.ID), "4", `{"status":"in_progress","version":1}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks?status=in_progress", "2", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Require().Equal(b.ID, got[0].ID)

	rec = s.do(http.MethodGet, "/api/tasks?assignee=3", "2", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	got = nil
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Require().Equal("Task A", got[0].Title)
}

func (s *TasksIntegrationSuite) TestUpdateTask_PatchesProvidedFields() {
	created := s.createTask("2", `{"title":"Tighten bolts","assigned_to":3}`)

	rec := s.do(http.MethodPatch, taskPath(created.ID), "2", `{"priority":"urgent","location":"bay 7"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("urgent", got.Priority)
	s.Require().Equal("bay 7", got.Location)
	s.Require().Equal("Tighten bolts", got.Title)
}

func (s *TasksIntegrationSuite) TestUserStats_CountsCompletedToday() {
	created := s.createTask("2", `{"title":"Flush radiator","assigned_to":3}`)

	rec := s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"in_progress","version":1}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodPut, taskStatusPath(created.ID), "3", `{"status":"completed","version":2}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/3/stats", "2", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.StatsItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(uint64(3), got.UserID)
	s.Require().Equal(1, got.Total)
	s.Require().Equal(1, got.ByStatus["completed"])
	s.Require().Equal(1, got.CompletedToday)
}

func (s *TasksIntegrationSuite) TestMarkNotificationRead() {
	s.createTask("2", `{"title":"Calibrate sensors","assigned_to":3}`)

	rec := s.do(http.MethodGet, "/api/notifications", "3", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var notifications []dto.NotificationItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &notifications))
	s.Require().Len(notifications, 1)

	rec = s.do(http.MethodPost, "/api/notifications/"+notifications[0].ID+"/read", "3", "")
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/notifications/count", "3", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var count dto.UnreadCountItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &count))
	s.Require().Equal(0, count.Count)
}

func taskPath(id uint64) string {
	return "/api/tasks/" + strconv.FormatUint(id, 10)
}

func taskStatusPath(id uint64) string {
	return taskPath(id) + "/status"
}

func taskAssigneePath(id uint64) string {
	return taskPath(id) + "/assignee"
}
