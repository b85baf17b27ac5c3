package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

// Task is the backend wire shape. All timestamps are epoch seconds;
// pk/sk are storage keys that leak through the API and get stripped
// before the task reaches GraphQL.
type Task struct {
	TaskID        string   `json:"taskId"`
	AccountID     string   `json:"accountId"`
	WorkOrderID   string   `json:"workOrderId"`
	ContactID     string   `json:"contactId"`
	LocationID    string   `json:"locationId"`
	LaborlinesID  []string `json:"laborlinesId"`
	Description   string   `json:"description"`
	Notes         []string `json:"notes"`
	Status        string   `json:"status"`
	EstimateHours *float64 `json:"estimateHours,omitempty"`
	ActualHours   *float64 `json:"actualHours,omitempty"`
	StartDate     *int64   `json:"startDate,omitempty"`
	EndDate       *int64   `json:"endDate,omitempty"`
	CreatedAt     int64    `json:"createdAt"`
	UpdatedAt     int64    `json:"updatedAt"`
	DeletedAt     *int64   `json:"deletedAt,omitempty"`
	PK            string   `json:"pk"`
	SK            string   `json:"sk"`
}

// TaskCreate carries the pk field the backend insists on; the resolver
// sets it to the account id.
type TaskCreate struct {
	PK            string   `json:"pk,omitempty"`
	TaskID        string   `json:"taskId,omitempty"`
	WorkOrderID   string   `json:"workOrderId"`
	ContactID     string   `json:"contactId"`
	LocationID    string   `json:"locationId"`
	LaborlinesID  []string `json:"laborlinesId,omitempty"`
	Description   string   `json:"description,omitempty"`
	Notes         []string `json:"notes,omitempty"`
	Status        string   `json:"status,omitempty"`
	EstimateHours *float64 `json:"estimateHours,omitempty"`
	ActualHours   *float64 `json:"actualHours,omitempty"`
	StartDate     *int64   `json:"startDate,omitempty"`
	EndDate       *int64   `json:"endDate,omitempty"`
}

type TaskUpdate struct {
	ContactID     *string  `json:"contactId,omitempty"`
	LocationID    *string  `json:"locationId,omitempty"`
	LaborlinesID  []string `json:"laborlinesId,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Notes         []string `json:"notes,omitempty"`
	Status        *string  `json:"status,omitempty"`
	EstimateHours *float64 `json:"estimateHours,omitempty"`
	ActualHours   *float64 `json:"actualHours,omitempty"`
	StartDate     *int64   `json:"startDate,omitempty"`
	EndDate       *int64   `json:"endDate,omitempty"`
}

type TaskPage struct {
	Items      []Task  `json:"items"`
	NextCursor *string `json:"nextCursor,omitempty"`
	Limit      int     `json:"limit"`
	Count      int     `json:"count"`
}

type taskErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details,omitempty"`
}

type TasksAPI struct {
	c *apiClient
}

func NewTasksAPI(baseURL, token string, timeout time.Duration) *TasksAPI {
	return &TasksAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *TasksAPI) GetTask(ctx context.Context, accountID, taskID string) (*Task, error) {
	var task Task
	err := s.c.do(ctx, http.MethodGet, "/tasks/"+pathSegment(accountID)+"/"+pathSegment(taskID), nil, nil, &task)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Task %s not found for account %s", taskID, accountID))
	}
	return &task, nil
}

func (s *TasksAPI) ListTasks(ctx context.Context, accountID string, limit int, cursor string) (*TaskPage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var page TaskPage
	if err := s.c.do(ctx, http.MethodGet, "/tasks/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err, fmt.Sprintf("Tasks not found for account %s", accountID))
	}
	return &page, nil
}

func (s *TasksAPI) CreateTask(ctx context.Context, accountID string, input TaskCreate) (*Task, error) {
	var task Task
	err := s.c.do(ctx, http.MethodPost, "/tasks/"+pathSegment(accountID), nil, input, &task)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return &task, nil
}

func (s *TasksAPI) UpdateTask(ctx context.Context, accountID, taskID string, input TaskUpdate) (*Task, error) {
	var task Task
	err := s.c.do(ctx, http.MethodPut, "/tasks/"+pathSegment(accountID)+"/"+pathSegment(taskID), nil, input, &task)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Task %s not found for account %s", taskID, accountID))
	}
	return &task, nil
}

func (s *TasksAPI) DeleteTask(ctx context.Context, accountID, taskID string) (bool, error) {
	err := s.c.do(ctx, http.MethodDelete, "/tasks/"+pathSegment(accountID)+"/"+pathSegment(taskID), nil, nil, nil)
	if err != nil {
		return false, s.translate(err, fmt.Sprintf("Task %s not found for account %s", taskID, accountID))
	}
	return true, nil
}

func (s *TasksAPI) translate(err error, notFoundMessage string) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	message := he.Error()
	var body taskErrorBody
	if he.decode(&body) && body.Message != "" {
		message = body.Message
		if len(body.Details) > 0 {
			parts := make([]string, 0, len(body.Details))
			for _, d := range body.Details {
				parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
			}
			message = fmt.Sprintf("%s (%s)", message, strings.Join(parts, ", "))
		}
	}

	switch he.Status {
	case http.StatusBadRequest:
		return utils.Validation(message)
	case http.StatusNotFound:
		if notFoundMessage != "" {
			return utils.NotFound(notFoundMessage)
		}
		return utils.NotFound(message)
	default:
		return utils.ServiceFailure(he.Status, message, he)
	}
}
