package event

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(store *mockEventStore, history *mockHistoryRecorder, notifications *mockFanout) *Service {
	return NewService(slog.New(slog.DiscardHandler), store, history, notifications)
}

func memberOf(projectId uint) *model.User {
	return &model.User{
		ID:       7,
		Username: "ada",
		Projects: []model.Project{{ID: projectId}},
	}
}

func adminOf(projectId uint) *model.User {
	return &model.User{
		ID:            8,
		Username:      "grace",
		AdminProjects: []model.Project{{ID: projectId}},
	}
}

func TestService_Create(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ProjectID: 1, MapID: 2, Title: "Broken scaffold", Description: "ping @grace"}
	store.
		On("Create", mock.Anything, event).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.Event)
			e.ID = 42
			e.Status = model.EventStatusOpen
		}).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionCreate, "", model.EventStatusOpen, map[string]any(nil)).
		Return(nil)
	notifications.
		On("AdminBroadcast", mock.Anything, actor, event, "created the event").
		Return(nil)
	notifications.
		On("MentionNotifications", mock.Anything, actor, event, (*model.Comment)(nil), "ping @grace").
		Return(nil)
	service := newTestService(store, history, notifications)

	created, err := service.Create(context.Background(), actor, event)

	require.NoError(t, err)
	assert.Equal(t, uint(42), created.ID)
	assert.Equal(t, actor.ID, created.CreatedByID)
	store.AssertExpectations(t)
	history.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestService_Create_NotAMember(t *testing.T) {
	store := &mockEventStore{}
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})
	event := &model.Event{ProjectID: 99, MapID: 2, Title: "Broken scaffold"}

	_, err := service.Create(context.Background(), memberOf(1), event)

	require.Error(t, err)
	assert.True(t, errdef.IsForbidden(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ValidationErrorPassesThrough(t *testing.T) {
	store := &mockEventStore{}
	actor := memberOf(1)
	event := &model.Event{ProjectID: 1, MapID: 2}
	store.
		On("Create", mock.Anything, event).
		Return(errdef.NewBadRequest("event title is required"))
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	_, err := service.Create(context.Background(), actor, event)

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
	assert.False(t, errdef.IsPersistence(err))
}

func TestService_Create_StoreErrorBecomesPersistence(t *testing.T) {
	store := &mockEventStore{}
	actor := memberOf(1)
	event := &model.Event{ProjectID: 1, MapID: 2, Title: "Broken scaffold"}
	store.
		On("Create", mock.Anything, event).
		Return(errors.New("connection refused"))
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	_, err := service.Create(context.Background(), actor, event)

	require.Error(t, err)
	assert.True(t, errdef.IsPersistence(err))
}

func TestService_Create_SideEffectFailuresDoNotFailTheCall(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ProjectID: 1, MapID: 2, Title: "Broken scaffold", Description: "cc @grace"}
	store.
		On("Create", mock.Anything, event).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.Event)
			e.ID = 42
			e.Status = model.EventStatusOpen
		}).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionCreate, "", model.EventStatusOpen, map[string]any(nil)).
		Return(errors.New("audit store down"))
	notifications.
		On("AdminBroadcast", mock.Anything, actor, event, "created the event").
		Return(errors.New("notification store down"))
	notifications.
		On("MentionNotifications", mock.Anything, actor, event, (*model.Comment)(nil), "cc @grace").
		Return(errors.New("notification store down"))
	service := newTestService(store, history, notifications)

	created, err := service.Create(context.Background(), actor, event)

	require.NoError(t, err)
	assert.Equal(t, uint(42), created.ID)
	history.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestService_Update_StatusChangeRecordsHistory(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ID: 42, ProjectID: 1, CreatedByID: 3, Status: model.EventStatusOpen}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	store.
		On("Save", mock.Anything, event).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionStatusChange, model.EventStatusOpen, model.EventStatusInProgress, map[string]any(nil)).
		Return(nil).
		Once()
	notifications.
		On("OwnerNotification", mock.Anything, actor, event, `changed the status to "in-progress"`).
		Return(nil)
	notifications.
		On("AdminBroadcast", mock.Anything, actor, event, `changed the status to "in-progress"`).
		Return(nil)
	service := newTestService(store, history, notifications)

	newStatus := model.EventStatusInProgress
	updated, err := service.Update(context.Background(), actor, 42, UpdateEvent{Status: &newStatus})

	require.NoError(t, err)
	assert.Equal(t, model.EventStatusInProgress, updated.Status)
	history.AssertExpectations(t)
	history.AssertNumberOfCalls(t, "Record", 1)
	notifications.AssertExpectations(t)
}

func TestService_Update_CloseRequiresAdmin(t *testing.T) {
	store := &mockEventStore{}
	event := &model.Event{ID: 42, ProjectID: 1, Status: model.EventStatusResolved}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	newStatus := model.EventStatusClosed
	_, err := service.Update(context.Background(), memberOf(1), 42, UpdateEvent{Status: &newStatus})

	require.Error(t, err)
	assert.True(t, errdef.IsForbidden(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update_ReopenClosedRequiresAdmin(t *testing.T) {
	store := &mockEventStore{}
	event := &model.Event{ID: 42, ProjectID: 1, Status: model.EventStatusClosed}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	newStatus := model.EventStatusOpen
	_, err := service.Update(context.Background(), memberOf(1), 42, UpdateEvent{Status: &newStatus})

	require.Error(t, err)
	assert.True(t, errdef.IsForbidden(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update_AdminCanCloseAndReopen(t *testing.T) {
	actor := adminOf(1)

	for _, tt := range []struct {
		name string
		from string
		to   string
	}{
		{"close", model.EventStatusResolved, model.EventStatusClosed},
		{"reopen", model.EventStatusClosed, model.EventStatusOpen},
	} {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockEventStore{}
			history := &mockHistoryRecorder{}
			notifications := &mockFanout{}
			event := &model.Event{ID: 42, ProjectID: 1, CreatedByID: 3, Status: tt.from}
			store.
				On("FindById", mock.Anything, uint(42)).
				Return(event, nil)
			store.
				On("Save", mock.Anything, event).
				Return(nil)
			history.
				On("Record", mock.Anything, uint(42), actor.ID, model.ActionStatusChange, tt.from, tt.to, map[string]any(nil)).
				Return(nil)
			notifications.
				On("OwnerNotification", mock.Anything, actor, event, mock.Anything).
				Return(nil)
			notifications.
				On("AdminBroadcast", mock.Anything, actor, event, mock.Anything).
				Return(nil)
			service := newTestService(store, history, notifications)

			newStatus := tt.to
			updated, err := service.Update(context.Background(), actor, 42, UpdateEvent{Status: &newStatus})

			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			history.AssertExpectations(t)
		})
	}
}

func TestService_Update_NoChangeIsANoOp(t *testing.T) {
	store := &mockEventStore{}
	event := &model.Event{ID: 42, ProjectID: 1, Status: model.EventStatusOpen, Title: "Broken scaffold"}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	sameTitle := "Broken scaffold"
	updated, err := service.Update(context.Background(), memberOf(1), 42, UpdateEvent{Title: &sameTitle})

	require.NoError(t, err)
	assert.Equal(t, event, updated)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update_EditRecordsChangedFields(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ID: 42, ProjectID: 1, CreatedByID: 3, Status: model.EventStatusOpen, Title: "Broken scaffold"}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	store.
		On("Save", mock.Anything, event).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionEdit, "", "", map[string]any{"fields": []string{"title", "description"}}).
		Return(nil)
	notifications.
		On("OwnerNotification", mock.Anything, actor, event, "edited the event").
		Return(nil)
	notifications.
		On("AdminBroadcast", mock.Anything, actor, event, "edited the event").
		Return(nil)
	notifications.
		On("MentionNotifications", mock.Anything, actor, event, (*model.Comment)(nil), "now with @grace on it").
		Return(nil)
	service := newTestService(store, history, notifications)

	title := "Collapsed scaffold"
	description := "now with @grace on it"
	_, err := service.Update(context.Background(), actor, 42, UpdateEvent{Title: &title, Description: &description})

	require.NoError(t, err)
	history.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	store := &mockEventStore{}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(nil, errdef.NewNotFound("failed to find event with id 42"))
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	_, err := service.Update(context.Background(), memberOf(1), 42, UpdateEvent{})

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_Delete(t *testing.T) {
	store := &mockEventStore{}
	event := &model.Event{ID: 42, ProjectID: 1}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	store.
		On("Delete", mock.Anything, uint(42)).
		Return(nil)
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	err := service.Delete(context.Background(), memberOf(1), 42)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestService_Delete_NotAMember(t *testing.T) {
	store := &mockEventStore{}
	event := &model.Event{ID: 42, ProjectID: 99}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	service := newTestService(store, &mockHistoryRecorder{}, &mockFanout{})

	err := service.Delete(context.Background(), memberOf(1), 42)

	require.Error(t, err)
	assert.True(t, errdef.IsForbidden(err))
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_AddComment(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ID: 42, ProjectID: 1, CreatedByID: 3}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	store.
		On("CreateComment", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			comment := args.Get(1).(*model.Comment)
			comment.ID = 9
		}).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionComment, "", "looks bad, @grace", map[string]any(nil)).
		Return(nil)
	notifications.
		On("CommentNotification", mock.Anything, actor, event, mock.Anything).
		Return(nil)
	notifications.
		On("MentionNotifications", mock.Anything, actor, event, mock.Anything, "looks bad, @grace").
		Return(nil)
	service := newTestService(store, history, notifications)

	comment, err := service.AddComment(context.Background(), actor, 42, "looks bad, @grace")

	require.NoError(t, err)
	assert.Equal(t, uint(9), comment.ID)
	assert.Equal(t, uint(42), comment.EventID)
	assert.Equal(t, actor.ID, comment.UserID)
	store.AssertExpectations(t)
	history.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestService_AddComment_SideEffectFailuresDoNotFailTheCall(t *testing.T) {
	store := &mockEventStore{}
	history := &mockHistoryRecorder{}
	notifications := &mockFanout{}
	actor := memberOf(1)
	event := &model.Event{ID: 42, ProjectID: 1, CreatedByID: 3}
	store.
		On("FindById", mock.Anything, uint(42)).
		Return(event, nil)
	store.
		On("CreateComment", mock.Anything, mock.Anything).
		Return(nil)
	history.
		On("Record", mock.Anything, uint(42), actor.ID, model.ActionComment, "", "noted", map[string]any(nil)).
		Return(errors.New("audit store down"))
	notifications.
		On("CommentNotification", mock.Anything, actor, event, mock.Anything).
		Return(errors.New("notification store down"))
	notifications.
		On("MentionNotifications", mock.Anything, actor, event, mock.Anything, "noted").
		Return(errors.New("notification store down"))
	service := newTestService(store, history, notifications)

	comment, err := service.AddComment(context.Background(), actor, 42, "noted")

	require.NoError(t, err)
	assert.NotNil(t, comment)
}

type mockEventStore struct{ mock.Mock }

func (m *mockEventStore) Create(ctx context.Context, event *model.Event) error {
	called := m.Called(ctx, event)
	return called.Error(0)
}

func (m *mockEventStore) FindById(ctx context.Context, id uint) (*model.Event, error) {
	called := m.Called(ctx, id)
	event, ok := called.Get(0).(*model.Event)
	if !ok {
		return nil, called.Error(1)
	}
	return event, called.Error(1)
}

func (m *mockEventStore) FindByProject(ctx context.Context, projectId uint, skip, limit int) ([]*model.Event, error) {
	called := m.Called(ctx, projectId, skip, limit)
	return called.Get(0).([]*model.Event), called.Error(1)
}

func (m *mockEventStore) Save(ctx context.Context, event *model.Event) error {
	called := m.Called(ctx, event)
	return called.Error(0)
}

func (m *mockEventStore) Delete(ctx context.Context, id uint) error {
	called := m.Called(ctx, id)
	return called.Error(0)
}

func (m *mockEventStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	called := m.Called(ctx, comment)
	return called.Error(0)
}

type mockHistoryRecorder struct{ mock.Mock }

func (m *mockHistoryRecorder) Record(ctx context.Context, eventId, actorId uint, actionType, previousValue, newValue string, additionalData map[string]any) error {
	called := m.Called(ctx, eventId, actorId, actionType, previousValue, newValue, additionalData)
	return called.Error(0)
}

type mockFanout struct{ mock.Mock }

func (m *mockFanout) MentionNotifications(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment, text string) error {
	called := m.Called(ctx, actor, event, comment, text)
	return called.Error(0)
}

func (m *mockFanout) OwnerNotification(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error {
	called := m.Called(ctx, actor, event, actionDescription)
	return called.Error(0)
}

func (m *mockFanout) AdminBroadcast(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error {
	called := m.Called(ctx, actor, event, actionDescription)
	return called.Error(0)
}

func (m *mockFanout) CommentNotification(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment) error {
	called := m.Called(ctx, actor, event, comment)
	return called.Error(0)
}
