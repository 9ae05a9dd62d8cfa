package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"appdownloader/internal/api"
	"appdownloader/internal/controller/mocks"
	"appdownloader/internal/models"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "tok"

var (
	alice = models.Identity{ID: 2, Username: "alice"}
	staff = models.Identity{ID: 1, Username: "admin", IsStaff: true}

	chatApp  = models.App{ID: 5, Name: "Chat", URL: "https://example.com/chat", Category: "Social Media", SubCategory: "Messaging", Points: 30}
	notesApp = models.App{ID: 6, Name: "Notes", URL: "https://example.com/notes", Category: "Productivity", SubCategory: "Note Taking", Points: 10}
)

type recordingRenderer struct {
	screens []Screen
	notices []Notice
}

func (r *recordingRenderer) Render(screen Screen) { r.screens = append(r.screens, screen) }
func (r *recordingRenderer) Notify(notice Notice) { r.notices = append(r.notices, notice) }

func (r *recordingRenderer) last() Screen {
	if len(r.screens) == 0 {
		return Screen{}
	}
	return r.screens[len(r.screens)-1]
}

func (r *recordingRenderer) lastNotice() Notice {
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

type stubPicker struct {
	file api.File
	err  error
}

func (p stubPicker) PickFile(context.Context) (api.File, error) { return p.file, p.err }

type fixture struct {
	ctrl   *Controller
	api    *mocks.MockAPI
	store  *session.MemoryStore
	screen *recordingRenderer
}

func newFixture(t *testing.T, picker FilePicker) *fixture {
	mockCtrl := gomock.NewController(t)
	f := &fixture{
		api:    mocks.NewMockAPI(mockCtrl),
		store:  session.NewMemoryStore(),
		screen: &recordingRenderer{},
	}
	f.ctrl = New(f.api, f.store, f.screen, picker, logger.Nop())
	return f
}

func profileOf(identity models.Identity) *models.Profile {
	return &models.Profile{
		User:           models.User{ID: identity.ID, Username: identity.Username, Email: identity.Email, IsStaff: identity.IsStaff},
		PointsEarned:   identity.PointsEarned,
		TasksCompleted: identity.TasksCompleted,
	}
}

// signIn puts the controller into an authenticated state without going through the API.
func (f *fixture) signIn(identity models.Identity) {
	id := identity
	f.ctrl.token = token
	f.ctrl.identity = &id
	f.store.Save(token, identity)
}

func (f *fixture) expectCatalog(apps []models.App, tasks []models.Task, profile models.Identity) {
	f.api.EXPECT().ListApps(gomock.Any(), token).Return(apps, nil)
	f.api.EXPECT().ListTasks(gomock.Any(), token).Return(&models.TasksResponse{Tasks: tasks, UserProfile: *profileOf(profile)}, nil)
}

func TestInitialStateIsUnresolved(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, ViewUnresolved, f.ctrl.View())
	_, ok := f.ctrl.Identity()
	assert.False(t, ok)
	assert.Empty(t, f.ctrl.Nav())
}

func TestRestoreSession(t *testing.T) {
	t.Run("Valid staff session goes to admin home", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.store.Save(token, staff))
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(profileOf(staff), nil)

		require.NoError(t, f.ctrl.RestoreSession(context.Background()))

		assert.Equal(t, ViewAdminHome, f.ctrl.View())
		assert.Equal(t, []View{ViewAdminHome, ViewAppList}, f.screen.last().Nav)
		for _, screen := range f.screen.screens {
			assert.NotEqual(t, ViewLoginForm, screen.View, "login must not be prompted")
		}
	})

	t.Run("Valid user session goes to user home and merges profile", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.store.Save(token, alice))
		fresher := alice
		fresher.Email = "alice@example.com"
		fresher.PointsEarned = 30
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(profileOf(fresher), nil)
		f.expectCatalog([]models.App{chatApp}, nil, fresher)

		require.NoError(t, f.ctrl.RestoreSession(context.Background()))

		assert.Equal(t, ViewUserHome, f.ctrl.View())
		identity, ok := f.ctrl.Identity()
		require.True(t, ok)
		assert.Equal(t, fresher, identity)
		_, stored, err := f.store.Load()
		require.NoError(t, err)
		assert.Equal(t, fresher, stored, "refreshed identity is re-persisted")
	})

	t.Run("Rejected token clears storage", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.store.Save(token, alice))
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(nil, &api.StatusError{StatusCode: http.StatusUnauthorized})

		err := f.ctrl.RestoreSession(context.Background())

		assert.ErrorIs(t, err, ErrSessionRejected)
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		_, ok := f.ctrl.Identity()
		assert.False(t, ok)
		_, _, err = f.store.Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
		assert.Nil(t, f.screen.last().Identity)
	})

	t.Run("Network failure clears storage", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.store.Save(token, alice))
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(nil, errors.New("connection refused"))

		assert.ErrorIs(t, f.ctrl.RestoreSession(context.Background()), ErrSessionRejected)
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("Nothing stored shows login", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.ctrl.RestoreSession(context.Background()))
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
	})

	t.Run("Token without identity is treated as logged out", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.Put(token, nil)

		require.NoError(t, f.ctrl.RestoreSession(context.Background()))
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Bad credentials stay on login", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.ctrl.ShowLogin())
		f.api.EXPECT().Login(gomock.Any(), "alice", "bad").
			Return(nil, &api.StatusError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"})

		err := f.ctrl.Login(context.Background(), "alice", "bad")

		require.Error(t, err)
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		_, ok := f.ctrl.Identity()
		assert.False(t, ok)
		assert.Equal(t, Notice{Level: LevelError, Message: msgInvalidCredentials}, f.screen.lastNotice())
		_, _, err = f.store.Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("Network failure stays on login", func(t *testing.T) {
		f := newFixture(t, nil)
		f.api.EXPECT().Login(gomock.Any(), "alice", "pw").Return(nil, errors.New("dial tcp: refused"))

		require.Error(t, f.ctrl.Login(context.Background(), "alice", "pw"))
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		assert.Equal(t, msgLoginFailed, f.screen.lastNotice().Message)
	})

	t.Run("Missing fields never reach the service", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.ErrorIs(t, f.ctrl.Login(context.Background(), " ", "pw"), ErrMissingCredentials)
		assert.ErrorIs(t, f.ctrl.Login(context.Background(), "alice", ""), ErrMissingCredentials)
	})

	t.Run("Success persists and shows role home", func(t *testing.T) {
		f := newFixture(t, nil)
		f.api.EXPECT().Login(gomock.Any(), "alice", "pw").
			Return(&models.LoginResponse{Token: token, User: models.User{ID: alice.ID, Username: alice.Username}}, nil)
		f.expectCatalog([]models.App{chatApp}, nil, alice)

		require.NoError(t, f.ctrl.Login(context.Background(), "alice", "pw"))

		assert.Equal(t, ViewUserHome, f.ctrl.View())
		storedToken, stored, err := f.store.Load()
		require.NoError(t, err)
		assert.Equal(t, token, storedToken)
		assert.Equal(t, "alice", stored.Username)
		assert.Equal(t, "alice", f.screen.last().Identity.Username)
	})

	t.Run("Staff lands on admin home", func(t *testing.T) {
		f := newFixture(t, nil)
		f.api.EXPECT().Login(gomock.Any(), "admin", "pw").
			Return(&models.LoginResponse{Token: token, User: models.User{ID: 1, Username: "admin", IsStaff: true}}, nil)

		require.NoError(t, f.ctrl.Login(context.Background(), "admin", "pw"))
		assert.Equal(t, ViewAdminHome, f.ctrl.View())
	})

	t.Run("Login during a session is refused", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		assert.ErrorIs(t, f.ctrl.Login(context.Background(), "bob", "pw"), ErrAlreadyAuthenticated)
	})
}

func TestSignup(t *testing.T) {
	t.Run("Success returns to login", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.ctrl.ShowSignup())
		assert.Equal(t, ViewSignupForm, f.ctrl.View())
		f.api.EXPECT().Signup(gomock.Any(), "bob", "pw").Return(nil)

		require.NoError(t, f.ctrl.Signup(context.Background(), "bob", "pw"))
		assert.Equal(t, ViewLoginForm, f.ctrl.View())
		assert.Equal(t, Notice{Level: LevelInfo, Message: msgSignupSucceeded}, f.screen.lastNotice())
		_, ok := f.ctrl.Identity()
		assert.False(t, ok)
	})

	t.Run("Failure stays on signup", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.ctrl.ShowSignup())
		f.api.EXPECT().Signup(gomock.Any(), "bob", "pw").Return(&api.StatusError{StatusCode: http.StatusBadRequest})

		require.Error(t, f.ctrl.Signup(context.Background(), "bob", "pw"))
		assert.Equal(t, ViewSignupForm, f.ctrl.View())
		assert.Equal(t, msgSignupFailed, f.screen.lastNotice().Message)
	})

	t.Run("Forms are only offered when logged out", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		assert.ErrorIs(t, f.ctrl.ShowSignup(), ErrAlreadyAuthenticated)
		assert.ErrorIs(t, f.ctrl.ShowLogin(), ErrAlreadyAuthenticated)
		assert.ErrorIs(t, f.ctrl.Signup(context.Background(), "bob", "pw"), ErrAlreadyAuthenticated)
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(alice)

	f.ctrl.Logout()
	first := f.screen.last()
	f.ctrl.Logout()
	second := f.screen.last()

	assert.Equal(t, ViewLoginForm, f.ctrl.View())
	assert.Equal(t, first, second)
	assert.Equal(t, Screen{View: ViewLoginForm}, second)
	_, _, err := f.store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestNavigate(t *testing.T) {
	t.Run("Logged out", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.ErrorIs(t, f.ctrl.Navigate(context.Background(), ViewTasks), ErrNotAuthenticated)
	})

	testCases := []struct {
		name     string
		identity models.Identity
		target   View
	}{
		{name: "Staff cannot reach tasks", identity: staff, target: ViewTasks},
		{name: "Staff cannot reach user home", identity: staff, target: ViewUserHome},
		{name: "User cannot reach admin home", identity: alice, target: ViewAdminHome},
		{name: "User cannot reach app list", identity: alice, target: ViewAppList},
		{name: "Forms are not navigation targets", identity: alice, target: ViewLoginForm},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.signIn(tc.identity)
			f.ctrl.view = HomeView(RoleOf(tc.identity))

			err := f.ctrl.Navigate(context.Background(), tc.target)
			assert.ErrorIs(t, err, ErrViewNotAllowed)
			assert.Equal(t, HomeView(RoleOf(tc.identity)), f.ctrl.View(), "state is unchanged")
		})
	}

	t.Run("Staff app list", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(staff)
		f.api.EXPECT().ListApps(gomock.Any(), token).Return([]models.App{chatApp, notesApp}, nil)

		require.NoError(t, f.ctrl.Navigate(context.Background(), ViewAppList))
		assert.Equal(t, []models.App{chatApp, notesApp}, f.screen.last().Apps)
		assert.Equal(t, ViewAppList, f.screen.last().View)
	})

	t.Run("App list failure shows placeholder", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(staff)
		f.api.EXPECT().ListApps(gomock.Any(), token).Return(nil, &api.StatusError{StatusCode: http.StatusInternalServerError})

		require.Error(t, f.ctrl.Navigate(context.Background(), ViewAppList))
		assert.Equal(t, msgAppListFailed, f.screen.last().Failure)
	})

	t.Run("Profile and points refresh first", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		fresher := alice
		fresher.PointsEarned = 45
		fresher.TasksCompleted = 2
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(profileOf(fresher), nil).Times(2)

		require.NoError(t, f.ctrl.Navigate(context.Background(), ViewProfile))
		assert.Equal(t, 45, f.screen.last().Identity.PointsEarned)
		require.NoError(t, f.ctrl.Navigate(context.Background(), ViewPoints))
		assert.Equal(t, ViewPoints, f.screen.last().View)
		assert.Equal(t, 2, f.screen.last().Identity.TasksCompleted)
	})

	t.Run("Profile failure shows placeholder and keeps session", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		f.api.EXPECT().GetProfile(gomock.Any(), token).Return(nil, errors.New("timeout"))

		require.Error(t, f.ctrl.Navigate(context.Background(), ViewProfile))
		assert.Equal(t, msgProfileFailed, f.screen.last().Failure)
		_, ok := f.ctrl.Identity()
		assert.True(t, ok)
	})
}

func TestDownloadThenTasks(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(alice)
	ctx := context.Background()

	credited := alice
	credited.PointsEarned = chatApp.Points
	f.api.EXPECT().DownloadApp(gomock.Any(), token, 5).Return(&models.DownloadResponse{
		PointsEarned: chatApp.Points,
		TotalPoints:  chatApp.Points,
		UserProfile:  profileOf(credited),
	}, nil)
	task := models.Task{ID: 11, App: 5}
	f.expectCatalog([]models.App{chatApp, notesApp}, []models.Task{task}, credited)

	require.NoError(t, f.ctrl.DownloadApp(ctx, 5))

	assert.Equal(t, ViewTasks, f.ctrl.View())
	assert.Equal(t, "App downloaded! You earned 30 points.", f.screen.notices[0].Message)
	assert.Equal(t, []TaskEntry{{Task: task, App: chatApp}}, f.screen.last().Tasks)

	f.expectCatalog([]models.App{chatApp, notesApp}, []models.Task{task}, credited)
	entries, err := f.ctrl.ListTasksWithApps(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].App.ID)

	f.expectCatalog([]models.App{chatApp, notesApp}, []models.Task{task}, credited)
	require.NoError(t, f.ctrl.Home(ctx))
	assert.Equal(t, []CatalogEntry{
		{App: chatApp, Downloaded: true},
		{App: notesApp, Downloaded: false},
	}, f.screen.last().Catalog, "no duplicate download is offered")
	assert.Equal(t, 30, f.screen.last().Identity.PointsEarned)
}

func TestMutationWithoutProfileKeepsIdentity(t *testing.T) {
	veteran := alice
	veteran.PointsEarned = 100
	veteran.TasksCompleted = 3
	file := api.File{Name: "shot.png", Content: strings.NewReader("png")}

	testCases := []struct {
		name   string
		mutate func(f *fixture) error
	}{
		{
			name: "Download",
			mutate: func(f *fixture) error {
				f.api.EXPECT().DownloadApp(gomock.Any(), token, 5).Return(&models.DownloadResponse{PointsEarned: 30}, nil)
				return f.ctrl.DownloadApp(context.Background(), 5)
			},
		},
		{
			name: "Upload",
			mutate: func(f *fixture) error {
				f.api.EXPECT().UploadScreenshot(gomock.Any(), token, 11, file).Return(&models.UploadResponse{}, nil)
				return f.ctrl.UploadScreenshot(context.Background(), 11, file)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.signIn(veteran)
			f.api.EXPECT().ListApps(gomock.Any(), token).Return(nil, &api.StatusError{StatusCode: http.StatusInternalServerError})
			f.api.EXPECT().ListTasks(gomock.Any(), token).Return(nil, &api.StatusError{StatusCode: http.StatusInternalServerError}).AnyTimes()

			require.Error(t, tc.mutate(f), "the follow-up tasks load fails")
			assert.Equal(t, msgTasksFailed, f.screen.last().Failure)

			identity, ok := f.ctrl.Identity()
			require.True(t, ok)
			assert.Equal(t, 100, identity.PointsEarned)
			assert.Equal(t, 3, identity.TasksCompleted)

			_, stored, err := f.store.Load()
			require.NoError(t, err)
			assert.Equal(t, 100, stored.PointsEarned)
			assert.Equal(t, 3, stored.TasksCompleted)
		})
	}
}

func TestDownloadTwiceIsAlreadyDownloaded(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(alice)
	f.api.EXPECT().DownloadApp(gomock.Any(), token, 5).
		Return(nil, &api.StatusError{StatusCode: http.StatusBadRequest, Message: "You have already downloaded this app"})

	err := f.ctrl.DownloadApp(context.Background(), 5)

	assert.ErrorIs(t, err, ErrAlreadyDownloaded)
	assert.Equal(t, Notice{Level: LevelError, Message: msgAlreadyDownloaded}, f.screen.lastNotice())
	_, ok := f.ctrl.Identity()
	assert.True(t, ok)
}

func TestDownloadNetworkFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.signIn(alice)
	f.api.EXPECT().DownloadApp(gomock.Any(), token, 5).Return(nil, errors.New("reset by peer"))

	err := f.ctrl.DownloadApp(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAlreadyDownloaded))
	assert.Equal(t, msgDownloadFailed, f.screen.lastNotice().Message)
}

func TestListTasksWithApps(t *testing.T) {
	t.Run("Deleted app gets a placeholder", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		tasks := []models.Task{{ID: 1, App: 5, Completed: true, Screenshot: "/media/screenshots/a.png"}, {ID: 2, App: 99}}
		f.expectCatalog([]models.App{chatApp}, tasks, alice)

		require.NoError(t, f.ctrl.Navigate(context.Background(), ViewTasks))

		entries := f.screen.last().Tasks
		require.Len(t, entries, 2)
		assert.Equal(t, chatApp, entries[0].App)
		assert.Equal(t, unknownAppName, entries[1].App.Name)
		assert.Equal(t, 0, entries[1].App.Points)
		assert.Empty(t, f.screen.last().Failure)
	})

	t.Run("Either read failing fails the view", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		f.api.EXPECT().ListApps(gomock.Any(), token).Return(nil, &api.StatusError{StatusCode: http.StatusBadGateway})
		f.api.EXPECT().ListTasks(gomock.Any(), token).Return(&models.TasksResponse{}, nil).AnyTimes()

		require.Error(t, f.ctrl.Navigate(context.Background(), ViewTasks))
		assert.Equal(t, msgTasksFailed, f.screen.last().Failure)
		assert.Empty(t, f.screen.last().Tasks)
	})

	t.Run("Task profile is merged", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		fresher := alice
		fresher.TasksCompleted = 4
		f.expectCatalog(nil, nil, fresher)

		_, err := f.ctrl.ListTasksWithApps(context.Background())
		require.NoError(t, err)
		identity, _ := f.ctrl.Identity()
		assert.Equal(t, 4, identity.TasksCompleted)
	})
}

func TestUploadScreenshot(t *testing.T) {
	file := api.File{Name: "shot.png", Content: strings.NewReader("png")}

	t.Run("Success refreshes tasks", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		done := models.Task{ID: 11, App: 5, Completed: true, Screenshot: "/media/screenshots/x.png"}
		f.api.EXPECT().UploadScreenshot(gomock.Any(), token, 11, file).
			Return(&models.UploadResponse{Task: done, UserProfile: profileOf(alice)}, nil)
		f.expectCatalog([]models.App{chatApp}, []models.Task{done}, alice)

		require.NoError(t, f.ctrl.UploadScreenshot(context.Background(), 11, file))
		assert.Equal(t, ViewTasks, f.ctrl.View())
		assert.Equal(t, msgUploaded, f.screen.notices[0].Message)
		assert.True(t, f.screen.last().Tasks[0].Task.Completed)
	})

	t.Run("Server message is surfaced", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		f.api.EXPECT().UploadScreenshot(gomock.Any(), token, 11, file).
			Return(nil, &api.StatusError{StatusCode: http.StatusBadRequest, Message: "No screenshot provided"})

		require.Error(t, f.ctrl.UploadScreenshot(context.Background(), 11, file))
		assert.Equal(t, "Failed to upload screenshot: No screenshot provided", f.screen.lastNotice().Message)
	})

	t.Run("Missing server message falls back", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		f.api.EXPECT().UploadScreenshot(gomock.Any(), token, 11, file).
			Return(nil, &api.StatusError{StatusCode: http.StatusInternalServerError})

		require.Error(t, f.ctrl.UploadScreenshot(context.Background(), 11, file))
		assert.Equal(t, "Failed to upload screenshot: Unknown error", f.screen.lastNotice().Message)
	})

	t.Run("Cancelled picker does nothing", func(t *testing.T) {
		f := newFixture(t, stubPicker{err: ErrPickCancelled})
		f.signIn(alice)

		assert.NoError(t, f.ctrl.PromptScreenshot(context.Background(), 11))
		assert.Empty(t, f.screen.notices)
	})

	t.Run("Picked file is uploaded", func(t *testing.T) {
		f := newFixture(t, stubPicker{file: file})
		f.signIn(alice)
		f.api.EXPECT().UploadScreenshot(gomock.Any(), token, 11, file).
			Return(nil, &api.StatusError{StatusCode: http.StatusNotFound, Message: "task not found"})

		assert.Error(t, f.ctrl.PromptScreenshot(context.Background(), 11))
		assert.Equal(t, "Failed to upload screenshot: task not found", f.screen.lastNotice().Message)
	})

	t.Run("No picker configured", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		assert.ErrorIs(t, f.ctrl.PromptScreenshot(context.Background(), 11), ErrNoPicker)
	})
}

func TestAddApp(t *testing.T) {
	req := models.AddAppRequest{Name: "Chat", URL: "https://example.com/chat", Category: "Social Media", SubCategory: "Messaging", Points: 30}

	t.Run("Staff only", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(alice)
		assert.ErrorIs(t, f.ctrl.AddApp(context.Background(), req), ErrStaffOnly)
	})

	t.Run("Invalid category is rejected locally", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(staff)
		bad := req
		bad.SubCategory = "Games"
		assert.ErrorIs(t, f.ctrl.AddApp(context.Background(), bad), models.ErrUnknownSubCategory)
		assert.Equal(t, LevelError, f.screen.lastNotice().Level)
	})

	t.Run("Success shows admin home", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(staff)
		f.api.EXPECT().AddApp(gomock.Any(), token, req).Return(nil)

		require.NoError(t, f.ctrl.AddApp(context.Background(), req))
		assert.Equal(t, ViewAdminHome, f.ctrl.View())
		assert.Equal(t, msgAppAdded, f.screen.lastNotice().Message)
	})

	t.Run("Service failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.signIn(staff)
		f.api.EXPECT().AddApp(gomock.Any(), token, req).Return(&api.StatusError{StatusCode: http.StatusForbidden})

		require.Error(t, f.ctrl.AddApp(context.Background(), req))
		assert.Equal(t, msgAddAppFailed, f.screen.lastNotice().Message)
	})
}

func TestParseView(t *testing.T) {
	for view, name := range viewNames {
		parsed, err := ParseView(name)
		require.NoError(t, err)
		assert.Equal(t, view, parsed)
	}
	_, err := ParseView("settings")
	assert.Error(t, err)
}
