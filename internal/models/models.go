// Package models defines the data structures shared by the client and the reference server.
// It includes the wire payloads of the remote service contract, the client-side identity,
// and the server-side account record.
package models

// Credentials represents the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest represents the signup request payload.
// The client always sends IsStaff false; staff accounts are provisioned by the server operator.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsStaff  bool   `json:"is_staff"`
}

// User is the public view of an account as returned by the remote service.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsStaff  bool   `json:"is_staff"`
}

// LoginResponse is returned by login and signup.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Profile carries the reward bookkeeping of a user.
// It is returned by the profile endpoint and embedded as user_profile in task responses.
type Profile struct {
	User           User `json:"user"`
	PointsEarned   int  `json:"points_earned"`
	TasksCompleted int  `json:"tasksCompleted"`
}

// App is one entry of the downloadable application catalog.
type App struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Points      int    `json:"points"`
}

// AddAppRequest is the staff-only payload for adding a catalog entry.
type AddAppRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Points      int    `json:"points"`
}

// Task records one user's claim on one App. Screenshot is an opaque server-provided reference.
type Task struct {
	ID         int    `json:"id"`
	App        int    `json:"app"`
	Completed  bool   `json:"completed"`
	Screenshot string `json:"screenshot,omitempty"`
}

// TasksResponse is returned by the task listing endpoint.
type TasksResponse struct {
	Tasks       []Task  `json:"tasks"`
	UserProfile Profile `json:"user_profile"`
}

// DownloadRequest claims an app for the authenticated user.
type DownloadRequest struct {
	AppID int `json:"app_id"`
}

// DownloadResponse reports the points credited for a download.
// UserProfile is nil when the service answers with the points only.
type DownloadResponse struct {
	Message      string   `json:"message"`
	PointsEarned int      `json:"points_earned"`
	TotalPoints  int      `json:"total_points"`
	UserProfile  *Profile `json:"user_profile,omitempty"`
}

// UploadResponse is returned after a screenshot completes a task.
// UserProfile is nil when the service answers with a bare status.
type UploadResponse struct {
	Message     string   `json:"message"`
	Task        Task     `json:"task"`
	UserProfile *Profile `json:"user_profile,omitempty"`
}

// ErrorResponse represents a generic error response payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Account is the server-side user record. Password holds the plaintext only on the way in;
// storage keeps a bcrypt hash.
type Account struct {
	ID       int
	Username string
	Email    string
	Password string
	IsStaff  bool
}

// Public returns the wire representation of the account.
func (account *Account) Public() User {
	return User{ID: account.ID, Username: account.Username, Email: account.Email, IsStaff: account.IsStaff}
}
