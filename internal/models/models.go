package models

import "time"

// Auth
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Organizations
type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type JoinOrganizationRequest struct {
	InviteKey string `json:"inviteKey"`
}

type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	InviteKey string    `json:"inviteKey,omitempty"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

type MemberResponse struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Channels
type CreateChannelRequest struct {
	Name string `json:"name"`
}

type ChannelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Chat messages
type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	ChannelID string    `json:"channelId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Body      string    `json:"body"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Timers
type StartTimerRequest struct {
	TaskID      *string `json:"taskId,omitempty"`
	Description string  `json:"description"`
}

type TimerResponse struct {
	ID          string     `json:"id"`
	TaskID      *string    `json:"taskId,omitempty"`
	Description string     `json:"description"`
	Running     bool       `json:"running"`
	StartedAt   time.Time  `json:"startedAt"`
	StoppedAt   *time.Time `json:"stoppedAt,omitempty"`
	DurationMS  int64      `json:"durationMs"`
	Finalized   bool       `json:"finalized"`
}

// Tasks
type CreateTaskRequest struct {
	Title      string  `json:"title"`
	AssigneeID *string `json:"assigneeId,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type TaskResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	AssigneeID *string   `json:"assigneeId,omitempty"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Activity feed
type ActivityResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
