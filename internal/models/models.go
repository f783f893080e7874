package models

import "time"

// Role describes what a member is allowed to do inside a workspace.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

// Workspace is the root of the containment tree. Every space, folder, list,
// task and custom field is reachable from exactly one workspace.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Space is a top level container inside a workspace. It holds folders,
// folderless lists and its own status set.
type Space struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsFavorite  bool      `json:"is_favorite"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Folder groups lists inside a space.
type Folder struct {
	ID         string    `json:"id"`
	SpaceID    string    `json:"space_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	IsFavorite bool      `json:"is_favorite"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// List owns tasks and custom field definitions. It sits either directly
// under a space (FolderID nil) or inside a folder of that same space.
type List struct {
	ID         string    `json:"id"`
	SpaceID    string    `json:"space_id"`
	FolderID   *string   `json:"folder_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	IsFavorite bool      `json:"is_favorite"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Status is one entry of a scope's ordered status set. Exactly one of
// SpaceID / ListID is set.
type Status struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Icon     string         `json:"icon,omitempty"`
	Category StatusCategory `json:"category"`
	Order    int            `json:"order"`
	SpaceID  *string        `json:"space_id,omitempty"`
	ListID   *string        `json:"list_id,omitempty"`
}

// Task is a single work item. ParentID points at another task of the same
// list when the task is a subtask; one level of nesting is used in practice.
type Task struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Comment is a plain text note attached to a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomField is a field definition scoped to a list.
type CustomField struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        FieldType  `json:"type"`
	Options     string     `json:"options,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Required    bool       `json:"required"`
	Pinned      bool       `json:"pinned"`
	HideEmpty   bool       `json:"hide_empty"`
	Visibility  Visibility `json:"visibility"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CustomFieldValue stores one value per (task, field) pair. Values are kept
// as raw strings and interpreted against the field's current type at read
// time; the store never coerces them.
type CustomFieldValue struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	FieldID   string    `json:"field_id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Visibility restricts who sees a custom field column.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityLimited Visibility = "limited"
	VisibilityPrivate Visibility = "private"
)

// ValidVisibilities enumerates the accepted visibility values.
var ValidVisibilities = map[Visibility]struct{}{
	VisibilityAll:     {},
	VisibilityLimited: {},
	VisibilityPrivate: {},
}

// ListNode is a list with its effective status set, as rendered in the
// workspace tree.
type ListNode struct {
	List
	Statuses []Status `json:"statuses"`
}

// FolderNode is a folder with its contained lists.
type FolderNode struct {
	Folder
	Lists []ListNode `json:"lists"`
}

// SpaceNode is a space with its folders, folderless lists and status set.
type SpaceNode struct {
	Space
	Folders  []FolderNode `json:"folders"`
	Lists    []ListNode   `json:"lists"`
	Statuses []Status     `json:"statuses"`
}

// WorkspaceTree is the nested projection consumed by the UI after every
// mutation. It is read-only and never a source of truth.
type WorkspaceTree struct {
	WorkspaceID string      `json:"workspace_id"`
	Spaces      []SpaceNode `json:"spaces"`
}
