package memos

import "errors"

// ErrMemoNotFound is returned when the API answers 404.
var ErrMemoNotFound = errors.New("memo not found")

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	Pinned     bool   `json:"pinned,omitempty"`
}

// UpdateMemoRequest is the body for PATCH /api/v1/{name}.
type UpdateMemoRequest struct {
	Content    string   `json:"content,omitempty"`
	Pinned     bool     `json:"pinned"`
	State      string   `json:"state,omitempty"`
	UpdateMask []string `json:"-"`
}

// ListMemosRequest selects one page of GET /api/v1/memos.
type ListMemosRequest struct {
	PageSize  int
	PageToken string
	State     string
	Tag       string
}

// ListMemosResponse is one page of memos.
type ListMemosResponse struct {
	Memos         []Memo `json:"memos"`
	NextPageToken string `json:"nextPageToken"`
}

// Memo is the Memos API memo object.
type Memo struct {
	Name       string   `json:"name"` // "memos/{id}"
	UID        string   `json:"uid,omitempty"`
	State      string   `json:"state"`
	Content    string   `json:"content"`
	Visibility string   `json:"visibility"`
	Pinned     bool     `json:"pinned"`
	Tags       []string `json:"tags"`
	CreateTime string   `json:"createTime"`
	UpdateTime string   `json:"updateTime"`
}
