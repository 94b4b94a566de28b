package dto

import "time"

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`
}

type CommentResponse struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"taskId"`
	Text      string      `json:"text"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
}
