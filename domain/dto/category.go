package dto

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"omitempty,category_color"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color" validate:"omitempty,category_color"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"boardId,omitempty"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ClassName string `json:"className"`
}
