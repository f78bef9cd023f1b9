package service

type CreateTaskInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

type UpdateTaskStatusInput struct {
	Status string `json:"status" validate:"required,taskstatus"`
}

type FilterInput struct {
	Status string `json:"status" validate:"omitempty,taskstatus"`
	Search string `json:"search"`
}
