package request

type CreateUserWithPassword struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=64"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=72"`
}
