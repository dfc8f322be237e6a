package user

type RegisterReq struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	ShortBio             string `json:"short_bio" validate:"omitempty,max=500"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateReq struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	ShortBio string `json:"short_bio" validate:"omitempty,max=500"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
