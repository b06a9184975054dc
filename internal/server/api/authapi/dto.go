package authapi

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Username string `json:"username" minLength:"1" doc:"User name"`
	Password string `json:"password" minLength:"1" doc:"Password"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
