package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// successResponse acknowledges a write that returns no resource.
type successResponse struct {
	Success string `json:"success"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is not validated: missing fields are a credential failure (401).
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type settingsRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Messages ---

type createMessageRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Message string `json:"message" validate:"required"`
}

// --- Projects ---

type projectRequest struct {
	Title         string   `json:"title"          validate:"required"`
	Description   string   `json:"description"    validate:"required"`
	ImageURL      string   `json:"image_url"      validate:"omitempty,url"`
	Link          string   `json:"link"           validate:"omitempty,url"`
	RepositoryURL string   `json:"repository_url" validate:"omitempty,url"`
	Technologies  []string `json:"technologies"`
}

// --- Carousel ---

type createCarouselRequest struct {
	ImageURL    string `json:"image_url"   validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"       validate:"gte=0"`
}

type uploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}
