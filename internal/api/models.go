package api

// Common request/response structures

// CreateBlogRequest defines the payload for the blog creation endpoint.
// Every mutating request carries the author's credentials; there is no
// session or token state.
type CreateBlogRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	PublishDate string `json:"publish_date,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UpdateBlogRequest defines the payload for the blog update endpoint.
type UpdateBlogRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CredentialsRequest defines the payload for endpoints that only carry
// credentials (blog delete, user delete).
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BlogSummary is the blog representation returned by mutating endpoints.
type BlogSummary struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UserSummary is the user representation returned by registration.
// It deliberately excludes the id and any password material.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
