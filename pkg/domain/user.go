package domain

// User is the profile returned by the current-user endpoint.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// TokenPair is the payload of a successful credential exchange.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	UserID  int64  `json:"user_id,omitempty"`
}

// BlogPost is an entry on the portal's blog page.
type BlogPost struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
