package contextkeys

// Custom type to avoid collisions with other context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// handle is stored (the pool, or a transaction injected by tests).
const DBContextKey = contextKey("db")
