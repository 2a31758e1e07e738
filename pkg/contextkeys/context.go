package contextkeys

// Custom type so our keys never collide with other packages.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB
// (connection pool or test transaction) is stored.
const DBContextKey = contextKey("db")
