package user

const (
	// DefaultLimit is the page size used when the caller sends none
	DefaultLimit uint32 = 10
	// DefaultOffset is the number of records skipped when the caller sends none
	DefaultOffset uint32 = 0
)

// Query holds list parameters.
type Query struct {
	Limit  uint32 // Maximum number of records returned
	Offset uint32 // Number of records skipped before the first returned one
}

// NewQuery creates a Query, substituting defaults for absent values.
func NewQuery(limit, offset *uint32) Query {
	q := Query{Limit: DefaultLimit, Offset: DefaultOffset}
	if limit != nil {
		q.Limit = *limit
	}
	if offset != nil {
		q.Offset = *offset
	}
	return q
}

// Paginate skips q.Offset users and then takes at most q.Limit of the rest.
// The result is never nil.
func Paginate(users []User, q Query) []User {
	start := uint64(q.Offset)
	if start > uint64(len(users)) {
		start = uint64(len(users))
	}

	end := start + uint64(q.Limit)
	if end > uint64(len(users)) {
		end = uint64(len(users))
	}

	page := make([]User, 0, end-start)
	return append(page, users[start:end]...)
}
