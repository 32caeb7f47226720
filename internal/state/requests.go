package state

// RequestsSlice holds incoming connection requests awaiting review.
type RequestsSlice struct {
	requests []Request
}

// Set replaces the request list, dropping entries with no sender summary.
func (r *RequestsSlice) Set(requests []Request) {
	r.requests = r.requests[:0]
	for _, req := range requests {
		if req.FromUser != nil {
			r.requests = append(r.requests, req)
		}
	}
}

// Remove deletes the request with the given id. No-op when absent.
func (r *RequestsSlice) Remove(id string) {
	for i, req := range r.requests {
		if req.ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return
		}
	}
}

// List returns a copy of the pending requests.
func (r *RequestsSlice) List() []Request {
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out
}
