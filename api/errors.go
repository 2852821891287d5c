package api

// ApiError is an application-level failure: the backend answered, but the
// response envelope reported success=false, carried no data, or the HTTP
// status itself indicated an error with a structured message attached.
type ApiError struct {
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}
