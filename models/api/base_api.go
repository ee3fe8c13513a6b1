package apimodels

type Response struct {
	Status    string      `json:"status"`               // fail/success
	Message   string      `json:"message,omitempty"`    // error message
	ErrorKind string      `json:"error_kind,omitempty"` // machine readable failure kind
	Data      interface{} `json:"data,omitempty"`
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewErrorWithKind(message, kind string) Response {
	return Response{
		Status:    "fail",
		Message:   message,
		ErrorKind: kind,
	}
}

// NewErrorWithData is a failure that still carries a partial result.
func NewErrorWithData(message, kind string, data interface{}) Response {
	return Response{
		Status:    "fail",
		Message:   message,
		ErrorKind: kind,
		Data:      data,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}
