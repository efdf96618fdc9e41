package models

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type SubmitResponse struct {
	Accepted bool            `json:"accepted"`
	Session  SessionSnapshot `json:"session"`
}

type SelectFileResponse struct {
	Slot    Slot            `json:"slot"`
	Session SessionSnapshot `json:"session"`
}
