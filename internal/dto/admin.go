package dto

type AdminStatsResponse struct {
	Users      int64 `json:"users"`
	Properties int64 `json:"properties"`
}

type TestEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}
