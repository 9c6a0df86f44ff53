package dto

type ApplyRequest struct {
	EmployeeID  int64  `json:"employee_id"`
	CoverLetter string `json:"cover_letter"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ApplyResponse struct {
	ApplicationID int64 `json:"applicationId"`
}

type UpdateStatusResponse struct {
	ApplicationID int64  `json:"applicationId"`
	Status        string `json:"status"`
}
